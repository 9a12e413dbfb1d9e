package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Part is one stock-keeping unit of the inventory ledger. AvailableQty is
// the authoritative on-hand count; the parts workflow decrements it exactly
// once, when an inventory manager assigns an approved request.
type Part struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	SKU          string          `gorm:"size:50;uniqueIndex;not null" json:"sku"`
	HSNCode      string          `gorm:"size:10" json:"hsnCode"`
	Category     string          `gorm:"size:50" json:"category"` // e.g. "Battery", "Motor", "Brakes"
	UnitPrice    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"unitPrice"`
	GSTRate      decimal.Decimal `gorm:"type:decimal(5,2);default:18" json:"gstRate"`
	AvailableQty int             `gorm:"not null;default:0" json:"availableQty"`
	ReorderLevel int             `gorm:"default:0" json:"reorderLevel"`
	IsActive     bool            `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Part) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
