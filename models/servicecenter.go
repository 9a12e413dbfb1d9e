package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceCenter is a physical workshop location. Code and State drive
// invoice numbering and the GST place-of-supply comparison.
type ServiceCenter struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Code      string         `gorm:"size:20;uniqueIndex;not null" json:"code"` // e.g. "SC001"
	State     string         `gorm:"size:50;not null" json:"state"`
	City      string         `gorm:"size:50" json:"city"`
	Address   string         `gorm:"size:255" json:"address"`
	GSTIN     string         `gorm:"size:15" json:"gstin"`
	Phone     string         `gorm:"size:15" json:"phone"`
	IsActive  bool           `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (sc *ServiceCenter) BeforeCreate(tx *gorm.DB) (err error) {
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	return
}
