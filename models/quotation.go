package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuotationStatus string

const (
	QuotationDraft         QuotationStatus = "DRAFT"
	QuotationSentToManager QuotationStatus = "SENT_TO_MANAGER"
	QuotationApproved      QuotationStatus = "APPROVED"
	QuotationRejected      QuotationStatus = "REJECTED"
)

// Quotation is the estimate shared with the customer before work begins.
// Manager approval and the customer's decision are independent: a manager
// can approve a quotation the customer later declines.
type Quotation struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID uuid.UUID       `gorm:"type:uuid;not null;index" json:"appointmentId"`
	Status        QuotationStatus `gorm:"size:20;not null;default:'DRAFT'" json:"status"`
	EstimatedCost decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"estimatedCost"`
	LineSummary   datatypes.JSON  `gorm:"type:jsonb" json:"lineSummary,omitempty"` // display-only breakup
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`

	ManagerNotes     string     `gorm:"size:255" json:"managerNotes,omitempty"`
	ManagerDecidedBy string     `gorm:"size:100" json:"managerDecidedBy,omitempty"`
	ManagerDecidedAt *time.Time `json:"managerDecidedAt,omitempty"`

	CustomerApproved bool       `gorm:"default:false" json:"customerApproved"`
	CustomerRejected bool       `gorm:"default:false" json:"customerRejected"`
	CustomerActedAt  *time.Time `json:"customerActedAt,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Quotation) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}
