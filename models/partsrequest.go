package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartsRequestStatus is the two-party approval state of a parts request.
// The order is strict: an inventory manager can only issue what an SC
// manager has already approved.
type PartsRequestStatus string

const (
	PartsRequestPending           PartsRequestStatus = "PENDING"
	PartsRequestSCManagerApproved PartsRequestStatus = "SC_MANAGER_APPROVED"
	PartsRequestIssued            PartsRequestStatus = "ISSUED"
	PartsRequestRejected          PartsRequestStatus = "REJECTED"
)

// PartsRequest is a job card's ask for inventory parts.
type PartsRequest struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	JobCardID uuid.UUID          `gorm:"type:uuid;not null;index" json:"jobCardId"`
	Status    PartsRequestStatus `gorm:"size:30;not null;default:'PENDING'" json:"status"`
	Items     []PartsRequestItem `gorm:"foreignKey:PartsRequestID" json:"items"`

	RequestedBy string `gorm:"size:100" json:"requestedBy"`

	ScManagerApproved   bool       `gorm:"default:false" json:"scManagerApproved"`
	ScManagerApprovedBy string     `gorm:"size:100" json:"scManagerApprovedBy,omitempty"`
	ScManagerApprovedAt *time.Time `json:"scManagerApprovedAt,omitempty"`

	InventoryManagerAssigned bool       `gorm:"default:false" json:"inventoryManagerAssigned"`
	AssignedEngineer         string     `gorm:"size:100" json:"assignedEngineer,omitempty"`
	AssignedBy               string     `gorm:"size:100" json:"assignedBy,omitempty"`
	AssignedAt               *time.Time `json:"assignedAt,omitempty"`

	RejectedReason string     `gorm:"size:255" json:"rejectedReason,omitempty"`
	RejectedAt     *time.Time `json:"rejectedAt,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (pr *PartsRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if pr.ID == uuid.Nil {
		pr.ID = uuid.New()
	}
	return
}

// PartsRequestItem is one requested part line. Warranty replacements carry
// the serial number of the unit being swapped out.
type PartsRequestItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PartsRequestID uuid.UUID `gorm:"type:uuid;not null;index" json:"partsRequestId"`
	PartID         uuid.UUID `gorm:"type:uuid;not null;index" json:"partId"`
	Part           *Part     `gorm:"foreignKey:PartID" json:"part,omitempty"`
	RequestedQty   int       `gorm:"not null" json:"requestedQty"`
	IsWarranty     bool      `gorm:"default:false" json:"isWarranty"`
	SerialNumber   *string   `gorm:"size:50" json:"serialNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (it *PartsRequestItem) BeforeCreate(tx *gorm.DB) (err error) {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return
}
