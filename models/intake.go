package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntakeStatus string

const (
	IntakePending  IntakeStatus = "PENDING"
	IntakeApproved IntakeStatus = "APPROVED"
	IntakeRejected IntakeStatus = "REJECTED"
)

// ServiceIntakeRequest is a walk-in or call-center request that has not yet
// been scheduled. Approval converts it into an appointment.
type ServiceIntakeRequest struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerName    string       `gorm:"size:100;not null" json:"customerName"`
	CustomerPhone   string       `gorm:"size:15;not null" json:"customerPhone"`
	VehicleRegNo    string       `gorm:"size:20;not null" json:"vehicleRegNo"`
	Concern         string       `gorm:"type:text" json:"concern"`
	PreferredDate   *JSONTime    `json:"preferredDate,omitempty"`
	ServiceCenterID *uuid.UUID   `gorm:"type:uuid;index" json:"serviceCenterId,omitempty"`
	Status          IntakeStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	DecisionNotes   string       `gorm:"size:255" json:"decisionNotes,omitempty"`
	DecidedBy       string       `gorm:"size:100" json:"decidedBy,omitempty"`
	DecidedAt       *time.Time   `json:"decidedAt,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *ServiceIntakeRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
