package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AppointmentStatus is the job-card facing lifecycle of a booking.
type AppointmentStatus string

const (
	AppointmentPending          AppointmentStatus = "Pending"
	AppointmentConfirmed        AppointmentStatus = "Confirmed"
	AppointmentInProgress       AppointmentStatus = "In Progress"
	AppointmentQuotationCreated AppointmentStatus = "Quotation Created"
	AppointmentSentToManager    AppointmentStatus = "Sent to Manager"
	AppointmentCompleted        AppointmentStatus = "Completed"
	AppointmentCancelled        AppointmentStatus = "Cancelled"
)

// IsTerminal reports whether no further forward transition is possible.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

// ParseAppointmentStatus normalizes the status vocabularies that accumulated
// across the older subsystems ("SENT_TO_MANAGER", "in_progress", ...) into
// the canonical enum. This is the single normalization boundary; everything
// past the persistence layer sees canonical values only.
func ParseAppointmentStatus(raw string) (AppointmentStatus, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(raw), "_", " "), "-", " "))
	switch key {
	case "pending":
		return AppointmentPending, true
	case "confirmed":
		return AppointmentConfirmed, true
	case "in progress", "inprogress":
		return AppointmentInProgress, true
	case "quotation created":
		return AppointmentQuotationCreated, true
	case "sent to manager":
		return AppointmentSentToManager, true
	case "completed":
		return AppointmentCompleted, true
	case "cancelled", "canceled":
		return AppointmentCancelled, true
	}
	return "", false
}

// Appointment is a customer booking at a service center. A job card is
// created exactly once, when the vehicle physically arrives.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerName    string            `gorm:"size:100;not null" json:"customerName"`
	CustomerPhone   string            `gorm:"size:15;not null" json:"customerPhone"`
	CustomerState   string            `gorm:"size:50" json:"customerState"` // place of supply for billing
	VehicleRegNo    string            `gorm:"size:20;not null" json:"vehicleRegNo"`
	VehicleModel    string            `gorm:"size:100" json:"vehicleModel"`
	ServiceCenterID uuid.UUID         `gorm:"type:uuid;not null;index" json:"serviceCenterId"`
	ServiceCenter   *ServiceCenter    `gorm:"foreignKey:ServiceCenterID" json:"serviceCenter,omitempty"`
	Status          AppointmentStatus `gorm:"size:30;not null;default:'Pending'" json:"status"`
	ScheduledAt     JSONTime          `gorm:"not null" json:"scheduledAt"`
	ServiceType     string            `gorm:"size:100" json:"serviceType"` // e.g. "Periodic Service", "Battery Diagnostics"
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`

	PickupDropRequired bool    `gorm:"default:false" json:"pickupDropRequired"`
	PickupAddress      *string `gorm:"size:255" json:"pickupAddress,omitempty"`
	DropAddress        *string `gorm:"size:255" json:"dropAddress,omitempty"`

	CustomerArrived bool       `gorm:"default:false" json:"customerArrived"`
	ArrivedAt       *time.Time `json:"arrivedAt,omitempty"`

	// Per-category counts of uploaded documents (RC, insurance, photos).
	// Upload handling itself lives outside this service.
	DocumentSummary datatypes.JSON `gorm:"type:jsonb" json:"documentSummary,omitempty"`

	CreatedBy uuid.UUID      `gorm:"type:uuid" json:"createdBy"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
