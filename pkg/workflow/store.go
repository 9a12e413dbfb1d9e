package workflow

import (
	"github.com/google/uuid"
	"evolt.in/scms/models"
)

// The workflows never talk to a database directly. Each transition is a
// read-modify-write over the full snapshot of one backing collection,
// loaded and stored through these interfaces. The gorm implementation
// lives in the store package; tests use in-memory fakes.

type AppointmentStore interface {
	LoadAppointments() ([]models.Appointment, error)
	SaveAppointments([]models.Appointment) error
}

type JobCardStore interface {
	LoadJobCards() ([]models.JobCard, error)
	SaveJobCards([]models.JobCard) error
}

type PartsRequestStore interface {
	LoadPartsRequests() ([]models.PartsRequest, error)
	SavePartsRequests([]models.PartsRequest) error
}

type QuotationStore interface {
	LoadQuotations() ([]models.Quotation, error)
	SaveQuotations([]models.Quotation) error
}

type IntakeStore interface {
	LoadIntakeRequests() ([]models.ServiceIntakeRequest, error)
	SaveIntakeRequests([]models.ServiceIntakeRequest) error
}

type InvoiceStore interface {
	LoadInvoices() ([]models.Invoice, error)
	SaveInvoices([]models.Invoice) error
}

// StockLedger supplies current on-hand quantities and applies decrements.
// Available must be a fresh read, never a cached value; Decrement applies
// the whole instruction set atomically or not at all, returning an error
// wrapping ErrInsufficientStock when any line would go negative.
type StockLedger interface {
	Available() (map[uuid.UUID]int, error)
	Decrement(map[uuid.UUID]int) error
}

// Directory resolves service-center references for scheduling and billing.
type Directory interface {
	ServiceCenters() ([]models.ServiceCenter, error)
}

// Actor is the identity attached to an operation, sourced from JWT claims
// at the HTTP boundary. Role is an opaque string compared against the
// models.Role* constants.
type Actor struct {
	UserID string
	Name   string
	Role   string

	// ServiceCenterID is the caller's home center, used as the second leg
	// of the scheduling fallback chain. Nil for roaming/admin users.
	ServiceCenterID *uuid.UUID
}
