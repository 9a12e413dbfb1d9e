package workflow

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"evolt.in/scms/models"
)

// Quotations drafts estimates against an open appointment and carries
// the customer's decision, which is independent of the manager review
// handled by Router.
type Quotations struct {
	quotations   QuotationStore
	appointments AppointmentStore
	lifecycle    *Lifecycle
	now          func() time.Time
}

func NewQuotations(quotations QuotationStore, appointments AppointmentStore, lifecycle *Lifecycle) *Quotations {
	return &Quotations{
		quotations:   quotations,
		appointments: appointments,
		lifecycle:    lifecycle,
		now:          time.Now,
	}
}

// CreateDraft opens a DRAFT quotation. The appointment must be checked in
// and still open; creating the first draft moves it to Quotation Created.
func (s *Quotations) CreateDraft(appointmentID uuid.UUID, estimatedCost decimal.Decimal, notes string) (*models.Quotation, error) {
	if estimatedCost.IsNegative() {
		return nil, fmt.Errorf("%w: estimated cost cannot be negative", ErrValidation)
	}

	appts, err := s.appointments.LoadAppointments()
	if err != nil {
		return nil, err
	}
	idx := findAppointment(appts, appointmentID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
	}
	if !s.lifecycle.CanCreateQuotation(&appts[idx]) {
		return nil, fmt.Errorf("%w: cannot quote an appointment in status %s", ErrInvalidTransition, appts[idx].Status)
	}

	quotes, err := s.quotations.LoadQuotations()
	if err != nil {
		return nil, err
	}
	q := models.Quotation{
		ID:            uuid.New(),
		AppointmentID: appointmentID,
		Status:        models.QuotationDraft,
		EstimatedCost: estimatedCost,
		Notes:         notes,
		CreatedAt:     s.now(),
	}
	quotes = append(quotes, q)
	if err := s.quotations.SaveQuotations(quotes); err != nil {
		return nil, err
	}

	if appts[idx].Status == models.AppointmentInProgress {
		if _, err := s.lifecycle.Transition(appointmentID, models.AppointmentQuotationCreated); err != nil {
			return nil, err
		}
	}
	return &q, nil
}

// SendToManager queues a draft for manager review and advances the
// appointment to Sent to Manager.
func (s *Quotations) SendToManager(quotationID uuid.UUID) (*models.Quotation, error) {
	quotes, err := s.quotations.LoadQuotations()
	if err != nil {
		return nil, err
	}
	idx := findQuotation(quotes, quotationID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: quotation %s", ErrNotFound, quotationID)
	}
	q := &quotes[idx]
	if q.Status != models.QuotationDraft {
		return nil, fmt.Errorf("%w: only a DRAFT quotation can be sent to the manager, got %s", ErrInvalidTransition, q.Status)
	}

	q.Status = models.QuotationSentToManager
	if err := s.quotations.SaveQuotations(quotes); err != nil {
		return nil, err
	}

	if _, err := s.lifecycle.Transition(q.AppointmentID, models.AppointmentSentToManager); err != nil {
		return nil, err
	}
	result := quotes[idx]
	return &result, nil
}

// RecordCustomerDecision stores the customer's accept/decline. It is a
// separate, one-shot step with no bearing on the manager review.
func (s *Quotations) RecordCustomerDecision(quotationID uuid.UUID, approved bool) (*models.Quotation, error) {
	quotes, err := s.quotations.LoadQuotations()
	if err != nil {
		return nil, err
	}
	idx := findQuotation(quotes, quotationID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: quotation %s", ErrNotFound, quotationID)
	}
	q := &quotes[idx]
	if q.CustomerApproved || q.CustomerRejected {
		return nil, fmt.Errorf("%w: customer decision already recorded", ErrInvalidTransition)
	}

	now := s.now()
	q.CustomerApproved = approved
	q.CustomerRejected = !approved
	q.CustomerActedAt = &now

	if err := s.quotations.SaveQuotations(quotes); err != nil {
		return nil, err
	}
	result := quotes[idx]
	return &result, nil
}

func findQuotation(quotes []models.Quotation, id uuid.UUID) int {
	for i := range quotes {
		if quotes[i].ID == id {
			return i
		}
	}
	return -1
}
