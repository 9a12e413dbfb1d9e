package workflow

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evolt.in/scms/models"
)

func newQuotationsUnderTest(st *memStore) *Quotations {
	return NewQuotations(st, st, newLifecycleUnderTest(st))
}

func TestCreateDraftMovesAppointmentForward(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	apptID := st.addAppointment(models.AppointmentInProgress, center)
	svc := newQuotationsUnderTest(st)

	q, err := svc.CreateDraft(apptID, decimal.NewFromInt(4500), "battery module replacement")
	require.NoError(t, err)
	assert.Equal(t, models.QuotationDraft, q.Status)
	assert.Equal(t, models.AppointmentQuotationCreated, st.appointments[0].Status)

	// A second draft on the same appointment is fine and does not move it again.
	_, err = svc.CreateDraft(apptID, decimal.NewFromInt(5200), "revised estimate")
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentQuotationCreated, st.appointments[0].Status)
}

func TestCreateDraftGuards(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	svc := newQuotationsUnderTest(st)

	apptID := st.addAppointment(models.AppointmentInProgress, center)
	_, err := svc.CreateDraft(apptID, decimal.NewFromInt(-1), "")
	assert.ErrorIs(t, err, ErrValidation)

	// Quoting before the vehicle arrived, or after completion, is rejected.
	for _, status := range []models.AppointmentStatus{
		models.AppointmentPending,
		models.AppointmentConfirmed,
		models.AppointmentSentToManager,
		models.AppointmentCompleted,
		models.AppointmentCancelled,
	} {
		id := st.addAppointment(status, center)
		_, err := svc.CreateDraft(id, decimal.NewFromInt(100), "")
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

func TestSendToManagerAdvancesAppointment(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	apptID := st.addAppointment(models.AppointmentInProgress, center)
	svc := newQuotationsUnderTest(st)

	q, err := svc.CreateDraft(apptID, decimal.NewFromInt(4500), "")
	require.NoError(t, err)

	q, err = svc.SendToManager(q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuotationSentToManager, q.Status)
	assert.Equal(t, models.AppointmentSentToManager, st.appointments[0].Status)

	// Only drafts can be sent.
	_, err = svc.SendToManager(q.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCustomerDecisionIsOneShot(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	apptID := st.addAppointment(models.AppointmentInProgress, center)
	svc := newQuotationsUnderTest(st)

	q, err := svc.CreateDraft(apptID, decimal.NewFromInt(4500), "")
	require.NoError(t, err)

	q, err = svc.RecordCustomerDecision(q.ID, false)
	require.NoError(t, err)
	assert.False(t, q.CustomerApproved)
	assert.True(t, q.CustomerRejected)
	assert.NotNil(t, q.CustomerActedAt)

	_, err = svc.RecordCustomerDecision(q.ID, true)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
