package workflow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evolt.in/scms/models"
)

func newLifecycleUnderTest(st *memStore) *Lifecycle {
	return NewLifecycle(st, st, st)
}

func TestScheduleValidation(t *testing.T) {
	st := newMemStore()
	st.addCenter(true)
	lc := newLifecycleUnderTest(st)

	form := scheduleForm()
	form.CustomerName = "  "
	_, err := lc.ScheduleOrUpdate(form, advisor())
	assert.ErrorIs(t, err, ErrValidation)

	form = scheduleForm()
	form.CustomerPhone = ""
	_, err = lc.ScheduleOrUpdate(form, advisor())
	assert.ErrorIs(t, err, ErrValidation)

	form = scheduleForm()
	form.VehicleRegNo = ""
	_, err = lc.ScheduleOrUpdate(form, advisor())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSchedulePickupDropNeedsAnAddress(t *testing.T) {
	st := newMemStore()
	st.addCenter(true)
	lc := newLifecycleUnderTest(st)

	form := scheduleForm()
	form.PickupDropRequired = true
	_, err := lc.ScheduleOrUpdate(form, advisor())
	assert.ErrorIs(t, err, ErrValidation)

	// Either address alone is enough.
	pickup := "12 MG Road"
	form.PickupAddress = &pickup
	appt, err := lc.ScheduleOrUpdate(form, advisor())
	require.NoError(t, err)
	assert.True(t, appt.PickupDropRequired)
}

func TestScheduleCenterFallbackChain(t *testing.T) {
	st := newMemStore()
	first := st.addCenter(true)
	second := st.addCenter(true)
	lc := newLifecycleUnderTest(st)

	// 1. Explicit form selection wins.
	form := scheduleForm()
	form.ServiceCenterID = &second
	appt, err := lc.ScheduleOrUpdate(form, advisor())
	require.NoError(t, err)
	assert.Equal(t, second, appt.ServiceCenterID)

	// 2. Without a form value the actor's home center is used.
	actor := advisor()
	actor.ServiceCenterID = &second
	appt, err = lc.ScheduleOrUpdate(scheduleForm(), actor)
	require.NoError(t, err)
	assert.Equal(t, second, appt.ServiceCenterID)

	// 3. Otherwise the first active center.
	appt, err = lc.ScheduleOrUpdate(scheduleForm(), advisor())
	require.NoError(t, err)
	assert.Equal(t, first, appt.ServiceCenterID)
}

func TestScheduleNoActiveCenterIsConfigurationError(t *testing.T) {
	st := newMemStore()
	st.addCenter(false)
	lc := newLifecycleUnderTest(st)

	_, err := lc.ScheduleOrUpdate(scheduleForm(), advisor())
	assert.ErrorIs(t, err, ErrConfiguration)

	// Explicitly selecting the inactive center fails the same way.
	inactive := st.centers[0].ID
	form := scheduleForm()
	form.ServiceCenterID = &inactive
	_, err = lc.ScheduleOrUpdate(form, advisor())
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestScheduleCreatesPending(t *testing.T) {
	st := newMemStore()
	st.addCenter(true)
	lc := newLifecycleUnderTest(st)

	appt, err := lc.ScheduleOrUpdate(scheduleForm(), advisor())
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentPending, appt.Status)
	assert.NotEqual(t, uuid.Nil, appt.ID)
	assert.Len(t, st.appointments, 1)
}

func TestUpdateCancelledAppointmentRejected(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	id := st.addAppointment(models.AppointmentCancelled, center)
	lc := newLifecycleUnderTest(st)

	form := scheduleForm()
	form.ID = &id
	_, err := lc.ScheduleOrUpdate(form, advisor())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRecordArrivalOpensOneJobCard(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	id := st.addAppointment(models.AppointmentConfirmed, center)
	lc := newLifecycleUnderTest(st)

	appt, card, err := lc.RecordArrival(id)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentInProgress, appt.Status)
	assert.True(t, appt.CustomerArrived)
	require.NotNil(t, appt.ArrivedAt)
	assert.Equal(t, "JC-00001", card.JobCardNumber)
	assert.Equal(t, id, card.SourceAppointmentID)

	// Second call is a no-op returning the same card.
	_, again, err := lc.RecordArrival(id)
	require.NoError(t, err)
	assert.Equal(t, card.ID, again.ID)
	assert.Len(t, st.jobCards, 1)
}

func TestRecordArrivalRejectedOnTerminalStates(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	lc := newLifecycleUnderTest(st)

	for _, status := range []models.AppointmentStatus{models.AppointmentCompleted, models.AppointmentCancelled} {
		id := st.addAppointment(status, center)
		_, _, err := lc.RecordArrival(id)
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
	assert.Empty(t, st.jobCards)
}

func TestTransitionForwardEdges(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	id := st.addAppointment(models.AppointmentPending, center)
	lc := newLifecycleUnderTest(st)

	for _, target := range []models.AppointmentStatus{
		models.AppointmentConfirmed,
		models.AppointmentInProgress,
		models.AppointmentQuotationCreated,
		models.AppointmentCompleted,
	} {
		appt, err := lc.Transition(id, target)
		require.NoError(t, err, "to %s", target)
		assert.Equal(t, target, appt.Status)
	}
}

func TestTransitionSameStateIsNoOp(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	id := st.addAppointment(models.AppointmentConfirmed, center)
	lc := newLifecycleUnderTest(st)

	appt, err := lc.Transition(id, models.AppointmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, appt.Status)
}

func TestTransitionBackwardRejected(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	id := st.addAppointment(models.AppointmentInProgress, center)
	lc := newLifecycleUnderTest(st)

	_, err := lc.Transition(id, models.AppointmentPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Skipping ahead is also rejected.
	id = st.addAppointment(models.AppointmentPending, center)
	_, err = lc.Transition(id, models.AppointmentCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelFromAnyNonTerminalState(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	lc := newLifecycleUnderTest(st)

	for _, status := range []models.AppointmentStatus{
		models.AppointmentPending,
		models.AppointmentConfirmed,
		models.AppointmentInProgress,
		models.AppointmentQuotationCreated,
		models.AppointmentSentToManager,
	} {
		id := st.addAppointment(status, center)
		appt, err := lc.Cancel(id)
		require.NoError(t, err, "from %s", status)
		assert.Equal(t, models.AppointmentCancelled, appt.Status)
	}

	id := st.addAppointment(models.AppointmentCompleted, center)
	_, err := lc.Cancel(id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDeleteAppointment(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	id := st.addAppointment(models.AppointmentCompleted, center)
	lc := newLifecycleUnderTest(st)

	require.NoError(t, lc.Delete(id))
	assert.Empty(t, st.appointments)

	assert.ErrorIs(t, lc.Delete(id), ErrNotFound)
}

func TestJobCardNumbersAreSequential(t *testing.T) {
	st := newMemStore()
	center := st.addCenter(true)
	lc := newLifecycleUnderTest(st)

	first := st.addAppointment(models.AppointmentConfirmed, center)
	second := st.addAppointment(models.AppointmentConfirmed, center)

	_, cardA, err := lc.RecordArrival(first)
	require.NoError(t, err)
	_, cardB, err := lc.RecordArrival(second)
	require.NoError(t, err)

	assert.Equal(t, "JC-00001", cardA.JobCardNumber)
	assert.Equal(t, "JC-00002", cardB.JobCardNumber)
}
