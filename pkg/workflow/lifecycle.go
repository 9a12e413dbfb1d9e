package workflow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"evolt.in/scms/models"
)

// Lifecycle drives an appointment's status machine and the arrival side
// effects. States move forward only:
//
//	Pending -> Confirmed -> In Progress -> {Quotation Created | Sent to Manager} -> Completed
//
// Cancelled is reachable from any non-terminal state. Re-asserting the
// current state is a no-op success; moving backward is rejected.
type Lifecycle struct {
	appointments AppointmentStore
	jobCards     JobCardStore
	directory    Directory
	now          func() time.Time
}

func NewLifecycle(appointments AppointmentStore, jobCards JobCardStore, directory Directory) *Lifecycle {
	return &Lifecycle{
		appointments: appointments,
		jobCards:     jobCards,
		directory:    directory,
		now:          time.Now,
	}
}

var lifecycleEdges = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.AppointmentPending:          {models.AppointmentConfirmed},
	models.AppointmentConfirmed:        {models.AppointmentInProgress},
	models.AppointmentInProgress:       {models.AppointmentQuotationCreated, models.AppointmentSentToManager},
	models.AppointmentQuotationCreated: {models.AppointmentSentToManager, models.AppointmentCompleted},
	models.AppointmentSentToManager:    {models.AppointmentCompleted},
}

// ScheduleForm is the intake payload for creating or updating a booking.
type ScheduleForm struct {
	ID                 *uuid.UUID
	CustomerName       string
	CustomerPhone      string
	CustomerState      string
	VehicleRegNo       string
	VehicleModel       string
	ServiceCenterID    *uuid.UUID
	ScheduledAt        time.Time
	ServiceType        string
	Notes              string
	PickupDropRequired bool
	PickupAddress      *string
	DropAddress        *string
}

// ScheduleOrUpdate creates a new appointment or updates an existing one.
// The service center is resolved through a fixed fallback chain: explicit
// form selection, then the caller's home center, then the first active
// center in the directory.
func (l *Lifecycle) ScheduleOrUpdate(form ScheduleForm, actor Actor) (*models.Appointment, error) {
	if strings.TrimSpace(form.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if strings.TrimSpace(form.CustomerPhone) == "" {
		return nil, fmt.Errorf("%w: customer phone is required", ErrValidation)
	}
	if strings.TrimSpace(form.VehicleRegNo) == "" {
		return nil, fmt.Errorf("%w: vehicle registration number is required", ErrValidation)
	}
	if form.PickupDropRequired && emptyAddr(form.PickupAddress) && emptyAddr(form.DropAddress) {
		return nil, fmt.Errorf("%w: pickup/drop requested without pickup or drop address", ErrValidation)
	}

	centerID, err := l.resolveServiceCenter(form.ServiceCenterID, actor)
	if err != nil {
		return nil, err
	}

	appts, err := l.appointments.LoadAppointments()
	if err != nil {
		return nil, err
	}

	if form.ID == nil {
		appt := models.Appointment{
			ID:                 uuid.New(),
			CustomerName:       form.CustomerName,
			CustomerPhone:      form.CustomerPhone,
			CustomerState:      form.CustomerState,
			VehicleRegNo:       form.VehicleRegNo,
			VehicleModel:       form.VehicleModel,
			ServiceCenterID:    centerID,
			Status:             models.AppointmentPending,
			ScheduledAt:        models.JSONTime(form.ScheduledAt),
			ServiceType:        form.ServiceType,
			Notes:              form.Notes,
			PickupDropRequired: form.PickupDropRequired,
			PickupAddress:      form.PickupAddress,
			DropAddress:        form.DropAddress,
			CreatedAt:          l.now(),
		}
		if uid, parseErr := uuid.Parse(actor.UserID); parseErr == nil {
			appt.CreatedBy = uid
		}
		appts = append(appts, appt)
		if err := l.appointments.SaveAppointments(appts); err != nil {
			return nil, err
		}
		return &appt, nil
	}

	idx := findAppointment(appts, *form.ID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, form.ID)
	}
	if appts[idx].Status == models.AppointmentCancelled {
		return nil, fmt.Errorf("%w: cannot update a cancelled appointment", ErrInvalidTransition)
	}

	appt := &appts[idx]
	appt.CustomerName = form.CustomerName
	appt.CustomerPhone = form.CustomerPhone
	appt.CustomerState = form.CustomerState
	appt.VehicleRegNo = form.VehicleRegNo
	appt.VehicleModel = form.VehicleModel
	appt.ServiceCenterID = centerID
	appt.ScheduledAt = models.JSONTime(form.ScheduledAt)
	appt.ServiceType = form.ServiceType
	appt.Notes = form.Notes
	appt.PickupDropRequired = form.PickupDropRequired
	appt.PickupAddress = form.PickupAddress
	appt.DropAddress = form.DropAddress

	if err := l.appointments.SaveAppointments(appts); err != nil {
		return nil, err
	}
	result := appts[idx]
	return &result, nil
}

// RecordArrival marks the customer as arrived, moves the appointment to
// In Progress and opens the job card. Calling it again for the same
// appointment is a no-op returning the existing card.
func (l *Lifecycle) RecordArrival(appointmentID uuid.UUID) (*models.Appointment, *models.JobCard, error) {
	appts, err := l.appointments.LoadAppointments()
	if err != nil {
		return nil, nil, err
	}
	idx := findAppointment(appts, appointmentID)
	if idx < 0 {
		return nil, nil, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
	}
	appt := &appts[idx]

	cards, err := l.jobCards.LoadJobCards()
	if err != nil {
		return nil, nil, err
	}
	for i := range cards {
		if cards[i].SourceAppointmentID == appointmentID {
			// Idempotent: arrival already recorded.
			existing := cards[i]
			result := appts[idx]
			return &result, &existing, nil
		}
	}

	if appt.Status.IsTerminal() {
		return nil, nil, fmt.Errorf("%w: cannot record arrival on a %s appointment", ErrInvalidTransition, appt.Status)
	}

	now := l.now()
	appt.Status = models.AppointmentInProgress
	appt.CustomerArrived = true
	appt.ArrivedAt = &now

	card := models.JobCard{
		ID:                  uuid.New(),
		JobCardNumber:       nextJobCardNumber(cards),
		SourceAppointmentID: appt.ID,
		ServiceCenterID:     appt.ServiceCenterID,
		ManagerReviewStatus: models.ReviewPending,
		ReviewCycle:         1,
		CreatedAt:           now,
	}
	cards = append(cards, card)

	if err := l.jobCards.SaveJobCards(cards); err != nil {
		return nil, nil, err
	}
	if err := l.appointments.SaveAppointments(appts); err != nil {
		return nil, nil, err
	}
	result := appts[idx]
	return &result, &card, nil
}

// Transition moves an appointment to the target status along the forward
// edges. Asking for the current status succeeds without a write.
func (l *Lifecycle) Transition(appointmentID uuid.UUID, target models.AppointmentStatus) (*models.Appointment, error) {
	appts, err := l.appointments.LoadAppointments()
	if err != nil {
		return nil, err
	}
	idx := findAppointment(appts, appointmentID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
	}
	appt := &appts[idx]

	if appt.Status == target {
		result := appts[idx]
		return &result, nil
	}
	if !l.canTransition(appt.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, target)
	}

	appt.Status = target
	if err := l.appointments.SaveAppointments(appts); err != nil {
		return nil, err
	}
	result := appts[idx]
	return &result, nil
}

// Cancel moves any non-terminal appointment to Cancelled.
func (l *Lifecycle) Cancel(appointmentID uuid.UUID) (*models.Appointment, error) {
	return l.Transition(appointmentID, models.AppointmentCancelled)
}

// Delete removes an appointment outright. This is an explicit operator
// action, not part of the status machine, so no guards apply.
func (l *Lifecycle) Delete(appointmentID uuid.UUID) error {
	appts, err := l.appointments.LoadAppointments()
	if err != nil {
		return err
	}
	idx := findAppointment(appts, appointmentID)
	if idx < 0 {
		return fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
	}
	appts = append(appts[:idx], appts[idx+1:]...)
	return l.appointments.SaveAppointments(appts)
}

// CanCreateQuotation is the guard the quotation surface checks before
// drafting: the vehicle must be checked in and the booking still open.
func (l *Lifecycle) CanCreateQuotation(appt *models.Appointment) bool {
	switch appt.Status {
	case models.AppointmentInProgress, models.AppointmentQuotationCreated:
		return true
	}
	return false
}

func (l *Lifecycle) canTransition(from, to models.AppointmentStatus) bool {
	if to == models.AppointmentCancelled {
		return !from.IsTerminal()
	}
	for _, next := range lifecycleEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (l *Lifecycle) resolveServiceCenter(formID *uuid.UUID, actor Actor) (uuid.UUID, error) {
	centers, err := l.directory.ServiceCenters()
	if err != nil {
		return uuid.Nil, err
	}

	active := func(id uuid.UUID) bool {
		for _, c := range centers {
			if c.ID == id && c.IsActive {
				return true
			}
		}
		return false
	}

	if formID != nil && *formID != uuid.Nil {
		if !active(*formID) {
			return uuid.Nil, fmt.Errorf("%w: service center %s is unknown or inactive", ErrConfiguration, formID)
		}
		return *formID, nil
	}
	if actor.ServiceCenterID != nil && active(*actor.ServiceCenterID) {
		return *actor.ServiceCenterID, nil
	}
	for _, c := range centers {
		if c.IsActive {
			return c.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("%w: no active service center to assign", ErrConfiguration)
}

func findAppointment(appts []models.Appointment, id uuid.UUID) int {
	for i := range appts {
		if appts[i].ID == id {
			return i
		}
	}
	return -1
}

func nextJobCardNumber(cards []models.JobCard) string {
	max := 0
	for _, c := range cards {
		rest, ok := strings.CutPrefix(c.JobCardNumber, "JC-")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("JC-%05d", max+1)
}

func emptyAddr(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
