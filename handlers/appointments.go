package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"evolt.in/scms/config"
	"evolt.in/scms/middleware"
	"evolt.in/scms/models"
	"evolt.in/scms/pkg/workflow"
)

type appointmentReq struct {
	CustomerName       string          `json:"customerName" validate:"required"`
	CustomerPhone      string          `json:"customerPhone" validate:"required"`
	CustomerState      string          `json:"customerState"`
	VehicleRegNo       string          `json:"vehicleRegNo" validate:"required"`
	VehicleModel       string          `json:"vehicleModel"`
	ServiceCenterID    *uuid.UUID      `json:"serviceCenterId"`
	ScheduledAt        models.JSONTime `json:"scheduledAt" validate:"required"`
	ServiceType        string          `json:"serviceType"`
	Notes              string          `json:"notes"`
	PickupDropRequired bool            `json:"pickupDropRequired"`
	PickupAddress      *string         `json:"pickupAddress"`
	DropAddress        *string         `json:"dropAddress"`
}

func (req appointmentReq) toForm() workflow.ScheduleForm {
	return workflow.ScheduleForm{
		CustomerName:       req.CustomerName,
		CustomerPhone:      req.CustomerPhone,
		CustomerState:      req.CustomerState,
		VehicleRegNo:       req.VehicleRegNo,
		VehicleModel:       req.VehicleModel,
		ServiceCenterID:    req.ServiceCenterID,
		ScheduledAt:        req.ScheduledAt.Time(),
		ServiceType:        req.ServiceType,
		Notes:              req.Notes,
		PickupDropRequired: req.PickupDropRequired,
		PickupAddress:      req.PickupAddress,
		DropAddress:        req.DropAddress,
	}
}

// CreateAppointment books a new service visit.
// POST /api/v1/appointments
func CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	appt, err := lifecycleService().ScheduleOrUpdate(req.toForm(), middleware.GetActor(r))
	if err != nil {
		workflowError(w, err)
		return
	}
	config.Log.WithField("appointmentId", appt.ID).Info("appointment scheduled")
	writeJSON(w, http.StatusCreated, appt)
}

// UpdateAppointment re-submits the booking form for an existing appointment.
// PUT /api/v1/appointments/{id}
func UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req appointmentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	form := req.toForm()
	form.ID = &id
	appt, err := lifecycleService().ScheduleOrUpdate(form, middleware.GetActor(r))
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// GetAppointments lists bookings, optionally filtered by status and center.
// GET /api/v1/appointments?status=Pending&serviceCenterId=...
func GetAppointments(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Preload("ServiceCenter").Order("scheduled_at DESC")

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := models.ParseAppointmentStatus(raw)
		if !ok {
			http.Error(w, "unknown status "+raw, http.StatusBadRequest)
			return
		}
		q = q.Where("status = ?", status)
	}
	if raw := r.URL.Query().Get("serviceCenterId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid serviceCenterId", http.StatusBadRequest)
			return
		}
		q = q.Where("service_center_id = ?", id)
	}

	var appts []models.Appointment
	if err := q.Find(&appts).Error; err != nil {
		http.Error(w, "failed to fetch appointments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appts,
		"count":        len(appts),
	})
}

// GetAppointment returns a single booking with its service center.
// GET /api/v1/appointments/{id}
func GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var appt models.Appointment
	if err := config.DB.Preload("ServiceCenter").First(&appt, "id = ?", id).Error; err != nil {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// DeleteAppointment removes a booking outright.
// DELETE /api/v1/appointments/{id}
func DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := lifecycleService().Delete(id); err != nil {
		workflowError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordArrival checks the vehicle in and opens the job card. Safe to call
// twice; the second call returns the card opened by the first.
// POST /api/v1/appointments/{id}/arrival
func RecordArrival(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	appt, card, err := lifecycleService().RecordArrival(id)
	if err != nil {
		workflowError(w, err)
		return
	}
	config.Log.WithField("jobCardNumber", card.JobCardNumber).Info("vehicle arrived")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"appointment": appt,
		"jobCard":     card,
	})
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
}

// UpdateAppointmentStatus drives the status machine.
// PATCH /api/v1/appointments/{id}/status
func UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req statusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	target, ok := models.ParseAppointmentStatus(req.Status)
	if !ok {
		http.Error(w, "unknown status "+req.Status, http.StatusBadRequest)
		return
	}

	appt, err := lifecycleService().Transition(id, target)
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// CancelAppointment is the shorthand for transitioning to Cancelled.
// POST /api/v1/appointments/{id}/cancel
func CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	appt, err := lifecycleService().Cancel(id)
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}
