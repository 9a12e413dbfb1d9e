package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"evolt.in/scms/config"
	"evolt.in/scms/models"
)

type intakeReq struct {
	CustomerName    string           `json:"customerName" validate:"required"`
	CustomerPhone   string           `json:"customerPhone" validate:"required"`
	VehicleRegNo    string           `json:"vehicleRegNo" validate:"required"`
	Concern         string           `json:"concern"`
	PreferredDate   *models.JSONTime `json:"preferredDate"`
	ServiceCenterID *uuid.UUID       `json:"serviceCenterId"`
}

// SubmitIntakeRequest records a walk-in or call-center request. It waits in
// the manager's approval queue until it is converted into an appointment.
// POST /api/v1/intake-requests
func SubmitIntakeRequest(w http.ResponseWriter, r *http.Request) {
	var req intakeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	intake := models.ServiceIntakeRequest{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		VehicleRegNo:    req.VehicleRegNo,
		Concern:         req.Concern,
		PreferredDate:   req.PreferredDate,
		ServiceCenterID: req.ServiceCenterID,
		Status:          models.IntakePending,
	}
	if err := config.DB.Create(&intake).Error; err != nil {
		http.Error(w, "failed to create intake request", http.StatusInternalServerError)
		return
	}
	config.Log.WithField("intakeId", intake.ID).Info("service intake submitted")
	writeJSON(w, http.StatusCreated, intake)
}

// GetIntakeRequests lists intake requests, pending first.
// GET /api/v1/intake-requests
func GetIntakeRequests(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Order("created_at DESC")
	if raw := r.URL.Query().Get("status"); raw != "" {
		q = q.Where("status = ?", raw)
	}

	var intakes []models.ServiceIntakeRequest
	if err := q.Find(&intakes).Error; err != nil {
		http.Error(w, "failed to fetch intake requests", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"intakeRequests": intakes,
		"count":          len(intakes),
	})
}
