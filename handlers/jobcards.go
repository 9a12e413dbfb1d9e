package handlers

import (
	"encoding/json"
	"net/http"

	"evolt.in/scms/config"
	"evolt.in/scms/middleware"
	"evolt.in/scms/models"
)

// GetJobCards lists job cards, newest first.
// GET /api/v1/jobcards
func GetJobCards(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Preload("Reviews").Order("created_at DESC")
	if raw := r.URL.Query().Get("reviewStatus"); raw != "" {
		q = q.Where("manager_review_status = ?", raw)
	}

	var cards []models.JobCard
	if err := q.Find(&cards).Error; err != nil {
		http.Error(w, "failed to fetch job cards", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"jobCards": cards,
		"count":    len(cards),
	})
}

// GetJobCard returns one card with its parts requests and review history.
// GET /api/v1/jobcards/{id}
func GetJobCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var card models.JobCard
	if err := config.DB.Preload("Reviews").Preload("PartsRequests.Items").
		First(&card, "id = ?", id).Error; err != nil {
		http.Error(w, "job card not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

type jobCardUpdateReq struct {
	OdometerReading *int    `json:"odometerReading"`
	BatterySOC      *int    `json:"batterySoc"`
	Complaints      *string `json:"complaints"`
	Diagnosis       *string `json:"diagnosis"`
}

// UpdateJobCard edits the intake readings and findings. Workflow state is
// untouchable here; that moves only through submit/approve.
// PATCH /api/v1/jobcards/{id}
func UpdateJobCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req jobCardUpdateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var card models.JobCard
	if err := config.DB.First(&card, "id = ?", id).Error; err != nil {
		http.Error(w, "job card not found", http.StatusNotFound)
		return
	}
	if req.OdometerReading != nil {
		card.OdometerReading = *req.OdometerReading
	}
	if req.BatterySOC != nil {
		card.BatterySOC = *req.BatterySOC
	}
	if req.Complaints != nil {
		card.Complaints = *req.Complaints
	}
	if req.Diagnosis != nil {
		card.Diagnosis = *req.Diagnosis
	}
	if err := config.DB.Save(&card).Error; err != nil {
		http.Error(w, "failed to update job card", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// SubmitJobCardForReview queues a card for the SC manager. Resubmitting a
// rejected card opens a new review cycle.
// POST /api/v1/jobcards/{id}/submit
func SubmitJobCardForReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	card, err := routerService().SubmitJobCard(id, middleware.GetActor(r))
	if err != nil {
		workflowError(w, err)
		return
	}
	config.Log.WithField("jobCardNumber", card.JobCardNumber).
		WithField("cycle", card.ReviewCycle).Info("job card submitted for review")
	writeJSON(w, http.StatusOK, card)
}
