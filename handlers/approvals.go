package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"evolt.in/scms/config"
	"evolt.in/scms/middleware"
	"evolt.in/scms/models"
	"evolt.in/scms/pkg/workflow"
)

type approvalBody struct {
	Notes  string `json:"notes"`
	Reason string `json:"reason"`
}

// ApproveEntity is the uniform approval endpoint. The {kind} path segment
// picks the target collection.
// POST /api/v1/approvals/{kind}/{id}/approve
func ApproveEntity(w http.ResponseWriter, r *http.Request) {
	kind, ok := workflow.ParseKind(mux.Vars(r)["kind"])
	if !ok {
		http.Error(w, "unknown approval kind", http.StatusBadRequest)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body approvalBody
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	outcome, err := routerService().Approve(kind, id, middleware.GetActor(r), body.Notes)
	if err != nil {
		workflowError(w, err)
		return
	}
	config.Log.WithField("kind", kind).WithField("id", id).Info("entity approved")
	writeJSON(w, http.StatusOK, outcome)
}

// RejectEntity is the uniform rejection endpoint; a reason is mandatory for
// every kind.
// POST /api/v1/approvals/{kind}/{id}/reject
func RejectEntity(w http.ResponseWriter, r *http.Request) {
	kind, ok := workflow.ParseKind(mux.Vars(r)["kind"])
	if !ok {
		http.Error(w, "unknown approval kind", http.StatusBadRequest)
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body approvalBody
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	outcome, err := routerService().Reject(kind, id, middleware.GetActor(r), body.Reason)
	if err != nil {
		workflowError(w, err)
		return
	}
	config.Log.WithField("kind", kind).WithField("id", id).Info("entity rejected")
	writeJSON(w, http.StatusOK, outcome)
}

// GetPendingApprovals gathers everything waiting on the SC manager into one
// dashboard payload.
// GET /api/v1/approvals/pending
func GetPendingApprovals(w http.ResponseWriter, r *http.Request) {
	var quotes []models.Quotation
	if err := config.DB.Where("status = ?", models.QuotationSentToManager).
		Order("created_at").Find(&quotes).Error; err != nil {
		http.Error(w, "failed to fetch quotations", http.StatusInternalServerError)
		return
	}

	var cards []models.JobCard
	if err := config.DB.Where("passed_to_manager = ? AND manager_review_status = ?", true, models.ReviewPending).
		Order("created_at").Find(&cards).Error; err != nil {
		http.Error(w, "failed to fetch job cards", http.StatusInternalServerError)
		return
	}

	var requests []models.PartsRequest
	if err := config.DB.Preload("Items").Where("status = ?", models.PartsRequestPending).
		Order("created_at").Find(&requests).Error; err != nil {
		http.Error(w, "failed to fetch parts requests", http.StatusInternalServerError)
		return
	}

	var intakes []models.ServiceIntakeRequest
	if err := config.DB.Where("status = ?", models.IntakePending).
		Order("created_at").Find(&intakes).Error; err != nil {
		http.Error(w, "failed to fetch intake requests", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"quotations":     quotes,
		"jobCards":       cards,
		"partsRequests":  requests,
		"intakeRequests": intakes,
		"count":          len(quotes) + len(cards) + len(requests) + len(intakes),
	})
}
