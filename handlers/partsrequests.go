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

type partsRequestReq struct {
	JobCardID uuid.UUID      `json:"jobCardId" validate:"required"`
	Items     []partsItemReq `json:"items" validate:"required,min=1,dive"`
}

type partsItemReq struct {
	PartID       uuid.UUID `json:"partId" validate:"required"`
	RequestedQty int       `json:"requestedQty" validate:"required,gt=0"`
	IsWarranty   bool      `json:"isWarranty"`
	SerialNumber *string   `json:"serialNumber"`
}

// CreatePartsRequest raises a PENDING request under a job card.
// POST /api/v1/parts-requests
func CreatePartsRequest(w http.ResponseWriter, r *http.Request) {
	var req partsRequestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]workflow.RequestItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, workflow.RequestItem{
			PartID:       it.PartID,
			RequestedQty: it.RequestedQty,
			IsWarranty:   it.IsWarranty,
			SerialNumber: it.SerialNumber,
		})
	}

	created, err := partsService().Create(req.JobCardID, items, middleware.GetActor(r))
	if err != nil {
		workflowError(w, err)
		return
	}
	config.Log.WithField("partsRequestId", created.ID).Info("parts request created")
	writeJSON(w, http.StatusCreated, created)
}

// GetPartsRequests lists requests, newest first.
// GET /api/v1/parts-requests
func GetPartsRequests(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Preload("Items.Part").Order("created_at DESC")
	if raw := r.URL.Query().Get("status"); raw != "" {
		q = q.Where("status = ?", raw)
	}
	if raw := r.URL.Query().Get("jobCardId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid jobCardId", http.StatusBadRequest)
			return
		}
		q = q.Where("job_card_id = ?", id)
	}

	var requests []models.PartsRequest
	if err := q.Find(&requests).Error; err != nil {
		http.Error(w, "failed to fetch parts requests", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"partsRequests": requests,
		"count":         len(requests),
	})
}

// GetPendingPartsQueue returns the open requests in first-come order, the
// sequence the inventory desk works through.
// GET /api/v1/parts-requests/pending
func GetPendingPartsQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := partsService().PendingQueue()
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"partsRequests": queue,
		"count":         len(queue),
	})
}

// ApprovePartsRequest is the SC manager's first-stage approval.
// POST /api/v1/parts-requests/{id}/approve
func ApprovePartsRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	req, err := partsService().SCManagerApprove(id, middleware.GetActor(r))
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

type assignReq struct {
	EngineerName string `json:"engineerName" validate:"required"`
}

// AssignPartsRequest is the inventory manager's issue step: it names the
// fitting engineer and decrements stock all-or-nothing.
// POST /api/v1/parts-requests/{id}/assign
func AssignPartsRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body assignReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	req, err := partsService().InventoryAssign(id, body.EngineerName, middleware.GetActor(r))
	if err != nil {
		workflowError(w, err)
		return
	}
	config.Log.WithField("partsRequestId", req.ID).
		WithField("engineer", req.AssignedEngineer).Info("parts issued")
	writeJSON(w, http.StatusOK, req)
}

type rejectReq struct {
	Reason string `json:"reason"`
}

// RejectPartsRequest closes a request with a mandatory reason.
// POST /api/v1/parts-requests/{id}/reject
func RejectPartsRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body rejectReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	req, err := partsService().Reject(id, body.Reason, middleware.GetActor(r))
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
