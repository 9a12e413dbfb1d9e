package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"evolt.in/scms/config"
	"evolt.in/scms/models"
)

type quotationReq struct {
	AppointmentID uuid.UUID       `json:"appointmentId" validate:"required"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
	Notes         string          `json:"notes"`
}

// CreateQuotation drafts an estimate against a checked-in appointment.
// POST /api/v1/quotations
func CreateQuotation(w http.ResponseWriter, r *http.Request) {
	var req quotationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q, err := quotationService().CreateDraft(req.AppointmentID, req.EstimatedCost, req.Notes)
	if err != nil {
		workflowError(w, err)
		return
	}
	config.Log.WithField("quotationId", q.ID).Info("quotation drafted")
	writeJSON(w, http.StatusCreated, q)
}

// GetQuotations lists quotations, optionally scoped to one appointment.
// GET /api/v1/quotations?appointmentId=...
func GetQuotations(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Order("created_at DESC")
	if raw := r.URL.Query().Get("appointmentId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid appointmentId", http.StatusBadRequest)
			return
		}
		q = q.Where("appointment_id = ?", id)
	}

	var quotes []models.Quotation
	if err := q.Find(&quotes).Error; err != nil {
		http.Error(w, "failed to fetch quotations", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"quotations": quotes,
		"count":      len(quotes),
	})
}

// SendQuotationToManager queues a draft for manager review.
// POST /api/v1/quotations/{id}/send
func SendQuotationToManager(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	q, err := quotationService().SendToManager(id)
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

type customerDecisionReq struct {
	Approved bool `json:"approved"`
}

// RecordQuotationCustomerDecision stores the customer's one-shot accept or
// decline, independent of the manager review.
// POST /api/v1/quotations/{id}/customer-decision
func RecordQuotationCustomerDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body customerDecisionReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	q, err := quotationService().RecordCustomerDecision(id, body.Approved)
	if err != nil {
		workflowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
