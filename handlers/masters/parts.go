package masters

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"evolt.in/scms/config"
	"evolt.in/scms/models"
)

// GetParts returns the parts catalogue, optionally only active SKUs or
// only those at or below reorder level.
// GET /api/v1/parts?active=true&lowStock=true
func GetParts(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Order("name")
	if r.URL.Query().Get("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	if r.URL.Query().Get("lowStock") == "true" {
		q = q.Where("available_qty <= reorder_level")
	}

	var parts []models.Part
	if err := q.Find(&parts).Error; err != nil {
		http.Error(w, "failed to fetch parts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"parts": parts,
		"count": len(parts),
	})
}

func CreatePart(w http.ResponseWriter, r *http.Request) {
	var part models.Part
	if err := json.NewDecoder(r.Body).Decode(&part); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if part.Name == "" || part.SKU == "" {
		http.Error(w, "name and sku are required", http.StatusBadRequest)
		return
	}
	if part.AvailableQty < 0 {
		http.Error(w, "availableQty cannot be negative", http.StatusBadRequest)
		return
	}
	part.IsActive = true
	if err := config.DB.Create(&part).Error; err != nil {
		http.Error(w, "failed to create part", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(part)
}

func UpdatePart(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var part models.Part
	if err := config.DB.First(&part, "id = ?", id).Error; err != nil {
		http.Error(w, "part not found", http.StatusNotFound)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	delete(patch, "id")
	// Stock moves only through the parts-request workflow.
	delete(patch, "availableQty")
	delete(patch, "available_qty")

	if err := config.DB.Model(&part).Updates(patch).Error; err != nil {
		http.Error(w, "failed to update part", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(part)
}

type restockReq struct {
	Quantity int `json:"quantity"`
}

// RestockPart adds received stock to a SKU. This is the only path that
// raises AvailableQty outside of migrations.
// POST /api/v1/parts/{id}/restock
func RestockPart(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var body restockReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if body.Quantity <= 0 {
		http.Error(w, "quantity must be positive", http.StatusBadRequest)
		return
	}

	res := config.DB.Model(&models.Part{}).Where("id = ?", id).
		UpdateColumn("available_qty", gorm.Expr("available_qty + ?", body.Quantity))
	if res.Error != nil {
		http.Error(w, "failed to restock part", http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "part not found", http.StatusNotFound)
		return
	}

	var part models.Part
	config.DB.First(&part, "id = ?", id)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(part)
}
