package masters

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"evolt.in/scms/config"
	"evolt.in/scms/middleware"
	"evolt.in/scms/models"
)

// GetServiceCenters returns all centers
// GET /api/v1/service-centers
func GetServiceCenters(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var centers []models.ServiceCenter
	if err := config.DB.Order("code").Find(&centers).Error; err != nil {
		http.Error(w, "failed to fetch service centers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"serviceCenters": centers,
		"count":          len(centers),
	})
}

func CreateServiceCenter(w http.ResponseWriter, r *http.Request) {
	var center models.ServiceCenter
	if err := json.NewDecoder(r.Body).Decode(&center); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if center.Code == "" || center.Name == "" || center.State == "" {
		http.Error(w, "code, name and state are required", http.StatusBadRequest)
		return
	}
	center.IsActive = true
	if err := config.DB.Create(&center).Error; err != nil {
		http.Error(w, "failed to create service center", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(center)
}

func UpdateServiceCenter(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var center models.ServiceCenter
	if err := config.DB.First(&center, "id = ?", id).Error; err != nil {
		http.Error(w, "service center not found", http.StatusNotFound)
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	// Code is immutable once assigned: invoice numbers embed it.
	delete(patch, "code")
	delete(patch, "id")

	if err := config.DB.Model(&center).Updates(patch).Error; err != nil {
		http.Error(w, "failed to update service center", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(center)
}
