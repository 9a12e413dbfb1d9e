package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"evolt.in/scms/handlers"
	"evolt.in/scms/handlers/masters"
	"evolt.in/scms/middleware"
	"evolt.in/scms/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/me", handlers.GetCurrentUser).Methods("GET")

	// Appointments and the service lifecycle
	api.HandleFunc("/appointments", handlers.CreateAppointment).Methods("POST")
	api.HandleFunc("/appointments", handlers.GetAppointments).Methods("GET")
	api.HandleFunc("/appointments/{id}", handlers.GetAppointment).Methods("GET")
	api.HandleFunc("/appointments/{id}", handlers.UpdateAppointment).Methods("PUT")
	api.HandleFunc("/appointments/{id}", handlers.DeleteAppointment).Methods("DELETE")
	api.HandleFunc("/appointments/{id}/arrival", handlers.RecordArrival).Methods("POST")
	api.HandleFunc("/appointments/{id}/status", handlers.UpdateAppointmentStatus).Methods("PATCH")
	api.HandleFunc("/appointments/{id}/cancel", handlers.CancelAppointment).Methods("POST")

	// Job cards
	api.HandleFunc("/jobcards", handlers.GetJobCards).Methods("GET")
	api.HandleFunc("/jobcards/{id}", handlers.GetJobCard).Methods("GET")
	api.HandleFunc("/jobcards/{id}", handlers.UpdateJobCard).Methods("PATCH")
	api.HandleFunc("/jobcards/{id}/submit", handlers.SubmitJobCardForReview).Methods("POST")

	// Parts requests
	api.HandleFunc("/parts-requests", handlers.CreatePartsRequest).Methods("POST")
	api.HandleFunc("/parts-requests", handlers.GetPartsRequests).Methods("GET")
	api.HandleFunc("/parts-requests/pending", handlers.GetPendingPartsQueue).Methods("GET")
	api.Handle("/parts-requests/{id}/approve",
		middleware.RequireRole([]string{models.RoleSCManager},
			http.HandlerFunc(handlers.ApprovePartsRequest))).Methods("POST")
	api.Handle("/parts-requests/{id}/assign",
		middleware.RequireRole([]string{models.RoleInventoryManager},
			http.HandlerFunc(handlers.AssignPartsRequest))).Methods("POST")
	api.HandleFunc("/parts-requests/{id}/reject", handlers.RejectPartsRequest).Methods("POST")

	// Quotations
	api.HandleFunc("/quotations", handlers.CreateQuotation).Methods("POST")
	api.HandleFunc("/quotations", handlers.GetQuotations).Methods("GET")
	api.HandleFunc("/quotations/{id}/send", handlers.SendQuotationToManager).Methods("POST")
	api.HandleFunc("/quotations/{id}/customer-decision", handlers.RecordQuotationCustomerDecision).Methods("POST")

	// Service intake
	api.HandleFunc("/intake-requests", handlers.SubmitIntakeRequest).Methods("POST")
	api.HandleFunc("/intake-requests", handlers.GetIntakeRequests).Methods("GET")

	// Unified approvals surface
	api.HandleFunc("/approvals/pending", handlers.GetPendingApprovals).Methods("GET")
	api.HandleFunc("/approvals/{kind}/{id}/approve", handlers.ApproveEntity).Methods("POST")
	api.HandleFunc("/approvals/{kind}/{id}/reject", handlers.RejectEntity).Methods("POST")

	// Invoices
	api.HandleFunc("/invoices", handlers.CreateInvoice).Methods("POST")
	api.HandleFunc("/invoices", handlers.GetInvoices).Methods("GET")
	api.HandleFunc("/invoices/export", handlers.ExportInvoicesXLSX).Methods("GET")
	api.HandleFunc("/invoices/{id}", handlers.GetInvoice).Methods("GET")
	api.HandleFunc("/invoices/{id}/payments", handlers.RecordInvoicePayment).Methods("POST")

	// Masters
	api.HandleFunc("/service-centers", masters.GetServiceCenters).Methods("GET")
	api.HandleFunc("/parts", masters.GetParts).Methods("GET")

	// =====================================================
	// Admin Routes
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(func(next http.Handler) http.Handler {
		return middleware.RequireRole([]string{models.RoleAdmin}, next)
	})
	admin.HandleFunc("/service-centers", masters.CreateServiceCenter).Methods("POST")
	admin.HandleFunc("/service-centers/{id}", masters.UpdateServiceCenter).Methods("PUT")
	admin.HandleFunc("/parts", masters.CreatePart).Methods("POST")
	admin.HandleFunc("/parts/{id}", masters.UpdatePart).Methods("PUT")
	admin.HandleFunc("/parts/{id}/restock", masters.RestockPart).Methods("POST")

	return r
}
