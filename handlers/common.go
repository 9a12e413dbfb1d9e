package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"evolt.in/scms/config"
	"evolt.in/scms/pkg/workflow"
	"evolt.in/scms/store"
)

var validate = validator.New()

// The workflows run against snapshot stores; handlers build them on the
// shared gorm handle per request. Construction is cheap, the services hold
// no state of their own.
func snapshots() *store.GormStore { return store.New(config.DB) }

func lifecycleService() *workflow.Lifecycle {
	st := snapshots()
	return workflow.NewLifecycle(st, st, st)
}

func partsService() *workflow.PartsFlow {
	st := snapshots()
	return workflow.NewPartsFlow(st, st, st)
}

func quotationService() *workflow.Quotations {
	st := snapshots()
	return workflow.NewQuotations(st, st, lifecycleService())
}

func routerService() *workflow.Router {
	st := snapshots()
	return workflow.NewRouter(partsService(), st, st, st)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// workflowError maps the pipeline's sentinel errors onto HTTP codes and
// logs anything unexpected.
func workflowError(w http.ResponseWriter, err error) {
	status := workflow.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		config.Log.WithError(err).Error("workflow operation failed")
	}
	http.Error(w, err.Error(), status)
}

// pathUUID parses the {id}-style mux var, replying 400 itself on garbage.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
