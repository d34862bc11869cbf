package handlers

import (
	"net/http"

	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/usecases"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/usecases/queries"
	"github.com/go-chi/chi/v5"
)

const healthStatusHealthy = "healthy"

type HealthHandler struct {
	app *usecases.Application
}

func NewHealthHandler(app *usecases.Application) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Routes(r chi.Router) {
	r.Get("/", h.Health)
	r.Get("/liveness", h.Liveness)
	r.Get("/readiness", h.Readiness)
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchLiveness.Execute(r.Context(), queries.FetchLivenessQuery{})
	if err != nil {
		writeDomainError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

// Readiness answers 503 while the datastore is unreachable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchReadiness.Execute(r.Context(), queries.FetchReadinessQuery{})
	if err != nil {
		writeDomainError(w, r, err)

		return
	}

	status := http.StatusOK
	if !result.Ready {
		status = http.StatusServiceUnavailable
	}

	writeJSONResponse(w, status, result)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchHealthReport.Execute(r.Context(), queries.FetchHealthReportQuery{})
	if err != nil {
		writeDomainError(w, r, err)

		return
	}

	status := http.StatusOK
	if result.Status != healthStatusHealthy {
		status = http.StatusServiceUnavailable
	}

	writeJSONResponse(w, status, result)
}
