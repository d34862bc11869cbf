package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/usecases"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/usecases/commands"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/usecases/queries"
	"github.com/go-chi/chi/v5"
)

const (
	BasePath = "/query-builder"

	templateIDParam = "id"

	msgNoSimpleCondition = "request must contain at least one condition"
)

var errEmptyBody = errors.New("empty request body")

type (
	// simpleConditionRequest is one entry of the quick query body. The
	// operator stays a string so long names like GREATER_THAN are accepted.
	simpleConditionRequest struct {
		Field1              model.Field `json:"field1"`
		Operator            string      `json:"operator"`
		Field2              model.Field `json:"field2"`
		Value               *float64    `json:"value"`
		PercentageThreshold *float64    `json:"percentageThreshold"`
	}

	// simpleGroupedRequest is the grouped shape some clients post to the quick
	// query endpoint; only the first condition of the first group is used.
	simpleGroupedRequest struct {
		Groups []struct {
			Conditions []simpleConditionRequest `json:"conditions"`
		} `json:"groups"`
	}

	QueryBuilderHandler struct {
		app *usecases.Application
	}
)

func NewQueryBuilderHandler(app *usecases.Application) *QueryBuilderHandler {
	return &QueryBuilderHandler{app: app}
}

// Routes mounts the query builder endpoints on r.
func (h *QueryBuilderHandler) Routes(r chi.Router) {
	r.Post("/execute", h.ExecuteSimpleQuery)

	r.Route("/dynamic", func(r chi.Router) {
		r.Post("/execute", h.ExecuteDynamicQuery)
		r.Post("/validate", h.ValidateQuery)
		r.Get("/schema", h.GetSchema)
		r.Get("/templates", h.ListTemplates)
		r.Post("/templates", h.SaveTemplate)
		r.Get("/templates/{"+templateIDParam+"}", h.GetTemplate)
	})
}

func (h *QueryBuilderHandler) ExecuteDynamicQuery(w http.ResponseWriter, r *http.Request) {
	var query model.Query
	if err := decodeJSONBody(r, &query); err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return
	}

	response, err := h.app.Queries.ExecuteDynamicQuery.Execute(r.Context(), queries.ExecuteDynamicQuery{Query: query})
	if err != nil {
		writeDomainError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, response)
}

func (h *QueryBuilderHandler) ValidateQuery(w http.ResponseWriter, r *http.Request) {
	var query model.Query
	if err := decodeJSONBody(r, &query); err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return
	}

	result, err := h.app.Queries.ValidateQuery.Execute(r.Context(), queries.ValidateQuery{Query: query})
	if err != nil {
		writeDomainError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

func (h *QueryBuilderHandler) ExecuteSimpleQuery(w http.ResponseWriter, r *http.Request) {
	condition, err := decodeSimpleCondition(r)
	if err != nil {
		if errors.Is(err, model.ErrInvalidQuery) {
			writeErrorResponse(w, r, http.StatusBadRequest, codeInvalidQuery, msgNoSimpleCondition)

			return
		}

		writeErrorResponse(w, r, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return
	}

	response, err := h.app.Queries.ExecuteSimpleQuery.Execute(r.Context(), queries.ExecuteSimpleQuery{Condition: condition})
	if err != nil {
		writeDomainError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, response)
}

func (h *QueryBuilderHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := h.app.Queries.FetchSchema.Execute(r.Context(), queries.FetchSchemaQuery{})
	if err != nil {
		writeDomainError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, schema)
}

func (h *QueryBuilderHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.app.Queries.ListTemplates.Execute(r.Context(), queries.ListTemplatesQuery{})
	if err != nil {
		writeDomainError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, templates)
}

func (h *QueryBuilderHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, templateIDParam)

	template, err := h.app.Queries.GetTemplate.Execute(r.Context(), queries.GetTemplateQuery{ID: id})
	if err != nil {
		writeDomainError(w, r, err)

		return
	}

	writeJSONResponse(w, http.StatusOK, template)
}

func (h *QueryBuilderHandler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	var template model.Template
	if err := decodeJSONBody(r, &template); err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return
	}

	saved, err := h.app.Commands.SaveTemplate.Handle(r.Context(), commands.SaveTemplateCommand{Template: template})
	if err != nil {
		writeDomainError(w, r, err)

		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/dynamic/templates/%s", BasePath, url.PathEscape(saved.ID)))
	writeJSONResponse(w, http.StatusCreated, saved)
}

// decodeSimpleCondition accepts either an array of conditions or a grouped
// query and returns the first condition found.
func decodeSimpleCondition(r *http.Request) (model.SimpleCondition, error) {
	var raw json.RawMessage
	if err := decodeJSONBody(r, &raw); err != nil {
		return model.SimpleCondition{}, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return model.SimpleCondition{}, errEmptyBody
	}

	var conditions []simpleConditionRequest

	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &conditions); err != nil {
			return model.SimpleCondition{}, err
		}
	} else {
		var grouped simpleGroupedRequest
		if err := json.Unmarshal(raw, &grouped); err != nil {
			return model.SimpleCondition{}, err
		}

		if len(grouped.Groups) > 0 {
			conditions = grouped.Groups[0].Conditions
		}
	}

	if len(conditions) == 0 {
		return model.SimpleCondition{}, fmt.Errorf("%w: %s", model.ErrInvalidQuery, msgNoSimpleCondition)
	}

	first := conditions[0]

	return model.SimpleCondition{
		Field1:   first.Field1,
		Operator: model.Operator(first.Operator),
		Field2:   first.Field2,
		Value:    first.Value,
	}, nil
}
