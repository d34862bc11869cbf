package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Shubhamshah007/nse-query-builder/pkg/circuitbreaker"
	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/pkg/metrics/noop"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/inbound/http/handlers"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/ports"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/usecases"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	otelNoop "go.opentelemetry.io/otel/trace/noop"
)

type fakeQueryService struct {
	executeFn       func(ctx context.Context, query model.Query) (*model.ExecutionResponse, error)
	executeSimpleFn func(ctx context.Context, condition model.SimpleCondition) (*model.SimpleQueryResponse, error)
}

func (f *fakeQueryService) Execute(ctx context.Context, query model.Query) (*model.ExecutionResponse, error) {
	if f.executeFn != nil {
		return f.executeFn(ctx, query)
	}

	return &model.ExecutionResponse{Results: []model.QueryResult{}, Query: query}, nil
}

func (f *fakeQueryService) ExecuteSimple(ctx context.Context, condition model.SimpleCondition) (*model.SimpleQueryResponse, error) {
	if f.executeSimpleFn != nil {
		return f.executeSimpleFn(ctx, condition)
	}

	return &model.SimpleQueryResponse{Results: []model.QueryResult{}, DataSource: model.DataSourceDatabase}, nil
}

func (f *fakeQueryService) Validate(_ context.Context, query model.Query) model.ValidationResult {
	return model.Validate(query)
}

func (f *fakeQueryService) Schema(_ context.Context) model.Schema {
	return model.DescribeSchema()
}

type fakeTemplateService struct {
	saveErr error
}

func (f *fakeTemplateService) ListTemplates(_ context.Context) ([]model.Template, error) {
	return model.BuiltinTemplates(), nil
}

func (f *fakeTemplateService) GetTemplate(_ context.Context, id string) (*model.Template, error) {
	for _, template := range model.BuiltinTemplates() {
		if template.ID == id {
			return &template, nil
		}
	}

	return nil, &model.TemplateNotFoundError{ID: id}
}

func (f *fakeTemplateService) SaveTemplate(_ context.Context, template model.Template) (*model.Template, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}

	if template.ID == "" {
		template.ID = "generated-id"
	}

	return &template, nil
}

type fakeHealthChecker struct {
	healthy bool
}

func (f *fakeHealthChecker) IsHealthy(_ context.Context) bool {
	return f.healthy
}

func (f *fakeHealthChecker) CheckDependencies(_ context.Context) map[string]ports.DependencyStatus {
	return map[string]ports.DependencyStatus{
		"database": {Healthy: f.healthy},
	}
}

func newTestRouter(queryService ports.QueryBuilderService, templateService ports.TemplateService, healthChecker ports.HealthChecker) http.Handler {
	app := usecases.NewApplication(
		queryService,
		templateService,
		healthChecker,
		logger.NewTestLogger(),
		noop.NewMetricsClient(),
		otelNoop.NewTracerProvider(),
	)

	router := chi.NewRouter()
	router.Route(handlers.BasePath, handlers.NewQueryBuilderHandler(app).Routes)
	router.Route("/health", handlers.NewHealthHandler(app).Routes)

	return router
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()

	var response handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

	return response
}

const validQueryBody = `{
	"groups": [{
		"conditions": [{"field1": "current_call_iv", "operator": "pct_gt", "field2": "avg_90day_call_iv", "percentageThreshold": 10}],
		"filters": [{"field": "instrument_type", "operator": "eq", "value": "STOCK"}],
		"logicalOperator": "and"
	}],
	"groupLogicalOperator": "and",
	"limit": 10
}`

type QueryBuilderHandlerTestSuite struct {
	suite.Suite
}

func TestQueryBuilderHandlerTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(QueryBuilderHandlerTestSuite))
}

func (s *QueryBuilderHandlerTestSuite) TestExecuteDynamicQuery() {
	s.T().Parallel()

	cases := []struct {
		name           string
		body           string
		executeErr     error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "valid query returns results",
			body:           validQueryBody,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed json is rejected",
			body:           `{"groups": [`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_JSON",
		},
		{
			name:           "validation failure",
			body:           validQueryBody,
			executeErr:     model.NewValidationError([]string{model.MsgNoGroups}),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_QUERY",
		},
		{
			name:           "unsupported operator",
			body:           validQueryBody,
			executeErr:     fmt.Errorf("compiling query: %w: between", model.ErrUnsupportedOperator),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "UNSUPPORTED_OPERATOR",
		},
		{
			name:           "unknown field",
			body:           validQueryBody,
			executeErr:     fmt.Errorf("%w: volume", model.ErrUnknownField),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "UNKNOWN_FIELD",
		},
		{
			name:           "invalid sort",
			body:           validQueryBody,
			executeErr:     fmt.Errorf("%w: sort order %q", model.ErrInvalidSort, "sideways"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_SORT",
		},
		{
			name:           "datastore failure",
			body:           validQueryBody,
			executeErr:     &model.QueryExecutionError{Err: errors.New(`relation "market_summary" does not exist`)},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "QUERY_EXECUTION_FAILED",
		},
		{
			name:           "circuit open",
			body:           validQueryBody,
			executeErr:     circuitbreaker.ErrCircuitOpen,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "SERVICE_UNAVAILABLE",
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			var received model.Query

			queryService := &fakeQueryService{
				executeFn: func(_ context.Context, query model.Query) (*model.ExecutionResponse, error) {
					received = query
					if tc.executeErr != nil {
						return nil, tc.executeErr
					}

					return &model.ExecutionResponse{
						Results:      []model.QueryResult{{Symbol: "RELIANCE", ComparisonField: string(model.FieldAvg90DayCallIV)}},
						TotalCount:   1,
						Query:        query,
						GeneratedSQL: "SELECT 1",
					}, nil
				},
			}

			router := newTestRouter(queryService, &fakeTemplateService{}, &fakeHealthChecker{healthy: true})
			rec := serve(router, http.MethodPost, "/query-builder/dynamic/execute", tc.body)

			s.Require().Equal(tc.expectedStatus, rec.Code)

			if tc.expectedCode != "" {
				s.Require().Equal(tc.expectedCode, decodeError(s.T(), rec).Code)

				return
			}

			var response model.ExecutionResponse
			s.Require().NoError(json.NewDecoder(rec.Body).Decode(&response))
			s.Require().Equal(1, response.TotalCount)
			s.Require().Equal("SELECT 1", response.GeneratedSQL)
			s.Require().Len(received.Groups, 1)
			s.Require().Equal(model.OpPercentGreater, received.Groups[0].Conditions[0].Operator)
			s.Require().Equal("STOCK", received.Groups[0].Filters[0].Value)
		})
	}
}

func (s *QueryBuilderHandlerTestSuite) TestExecuteDynamicQuery_ValidationDetails() {
	s.T().Parallel()

	queryService := &fakeQueryService{
		executeFn: func(_ context.Context, _ model.Query) (*model.ExecutionResponse, error) {
			return nil, model.NewValidationError([]string{model.MsgEmptyGroup, model.MsgPercentageRequirements})
		},
	}

	router := newTestRouter(queryService, &fakeTemplateService{}, &fakeHealthChecker{healthy: true})
	rec := serve(router, http.MethodPost, "/query-builder/dynamic/execute", validQueryBody)

	s.Require().Equal(http.StatusBadRequest, rec.Code)

	response := decodeError(s.T(), rec)
	s.Require().Equal([]string{model.MsgEmptyGroup, model.MsgPercentageRequirements}, response.Errors)
	s.Require().Contains(response.Message, model.MsgEmptyGroup)
}

func (s *QueryBuilderHandlerTestSuite) TestValidateQuery() {
	s.T().Parallel()

	cases := []struct {
		name           string
		body           string
		expectedValid  bool
		expectedErrors []string
	}{
		{
			name:           "valid query",
			body:           validQueryBody,
			expectedValid:  true,
			expectedErrors: []string{},
		},
		{
			name:           "empty groups",
			body:           `{"groups": []}`,
			expectedValid:  false,
			expectedErrors: []string{model.MsgNoGroups},
		},
	}

	router := newTestRouter(&fakeQueryService{}, &fakeTemplateService{}, &fakeHealthChecker{healthy: true})

	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec := serve(router, http.MethodPost, "/query-builder/dynamic/validate", tc.body)

			s.Require().Equal(http.StatusOK, rec.Code)

			var result model.ValidationResult
			s.Require().NoError(json.NewDecoder(rec.Body).Decode(&result))
			s.Require().Equal(tc.expectedValid, result.Valid)
			s.Require().Equal(tc.expectedErrors, result.Errors)
		})
	}
}

func (s *QueryBuilderHandlerTestSuite) TestExecuteSimpleQuery() {
	s.T().Parallel()

	threshold := 25.0

	cases := []struct {
		name              string
		body              string
		expectedStatus    int
		expectedCode      string
		expectedCondition model.SimpleCondition
	}{
		{
			name:           "condition array with long operator name",
			body:           `[{"field1": "current_call_iv", "operator": "GREATER_THAN", "field2": "avg_90day_call_iv"}]`,
			expectedStatus: http.StatusOK,
			expectedCondition: model.SimpleCondition{
				Field1:   model.FieldCurrentCallIV,
				Operator: "GREATER_THAN",
				Field2:   model.FieldAvg90DayCallIV,
			},
		},
		{
			name:           "grouped body uses the first condition",
			body:           `{"groups": [{"conditions": [{"field1": "current_put_iv", "operator": "lt", "value": 25}, {"field1": "symbol", "operator": "eq", "value": 1}]}]}`,
			expectedStatus: http.StatusOK,
			expectedCondition: model.SimpleCondition{
				Field1:   model.FieldCurrentPutIV,
				Operator: model.OpLessThan,
				Value:    &threshold,
			},
		},
		{
			name:           "empty condition array",
			body:           `[]`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_QUERY",
		},
		{
			name:           "grouped body without conditions",
			body:           `{"groups": []}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_QUERY",
		},
		{
			name:           "not json",
			body:           `field1 > field2`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_JSON",
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			var received model.SimpleCondition

			queryService := &fakeQueryService{
				executeSimpleFn: func(_ context.Context, condition model.SimpleCondition) (*model.SimpleQueryResponse, error) {
					received = condition

					return &model.SimpleQueryResponse{
						Results:    []model.QueryResult{},
						DataSource: model.DataSourceDatabase,
						Message:    model.SimpleMessage(0),
					}, nil
				},
			}

			router := newTestRouter(queryService, &fakeTemplateService{}, &fakeHealthChecker{healthy: true})
			rec := serve(router, http.MethodPost, "/query-builder/execute", tc.body)

			s.Require().Equal(tc.expectedStatus, rec.Code)

			if tc.expectedCode != "" {
				s.Require().Equal(tc.expectedCode, decodeError(s.T(), rec).Code)

				return
			}

			s.Require().Equal(tc.expectedCondition, received)

			var response model.SimpleQueryResponse
			s.Require().NoError(json.NewDecoder(rec.Body).Decode(&response))
			s.Require().Equal(model.DataSourceDatabase, response.DataSource)
		})
	}
}

func (s *QueryBuilderHandlerTestSuite) TestExecuteSimpleQuery_UnsupportedOperator() {
	s.T().Parallel()

	queryService := &fakeQueryService{
		executeSimpleFn: func(_ context.Context, condition model.SimpleCondition) (*model.SimpleQueryResponse, error) {
			_, err := model.ParseSimpleOperator(string(condition.Operator))

			return nil, err
		},
	}

	router := newTestRouter(queryService, &fakeTemplateService{}, &fakeHealthChecker{healthy: true})
	rec := serve(router, http.MethodPost, "/query-builder/execute", `[{"field1": "current_call_iv", "operator": "BETWEEN", "value": 1}]`)

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Require().Equal("UNSUPPORTED_OPERATOR", decodeError(s.T(), rec).Code)
}

func (s *QueryBuilderHandlerTestSuite) TestTemplates() {
	s.T().Parallel()

	cases := []struct {
		name             string
		method           string
		path             string
		body             string
		saveErr          error
		expectedStatus   int
		expectedCode     string
		expectedLocation string
	}{
		{
			name:           "list templates",
			method:         http.MethodGet,
			path:           "/query-builder/dynamic/templates",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "get builtin template",
			method:         http.MethodGet,
			path:           "/query-builder/dynamic/templates/high_iv_vs_3months",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "get missing template",
			method:         http.MethodGet,
			path:           "/query-builder/dynamic/templates/missing",
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:             "save template",
			method:           http.MethodPost,
			path:             "/query-builder/dynamic/templates",
			body:             `{"name": "My scan", "query": ` + validQueryBody + `}`,
			expectedStatus:   http.StatusCreated,
			expectedLocation: "/query-builder/dynamic/templates/generated-id",
		},
		{
			name:           "save over a builtin id",
			method:         http.MethodPost,
			path:           "/query-builder/dynamic/templates",
			body:           `{"id": "intraday_iv_spike", "name": "Spike", "query": ` + validQueryBody + `}`,
			saveErr:        fmt.Errorf("%w: intraday_iv_spike", model.ErrTemplateConflict),
			expectedStatus: http.StatusConflict,
			expectedCode:   "CONFLICT",
		},
		{
			name:           "save to a read-only store",
			method:         http.MethodPost,
			path:           "/query-builder/dynamic/templates",
			body:           `{"name": "My scan", "query": ` + validQueryBody + `}`,
			saveErr:        model.ErrTemplateStoreReadOnly,
			expectedStatus: http.StatusMethodNotAllowed,
			expectedCode:   "READ_ONLY",
		},
		{
			name:           "save an invalid template",
			method:         http.MethodPost,
			path:           "/query-builder/dynamic/templates",
			body:           `{"query": {"groups": []}}`,
			saveErr:        fmt.Errorf("%w: Template must have a name", model.ErrInvalidTemplate),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_TEMPLATE",
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			router := newTestRouter(&fakeQueryService{}, &fakeTemplateService{saveErr: tc.saveErr}, &fakeHealthChecker{healthy: true})
			rec := serve(router, tc.method, tc.path, tc.body)

			s.Require().Equal(tc.expectedStatus, rec.Code)

			if tc.expectedCode != "" {
				s.Require().Equal(tc.expectedCode, decodeError(s.T(), rec).Code)
			}

			if tc.expectedLocation != "" {
				s.Require().Equal(tc.expectedLocation, rec.Header().Get("Location"))
			}
		})
	}
}

func (s *QueryBuilderHandlerTestSuite) TestListTemplates_BuiltinsFirst() {
	s.T().Parallel()

	router := newTestRouter(&fakeQueryService{}, &fakeTemplateService{}, &fakeHealthChecker{healthy: true})
	rec := serve(router, http.MethodGet, "/query-builder/dynamic/templates", "")

	s.Require().Equal(http.StatusOK, rec.Code)

	var templates []model.Template
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&templates))
	s.Require().Len(templates, 3)
	s.Require().Equal("high_iv_vs_3months", templates[0].ID)
}

func (s *QueryBuilderHandlerTestSuite) TestGetSchema() {
	s.T().Parallel()

	router := newTestRouter(&fakeQueryService{}, &fakeTemplateService{}, &fakeHealthChecker{healthy: true})
	rec := serve(router, http.MethodGet, "/query-builder/dynamic/schema", "")

	s.Require().Equal(http.StatusOK, rec.Code)

	var schema model.Schema
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&schema))
	s.Require().Equal("Dynamic Query Builder Schema", schema.Message)
	s.Require().Contains(schema.Operators, model.OpPercentGreater)
	s.Require().Contains(schema.Fields.IVFields, model.FieldCurrentCallIV)
}

type HealthHandlerTestSuite struct {
	suite.Suite
}

func TestHealthHandlerTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(HealthHandlerTestSuite))
}

func (s *HealthHandlerTestSuite) TestProbes() {
	s.T().Parallel()

	cases := []struct {
		name           string
		path           string
		healthy        bool
		expectedStatus int
	}{
		{name: "liveness ignores dependencies", path: "/health/liveness", healthy: false, expectedStatus: http.StatusOK},
		{name: "readiness with datastore up", path: "/health/readiness", healthy: true, expectedStatus: http.StatusOK},
		{name: "readiness with datastore down", path: "/health/readiness", healthy: false, expectedStatus: http.StatusServiceUnavailable},
		{name: "health report healthy", path: "/health", healthy: true, expectedStatus: http.StatusOK},
		{name: "health report unhealthy", path: "/health", healthy: false, expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			router := newTestRouter(&fakeQueryService{}, &fakeTemplateService{}, &fakeHealthChecker{healthy: tc.healthy})
			rec := serve(router, http.MethodGet, tc.path, "")

			s.Require().Equal(tc.expectedStatus, rec.Code)
			s.Require().Equal("application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"validation error", model.NewValidationError([]string{model.MsgNoGroups}), http.StatusBadRequest, "INVALID_QUERY"},
		{"wrapped template not found", fmt.Errorf("fetching: %w", &model.TemplateNotFoundError{ID: "x"}), http.StatusNotFound, "NOT_FOUND"},
		{"too many half-open probes", circuitbreaker.ErrTooManyRequests, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"query execution error", &model.QueryExecutionError{Err: errors.New("boom")}, http.StatusInternalServerError, "QUERY_EXECUTION_FAILED"},
		{"connection error", model.ErrDatabaseConnection, http.StatusInternalServerError, "QUERY_EXECUTION_FAILED"},
		{"unclassified error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, code := handlers.StatusFor(tc.err)
			require.Equal(t, tc.expectedStatus, status)
			require.Equal(t, tc.expectedCode, code)
		})
	}
}

func TestErrorResponse_Shape(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeQueryService{}, &fakeTemplateService{}, &fakeHealthChecker{healthy: true})

	req := httptest.NewRequest(http.MethodPost, "/query-builder/dynamic/execute", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	response := decodeError(t, rec)
	require.Equal(t, "INVALID_JSON", response.Code)
	require.False(t, response.Timestamp.IsZero())
}
