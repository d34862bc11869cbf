package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shubhamshah007/nse-query-builder/pkg/circuitbreaker"
	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/ports"
	"github.com/rs/zerolog"
)

// QueryService validates, compiles and runs queries against market_summary.
type QueryService struct {
	compiler   ports.QueryCompiler
	store      ports.RowQuerier
	logger     logger.Logger
	logQueries bool
}

func NewQueryService(compiler ports.QueryCompiler, store ports.RowQuerier, log logger.Logger, logQueries bool) *QueryService {
	return &QueryService{
		compiler:   compiler,
		store:      store,
		logger:     log.Component("query_service"),
		logQueries: logQueries,
	}
}

func (s *QueryService) Execute(ctx context.Context, query model.Query) (*model.ExecutionResponse, error) {
	if result := model.Validate(query); !result.Valid {
		return nil, model.NewValidationError(result.Errors)
	}

	statement, err := s.compiler.Compile(query)
	if err != nil {
		return nil, err
	}

	rows, elapsed, err := s.run(ctx, statement)
	if err != nil {
		return nil, err
	}

	return &model.ExecutionResponse{
		Results:       model.NewQueryResults(rows, statement.ComparisonField),
		TotalCount:    len(rows),
		ExecutionTime: elapsed.Milliseconds(),
		Query:         query,
		GeneratedSQL:  statement.SQL,
	}, nil
}

func (s *QueryService) ExecuteSimple(ctx context.Context, condition model.SimpleCondition) (*model.SimpleQueryResponse, error) {
	if err := condition.Check(); err != nil {
		return nil, err
	}

	operator, err := model.ParseSimpleOperator(string(condition.Operator))
	if err != nil {
		return nil, err
	}

	condition.Operator = operator

	statement, err := s.compiler.CompileSimple(condition)
	if err != nil {
		return nil, err
	}

	rows, elapsed, err := s.run(ctx, statement)
	if err != nil {
		return nil, err
	}

	return &model.SimpleQueryResponse{
		Results:    model.NewSimpleQueryResults(rows, condition),
		DataSource: model.DataSourceDatabase,
		Message:    model.SimpleMessage(len(rows)),
		DebugInfo: model.DebugInfo{
			QueryObject:     condition,
			SQLQuery:        statement.SQL,
			ExecutionTime:   fmt.Sprintf("%dms", elapsed.Milliseconds()),
			AppliedFilters:  condition.AppliedFilters(),
			QueryComplexity: model.ComplexitySimple,
			TablesUsed:      []string{model.MarketSummaryTable},
		},
	}, nil
}

func (s *QueryService) Validate(_ context.Context, query model.Query) model.ValidationResult {
	return model.Validate(query)
}

func (s *QueryService) Schema(_ context.Context) model.Schema {
	return model.DescribeSchema()
}

// run executes a compiled statement once and reports its wall-clock duration.
func (s *QueryService) run(ctx context.Context, statement model.Statement) ([]model.Row, time.Duration, error) {
	log := s.logger.WithContext(ctx)

	level := zerolog.DebugLevel
	if s.logQueries {
		level = zerolog.InfoLevel
	}

	log.WithLevel(level).
		Str("sql", statement.SQL).
		Interface("params", statement.Params).
		Msg("executing query")

	start := time.Now()
	rows, err := s.store.QueryRows(ctx, statement)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().
			Err(err).
			Str("sql", statement.SQL).
			Int64("duration_ms", elapsed.Milliseconds()).
			Msg("query execution failed")

		if errors.Is(err, circuitbreaker.ErrCircuitOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
			return nil, elapsed, err
		}

		return nil, elapsed, &model.QueryExecutionError{Err: err}
	}

	log.Debug().
		Int("rows", len(rows)).
		Int64("duration_ms", elapsed.Milliseconds()).
		Msg("query executed")

	return rows, elapsed, nil
}
