package repos

import (
	"fmt"
	"math"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Dialect decides how placeholders are written into the generated SQL.
type Dialect struct {
	Name        string
	Placeholder sq.PlaceholderFormat
	// OffsetNeedsLimit is set for engines that reject OFFSET without LIMIT.
	OffsetNeedsLimit bool
	// FractionParam is the placeholder for a bound fraction added to an
	// integer literal. Postgres would otherwise infer int4 for it.
	FractionParam string
}

var (
	DialectPostgres = Dialect{Name: DriverPostgres, Placeholder: sq.Dollar, FractionParam: "CAST(? AS DOUBLE PRECISION)"}
	DialectMySQL    = Dialect{Name: DriverMySQL, Placeholder: sq.Question, OffsetNeedsLimit: true}
)

func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case DriverPostgres, "postgresql", "pgx":
		return DialectPostgres, nil
	case DriverMySQL:
		return DialectMySQL, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// QueryCompiler turns queries into a single parameterized SELECT over market_summary.
type QueryCompiler struct {
	dialect Dialect
	logger  logger.Logger
}

func (d Dialect) fractionParam() string {
	if d.FractionParam == "" {
		return "?"
	}

	return d.FractionParam
}

func NewQueryCompiler(dialect Dialect, log logger.Logger) *QueryCompiler {
	return &QueryCompiler{
		dialect: dialect,
		logger:  log.Component("query_compiler"),
	}
}

func (c *QueryCompiler) Dialect() Dialect {
	return c.dialect
}

func (c *QueryCompiler) Compile(query model.Query) (model.Statement, error) {
	criteria, err := model.FromQuery(query)
	if err != nil {
		return model.Statement{}, err
	}

	return c.render(criteria)
}

// CompileSimple compiles the single-condition form: stocks only, fifty rows,
// ordered by the size of the move.
func (c *QueryCompiler) CompileSimple(condition model.SimpleCondition) (model.Statement, error) {
	criteria, err := model.FromSimpleCondition(condition)
	if err != nil {
		return model.Statement{}, err
	}

	return c.render(criteria)
}

func (c *QueryCompiler) render(criteria model.Criteria) (model.Statement, error) {
	builder := sq.StatementBuilder.
		PlaceholderFormat(c.dialect.Placeholder).
		Select(projectedColumns()...)

	for index, pair := range criteria.Pairs() {
		builder = builder.Columns(derivedColumns(pair, index)...)
	}

	if difference := criteria.ValueDifference(); difference != nil {
		builder = builder.Column(
			sq.Expr(fmt.Sprintf("(%s - ?) AS %s", difference.Field, model.AliasDifference), difference.Value),
		)
	}

	builder = builder.From(model.MarketSummaryTable)

	if criteria.HasSpec() {
		where, err := translateSpec(criteria.Spec(), c.dialect)
		if err != nil {
			return model.Statement{}, err
		}

		builder = builder.Where(where)
	}

	if criteria.HasSorting() {
		orderBy, err := orderByClause(criteria)
		if err != nil {
			return model.Statement{}, err
		}

		builder = builder.OrderBy(orderBy)
	}

	builder = c.applyPagination(builder, criteria)

	sql, params, err := builder.ToSql()
	if err != nil {
		return model.Statement{}, err
	}

	c.logger.Debug().
		Str("sql", sql).
		Int("params", len(params)).
		Int("pairs", len(criteria.Pairs())).
		Msg("query compiled")

	return model.Statement{
		SQL:             sql,
		Params:          params,
		ComparisonField: criteria.ComparisonField(),
	}, nil
}

func (c *QueryCompiler) applyPagination(builder sq.SelectBuilder, criteria model.Criteria) sq.SelectBuilder {
	switch {
	case criteria.HasLimit():
		builder = builder.Suffix("LIMIT ?", criteria.Limit())
	case criteria.HasOffset() && c.dialect.OffsetNeedsLimit:
		builder = builder.Suffix("LIMIT ?", uint64(math.MaxInt64))
	}

	if criteria.HasOffset() {
		builder = builder.Suffix("OFFSET ?", criteria.Offset())
	}

	return builder
}

func projectedColumns() []string {
	projection := model.BaseProjection()
	columns := make([]string, 0, len(projection))

	for _, p := range projection {
		if string(p.Field) == p.Alias {
			columns = append(columns, p.Alias)

			continue
		}

		columns = append(columns, fmt.Sprintf("%s AS %s", p.Field, p.Alias))
	}

	return columns
}

func derivedColumns(pair model.ComparisonPair, index int) []string {
	return []string{
		fmt.Sprintf("%s AS %s", pair.Field2, model.DerivedAlias(model.AliasComparisonValue, index)),
		fmt.Sprintf("(%s - %s) AS %s", pair.Field1, pair.Field2, model.DerivedAlias(model.AliasDifference, index)),
		fmt.Sprintf("%s AS %s", percentageExpr(pair), model.DerivedAlias(model.AliasPercentageChange, index)),
	}
}

// percentageExpr yields 0 instead of dividing by a zero or negative base.
func percentageExpr(pair model.ComparisonPair) string {
	return fmt.Sprintf(
		"CASE WHEN %[2]s > 0 THEN ((%[1]s - %[2]s) / %[2]s * 100) ELSE 0 END",
		pair.Field1, pair.Field2,
	)
}

func orderByClause(criteria model.Criteria) (string, error) {
	sorting := criteria.Sorting()

	direction := sorting.Direction.Normalize()
	if !direction.IsValid() {
		return "", fmt.Errorf("%w: sort order %q", model.ErrInvalidSort, sorting.Direction)
	}

	if sorting.Absolute {
		pairs := criteria.Pairs()
		if len(pairs) == 0 {
			return "", fmt.Errorf("%w: absolute sort needs a field-to-field condition", model.ErrInvalidSort)
		}

		return fmt.Sprintf("ABS(%s) %s", percentageExpr(pairs[0]), direction), nil
	}

	derived, ok := model.ResolveSortKey(sorting.Key)
	if !ok {
		return "", fmt.Errorf("%w: unknown sort key %q", model.ErrInvalidSort, sorting.Key)
	}

	if derived && len(criteria.Pairs()) == 0 {
		return "", fmt.Errorf("%w: %s is not projected", model.ErrInvalidSort, sorting.Key)
	}

	return fmt.Sprintf("%s %s", sorting.Key, direction), nil
}
