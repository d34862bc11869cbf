package repos

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
)

var comparisonSymbols = map[model.SpecOperator]string{
	model.SpecOpEq:    "=",
	model.SpecOpNotEq: "<>",
	model.SpecOpGt:    ">",
	model.SpecOpGte:   ">=",
	model.SpecOpLt:    "<",
	model.SpecOpLte:   "<=",
}

// junction joins its parts with a keyword. Unlike sq.And and sq.Or it adds no
// parentheses of its own; grouping is explicit in the specification tree.
type junction struct {
	keyword string
	parts   []sq.Sqlizer
}

func (j junction) ToSql() (string, []any, error) {
	fragments := make([]string, 0, len(j.parts))
	args := make([]any, 0)

	for _, part := range j.parts {
		sql, partArgs, err := part.ToSql()
		if err != nil {
			return "", nil, err
		}

		fragments = append(fragments, sql)
		args = append(args, partArgs...)
	}

	return strings.Join(fragments, " "+j.keyword+" "), args, nil
}

type parenthesized struct {
	inner sq.Sqlizer
}

func (p parenthesized) ToSql() (string, []any, error) {
	sql, args, err := p.inner.ToSql()
	if err != nil {
		return "", nil, err
	}

	return "(" + sql + ")", args, nil
}

// translateSpec renders a specification tree. Identifiers come only from
// operands built by model.Ident, every literal becomes a placeholder.
func translateSpec(spec model.Specification, dialect Dialect) (sq.Sqlizer, error) {
	switch spec.Operator() {
	case model.SpecOpEq, model.SpecOpNotEq, model.SpecOpGt, model.SpecOpGte, model.SpecOpLt, model.SpecOpLte:
		return translateComparison(spec, dialect)

	case model.SpecOpIn, model.SpecOpNotIn:
		column, err := identifier(spec.Left())
		if err != nil {
			return nil, err
		}

		values := make([]any, 0, len(spec.Right()))
		for _, operand := range spec.Right() {
			values = append(values, operand.Value())
		}

		if spec.Operator() == model.SpecOpNotIn {
			return sq.NotEq{column: values}, nil
		}

		return sq.Eq{column: values}, nil

	case model.SpecOpIsNull:
		column, err := identifier(spec.Left())
		if err != nil {
			return nil, err
		}

		return sq.Eq{column: nil}, nil

	case model.SpecOpNotNull:
		column, err := identifier(spec.Left())
		if err != nil {
			return nil, err
		}

		return sq.NotEq{column: nil}, nil

	case model.SpecOpMust:
		return translateChildren("AND", spec.Children(), dialect)

	case model.SpecOpShould:
		return translateChildren("OR", spec.Children(), dialect)

	case model.SpecOpGroup:
		children := spec.Children()
		if len(children) != 1 {
			return nil, fmt.Errorf("%w: group must wrap exactly one expression", model.ErrInvalidQuery)
		}

		inner, err := translateSpec(children[0], dialect)
		if err != nil {
			return nil, err
		}

		return parenthesized{inner: inner}, nil
	}

	return nil, fmt.Errorf("%w: %s", model.ErrUnsupportedOperator, spec.Operator())
}

func translateChildren(keyword string, children []model.Specification, dialect Dialect) (sq.Sqlizer, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: empty %s expression", model.ErrInvalidQuery, strings.ToLower(keyword))
	}

	parts := make([]sq.Sqlizer, 0, len(children))

	for _, child := range children {
		part, err := translateSpec(child, dialect)
		if err != nil {
			return nil, err
		}

		parts = append(parts, part)
	}

	return junction{keyword: keyword, parts: parts}, nil
}

func translateComparison(spec model.Specification, dialect Dialect) (sq.Sqlizer, error) {
	left, err := identifier(spec.Left())
	if err != nil {
		return nil, err
	}

	symbol := comparisonSymbols[spec.Operator()]
	right := spec.Right()[0]

	switch right.Kind() {
	case model.OperandIdentifier:
		column, err := identifier(right)
		if err != nil {
			return nil, err
		}

		return sq.Expr(fmt.Sprintf("%s %s %s", left, symbol, column)), nil

	case model.OperandScaled:
		column, err := identifier(right)
		if err != nil {
			return nil, err
		}

		sign := "-"
		if right.Growth() {
			sign = "+"
		}

		return sq.Expr(
			fmt.Sprintf("%s %s %s * (1 %s %s)", left, symbol, column, sign, dialect.fractionParam()),
			right.Value(),
		), nil

	case model.OperandLiteral:
		return sq.Expr(fmt.Sprintf("%s %s ?", left, symbol), right.Value()), nil
	}

	return nil, fmt.Errorf("%w: comparison without a right operand", model.ErrInvalidQuery)
}

// identifier re-checks the allow-list before a column name reaches the SQL text.
func identifier(operand model.Operand) (string, error) {
	if operand.Kind() != model.OperandIdentifier && operand.Kind() != model.OperandScaled {
		return "", fmt.Errorf("%w: expected a column operand", model.ErrInvalidQuery)
	}

	if !operand.Field().IsMarketSummaryColumn() {
		return "", fmt.Errorf("%w: %s", model.ErrUnknownField, operand.Field())
	}

	return string(operand.Field()), nil
}
