package model

import (
	"fmt"
	"strings"
)

const (
	ComplexitySimple = "Simple"

	simpleMessageFound = "Found %d matching records from database."
	simpleMessageNone  = "No matching records found."
)

type (
	// SimpleCondition is the single comparison accepted by the quick query endpoint.
	SimpleCondition struct {
		Field1   Field    `json:"field1"`
		Operator Operator `json:"operator"`
		Field2   Field    `json:"field2,omitempty"`
		Value    *float64 `json:"value,omitempty"`
	}

	AppliedFilter struct {
		Field    string `json:"field"`
		Operator string `json:"operator"`
		Value    any    `json:"value"`
	}

	DebugInfo struct {
		QueryObject     any             `json:"queryObject"`
		SQLQuery        string          `json:"sqlQuery"`
		ExecutionTime   string          `json:"executionTime"`
		AppliedFilters  []AppliedFilter `json:"appliedFilters"`
		QueryComplexity string          `json:"queryComplexity"`
		TablesUsed      []string        `json:"tablesUsed"`
	}

	SimpleQueryResponse struct {
		Results    []QueryResult `json:"results"`
		DataSource string        `json:"dataSource"`
		Message    string        `json:"message"`
		DebugInfo  DebugInfo     `json:"debugInfo"`
	}
)

var simpleOperatorAliases = map[string]Operator{
	"GREATER_THAN":          OpGreaterThan,
	"LESS_THAN":             OpLessThan,
	"GREATER_THAN_OR_EQUAL": OpGreaterOrEqual,
	"LESS_THAN_OR_EQUAL":    OpLessOrEqual,
	"EQUALS":                OpEqual,
	"EQUAL":                 OpEqual,
	"NOT_EQUALS":            OpNotEqual,
	"NOT_EQUAL":             OpNotEqual,
}

// ParseSimpleOperator accepts both the short operator ids and the long
// upper-case names used by older clients.
func ParseSimpleOperator(raw string) (Operator, error) {
	if op, ok := simpleOperatorAliases[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return op, nil
	}

	op := Operator(strings.ToLower(strings.TrimSpace(raw)))
	if op.IsComparison() {
		return op, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedOperator, raw)
}

func (c SimpleCondition) Check() error {
	if c.Field1 == "" {
		return fmt.Errorf("%w: %s", ErrInvalidQuery, MsgMissingField1)
	}

	if c.Field2 == "" && c.Value == nil {
		return fmt.Errorf("%w: %s", ErrInvalidQuery, MsgMissingComparisonTarget)
	}

	return nil
}

// AppliedFilters describes the condition and the implicit stock filter.
func (c SimpleCondition) AppliedFilters() []AppliedFilter {
	var target any = c.Field2
	if c.Field2 == "" && c.Value != nil {
		target = *c.Value
	}

	return []AppliedFilter{
		{Field: string(c.Field1), Operator: string(c.Operator), Value: target},
		{Field: string(FieldInstrumentType), Operator: string(OpEqual), Value: string(InstrumentTypeStock)},
	}
}

// NewSimpleQueryResults maps rows for the quick query endpoint. Field-to-value
// comparisons report the literal as the comparison value.
func NewSimpleQueryResults(rows []Row, condition SimpleCondition) []QueryResult {
	results := NewQueryResults(rows, condition.Field2)

	if condition.Field2 == "" && condition.Value != nil {
		for index := range results {
			results[index].ComparisonValue = *condition.Value
			results[index].PercentageChange = 0
		}
	}

	return results
}

func SimpleMessage(count int) string {
	if count == 0 {
		return simpleMessageNone
	}

	return fmt.Sprintf(simpleMessageFound, count)
}
