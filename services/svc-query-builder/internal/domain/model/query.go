package model

type (
	// Condition compares Field1 against Field2 or against Value.
	// Percentage operators require Field2 and PercentageThreshold (in percent).
	Condition struct {
		Field1              Field    `json:"field1"`
		Operator            Operator `json:"operator"`
		Field2              Field    `json:"field2,omitempty"`
		Value               *float64 `json:"value,omitempty"`
		PercentageThreshold *float64 `json:"percentageThreshold,omitempty"`
	}

	// Filter restricts a categorical field. Value is a scalar or a list of scalars; null is allowed.
	Filter struct {
		Field    Field    `json:"field"`
		Operator Operator `json:"operator"`
		Value    any      `json:"value"`
	}

	Group struct {
		Conditions      []Condition     `json:"conditions"`
		Filters         []Filter        `json:"filters,omitempty"`
		LogicalOperator LogicalOperator `json:"logicalOperator"`
	}

	Query struct {
		Groups               []Group         `json:"groups"`
		GroupLogicalOperator LogicalOperator `json:"groupLogicalOperator"`
		SortBy               string          `json:"sortBy,omitempty"`
		SortOrder            SortOrder       `json:"sortOrder,omitempty"`
		Limit                int             `json:"limit,omitempty"`
		Offset               int             `json:"offset,omitempty"`
	}

	// Statement is a compiled, parameterized SQL statement.
	Statement struct {
		SQL    string
		Params []any
		// ComparisonField is Field2 of the first field-to-field comparison, if any.
		ComparisonField Field
	}
)

// HasComparisonTarget reports whether the condition names a right-hand side.
func (c Condition) HasComparisonTarget() bool {
	return c.Field2 != "" || c.Value != nil
}

func Float(v float64) *float64 {
	return &v
}
