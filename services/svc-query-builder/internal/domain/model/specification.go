package model

type SpecOperator string

const (
	SpecOpEq      SpecOperator = "eq"
	SpecOpNotEq   SpecOperator = "neq"
	SpecOpGt      SpecOperator = "gt"
	SpecOpGte     SpecOperator = "gte"
	SpecOpLt      SpecOperator = "lt"
	SpecOpLte     SpecOperator = "lte"
	SpecOpIn      SpecOperator = "in"
	SpecOpNotIn   SpecOperator = "not_in"
	SpecOpIsNull  SpecOperator = "is_null"
	SpecOpNotNull SpecOperator = "not_null"
	SpecOpMust    SpecOperator = "must"
	SpecOpShould  SpecOperator = "should"
	SpecOpGroup   SpecOperator = "group"
)

// Specification is a node of the WHERE expression tree. Leaves compare
// operands, composites join children with AND (must) or OR (should),
// and groups parenthesize a single child.
type Specification interface {
	Must(other Specification) Specification
	Should(other Specification) Specification
	IsComposite() bool
	Children() []Specification
	Operator() SpecOperator
	Left() Operand
	Right() []Operand
}

var comparisonSpecOps = map[Operator]SpecOperator{
	OpGreaterThan:    SpecOpGt,
	OpLessThan:       SpecOpLt,
	OpGreaterOrEqual: SpecOpGte,
	OpLessOrEqual:    SpecOpLte,
	OpEqual:          SpecOpEq,
	OpNotEqual:       SpecOpNotEq,
}
