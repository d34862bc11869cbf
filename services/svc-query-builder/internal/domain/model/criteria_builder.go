package model

import (
	"fmt"
)

const simpleQueryLimit = 50

type CriteriaBuilder struct {
	specs      []Specification
	pairs      []ComparisonPair
	difference *ValueDifference
	sorting    *SortField
	limit      uint64
	offset     uint64
}

func NewCriteria() *CriteriaBuilder {
	return &CriteriaBuilder{
		specs: make([]Specification, 0),
	}
}

func (b *CriteriaBuilder) WhereSpec(spec Specification) *CriteriaBuilder {
	b.specs = append(b.specs, spec)

	return b
}

// Compare records a field-to-field pair once, preserving first-seen order.
func (b *CriteriaBuilder) Compare(pair ComparisonPair) *CriteriaBuilder {
	for _, existing := range b.pairs {
		if existing == pair {
			return b
		}
	}

	b.pairs = append(b.pairs, pair)

	return b
}

func (b *CriteriaBuilder) Differ(field Field, value float64) *CriteriaBuilder {
	b.difference = &ValueDifference{Field: field, Value: value}

	return b
}

func (b *CriteriaBuilder) OrderBy(sort SortField) *CriteriaBuilder {
	b.sorting = &sort

	return b
}

func (b *CriteriaBuilder) Paginate(limit, offset uint64) *CriteriaBuilder {
	b.limit = limit
	b.offset = offset

	return b
}

func (b *CriteriaBuilder) Build() (Criteria, error) {
	var rootSpec Specification

	if len(b.specs) == 1 {
		rootSpec = b.specs[0]
	} else if len(b.specs) > 1 {
		rootSpec = Must(b.specs...)
	}

	if b.sorting != nil && b.sorting.Derived && len(b.pairs) == 0 {
		return Criteria{}, fmt.Errorf(
			"%w: %s needs a field-to-field condition", ErrInvalidSort, b.sorting.Key,
		)
	}

	return Criteria{
		spec:       rootSpec,
		pairs:      b.pairs,
		difference: b.difference,
		sorting:    b.sorting,
		limit:      b.limit,
		offset:     b.offset,
	}, nil
}

// FromQuery turns a query into criteria. Groups are parenthesized and joined
// with the group operator; members of a group are joined with its own operator.
func FromQuery(query Query) (Criteria, error) {
	builder := NewCriteria()
	groups := make([]Specification, 0, len(query.Groups))

	if !query.GroupLogicalOperator.IsValid() {
		return Criteria{}, fmt.Errorf("%w: logical operator %q", ErrInvalidQuery, query.GroupLogicalOperator)
	}

	for _, group := range query.Groups {
		if !group.LogicalOperator.IsValid() {
			return Criteria{}, fmt.Errorf("%w: logical operator %q", ErrInvalidQuery, group.LogicalOperator)
		}

		members := make([]Specification, 0, len(group.Conditions)+len(group.Filters))

		for _, condition := range group.Conditions {
			spec, pair, err := conditionSpec(condition)
			if err != nil {
				return Criteria{}, err
			}

			if pair != nil {
				builder.Compare(*pair)
			}

			members = append(members, spec)
		}

		for _, filter := range group.Filters {
			spec, err := filterSpec(filter)
			if err != nil {
				return Criteria{}, err
			}

			members = append(members, spec)
		}

		if len(members) == 0 {
			continue
		}

		groups = append(groups, Grouped(Junction(group.LogicalOperator, members...)))
	}

	if len(groups) > 0 {
		builder.WhereSpec(Junction(query.GroupLogicalOperator, groups...))
	}

	if query.SortBy != "" {
		derived, ok := ResolveSortKey(query.SortBy)
		if !ok {
			return Criteria{}, fmt.Errorf("%w: unknown sort key %q", ErrInvalidSort, query.SortBy)
		}

		if !query.SortOrder.IsValid() {
			return Criteria{}, fmt.Errorf("%w: sort order %q", ErrInvalidSort, query.SortOrder)
		}

		builder.OrderBy(SortField{
			Key:       query.SortBy,
			Direction: query.SortOrder.Normalize(),
			Derived:   derived,
		})
	}

	if query.Limit < 0 || query.Offset < 0 {
		return Criteria{}, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidQuery)
	}

	builder.Paginate(uint64(query.Limit), uint64(query.Offset))

	return builder.Build()
}

// FromSimpleCondition builds the fixed-shape criteria behind the single
// condition endpoint: stocks only, at most fifty rows.
func FromSimpleCondition(condition SimpleCondition) (Criteria, error) {
	if !condition.Operator.IsComparison() {
		return Criteria{}, fmt.Errorf("%w: %s", ErrUnsupportedOperator, condition.Operator)
	}

	builder := NewCriteria()

	spec, pair, err := conditionSpec(Condition{
		Field1:   condition.Field1,
		Operator: condition.Operator,
		Field2:   condition.Field2,
		Value:    condition.Value,
	})
	if err != nil {
		return Criteria{}, err
	}

	instrumentType, err := Ident(FieldInstrumentType)
	if err != nil {
		return Criteria{}, err
	}

	builder.WhereSpec(spec)
	builder.WhereSpec(Compare(instrumentType, SpecOpEq, Lit(string(InstrumentTypeStock))))

	if pair != nil {
		builder.Compare(*pair)
		builder.OrderBy(SortField{Key: AliasPercentageChange, Direction: SortDesc, Derived: true, Absolute: true})
	} else {
		builder.Differ(condition.Field1, *condition.Value)
		builder.OrderBy(SortField{Key: string(condition.Field1), Direction: SortDesc})
	}

	builder.Paginate(simpleQueryLimit, 0)

	return builder.Build()
}

func conditionSpec(condition Condition) (Specification, *ComparisonPair, error) {
	if !condition.Operator.IsKnown() {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedOperator, condition.Operator)
	}

	if !condition.Field1.IsComparable() {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownField, condition.Field1)
	}

	left, err := Ident(condition.Field1)
	if err != nil {
		return nil, nil, err
	}

	if condition.Operator.IsPercentage() {
		return percentageSpec(left, condition)
	}

	op := comparisonSpecOps[condition.Operator]

	switch {
	case condition.Field2 != "":
		right, err := comparableIdent(condition.Field2)
		if err != nil {
			return nil, nil, err
		}

		pair := ComparisonPair{Field1: condition.Field1, Field2: condition.Field2}

		return Compare(left, op, right), &pair, nil

	case condition.Value != nil:
		return Compare(left, op, Lit(*condition.Value)), nil, nil

	default:
		return nil, nil, fmt.Errorf("%w: condition on %s needs field2 or value", ErrInvalidQuery, condition.Field1)
	}
}

// percentageSpec renders pct_gt as "f1 > f2 * (1 + t)" and pct_lt as
// "f1 < f2 * (1 - t)", with t the threshold divided by one hundred.
func percentageSpec(left Operand, condition Condition) (Specification, *ComparisonPair, error) {
	if condition.Field2 == "" || condition.PercentageThreshold == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidQuery, MsgPercentageRequirements)
	}

	base, err := comparableIdent(condition.Field2)
	if err != nil {
		return nil, nil, err
	}

	growth := condition.Operator == OpPercentGreater
	ratio := *condition.PercentageThreshold / 100

	right, err := Scaled(base, growth, ratio)
	if err != nil {
		return nil, nil, err
	}

	op := SpecOpLt
	if growth {
		op = SpecOpGt
	}

	pair := ComparisonPair{Field1: condition.Field1, Field2: condition.Field2}

	return Compare(left, op, right), &pair, nil
}

func comparableIdent(field Field) (Operand, error) {
	if !field.IsComparable() {
		return Operand{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	return Ident(field)
}

func filterSpec(filter Filter) (Specification, error) {
	if !filter.Operator.IsFilterOperator() {
		return nil, fmt.Errorf("%w: %s on filter %s", ErrUnsupportedOperator, filter.Operator, filter.Field)
	}

	if !filter.Field.IsFilterable() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, filter.Field)
	}

	column, err := Ident(filter.Field)
	if err != nil {
		return nil, err
	}

	negate := filter.Operator == OpNotEqual

	switch value := filter.Value.(type) {
	case nil:
		if negate {
			return NotNull(column), nil
		}

		return IsNull(column), nil

	case []any:
		if len(value) == 0 {
			return nil, fmt.Errorf("%w: empty list for %s", ErrInvalidFilterValue, filter.Field)
		}

		for _, item := range value {
			if !isScalar(item) {
				return nil, fmt.Errorf("%w: %v for %s", ErrInvalidFilterValue, item, filter.Field)
			}
		}

		if negate {
			return NotIn(column, value...), nil
		}

		return In(column, value...), nil

	default:
		if !isScalar(value) {
			return nil, fmt.Errorf("%w: %v for %s", ErrInvalidFilterValue, value, filter.Field)
		}

		if negate {
			return Compare(column, SpecOpNotEq, Lit(value)), nil
		}

		return Compare(column, SpecOpEq, Lit(value)), nil
	}
}

func isScalar(value any) bool {
	switch value.(type) {
	case string, bool, float64, float32, int, int32, int64:
		return true
	default:
		return false
	}
}
