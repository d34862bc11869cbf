package model

import (
	"fmt"
)

const (
	MsgNoGroups                = "Query must have at least one group"
	MsgEmptyGroup              = "Each group must have at least one condition or filter"
	MsgMissingField1           = "Condition must have field1"
	MsgPercentageRequirements  = "Percentage change operations require field2 and percentageThreshold"
	MsgMissingComparisonTarget = "Condition must have field2 or value"
	MsgNegativeLimit           = "Limit must not be negative"
	MsgNegativeOffset          = "Offset must not be negative"
)

type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks the structure of a query and collects every problem found.
// Identical messages are reported once. Operator support is left to the compiler.
func Validate(query Query) ValidationResult {
	v := &validator{seen: make(map[string]struct{})}

	if len(query.Groups) == 0 {
		v.add(MsgNoGroups)
	}

	if !query.GroupLogicalOperator.IsValid() {
		v.add(fmt.Sprintf("Unknown group logical operator: %s", query.GroupLogicalOperator))
	}

	for _, group := range query.Groups {
		v.group(group)
	}

	if query.SortBy != "" {
		if _, ok := ResolveSortKey(query.SortBy); !ok {
			v.add(fmt.Sprintf("Unknown sort field: %s", query.SortBy))
		}
	}

	if !query.SortOrder.IsValid() {
		v.add(fmt.Sprintf("Unknown sort order: %s", query.SortOrder))
	}

	if query.Limit < 0 {
		v.add(MsgNegativeLimit)
	}

	if query.Offset < 0 {
		v.add(MsgNegativeOffset)
	}

	return ValidationResult{
		Valid:  len(v.errors) == 0,
		Errors: v.errors,
	}
}

type validator struct {
	errors []string
	seen   map[string]struct{}
}

func (v *validator) add(message string) {
	if _, ok := v.seen[message]; ok {
		return
	}

	v.seen[message] = struct{}{}
	v.errors = append(v.errors, message)
}

func (v *validator) group(group Group) {
	if len(group.Conditions) == 0 && len(group.Filters) == 0 {
		v.add(MsgEmptyGroup)
	}

	if !group.LogicalOperator.IsValid() {
		v.add(fmt.Sprintf("Unknown logical operator: %s", group.LogicalOperator))
	}

	for _, condition := range group.Conditions {
		v.condition(condition)
	}

	for _, filter := range group.Filters {
		v.filter(filter)
	}
}

func (v *validator) condition(condition Condition) {
	if condition.Field1 == "" {
		v.add(MsgMissingField1)
	} else if !condition.Field1.IsComparable() {
		v.add(fmt.Sprintf("Unknown condition field: %s", condition.Field1))
	}

	if condition.Field2 != "" && !condition.Field2.IsComparable() {
		v.add(fmt.Sprintf("Unknown condition field: %s", condition.Field2))
	}

	if condition.Operator.IsPercentage() {
		if condition.Field2 == "" || condition.PercentageThreshold == nil {
			v.add(MsgPercentageRequirements)
		}

		return
	}

	if !condition.HasComparisonTarget() {
		v.add(MsgMissingComparisonTarget)
	}
}

func (v *validator) filter(filter Filter) {
	if filter.Field == "" {
		v.add("Filter must have field")

		return
	}

	if !filter.Field.IsFilterable() {
		v.add(fmt.Sprintf("Unknown filter field: %s", filter.Field))
	}

	switch value := filter.Value.(type) {
	case nil:
	case []any:
		for _, item := range value {
			if !isScalar(item) {
				v.add(fmt.Sprintf("Unsupported value for filter %s", filter.Field))

				return
			}
		}
	default:
		if !isScalar(value) {
			v.add(fmt.Sprintf("Unsupported value for filter %s", filter.Field))
		}
	}
}
