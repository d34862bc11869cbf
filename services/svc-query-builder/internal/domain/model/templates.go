package model

import (
	"fmt"
	"strings"
)

type TemplateCategory string

const (
	CategoryVolatility TemplateCategory = "volatility"
	CategoryComparison TemplateCategory = "comparison"
	CategorySector     TemplateCategory = "sector"
	CategoryTemporal   TemplateCategory = "temporal"
	CategoryCustom     TemplateCategory = "custom"
)

type Template struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    TemplateCategory `json:"category"`
	Query       Query            `json:"query"`
	Tags        []string         `json:"tags"`
}

func (c TemplateCategory) IsValid() bool {
	switch c {
	case CategoryVolatility, CategoryComparison, CategorySector, CategoryTemporal, CategoryCustom:
		return true
	default:
		return false
	}
}

// Check reports why a template cannot be stored, or nil.
func (t Template) Check() error {
	problems := make([]string, 0)

	if strings.TrimSpace(t.Name) == "" {
		problems = append(problems, "Template must have a name")
	}

	if !t.Category.IsValid() {
		problems = append(problems, fmt.Sprintf("Unknown template category: %s", t.Category))
	}

	if result := Validate(t.Query); !result.Valid {
		problems = append(problems, result.Errors...)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTemplate, strings.Join(problems, ", "))
	}

	return nil
}

// BuiltinTemplates returns fresh copies of the predefined templates.
func BuiltinTemplates() []Template {
	return []Template{
		{
			ID:          "high_iv_vs_3months",
			Name:        "High IV vs 3 Months",
			Description: "Stocks with current IV significantly higher than 3-month average",
			Category:    CategoryVolatility,
			Query: Query{
				Groups: []Group{
					{
						Conditions: []Condition{
							{
								Field1:              FieldCurrentCallIV,
								Operator:            OpPercentGreater,
								Field2:              FieldSimilarResultsAvgIV,
								PercentageThreshold: Float(20),
							},
						},
						Filters: []Filter{
							{Field: FieldIsExpiryWeek, Operator: OpEqual, Value: false},
							{Field: FieldInstrumentType, Operator: OpEqual, Value: string(InstrumentTypeStock)},
						},
						LogicalOperator: LogicalAnd,
					},
				},
				GroupLogicalOperator: LogicalAnd,
				SortBy:               AliasPercentageChange,
				SortOrder:            SortDesc,
				Limit:                50,
			},
			Tags: []string{"high-iv", "3-months", "volatility-expansion"},
		},
		{
			ID:          "intraday_iv_spike",
			Name:        "Intraday IV Spike",
			Description: "Stocks with significant IV increase since 9:30 AM",
			Category:    CategoryTemporal,
			Query: Query{
				Groups: []Group{
					{
						Conditions: []Condition{
							{
								Field1:              FieldCurrentCallIV,
								Operator:            OpPercentGreater,
								Field2:              FieldToday930CallIV,
								PercentageThreshold: Float(15),
							},
						},
						Filters: []Filter{
							{Field: FieldInstrumentType, Operator: OpEqual, Value: string(InstrumentTypeStock)},
						},
						LogicalOperator: LogicalAnd,
					},
				},
				GroupLogicalOperator: LogicalAnd,
				SortBy:               AliasPercentageChange,
				SortOrder:            SortDesc,
				Limit:                30,
			},
			Tags: []string{"intraday", "spike", "real-time"},
		},
		{
			ID:          "sector_iv_comparison",
			Name:        "Banking Sector High IV",
			Description: "Banking sector stocks with elevated IV",
			Category:    CategorySector,
			Query: Query{
				Groups: []Group{
					{
						Conditions: []Condition{
							{
								Field1:   FieldCurrentCallIV,
								Operator: OpGreaterThan,
								Field2:   FieldSimilarResultsAvgIV,
							},
						},
						Filters: []Filter{
							{Field: FieldSector, Operator: OpEqual, Value: "Banking"},
							{Field: FieldInstrumentType, Operator: OpEqual, Value: string(InstrumentTypeStock)},
						},
						LogicalOperator: LogicalAnd,
					},
				},
				GroupLogicalOperator: LogicalAnd,
				SortBy:               AliasCurrentCallIV,
				SortOrder:            SortDesc,
			},
			Tags: []string{"banking", "sector", "high-iv"},
		},
	}
}

func IsBuiltinTemplate(id string) bool {
	for _, t := range BuiltinTemplates() {
		if t.ID == id {
			return true
		}
	}

	return false
}
