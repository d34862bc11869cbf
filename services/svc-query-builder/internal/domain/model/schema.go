package model

type (
	SchemaFields struct {
		IVFields           []Field `json:"ivFields"`
		FilterFields       []Field `json:"filterFields"`
		OptionStrikeFields []Field `json:"optionStrikeFields"`
	}

	Schema struct {
		Message          string            `json:"message"`
		Fields           SchemaFields      `json:"fields"`
		Operators        []Operator        `json:"operators"`
		LogicalOperators []LogicalOperator `json:"logicalOperators"`
		SortFields       []string          `json:"sortFields"`
		ExampleQuery     Query             `json:"exampleQuery"`
	}
)

// DescribeSchema lists the vocabulary clients use to build queries.
func DescribeSchema() Schema {
	return Schema{
		Message: "Dynamic Query Builder Schema",
		Fields: SchemaFields{
			IVFields:           IVFields(),
			FilterFields:       FilterFields(),
			OptionStrikeFields: OptionStrikeFields(),
		},
		Operators:        Operators(),
		LogicalOperators: LogicalOperators(),
		SortFields:       SortKeys(),
		ExampleQuery: Query{
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
	}
}
