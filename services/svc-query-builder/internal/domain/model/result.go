package model

import (
	"strings"

	"github.com/spf13/cast"
)

const (
	notAvailable = "N/A"

	DataSourceDatabase = "REAL_DATABASE"
)

type (
	// Row is a result row keyed by lowercased column label.
	Row map[string]any

	QueryResult struct {
		Symbol           string  `json:"symbol"`
		Sector           string  `json:"sector"`
		InstrumentType   string  `json:"instrumentType"`
		CurrentCallIV    float64 `json:"currentCallIv"`
		CurrentPutIV     float64 `json:"currentPutIv"`
		ResultMonth      string  `json:"resultMonth"`
		IsExpiryWeek     bool    `json:"isExpiryWeek"`
		ComparisonField  string  `json:"comparisonField"`
		ComparisonValue  float64 `json:"comparisonValue"`
		Difference       float64 `json:"difference"`
		PercentageChange float64 `json:"percentageChange"`
	}

	ExecutionResponse struct {
		Results       []QueryResult `json:"results"`
		TotalCount    int           `json:"totalCount"`
		ExecutionTime int64         `json:"executionTime"`
		Query         Query         `json:"query"`
		GeneratedSQL  string        `json:"generatedSQL"`
	}
)

// NewRow copies columns into a Row, lowercasing labels and turning raw
// bytes into strings.
func NewRow(columns map[string]any) Row {
	row := make(Row, len(columns))

	for label, value := range columns {
		if raw, ok := value.([]byte); ok {
			value = string(raw)
		}

		row[strings.ToLower(label)] = value
	}

	return row
}

func (r Row) lookup(label string) any {
	return r[strings.ToLower(label)]
}

func (r Row) String(label string) string {
	s, err := cast.ToStringE(r.lookup(label))
	if err != nil || s == "" {
		return notAvailable
	}

	return s
}

func (r Row) Float(label string) float64 {
	f, err := cast.ToFloat64E(r.lookup(label))
	if err != nil {
		return 0
	}

	return f
}

func (r Row) Bool(label string) bool {
	b, err := cast.ToBoolE(r.lookup(label))
	if err != nil {
		return false
	}

	return b
}

// NewQueryResult maps a row to the uniform result shape. Missing strings
// become "N/A", missing numbers 0 and missing booleans false.
func NewQueryResult(row Row, comparisonField Field) QueryResult {
	field := notAvailable
	if comparisonField != "" {
		field = string(comparisonField)
	}

	return QueryResult{
		Symbol:           row.String(AliasSymbol),
		Sector:           row.String(AliasSector),
		InstrumentType:   row.String(AliasInstrumentType),
		CurrentCallIV:    row.Float(AliasCurrentCallIV),
		CurrentPutIV:     row.Float(AliasCurrentPutIV),
		ResultMonth:      row.String(AliasResultMonth),
		IsExpiryWeek:     row.Bool(AliasIsExpiryWeek),
		ComparisonField:  field,
		ComparisonValue:  row.Float(AliasComparisonValue),
		Difference:       row.Float(AliasDifference),
		PercentageChange: row.Float(AliasPercentageChange),
	}
}

func NewQueryResults(rows []Row, comparisonField Field) []QueryResult {
	results := make([]QueryResult, 0, len(rows))

	for _, row := range rows {
		results = append(results, NewQueryResult(row, comparisonField))
	}

	return results
}
