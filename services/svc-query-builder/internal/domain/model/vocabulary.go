package model

import "strings"

type (
	// Field names a column of the market summary table or an option strike attribute.
	Field string

	// Operator compares a field against another field, a literal or a list.
	Operator string

	// LogicalOperator joins conditions inside a group, or groups inside a query.
	LogicalOperator string

	SortOrder string

	FieldKind uint8
)

const (
	FieldKindComparable FieldKind = iota + 1
	FieldKindFilter
	FieldKindOptionStrike
)

const MarketSummaryTable = "market_summary"

// Implied volatility and price fields. All are numeric market_summary columns.
const (
	FieldCurrentCallIV        Field = "current_call_iv"
	FieldCurrentPutIV         Field = "current_put_iv"
	FieldYesterdayCloseCallIV Field = "yesterday_close_call_iv"
	FieldToday930CallIV       Field = "today_930_call_iv"
	FieldSimilarResultsAvgIV  Field = "similar_results_avg_iv"
	FieldCurrentPrice         Field = "current_price"
	FieldYesterdayClosePrice  Field = "yesterday_close_price"
	FieldAvg7DayCallIV        Field = "avg_7day_call_iv"
	FieldAvg21DayCallIV       Field = "avg_21day_call_iv"
	FieldAvg90DayCallIV       Field = "avg_90day_call_iv"
)

// Categorical fields used by filters.
const (
	FieldSymbol         Field = "symbol"
	FieldSector         Field = "sector"
	FieldInstrumentType Field = "instrument_type"
	FieldResultMonth    Field = "result_month"
	FieldIsExpiryWeek   Field = "is_expiry_week"
)

// Option strike fields. Published for clients, never compiled against market_summary.
const (
	FieldStrike     Field = "strike"
	FieldCallLTP    Field = "call_ltp"
	FieldCallVolume Field = "call_volume"
	FieldCallIV     Field = "call_iv"
	FieldCallDelta  Field = "call_delta"
	FieldCallTheta  Field = "call_theta"
	FieldCallGamma  Field = "call_gamma"
	FieldCallVega   Field = "call_vega"
	FieldPutLTP     Field = "put_ltp"
	FieldPutVolume  Field = "put_volume"
	FieldPutIV      Field = "put_iv"
	FieldPutDelta   Field = "put_delta"
	FieldPutTheta   Field = "put_theta"
	FieldPutGamma   Field = "put_gamma"
	FieldPutVega    Field = "put_vega"
	FieldIsATM      Field = "is_atm"
	FieldExpiry     Field = "expiry"
)

const (
	OpGreaterThan    Operator = "gt"
	OpLessThan       Operator = "lt"
	OpGreaterOrEqual Operator = "gte"
	OpLessOrEqual    Operator = "lte"
	OpEqual          Operator = "eq"
	OpNotEqual       Operator = "ne"
	OpPercentGreater Operator = "pct_gt"
	OpPercentLess    Operator = "pct_lt"
)

const (
	LogicalAnd LogicalOperator = "and"
	LogicalOr  LogicalOperator = "or"
)

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Output aliases of the projected columns.
const (
	AliasSymbol           = "symbol"
	AliasSector           = "sector"
	AliasInstrumentType   = "instrumentType"
	AliasCurrentCallIV    = "currentCallIv"
	AliasCurrentPutIV     = "currentPutIv"
	AliasResultMonth      = "resultMonth"
	AliasIsExpiryWeek     = "isExpiryWeek"
	AliasComparisonValue  = "comparisonValue"
	AliasDifference       = "difference"
	AliasPercentageChange = "percentageChange"
)

type Projection struct {
	Field Field
	Alias string
}

var (
	ivFields = []Field{
		FieldCurrentCallIV,
		FieldCurrentPutIV,
		FieldYesterdayCloseCallIV,
		FieldToday930CallIV,
		FieldSimilarResultsAvgIV,
		FieldCurrentPrice,
		FieldYesterdayClosePrice,
		FieldAvg7DayCallIV,
		FieldAvg21DayCallIV,
		FieldAvg90DayCallIV,
	}

	filterFields = []Field{
		FieldSymbol,
		FieldSector,
		FieldInstrumentType,
		FieldResultMonth,
		FieldIsExpiryWeek,
	}

	optionStrikeFields = []Field{
		FieldStrike,
		FieldCallLTP, FieldCallVolume, FieldCallIV, FieldCallDelta, FieldCallTheta, FieldCallGamma, FieldCallVega,
		FieldPutLTP, FieldPutVolume, FieldPutIV, FieldPutDelta, FieldPutTheta, FieldPutGamma, FieldPutVega,
		FieldIsATM,
		FieldExpiry,
	}

	operators = []Operator{
		OpGreaterThan,
		OpLessThan,
		OpGreaterOrEqual,
		OpLessOrEqual,
		OpEqual,
		OpNotEqual,
		OpPercentGreater,
		OpPercentLess,
	}

	logicalOperators = []LogicalOperator{LogicalAnd, LogicalOr}

	baseProjection = []Projection{
		{Field: FieldSymbol, Alias: AliasSymbol},
		{Field: FieldSector, Alias: AliasSector},
		{Field: FieldInstrumentType, Alias: AliasInstrumentType},
		{Field: FieldCurrentCallIV, Alias: AliasCurrentCallIV},
		{Field: FieldCurrentPutIV, Alias: AliasCurrentPutIV},
		{Field: FieldResultMonth, Alias: AliasResultMonth},
		{Field: FieldIsExpiryWeek, Alias: AliasIsExpiryWeek},
	}

	derivedAliases = []string{AliasComparisonValue, AliasDifference, AliasPercentageChange}

	fieldKinds = buildFieldKinds()
)

func buildFieldKinds() map[Field]FieldKind {
	kinds := make(map[Field]FieldKind, len(ivFields)+len(filterFields)+len(optionStrikeFields))

	for _, f := range ivFields {
		kinds[f] = FieldKindComparable
	}

	for _, f := range filterFields {
		kinds[f] = FieldKindFilter
	}

	for _, f := range optionStrikeFields {
		kinds[f] = FieldKindOptionStrike
	}

	return kinds
}

func IVFields() []Field {
	return append([]Field(nil), ivFields...)
}

func FilterFields() []Field {
	return append([]Field(nil), filterFields...)
}

func OptionStrikeFields() []Field {
	return append([]Field(nil), optionStrikeFields...)
}

func Operators() []Operator {
	return append([]Operator(nil), operators...)
}

func LogicalOperators() []LogicalOperator {
	return append([]LogicalOperator(nil), logicalOperators...)
}

func BaseProjection() []Projection {
	return append([]Projection(nil), baseProjection...)
}

func (f Field) String() string {
	return string(f)
}

func (f Field) Kind() (FieldKind, bool) {
	k, ok := fieldKinds[f]
	return k, ok
}

func (f Field) IsKnown() bool {
	_, ok := fieldKinds[f]
	return ok
}

func (f Field) IsComparable() bool {
	return fieldKinds[f] == FieldKindComparable
}

func (f Field) IsFilterable() bool {
	return fieldKinds[f] == FieldKindFilter
}

func (f Field) IsMarketSummaryColumn() bool {
	return f.IsComparable() || f.IsFilterable()
}

func (o Operator) String() string {
	return string(o)
}

func (o Operator) IsPercentage() bool {
	return o == OpPercentGreater || o == OpPercentLess
}

func (o Operator) IsFilterOperator() bool {
	return o == OpEqual || o == OpNotEqual
}

func (l LogicalOperator) String() string {
	return string(l)
}

func (o Operator) IsKnown() bool {
	for _, known := range operators {
		if o == known {
			return true
		}
	}

	return false
}

// IsComparison reports whether o is a plain field-or-value comparison.
func (o Operator) IsComparison() bool {
	return o.IsKnown() && !o.IsPercentage()
}

// Normalize lowercases the operator. An empty operator means "and".
func (l LogicalOperator) Normalize() LogicalOperator {
	if l == "" {
		return LogicalAnd
	}

	return LogicalOperator(strings.ToLower(strings.TrimSpace(string(l))))
}

func (l LogicalOperator) IsValid() bool {
	n := l.Normalize()

	return n == LogicalAnd || n == LogicalOr
}

// Normalize uppercases the order. An empty order means DESC.
func (s SortOrder) Normalize() SortOrder {
	if s == "" {
		return SortDesc
	}

	return SortOrder(strings.ToUpper(strings.TrimSpace(string(s))))
}

func (s SortOrder) IsValid() bool {
	n := s.Normalize()

	return n == SortAsc || n == SortDesc
}

// SortKeys lists every key accepted by sortBy: output aliases and market_summary columns.
func SortKeys() []string {
	keys := make([]string, 0, len(baseProjection)+len(derivedAliases)+len(ivFields)+len(filterFields))

	for _, p := range baseProjection {
		keys = append(keys, p.Alias)
	}

	keys = append(keys, derivedAliases...)

	for _, f := range ivFields {
		keys = append(keys, string(f))
	}

	for _, f := range filterFields {
		if f != FieldSymbol && f != FieldSector {
			keys = append(keys, string(f))
		}
	}

	return keys
}

// ResolveSortKey checks key against the sortable vocabulary. derived is true
// for aliases that exist only when a field-to-field comparison is projected.
func ResolveSortKey(key string) (derived bool, ok bool) {
	for _, alias := range derivedAliases {
		if key == alias {
			return true, true
		}
	}

	for _, p := range baseProjection {
		if key == p.Alias {
			return false, true
		}
	}

	return false, Field(key).IsMarketSummaryColumn()
}
