package model

import "strconv"

type (
	// ComparisonPair is a field-to-field comparison that gets derived columns.
	ComparisonPair struct {
		Field1 Field
		Field2 Field
	}

	// ValueDifference projects "field - value" for a field-to-value comparison.
	ValueDifference struct {
		Field Field
		Value float64
	}

	SortField struct {
		// Key is a projected alias or a market_summary column.
		Key       string
		Direction SortOrder
		Derived   bool
		// Absolute sorts by the magnitude of the first percentage change.
		Absolute bool
	}

	// Criteria is the compiled form of a query: a WHERE tree plus everything
	// needed to build the projection, ordering and paging.
	Criteria struct {
		spec       Specification
		pairs      []ComparisonPair
		difference *ValueDifference
		sorting    *SortField
		limit      uint64
		offset     uint64
	}
)

func (c Criteria) Spec() Specification               { return c.spec }
func (c Criteria) Pairs() []ComparisonPair           { return c.pairs }
func (c Criteria) ValueDifference() *ValueDifference { return c.difference }
func (c Criteria) Sorting() *SortField               { return c.sorting }
func (c Criteria) Limit() uint64                     { return c.limit }
func (c Criteria) Offset() uint64                    { return c.offset }
func (c Criteria) HasSpec() bool                     { return c.spec != nil }
func (c Criteria) HasSorting() bool                  { return c.sorting != nil }
func (c Criteria) HasLimit() bool                    { return c.limit > 0 }
func (c Criteria) HasOffset() bool                   { return c.offset > 0 }

// ComparisonField is Field2 of the first comparison pair, or empty.
func (c Criteria) ComparisonField() Field {
	if len(c.pairs) == 0 {
		return ""
	}

	return c.pairs[0].Field2
}

// DerivedAlias returns the alias for a derived column of the pair at index.
// The first pair gets the plain alias, later pairs a numeric suffix.
func DerivedAlias(alias string, index int) string {
	if index == 0 {
		return alias
	}

	return alias + strconv.Itoa(index+1)
}
