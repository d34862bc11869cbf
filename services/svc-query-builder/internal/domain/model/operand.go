package model

import "fmt"

type OperandKind uint8

const (
	// OperandIdentifier is an allow-listed column name, rendered verbatim.
	OperandIdentifier OperandKind = iota + 1
	// OperandLiteral is a value, always rendered as a bound parameter.
	OperandLiteral
	// OperandScaled renders as "<identifier> * (1 + ?)" or "<identifier> * (1 - ?)".
	OperandScaled
)

// Operand is one side of a comparison. Identifiers can only be built from
// market_summary columns, so user text never reaches the SQL as an identifier.
type Operand struct {
	kind   OperandKind
	field  Field
	value  any
	growth bool
}

// Ident builds an identifier operand for a market_summary column.
func Ident(field Field) (Operand, error) {
	if !field.IsMarketSummaryColumn() {
		return Operand{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	return Operand{kind: OperandIdentifier, field: field}, nil
}

func Lit(value any) Operand {
	return Operand{kind: OperandLiteral, value: value}
}

// Scaled multiplies an identifier by (1 + ratio) when growth is true,
// or by (1 - ratio) otherwise.
func Scaled(base Operand, growth bool, ratio float64) (Operand, error) {
	if base.kind != OperandIdentifier {
		return Operand{}, fmt.Errorf("%w: scaled operand needs a column", ErrInvalidQuery)
	}

	return Operand{kind: OperandScaled, field: base.field, value: ratio, growth: growth}, nil
}

func (o Operand) Kind() OperandKind { return o.kind }
func (o Operand) Field() Field      { return o.field }
func (o Operand) Value() any        { return o.value }
func (o Operand) Growth() bool      { return o.growth }
func (o Operand) IsValid() bool     { return o.kind != 0 }
