package model

type baseSpec struct {
	self Specification
}

func (b *baseSpec) setSelf(s Specification) { b.self = s }

func (b *baseSpec) Must(other Specification) Specification {
	return &mustSpec{specs: []Specification{b.self, other}}
}
func (b *baseSpec) Should(other Specification) Specification {
	return &shouldSpec{specs: []Specification{b.self, other}}
}
func (b *baseSpec) IsComposite() bool         { return false }
func (b *baseSpec) Children() []Specification { return nil }

type compareSpec struct {
	baseSpec
	op    SpecOperator
	left  Operand
	right Operand
}

// Compare builds "left op right" for one of the comparison operators.
func Compare(left Operand, op SpecOperator, right Operand) Specification {
	s := &compareSpec{op: op, left: left, right: right}
	s.setSelf(s)

	return s
}

func (s *compareSpec) Operator() SpecOperator { return s.op }
func (s *compareSpec) Left() Operand          { return s.left }
func (s *compareSpec) Right() []Operand       { return []Operand{s.right} }

type inSpec struct {
	baseSpec
	op     SpecOperator
	left   Operand
	values []Operand
}

func In(left Operand, values ...any) Specification {
	return newInSpec(SpecOpIn, left, values)
}

func NotIn(left Operand, values ...any) Specification {
	return newInSpec(SpecOpNotIn, left, values)
}

func newInSpec(op SpecOperator, left Operand, values []any) Specification {
	literals := make([]Operand, 0, len(values))
	for _, v := range values {
		literals = append(literals, Lit(v))
	}

	s := &inSpec{op: op, left: left, values: literals}
	s.setSelf(s)

	return s
}

func (s *inSpec) Operator() SpecOperator { return s.op }
func (s *inSpec) Left() Operand          { return s.left }
func (s *inSpec) Right() []Operand       { return s.values }

type nullSpec struct {
	baseSpec
	op   SpecOperator
	left Operand
}

func IsNull(left Operand) Specification {
	s := &nullSpec{op: SpecOpIsNull, left: left}
	s.setSelf(s)

	return s
}

func NotNull(left Operand) Specification {
	s := &nullSpec{op: SpecOpNotNull, left: left}
	s.setSelf(s)

	return s
}

func (s *nullSpec) Operator() SpecOperator { return s.op }
func (s *nullSpec) Left() Operand          { return s.left }
func (s *nullSpec) Right() []Operand       { return nil }
