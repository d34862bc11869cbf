package model

type mustSpec struct {
	specs []Specification
}

func Must(specs ...Specification) Specification {
	return &mustSpec{specs: specs}
}

func (s *mustSpec) Must(other Specification) Specification {
	return &mustSpec{specs: append(append([]Specification(nil), s.specs...), other)}
}

func (s *mustSpec) Should(other Specification) Specification {
	return &shouldSpec{specs: []Specification{s, other}}
}

func (s *mustSpec) IsComposite() bool         { return true }
func (s *mustSpec) Children() []Specification { return s.specs }
func (s *mustSpec) Operator() SpecOperator    { return SpecOpMust }
func (s *mustSpec) Left() Operand             { return Operand{} }
func (s *mustSpec) Right() []Operand          { return nil }

type shouldSpec struct {
	specs []Specification
}

func Should(specs ...Specification) Specification {
	return &shouldSpec{specs: specs}
}

func (s *shouldSpec) Must(other Specification) Specification {
	return &mustSpec{specs: []Specification{s, other}}
}

func (s *shouldSpec) Should(other Specification) Specification {
	return &shouldSpec{specs: append(append([]Specification(nil), s.specs...), other)}
}

func (s *shouldSpec) IsComposite() bool         { return true }
func (s *shouldSpec) Children() []Specification { return s.specs }
func (s *shouldSpec) Operator() SpecOperator    { return SpecOpShould }
func (s *shouldSpec) Left() Operand             { return Operand{} }
func (s *shouldSpec) Right() []Operand          { return nil }

// groupSpec renders its child inside parentheses.
type groupSpec struct {
	spec Specification
}

func Grouped(spec Specification) Specification {
	return &groupSpec{spec: spec}
}

func (s *groupSpec) Must(other Specification) Specification {
	return &mustSpec{specs: []Specification{s, other}}
}

func (s *groupSpec) Should(other Specification) Specification {
	return &shouldSpec{specs: []Specification{s, other}}
}

func (s *groupSpec) IsComposite() bool         { return true }
func (s *groupSpec) Children() []Specification { return []Specification{s.spec} }
func (s *groupSpec) Operator() SpecOperator    { return SpecOpGroup }
func (s *groupSpec) Left() Operand             { return Operand{} }
func (s *groupSpec) Right() []Operand          { return nil }

// Junction joins specs with the keyword named by op.
func Junction(op LogicalOperator, specs ...Specification) Specification {
	if op.Normalize() == LogicalOr {
		return Should(specs...)
	}

	return Must(specs...)
}
