package expr

import (
	"github.com/aretw0/nutshell/pkg/domain"
)

// Built-in variable names.
const (
	Any  = "any"
	Live = "live"
)

// Var is a named state list.
type Var struct {
	Name      string
	States    StateList
	Anonymous bool
	Span      domain.Span
}

// Scope is the symbol table of one section.
type Scope struct {
	nStates int
	vars    map[string]*Var
	order   []*Var
	anon    map[string]*Var
	namer   *Namer
}

// NewScope creates a scope for states 0..nStates-1 holding the built-ins.
func NewScope(nStates int, namer *Namer) *Scope {
	s := &Scope{
		nStates: nStates,
		vars:    make(map[string]*Var),
		anon:    make(map[string]*Var),
		namer:   namer,
	}
	all := make(StateList, nStates)
	for i := range all {
		all[i] = i
	}
	s.add(&Var{Name: Any, States: all})
	s.add(&Var{Name: Live, States: all[min(1, len(all)):]})
	return s
}

func (s *Scope) add(v *Var) {
	s.vars[v.Name] = v
	s.order = append(s.order, v)
	s.namer.Reserve(v.Name)
}

// NStates is the number of valid states.
func (s *Scope) NStates() int { return s.nStates }

// AnyStates returns every state.
func (s *Scope) AnyStates() StateList { return s.vars[Any].States }

// LiveStates returns every nonzero state.
func (s *Scope) LiveStates() StateList { return s.vars[Live].States }

// Define declares a named variable.
func (s *Scope) Define(name string, states StateList, span domain.Span) (*Var, error) {
	if _, ok := s.vars[name]; ok {
		return nil, domain.Errorf(domain.KindSyntaxInconsistency, span, "variable %q is already declared", name)
	}
	if s.namer.Taken(name) {
		return nil, domain.Errorf(domain.KindSyntaxInconsistency, span, "variable %q collides with a generated name", name)
	}
	if len(states) == 0 {
		return nil, domain.Errorf(domain.KindValueRange, span, "variable %q is empty", name)
	}
	v := &Var{Name: name, States: states, Span: span}
	s.add(v)
	return v, nil
}

// Lookup finds a declared or built-in variable.
func (s *Scope) Lookup(name string) (*Var, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Anonymous returns the generated variable holding states, creating it on
// first use. Equal contents share one variable.
func (s *Scope) Anonymous(states StateList) *Var {
	key := states.Key()
	if v, ok := s.anon[key]; ok {
		return v
	}
	v := &Var{Name: s.namer.Next(), States: states, Anonymous: true}
	s.anon[key] = v
	s.order = append(s.order, v)
	return v
}

// Vars returns every variable in declaration order.
func (s *Scope) Vars() []*Var {
	return s.order
}
