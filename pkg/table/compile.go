package table

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/nutshell/internal/logging"
	"github.com/aretw0/nutshell/pkg/ast"
	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/expand"
	"github.com/aretw0/nutshell/pkg/expr"
	"github.com/aretw0/nutshell/pkg/geometry"
	"github.com/aretw0/nutshell/pkg/symmetry"
)

const (
	// DefaultStates is the state count of a section that declares none.
	DefaultStates = 2
	// MaxStates is the largest state count the simulator accepts.
	MaxStates = 256
)

// Observer receives compile statistics.
type Observer interface {
	ObserveSection(Stats)
	ObserveError(domain.Kind)
}

// Options configures Compile. The zero value is usable.
type Options struct {
	// Seed drives anonymous variable names.
	Seed uint64
	// Registry memoizes symmetry types; it may be shared between compilations.
	Registry *symmetry.Registry
	// Cache is purged at the start of every compilation.
	Cache    *symmetry.OrbitCache
	Logger   *slog.Logger
	Observer Observer
}

type entry struct {
	group *expand.TransitionGroup
	rows  [][]expr.Value
	aux   [][]expr.Value
}

type section struct {
	opts    Options
	log     *slog.Logger
	name    string
	nStates int
	nb      *geometry.Neighborhood
	sym     *symmetry.Type
	namer   *expr.Namer
	scope   *expr.Scope
	entries []entry
	errs    []error
	stats   Stats
}

// Compile compiles one section. Every failure comes back in a
// domain.AggregateError; a section-fatal one is last.
func Compile(t *ast.Table, opts Options) (*Result, error) {
	if opts.Registry == nil {
		opts.Registry = symmetry.NewRegistry()
	}
	if opts.Cache == nil {
		cache, err := symmetry.NewOrbitCache(symmetry.DefaultOrbitCacheSize)
		if err != nil {
			return nil, err
		}
		opts.Cache = cache
	}
	opts.Cache.Purge()
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}

	s := &section{
		opts:    opts,
		log:     log.With("section", t.Name),
		name:    t.Name,
		nStates: DefaultStates,
		namer:   expr.NewNamer(opts.Seed),
	}
	for _, st := range t.Statements {
		if err := s.statement(st); err != nil {
			// what was collected so far is reported ahead of the fatal error
			s.observe(err)
			errs := append(s.errs, fmt.Errorf("section %q: %w", t.Name, err))
			return nil, &domain.AggregateError{Errors: errs}
		}
	}
	if len(s.errs) > 0 {
		return nil, &domain.AggregateError{Errors: s.errs}
	}
	res, err := s.normalize()
	if err != nil {
		return nil, &domain.AggregateError{Errors: []error{fmt.Errorf("section %q: %w", t.Name, err)}}
	}
	if opts.Observer != nil {
		opts.Observer.ObserveSection(res.Stats)
	}
	return res, nil
}

// statement returns only section-fatal errors; the rest are collected.
func (s *section) statement(st ast.Statement) error {
	switch st := st.(type) {
	case *ast.Directive:
		return s.directive(st)

	case *ast.VarDecl:
		states, err := s.ensureScope().Eval(st.Value)
		if err == nil {
			_, err = s.scope.Define(st.Name, states, st.Span)
		}
		s.collect(err, st.Span)

	case *ast.Transition:
		if s.nb == nil {
			return domain.Wrap(domain.KindSyntaxInconsistency, st.Span, domain.ErrNeedsNeighborhood)
		}
		s.transition(st)
	}
	return nil
}

func (s *section) directive(d *ast.Directive) error {
	switch strings.ToLower(strings.TrimSpace(d.Name)) {
	case "n_states", "states":
		if s.scope != nil {
			return domain.Errorf(domain.KindSyntaxInconsistency, d.Span, "n_states must come before any variable or transition")
		}
		n, err := strconv.Atoi(strings.TrimSpace(d.Value))
		if err != nil || n < 1 || n > MaxStates {
			return domain.Errorf(domain.KindValueRange, d.Span, "n_states %q must be an integer in 1..%d", d.Value, MaxStates)
		}
		s.nStates = n

	case "neighborhood":
		if len(s.entries) > 0 {
			return domain.Errorf(domain.KindSyntaxInconsistency, d.Span, "the neighborhood cannot change after transitions")
		}
		nb, err := geometry.Parse(d.Value)
		if err != nil {
			return domain.Wrap(domain.KindGeometry, d.Span, err)
		}
		if s.nb != nb {
			s.sym = nil
		}
		s.nb = nb
		s.log.Debug("neighborhood", "name", nb.Name(), "size", nb.Len())

	case "symmetries":
		if s.nb == nil {
			return domain.Wrap(domain.KindSyntaxInconsistency, d.Span, domain.ErrNeedsNeighborhood)
		}
		e := d.Symmetry
		if e == nil {
			e = &ast.SymmetryExpr{Name: d.Value, Span: d.Span}
		}
		sym, err := s.opts.Registry.Declare(s.nb, e)
		if err != nil {
			return err
		}
		s.sym = sym
		s.log.Debug("symmetries", "type", sym.Name(), "order", sym.Order())

	default:
		s.collect(domain.Errorf(domain.KindSyntaxInconsistency, d.Span, "unknown directive %q", d.Name), d.Span)
	}
	return nil
}

func (s *section) ensureScope() *expr.Scope {
	if s.scope == nil {
		s.scope = expr.NewScope(s.nStates, s.namer)
	}
	return s.scope
}

func (s *section) transition(t *ast.Transition) {
	s.stats.Transitions++
	g, err := expand.Build(t, expand.Env{
		Scope:        s.ensureScope(),
		Neighborhood: s.nb,
		Symmetry:     s.sym,
		Registry:     s.opts.Registry,
	})
	if err != nil {
		s.collect(err, t.Span)
		return
	}
	rows, err := g.Expand()
	if err != nil {
		s.collect(err, t.Span)
		return
	}
	e := entry{group: g, rows: rows}
	for _, row := range rows {
		aux, err := g.AuxiliaryRows(row)
		if err != nil {
			s.collect(err, t.Span)
			return
		}
		e.aux = append(e.aux, aux...)
	}
	s.stats.Branches += len(rows)
	s.stats.Auxiliaries += len(e.aux)
	s.entries = append(s.entries, e)
}

func (s *section) collect(err error, span domain.Span) {
	if err == nil {
		return
	}
	err = domain.Wrap(domain.KindSyntaxInconsistency, span, err)
	s.log.Warn("transition rejected", "span", span.String(), "kind", domain.KindOf(err).String(), "error", err)
	s.observe(err)
	s.errs = append(s.errs, err)
}

func (s *section) observe(err error) {
	if s.opts.Observer != nil {
		s.opts.Observer.ObserveError(domain.KindOf(err))
	}
}
