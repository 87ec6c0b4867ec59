package table

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/expr"
	"github.com/aretw0/nutshell/pkg/geometry"
	"github.com/aretw0/nutshell/pkg/symmetry"
)

func (s *section) normalize() (*Result, error) {
	nb := s.nb
	if nb == nil {
		var err error
		if nb, err = geometry.Named(geometry.Moore); err != nil {
			return nil, err
		}
	}
	m, err := s.minimal(nb)
	if err != nil {
		return nil, err
	}
	s.log.Debug("minimal symmetry", "type", m.Name(), "declared", len(s.entries))

	copies := make(map[*expr.Var]int)
	index := make(map[string]int)
	var lines []Line
	for _, e := range s.entries {
		rows := slices.Concat(
			e.group.Reduce(e.rows, m, s.opts.Cache),
			e.group.Reduce(e.aux, m, s.opts.Cache),
		)
		for _, row := range rows {
			text := render(row, copies)
			if i, ok := index[text]; ok {
				s.stats.Duplicates++
				if !slices.Contains(lines[i].Spans, e.group.Span) {
					lines[i].Spans = append(lines[i].Spans, e.group.Span)
				}
				continue
			}
			index[text] = len(lines)
			lines = append(lines, Line{Text: text, Spans: []domain.Span{e.group.Span}})
		}
	}

	s.stats.Lines = len(lines)
	s.stats.Cache = s.opts.Cache.Stats()
	res := &Result{
		Name:         s.name,
		NStates:      s.nStates,
		Neighborhood: nb,
		Symmetry:     m,
		Vars:         declarations(s.ensureScope(), copies),
		Lines:        lines,
		Stats:        s.stats,
	}
	s.log.Debug("section compiled",
		"neighborhood", nb.Name(),
		"symmetries", m.Name(),
		"lines", len(lines),
		"duplicates", s.stats.Duplicates,
	)
	return res, nil
}

// minimal picks the type every transition is emitted under. A section
// without transitions keeps its declared type.
func (s *section) minimal(nb *geometry.Neighborhood) (*symmetry.Type, error) {
	types := make([]*symmetry.Type, 0, len(s.entries))
	for _, e := range s.entries {
		types = append(types, e.group.Symmetry)
	}
	if len(types) == 0 && s.sym != nil {
		types = append(types, s.sym)
	}
	if len(types) == 0 {
		return s.opts.Registry.None(nb), nil
	}
	return s.opts.Registry.Minimal(types...)
}

// render writes row as a comma-separated line. Every variable occurrence gets
// the next free suffix of its variable; slots sharing an occurrence share the
// suffix. copies records the largest suffix count seen per variable.
func render(row []expr.Value, copies map[*expr.Var]int) string {
	suffix := make(map[int]int)
	next := make(map[*expr.Var]int)
	fields := make([]string, len(row))
	for i, v := range row {
		if !v.IsVar() {
			fields[i] = strconv.Itoa(v.State)
			continue
		}
		k, ok := suffix[v.Origin]
		if !ok {
			k = next[v.Var]
			next[v.Var]++
			suffix[v.Origin] = k
		}
		copies[v.Var] = max(copies[v.Var], k+1)
		fields[i] = v.Var.Name + "." + strconv.Itoa(k)
	}
	return strings.Join(fields, ",")
}

// declarations lists the used variables, named ones first, each declared as
// many times as a single line needed distinct copies of it.
func declarations(scope *expr.Scope, copies map[*expr.Var]int) []string {
	var named, anon []string
	for _, v := range scope.Vars() {
		for k := range copies[v] {
			line := fmt.Sprintf("var %s.%d = %s", v.Name, k, v.States)
			if v.Anonymous {
				anon = append(anon, line)
			} else {
				named = append(named, line)
			}
		}
	}
	return append(named, anon...)
}
