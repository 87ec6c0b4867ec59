package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/geometry"
	"github.com/aretw0/nutshell/pkg/symmetry"
)

// Line is one emitted transition and the transitions it came from.
type Line struct {
	Text  string
	Spans []domain.Span
}

// Stats describes the work done for one section.
type Stats struct {
	Transitions int
	Branches    int
	Auxiliaries int
	Lines       int
	Duplicates  int
	Cache       symmetry.CacheStats
}

// Result is a compiled section.
type Result struct {
	Name         string
	NStates      int
	Neighborhood *geometry.Neighborhood
	Symmetry     *symmetry.Type
	Vars         []string
	Lines        []Line
	Stats        Stats
}

// Header returns the directive lines.
func (r *Result) Header() []string {
	return []string{
		fmt.Sprintf("n_states:%d", r.NStates),
		"neighborhood:" + r.Neighborhood.Name(),
		"symmetries:" + r.Symmetry.Name(),
	}
}

// WriteTo renders the section: directives, a blank line, variables, a blank
// line, then one line per transition.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	for _, h := range r.Header() {
		sb.WriteString(h + "\n")
	}
	sb.WriteString("\n")
	for _, v := range r.Vars {
		sb.WriteString(v + "\n")
	}
	sb.WriteString("\n")
	for _, l := range r.Lines {
		sb.WriteString(l.Text + "\n")
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (r *Result) String() string {
	var sb strings.Builder
	_, _ = r.WriteTo(&sb)
	return sb.String()
}
