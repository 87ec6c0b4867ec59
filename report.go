package nutshell

import (
	"errors"
	"strings"

	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/table"
)

// Diagnostic is the serializable form of one compilation failure.
type Diagnostic struct {
	Kind    string `json:"kind" jsonschema_description:"Failure class, e.g. UndefinedReference"`
	Line    int    `json:"line,omitempty" jsonschema_description:"1-based source line, when known"`
	Column  int    `json:"column,omitempty" jsonschema_description:"1-based source column, when known"`
	Message string `json:"message"`
}

// Section is the serializable form of one compiled section.
type Section struct {
	Name     string `json:"name"`
	Symmetry string `json:"symmetry" jsonschema_description:"Symmetry type the whole section is written under"`
	Lines    int    `json:"lines"`
	Table    string `json:"table" jsonschema_description:"The rendered flat table"`
}

// Report bundles the outcome of a compilation for the HTTP and MCP adapters.
type Report struct {
	Sections []Section    `json:"sections"`
	Errors   []Diagnostic `json:"errors,omitempty"`
}

// OK reports whether the compilation produced no diagnostics.
func (r Report) OK() bool { return len(r.Errors) == 0 }

// NewReport converts the return values of Compile into a Report.
func NewReport(results []*table.Result, err error) Report {
	rep := Report{Sections: make([]Section, 0, len(results))}
	for _, res := range results {
		rep.Sections = append(rep.Sections, Section{
			Name:     res.Name,
			Symmetry: res.Symmetry.Name(),
			Lines:    len(res.Lines),
			Table:    res.String(),
		})
	}
	for _, e := range domain.Errors(err) {
		rep.Errors = append(rep.Errors, diagnose(e))
	}
	return rep
}

func diagnose(err error) Diagnostic {
	var de *domain.Error
	if !errors.As(err, &de) {
		return Diagnostic{Kind: "Error", Message: err.Error()}
	}
	d := Diagnostic{Kind: de.Kind.String(), Line: de.Span.Line, Column: de.Span.Start, Message: de.Msg}
	if err != error(de) {
		// keep the section prefix of fatal errors
		d.Message = strings.TrimSuffix(err.Error(), de.Error()) + de.Msg
	}
	return d
}
