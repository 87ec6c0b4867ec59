package domain

import "fmt"

// Span is a source location. Columns are 1-based; End is exclusive.
type Span struct {
	Line  int `json:"line" yaml:"line" mapstructure:"line"`
	Start int `json:"start" yaml:"start" mapstructure:"start"`
	End   int `json:"end" yaml:"end" mapstructure:"end"`
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Start)
}
