package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/nutshell/pkg/symmetry"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// SymmetryTable lists classes as a markdown table.
func SymmetryTable(neighborhood string, classes []*symmetry.Type) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", neighborhood)
	sb.WriteString("| class | order |\n|---|---:|\n")
	for _, t := range classes {
		fmt.Fprintf(&sb, "| %s | %d |\n", t.Name(), t.Order())
	}
	return sb.String()
}
