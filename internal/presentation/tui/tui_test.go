package tui

import (
	"fmt"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/geometry"
	"github.com/aretw0/nutshell/pkg/symmetry"
)

func TestDiagnostic(t *testing.T) {
	err := domain.Errorf(domain.KindValueRange, domain.Span{Line: 3, Start: 7}, "state 9 is out of range")

	assert.Equal(t, "3:7: ValueRangeError: state 9 is out of range", Diagnostic(termenv.Ascii, err))

	colored := Diagnostic(termenv.ANSI256, err)
	assert.Contains(t, colored, "\x1b[")
	assert.Contains(t, colored, "state 9 is out of range")

	wrapped := fmt.Errorf("section %q: %w", "life", err)
	assert.Equal(t, wrapped.Error(), Diagnostic(termenv.ANSI256, wrapped))
}

func TestSymmetryTable(t *testing.T) {
	nb, err := geometry.Named(geometry.VonNeumann)
	require.NoError(t, err)
	classes := symmetry.NewRegistry().Classes(nb)

	md := SymmetryTable(nb.Name(), classes)
	assert.Contains(t, md, "## vonNeumann")
	assert.Contains(t, md, "| rotate4reflect | 8 |")

	render, err := NewRenderer()
	require.NoError(t, err)
	out, err := render(md)
	require.NoError(t, err)
	assert.Contains(t, out, "rotate4reflect")
}
