package metrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/symmetry"
	"github.com/aretw0/nutshell/pkg/table"
)

func TestMetrics(t *testing.T) {
	m := New()
	m.ObserveSection(table.Stats{
		Transitions: 2,
		Branches:    5,
		Lines:       3,
		Duplicates:  2,
		Cache:       symmetry.CacheStats{Hits: 4, Misses: 1},
	})
	m.ObserveError(domain.KindValueRange)
	m.ObserveError(domain.KindValueRange)
	m.ObserveError(0)

	var sb strings.Builder
	require.NoError(t, m.WriteText(&sb))
	out := sb.String()

	assert.Contains(t, out, "nutshell_sections_total 1")
	assert.Contains(t, out, "nutshell_lines_total 3")
	assert.Contains(t, out, "nutshell_orbit_cache_hits_total 4")
	assert.Contains(t, out, `nutshell_errors_total{kind="ValueRangeError"} 2`)
	assert.Contains(t, out, `nutshell_errors_total{kind="Unknown"} 1`)
	assert.Contains(t, out, "nutshell_section_lines_count 1")
}
