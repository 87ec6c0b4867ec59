package nutshell_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nutshell"
	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/dsl"
	"github.com/aretw0/nutshell/pkg/table"
)

const twoSections = `sections:
  - name: good
    statements:
      - directive: neighborhood
        value: vonNeumann
      - directive: symmetries
        value: none
      - transition:
          initial: 0
          napkin: [{value: 1}, {value: 0}, {value: 0}, {value: 0}]
          result: 1
  - name: bad
    statements:
      - directive: neighborhood
        value: vonNeumann
      - transition:
          initial: 0
          napkin: [{value: ghost}, {value: 0}, {value: 0}, {value: 0}]
          result: 1
`

type counter struct {
	sections int
	errors   []domain.Kind
}

func (c *counter) ObserveSection(table.Stats) { c.sections++ }
func (c *counter) ObserveError(k domain.Kind) { c.errors = append(c.errors, k) }

func TestCompiler_CompileBuilder(t *testing.T) {
	b := dsl.New("blink")
	b.Neighborhood("vonNeumann").Symmetries("none")
	b.Transition(dsl.Int(0)).Napkin(dsl.Int(1), dsl.Int(0), dsl.Int(0), dsl.Int(0)).To(dsl.Int(1))

	c, err := nutshell.New(nutshell.WithSeed(7))
	require.NoError(t, err)

	results, err := c.Compile(b.Build())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "blink", results[0].Name)
	require.Len(t, results[0].Lines, 1)
	assert.Equal(t, "0,1,0,0,0,1", results[0].Lines[0].Text)
	assert.Equal(t, "symmetries:none", results[0].Header()[2])
}

func TestCompiler_CompileFileKeepsGoodSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoSections), 0o644))

	obs := &counter{}
	c, err := nutshell.New(nutshell.WithObserver(obs))
	require.NoError(t, err)

	results, err := c.CompileFile(path)
	require.Error(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].Name)

	errs := domain.Errors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, domain.KindUndefinedReference, domain.KindOf(errs[0]))
	assert.Equal(t, 1, obs.sections)
	assert.Equal(t, []domain.Kind{domain.KindUndefinedReference}, obs.errors)
}

func TestCompiler_CompileYAMLRejectsMalformedInput(t *testing.T) {
	c, err := nutshell.New()
	require.NoError(t, err)

	_, err = c.CompileYAML([]byte("sections: [\n"))
	assert.Error(t, err)
}

func TestCompiler_Classes(t *testing.T) {
	c, err := nutshell.New()
	require.NoError(t, err)

	classes, err := c.Classes("vonNeumann")
	require.NoError(t, err)
	require.NotEmpty(t, classes)
	assert.Equal(t, "none", classes[0].Name())
	assert.Equal(t, 1, classes[0].Order())

	_, err = c.Classes("pentagonal")
	assert.Error(t, err)
}
