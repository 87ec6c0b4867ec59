package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blink = `sections:
  - name: blink
    statements:
      - directive: neighborhood
        value: vonNeumann
      - directive: symmetries
        value: none
      - transition:
          initial: 0
          napkin: [{value: 1}, {value: 0}, {value: 0}, {value: 0}]
          result: 1
`

func TestHandleCompile(t *testing.T) {
	s := NewServer(nil, nil)

	rep, err := s.handleCompile(context.Background(), mcp.CallToolRequest{}, CompileArgs{Source: blink})
	require.NoError(t, err)
	assert.True(t, rep.OK())
	require.Len(t, rep.Sections, 1)
	assert.Contains(t, rep.Sections[0].Table, "0,1,0,0,0,1")
}

func TestHandleCompile_ReportsFailures(t *testing.T) {
	s := NewServer(nil, nil)

	rep, err := s.handleCompile(context.Background(), mcp.CallToolRequest{}, CompileArgs{Source: "sections: [\n"})
	require.NoError(t, err)
	assert.False(t, rep.OK())

	_, err = s.handleCompile(context.Background(), mcp.CallToolRequest{}, CompileArgs{})
	assert.Error(t, err)
}

func TestHandleSymmetries(t *testing.T) {
	s := NewServer(nil, nil)

	out, err := s.handleSymmetries(context.Background(), mcp.CallToolRequest{}, SymmetryArgs{Neighborhood: "1d"})
	require.NoError(t, err)
	assert.Equal(t, "oneDimensional", out.Neighborhood)
	assert.Equal(t, []string{"none (1)", "reflect (2)", "permute (2)"}, out.Classes)

	_, err = s.handleSymmetries(context.Background(), mcp.CallToolRequest{}, SymmetryArgs{Neighborhood: "nowhere"})
	assert.Error(t, err)
}
