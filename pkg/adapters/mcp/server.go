package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/nutshell"
	"github.com/aretw0/nutshell/internal/logging"
	"github.com/aretw0/nutshell/pkg/symmetry"
	"github.com/aretw0/nutshell/pkg/table"
)

// CompileArgs are the arguments of the compile_rules tool.
type CompileArgs struct {
	Source string `json:"source"`
	Seed   uint64 `json:"seed,omitempty"`
}

// SymmetryArgs are the arguments of the list_symmetries tool.
type SymmetryArgs struct {
	Neighborhood string `json:"neighborhood"`
}

// SymmetryList is the result of the list_symmetries tool.
type SymmetryList struct {
	Neighborhood string   `json:"neighborhood"`
	Classes      []string `json:"classes" jsonschema_description:"Class names with their group order, weakest first"`
}

// Server exposes the compiler as MCP tools.
type Server struct {
	logger    *slog.Logger
	observer  table.Observer
	registry  *symmetry.Registry
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. observer may be nil.
func NewServer(logger *slog.Logger, observer table.Observer) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		logger:    logger,
		observer:  observer,
		registry:  symmetry.NewRegistry(),
		mcpServer: server.NewMCPServer("nutshell-mcp", strings.TrimSpace(nutshell.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: compile_rules
	compileTool := mcp.NewTool("compile_rules",
		mcp.WithDescription("Compile a rule file (YAML interchange form) into flat transition tables."),
		mcp.WithString("source", mcp.Required(), mcp.Description("The YAML rule file")),
		mcp.WithNumber("seed", mcp.Description("Seed for anonymous variable names (optional)")),
		mcp.WithOutputSchema[nutshell.Report](),
	)
	s.mcpServer.AddTool(compileTool, mcp.NewStructuredToolHandler(s.handleCompile))

	// TOOL: list_symmetries
	symmetriesTool := mcp.NewTool("list_symmetries",
		mcp.WithDescription("List the symmetry classes a neighborhood supports."),
		mcp.WithString("neighborhood", mcp.Required(), mcp.Description("Moore, vonNeumann, hexagonal or oneDimensional")),
		mcp.WithOutputSchema[SymmetryList](),
	)
	s.mcpServer.AddTool(symmetriesTool, mcp.NewStructuredToolHandler(s.handleSymmetries))
}

func (s *Server) compiler(seed uint64) (*nutshell.Compiler, error) {
	opts := []nutshell.Option{
		nutshell.WithLogger(s.logger),
		nutshell.WithSeed(seed),
		nutshell.WithRegistry(s.registry),
	}
	if s.observer != nil {
		opts = append(opts, nutshell.WithObserver(s.observer))
	}
	return nutshell.New(opts...)
}

// Compilation failures are part of the report, not tool errors.
func (s *Server) handleCompile(ctx context.Context, request mcp.CallToolRequest, args CompileArgs) (nutshell.Report, error) {
	if strings.TrimSpace(args.Source) == "" {
		return nutshell.Report{}, fmt.Errorf("source is required")
	}
	c, err := s.compiler(args.Seed)
	if err != nil {
		return nutshell.Report{}, err
	}
	results, err := c.CompileYAML([]byte(args.Source))
	rep := nutshell.NewReport(results, err)
	s.logger.Debug("compile_rules", "sections", len(rep.Sections), "errors", len(rep.Errors))
	return rep, nil
}

func (s *Server) handleSymmetries(ctx context.Context, request mcp.CallToolRequest, args SymmetryArgs) (SymmetryList, error) {
	c, err := s.compiler(0)
	if err != nil {
		return SymmetryList{}, err
	}
	classes, err := c.Classes(args.Neighborhood)
	if err != nil {
		return SymmetryList{}, err
	}
	out := SymmetryList{Neighborhood: classes[0].Neighborhood().Name()}
	for _, t := range classes {
		out.Classes = append(out.Classes, fmt.Sprintf("%s (%d)", t.Name(), t.Order()))
	}
	return out, nil
}
