package nutshell

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/nutshell/internal/compiler"
	"github.com/aretw0/nutshell/internal/logging"
	"github.com/aretw0/nutshell/pkg/ast"
	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/geometry"
	"github.com/aretw0/nutshell/pkg/symmetry"
	"github.com/aretw0/nutshell/pkg/table"
)

// Version is the compiler version.
var Version = "0.1.0"

// Compiler is the high-level entry point for the nutshell library.
// It owns the symmetry registry and the orbit cache shared by its compilations.
// A Compiler is not safe for concurrent use.
type Compiler struct {
	registry  *symmetry.Registry
	cache     *symmetry.OrbitCache
	cacheSize int
	seed      uint64
	logger    *slog.Logger
	observer  table.Observer
	parser    *compiler.Parser
}

// Option defines a functional option for configuring the Compiler.
type Option func(*Compiler)

// WithLogger sets a custom structured logger for the compiler.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithSeed sets the seed anonymous variable names are drawn from.
func WithSeed(seed uint64) Option {
	return func(c *Compiler) {
		c.seed = seed
	}
}

// WithRegistry shares a symmetry registry between compilers.
func WithRegistry(r *symmetry.Registry) Option {
	return func(c *Compiler) {
		c.registry = r
	}
}

// WithOrbitCacheSize bounds the orbit cache (default symmetry.DefaultOrbitCacheSize).
func WithOrbitCacheSize(n int) Option {
	return func(c *Compiler) {
		c.cacheSize = n
	}
}

// WithObserver receives the statistics of every compiled section.
func WithObserver(o table.Observer) Option {
	return func(c *Compiler) {
		c.observer = o
	}
}

// New initializes a Compiler.
func New(opts ...Option) (*Compiler, error) {
	c := &Compiler{parser: compiler.NewParser()}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = symmetry.NewRegistry()
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	cache, err := symmetry.NewOrbitCache(c.cacheSize)
	if err != nil {
		return nil, err
	}
	c.cache = cache
	return c, nil
}

// Compile compiles every section. Failing sections do not stop the others:
// the results of the sections that compiled are returned together with a
// domain.AggregateError holding every failure.
func (c *Compiler) Compile(tables ...*ast.Table) ([]*table.Result, error) {
	var (
		results []*table.Result
		errs    []error
	)
	for _, t := range tables {
		res, err := table.Compile(t, table.Options{
			Seed:     c.seed,
			Registry: c.registry,
			Cache:    c.cache,
			Logger:   c.logger,
			Observer: c.observer,
		})
		if err != nil {
			errs = append(errs, domain.Errors(err)...)
			continue
		}
		results = append(results, res)
	}
	if len(errs) > 0 {
		return results, &domain.AggregateError{Errors: errs}
	}
	return results, nil
}

// CompileYAML compiles the YAML interchange form of a rule file.
func (c *Compiler) CompileYAML(data []byte) ([]*table.Result, error) {
	tables, err := c.parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return c.Compile(tables...)
}

// CompileFile compiles the YAML interchange file at path.
func (c *Compiler) CompileFile(path string) ([]*table.Result, error) {
	tables, err := c.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("parsed rule file", "path", path, "sections", len(tables))
	return c.Compile(tables...)
}

// Classes lists the named symmetry classes the neighborhood supports, weakest
// first.
func (c *Compiler) Classes(neighborhood string) ([]*symmetry.Type, error) {
	nb, err := geometry.Parse(neighborhood)
	if err != nil {
		return nil, fmt.Errorf("invalid neighborhood: %w", err)
	}
	return c.registry.Classes(nb), nil
}
