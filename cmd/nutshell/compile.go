package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/nutshell"
	"github.com/aretw0/nutshell/internal/config"
	"github.com/aretw0/nutshell/internal/logging"
	"github.com/aretw0/nutshell/internal/metrics"
	"github.com/aretw0/nutshell/internal/presentation/tui"
	"github.com/aretw0/nutshell/pkg/domain"
	"github.com/aretw0/nutshell/pkg/table"
)

// errRejected signals that diagnostics were already printed.
var errRejected = errors.New("compilation failed")

var compileCmd = &cobra.Command{
	Use:   "compile <file.yaml>",
	Short: "Compile a rule file into flat transition tables",
	Long: `Reads the YAML interchange form of a rule file and writes every section as a
flat table. Errors are reported one per line with their source position.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := compileOptions{path: args[0], settings: cfg, profile: termenv.Ascii}
		if term.IsTerminal(int(os.Stderr.Fd())) {
			opts.profile = termenv.ColorProfile()
		}
		opts.output, _ = cmd.Flags().GetString("output")
		if cmd.Flags().Changed("seed") {
			opts.settings.Seed, _ = cmd.Flags().GetUint64("seed")
		}
		if cmd.Flags().Changed("stats") {
			opts.settings.Stats, _ = cmd.Flags().GetBool("stats")
		}

		if err := runCompile(opts, os.Stdout, os.Stderr); err != nil {
			if !errors.Is(err, errRejected) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringP("output", "o", "", "Write the tables to a file instead of stdout")
	compileCmd.Flags().Uint64("seed", 0, "Seed for anonymous variable names")
	compileCmd.Flags().Bool("stats", false, "Print compilation metrics to stderr")
}

type compileOptions struct {
	path     string
	output   string
	settings config.Config
	// profile colors diagnostics.
	profile termenv.Profile
	// create opens the output file; os.Create when nil.
	create func(path string) (io.WriteCloser, error)
}

func runCompile(opts compileOptions, stdout, stderr io.Writer) error {
	log := logger
	if log == nil {
		log = logging.NewNop()
	}
	m := metrics.New()
	c, err := nutshell.New(
		nutshell.WithLogger(log),
		nutshell.WithSeed(opts.settings.Seed),
		nutshell.WithOrbitCacheSize(opts.settings.OrbitCacheSize),
		nutshell.WithObserver(m),
	)
	if err != nil {
		return err
	}

	results, compileErr := c.CompileFile(opts.path)

	if opts.output != "" && len(results) > 0 {
		if err := writeOutput(opts, results); err != nil {
			return err
		}
	} else if err := writeSections(stdout, results); err != nil {
		return err
	}

	if opts.settings.Stats {
		if err := m.WriteText(stderr); err != nil {
			return err
		}
	}

	if compileErr != nil {
		for _, e := range domain.Errors(compileErr) {
			fmt.Fprintln(stderr, tui.Diagnostic(opts.profile, e))
		}
		return errRejected
	}
	return nil
}

func writeOutput(opts compileOptions, results []*table.Result) error {
	create := opts.create
	if create == nil {
		create = func(path string) (io.WriteCloser, error) { return os.Create(path) }
	}
	f, err := create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := writeSections(f, results); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}

func writeSections(out io.Writer, results []*table.Result) error {
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if res.Name != "" {
			fmt.Fprintf(out, "# %s\n", res.Name)
		}
		if _, err := res.WriteTo(out); err != nil {
			return fmt.Errorf("failed to write %s: %w", res.Name, err)
		}
	}
	return nil
}
