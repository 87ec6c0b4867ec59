package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/nutshell"
	"github.com/aretw0/nutshell/internal/presentation/tui"
)

var symmetriesCmd = &cobra.Command{
	Use:   "symmetries <neighborhood>",
	Short: "List the symmetry classes a neighborhood supports",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pretty := term.IsTerminal(int(os.Stdout.Fd()))
		if err := runSymmetries(os.Stdout, args[0], pretty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(symmetriesCmd)
}

func runSymmetries(w io.Writer, neighborhood string, pretty bool) error {
	c, err := nutshell.New()
	if err != nil {
		return err
	}
	classes, err := c.Classes(neighborhood)
	if err != nil {
		return err
	}
	if !pretty {
		for _, t := range classes {
			fmt.Fprintf(w, "%-16s %d\n", t.Name(), t.Order())
		}
		return nil
	}

	render, err := tui.NewRenderer()
	if err != nil {
		return err
	}
	out, err := render(tui.SymmetryTable(classes[0].Neighborhood().Name(), classes))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}
