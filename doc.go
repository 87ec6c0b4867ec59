/*
Package nutshell compiles high-level cellular-automaton rule tables into the
flat transition tables a simulator reads.

A rule table describes transitions abstractly: variables and inline state
sets stand for many states, napkin positions can bind to or map from other
positions, auxiliaries update neighboring cells, and every transition is
declared under a symmetry. Compilation expands all of that into concrete,
comma-separated transitions under one symmetry shared by the whole table.

# Pipeline

  - pkg/geometry: neighborhoods and compass directions.
  - pkg/symmetry: symmetry types, their orbits and the minimal common type.
  - pkg/expr: state lists, variables and the slot resolver.
  - pkg/expand: transition groups and their expansion.
  - pkg/table: normalization and rendering of a section.

# Usage

	c, err := nutshell.New(nutshell.WithSeed(1))
	if err != nil {
		log.Fatal(err)
	}
	results, err := c.CompileFile("life.yaml")
	if err != nil {
		for _, e := range domain.Errors(err) {
			fmt.Fprintln(os.Stderr, e)
		}
	}
	for _, res := range results {
		res.WriteTo(os.Stdout)
	}

Tables can also be built in Go with pkg/dsl and passed to Compile.
*/
package nutshell
