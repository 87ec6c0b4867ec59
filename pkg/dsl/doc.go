/*
Package dsl provides a fluent Go builder for rule-table syntax trees.

It produces the same ast.Table a parser would, without going through text.
This is useful for unit testing, for generating tables programmatically and
for embedding the compiler in other tools. Every statement gets its own line
number, so diagnostics and Line spans stay distinguishable.

Example usage:

	b := dsl.New("life")
	b.States(2).Neighborhood("Moore").Symmetries("permute")

	b.Transition(dsl.Int(0)).
		Napkin(dsl.Int(1), dsl.Int(1), dsl.Int(1)).
		Range("SE", "NW", dsl.Int(0)).
		To(dsl.Int(1))

	res, err := table.Compile(b.Build(), table.Options{})
*/
package dsl
