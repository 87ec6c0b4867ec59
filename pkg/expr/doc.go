// Package expr is the expression model of a rule-table section.
//
// A StateList is an ordered list of cell states; a Var gives one a name in a
// Scope. StateList operators (Repeat, RepeatTo, Subtract, Complement, Rotate)
// are pure. Napkin positions hold Cells, a closed set of node kinds: Literal,
// VarCell, Binding, Mapping and Operation. Resolve evaluates a Cell against
// the other positions of a concrete transition and either returns a Value or
// asks the caller to branch over a still multi-valued position.
package expr
