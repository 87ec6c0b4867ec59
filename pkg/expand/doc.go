// Package expand turns abstract transitions into concrete ones.
//
// A TransitionGroup holds one cell per slot: the initial state, the napkin
// positions in neighborhood order, and the resultant. Expansion resolves
// references between slots and branches over variables wherever a mapping
// needs to know which state a variable took. Auxiliary transitions are
// rewritten into the frame of the cell they target and expanded the same way.
package expand
