/*
Package table compiles one rule-table section into simulator output.

Compile walks the section's statements in order, expands every transition,
then normalizes the result:

 1. The minimal common symmetry of every type the section declared is chosen,
    and transitions declared under a stronger type are re-expanded under it.
 2. Each variable occurrence within a transition gets a positional suffix, and
    the largest suffix count per variable decides how many copies of it are
    declared.
 3. Identical lines are emitted once, in first-seen order, keeping the spans
    of every transition that produced them.

Transition-level failures are collected into a domain.AggregateError; a bad
neighborhood, symmetry or state count stops the section at once.
*/
package table
