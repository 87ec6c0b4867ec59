/*
Package domain contains the diagnostics shared by every stage of the nutshell
rule-table compiler.

It is kept free of I/O so that the geometry, symmetry, expression and expansion
packages can report failures without knowing how they will be rendered.

# Key Entities

  - Span: a source location (line, start column, end column) carried by every syntax node.
  - Kind: the machine-distinguishable class of a failure.
  - Error: a failure bound to a Span and a Kind.
  - AggregateError: every transition-level failure collected for one table section.
*/
package domain
