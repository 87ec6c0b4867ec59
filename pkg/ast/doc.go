// Package ast defines the typed syntax tree a rule-table section arrives as.
//
// The tree is produced by an external parser (or by the YAML interchange
// decoder and the dsl builder in this module); this package only fixes its
// shape. Every node carries a domain.Span for diagnostics.
package ast
