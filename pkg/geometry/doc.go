// Package geometry models rule-table neighborhoods as ordered sets of compass
// directions and provides the relabelings (rotations, reflections and
// permutations of napkin positions) the symmetry algebra is built from.
//
// A Neighborhood is immutable once constructed. Relabelings are expressed as
// Perm values: applying p to a napkin x yields y with y[i] = x[p[i]].
//
// Coordinates follow the compass: x grows to the east and y grows to the north.
// Translation helpers (Translate, Reproject) let callers re-express a
// direction relative to a neighboring cell.
package geometry
