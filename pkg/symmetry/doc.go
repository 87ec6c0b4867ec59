// Package symmetry implements symmetry types: named, neighborhood-bound sets of
// napkin relabelings.
//
// Types are built from four primitives (none, rotate, reflect, permute) and
// two operators: Compose closes the union of generators under the permutation
// product, Combine takes the plain union of transformation sets. Every type is
// memoized by its generating arguments in a Registry, so repeated declarations
// share one object.
//
// Orbit expansion is cached per compilation in an OrbitCache keyed by napkin
// content. Pure permute types key the cache by the unordered content of each
// permutable group, since equal multisets have equal orbits.
package symmetry
