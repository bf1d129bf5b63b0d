// Package requirement derives the third-party dependency edges of a recipe
// from its resolved option state.
//
// Resolution is a fixed rule table evaluated against an option.Set and a
// variant's Pins. It cannot fail. The output is de-duplicated per target and
// scope and sorted by scope then target so identical inputs always produce
// identical edge lists.
//
// Scopes:
//   - runtime: linked or included by consumers of the package
//   - test: only needed to build the package's own tests or benchmarks
//   - tool: executed on the build machine (cmake, doxygen)
package requirement
