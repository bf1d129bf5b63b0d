// Package option models the user-facing toggles of a recipe.
//
// A recipe declares its options (name, kind, domain, default) as
// Declarations. Resolve merges caller overrides onto the defaults and then
// prunes options that do not apply to the target platform, producing an
// immutable Set that the validator, resolver and parameter generator read.
//
// Pruning removes options rather than setting them false:
//
//	set, _ := option.Resolve(decls, nil, option.OSWindows)
//	set.Has(option.FPIC) // false
//
// Overrides arrive from the command line as name=value pairs:
//
//	overrides, err := option.ParseOverrides([]string{"shared=True", "sparrow/*:build_tests=True"}, "sparrow")
package option
