// Package component declares the installable components a recipe variant
// produces after a successful build.
//
// A variant describes its components as Templates. Declare instantiates the
// templates enabled by the option state, naming artifacts with the debug
// suffix when the build type and package version call for it:
//
//	descs, err := component.Declare(set, "Debug", "1.3.0", spec)
//	// descs[0].Artifacts == []string{"sparrowd"}
//
// A template whose enabling option is false or pruned produces no descriptor
// at all. Header-only variants produce descriptors without artifacts.
package component
