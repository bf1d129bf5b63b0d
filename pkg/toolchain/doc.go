// Package toolchain decides whether a host compiler can build a recipe.
//
// Validation has two independent checks. The requested language standard,
// when one is requested, must not be older than the recipe minimum:
//
//	toolchain.Validate(toolchain.Identity{Family: toolchain.GCC, Version: "13", Standard: "gnu17"}, "20", table)
//	// StandardTooLowError{Required: "20", Actual: "gnu17"}
//
// The compiler version must be at least the minimum the recipe's
// VersionTable lists for its family. Families missing from the table are
// accepted unchecked, and equality is accepted:
//
//	table := toolchain.VersionTable{toolchain.GCC: "11.2"}
//	toolchain.Validate(toolchain.Identity{Family: toolchain.GCC, Version: "11.2"}, "20", table) // nil
//
// Validate is pure. Both failures implement errors.Coded so callers can map
// them to STANDARD_TOO_LOW and INCOMPATIBLE_TOOLCHAIN without type switches.
package toolchain
