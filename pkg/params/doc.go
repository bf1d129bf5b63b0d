// Package params translates a resolved option state and toolchain into the
// flat set of build parameters handed to the build driver.
//
// Every boolean option in the variant's parameter spec maps to a named
// parameter. Options pruned from the set render as false. Some toolchain
// families force parameters on regardless of user input:
//
//	m := params.Generate(set, toolchain.Identity{Family: toolchain.AppleClang, Version: "16"}, spec)
//	m["USE_LARGE_INT_PLACEHOLDERS"] // true
//
// CacheArgs renders the map as sorted -DKEY=ON|OFF arguments for CMake.
package params
