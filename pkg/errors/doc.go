// Package errors provides structured error types for better observability
// and programmatic error handling across the recipe engine.
//
// Every fatal recipe outcome (unknown option, standard too low, incompatible
// toolchain, missing artifact) carries an ErrorCode. Typed errors defined in
// the domain packages implement Coded, so CodeOf classifies them through any
// amount of fmt.Errorf wrapping:
//
//	if errors.CodeOf(err) == errors.ErrCodeIncompatibleToolchain {
//	    // report required vs actual version
//	}
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeBuildFailed,
//	    "cmake configure failed",
//	    runErr,
//	    map[string]any{
//	        "build_dir": dir,
//	        "variant":   "sparrow",
//	    },
//	)
package errors
