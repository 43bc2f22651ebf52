// Package errors provides error handling conventions for the zappi CLI.
//
// Construction and wrapping go through github.com/cockroachdb/errors, which
// this package re-exports ([New], [Newf], [Wrap], [Wrapf], [Is], [As]) so the
// rest of the module imports a single errors package.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrCorruptStore) {
//	    // the store file exists but cannot be parsed
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, subprocess, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. [CodeOf] extracts the code from any error chain:
//
//	err := errors.NewUserError(errors.ErrInvalidConfig, "Check your config file")
//	os.Exit(errors.CodeOf(err))
package errors
