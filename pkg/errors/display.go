package errors

import (
	"errors"
	"fmt"
	"io"
)

// PrintError prints a fatal error with an actionable hint to the writer.
//
// Validation errors are labelled separately so that configuration problems
// are not confused with failures of the session itself.
//
// Output format:
//
//	Error: <error message>
//	  💡 <hint if available>
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - err: The error to print; nil prints nothing
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}

	var all *ValidationErrors
	if errors.As(err, &all) {
		_, _ = fmt.Fprintf(w, "Validation Error: %s\n", all.Error())
		return
	}
	if ve, ok := IsValidationError(err); ok {
		_, _ = fmt.Fprintf(w, "Validation Error: %s\n", ve.Error())
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %s\n", EnhanceErrorWithHint(err))
}
