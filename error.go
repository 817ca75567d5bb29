package condprune

import (
	"fmt"
	"strings"
)

// RunError is returned for any failure concerning a specific path. The cause can be unwrapped,
// e.g. to a *filter.StructuralError in strict mode or to an fs.PathError.
type RunError struct {
	Op   string
	Path string
	Err  error
}

func (e *RunError) Error() string {
	var msg strings.Builder
	fmt.Fprint(&msg, e.Op, " ", e.Path)
	if e.Err != nil {
		fmt.Fprint(&msg, ": ", e.Err)
	}
	return msg.String()
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func newRunError(op string, path string, cause error) *RunError {
	return &RunError{Op: op, Path: path, Err: cause}
}
