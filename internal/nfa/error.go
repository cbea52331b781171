package nfa

import "fmt"

// BuildError reports a violated NFA-construction invariant. Per spec §7
// this should be unreachable from any input the scanner/parser accepted;
// if it is ever returned, treat it as a fatal bug rather than a user error.
type BuildError struct {
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build error: %s", e.Message)
}

func newBuildError(format string, args ...any) *BuildError {
	return &BuildError{Message: fmt.Sprintf(format, args...)}
}
