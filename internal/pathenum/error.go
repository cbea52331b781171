package pathenum

import "fmt"

// InternalError reports that path enumeration failed to terminate or to
// cover a reachable transition (spec §7 — should be unreachable).
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s", e.Message)
}

func newInternalError(format string, args ...any) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}
