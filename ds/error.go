package ds

import (
	"fmt"
)

type (
	// ErrUnreachableCode marks a branch that a well-formed caller can never reach.
	ErrUnreachableCode struct {
		Caller string
		// Detail names the state that should have been impossible, if known.
		Detail string
	}
)

func (r ErrUnreachableCode) Error() string {
	if r.Detail == "" {
		return fmt.Sprintf("%s: unreachable code", r.Caller)
	}
	return fmt.Sprintf("%s: unreachable code: %s", r.Caller, r.Detail)
}
