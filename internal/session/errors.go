package session

import "fmt"

// StoreError wraps a backend failure.
type StoreError struct {
	Op        string
	SessionID string
	Cause     error
}

func (e *StoreError) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("session store %s %s: %v", e.Op, e.SessionID, e.Cause)
	}
	return fmt.Sprintf("session store %s: %v", e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
