package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToken means no token has been stored yet; run the authorize flow.
	ErrNoToken = errors.New("no stored token")
	// ErrExchange means the authorization code could not be exchanged.
	ErrExchange = errors.New("authorization code exchange failed")
	// ErrRefresh means the stored refresh token was rejected or unreachable.
	ErrRefresh = errors.New("token refresh failed")
	// ErrNotConfigured means client credentials are missing.
	ErrNotConfigured = errors.New("oauth client not configured")
)

// Error is returned by every Provider operation.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("auth %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("auth %s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Temporary is false: a new authorization or config change is needed.
func (e *Error) Temporary() bool { return false }
