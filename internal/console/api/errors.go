package api

import "fmt"

// AuthError reports rejected credentials or an invalid/expired token. The
// console recovers by returning to the login surface, it never crashes on
// one.
type AuthError struct {
	StatusCode int
	Detail     string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth failed (%d): %s", e.StatusCode, e.Detail)
}

// NotFoundError reports a stale id on update or delete.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Detail)
}

// RequestError reports any other HTTP or transport failure. It is logged
// and the view falls back to stale or empty data.
type RequestError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Detail)
}

func (e *RequestError) Unwrap() error { return e.Err }
