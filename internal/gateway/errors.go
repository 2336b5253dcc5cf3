package gateway

import "fmt"

// RequestError indicates the backend could not be reached or the
// response could not be read. Op names the endpoint that failed.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError indicates the backend answered with a non-2xx status.
// Detail carries the backend's error message when it sent one.
type StatusError struct {
	Op     string
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("gateway %s: status %d: %s", e.Op, e.Code, e.Detail)
	}
	return fmt.Sprintf("gateway %s: status %d", e.Op, e.Code)
}
