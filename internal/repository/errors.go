package repository

import (
	"errors"
	"fmt"
	"net/http"
)

// Custom error types
var (
	ErrAPIKeyMissing = errors.New("API key missing")
	ErrHTTP          = errors.New("weather API error")
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("not found")
	ErrNetwork       = errors.New("network error")
	ErrParse         = errors.New("malformed weather response")
)

// HTTPKind classifies a non-2xx status.
type HTTPKind int

const (
	KindOther HTTPKind = iota
	KindBadRequest
	KindNotFound
)

func (k HTTPKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	default:
		return "other"
	}
}

func classifyStatus(code int) HTTPKind {
	switch code {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindOther
	}
}

// HTTPError is returned when the endpoint answers with a non-2xx status.
type HTTPError struct {
	Code int
	Kind HTTPKind
	Body string
}

func newHTTPError(code int, body string) *HTTPError {
	return &HTTPError{Code: code, Kind: classifyStatus(code), Body: body}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("weather API returned status %d (%s)", e.Code, e.Kind)
}

func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrHTTP:
		return true
	case ErrBadRequest:
		return e.Kind == KindBadRequest
	case ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// NetworkError is returned when no response was received at all.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Cause.Error()
}

func (e *NetworkError) Unwrap() error { return e.Cause }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ParseError is returned when a 2xx body is not a weather payload.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return "parse weather response: " + e.Cause.Error()
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) Is(target error) bool { return target == ErrParse }
