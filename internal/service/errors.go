package service

import "net/http"

// Kind is the closed set of business error categories. Anything outside this
// set is an internal fault and maps to a 500.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindAuth
	KindStorage
)

// HTTPError represents an error with an associated HTTP status code.
// TODO(future): it is probably not optimal to tie service errors to HTTP layer. We should refactor this later. :)
type HTTPError struct {
	Kind       Kind
	StatusCode int
	Wrapped    error
}

func (e HTTPError) Error() string {
	return e.Wrapped.Error()
}

func (e HTTPError) Unwrap() error {
	return e.Wrapped
}

func validationError(err error) *HTTPError {
	return &HTTPError{Kind: KindValidation, StatusCode: http.StatusBadRequest, Wrapped: err}
}

func notFoundError(err error) *HTTPError {
	return &HTTPError{Kind: KindNotFound, StatusCode: http.StatusNotFound, Wrapped: err}
}

func conflictError(err error) *HTTPError {
	return &HTTPError{Kind: KindConflict, StatusCode: http.StatusConflict, Wrapped: err}
}

func authError(err error) *HTTPError {
	return &HTTPError{Kind: KindAuth, StatusCode: http.StatusUnauthorized, Wrapped: err}
}

func storageError(err error) *HTTPError {
	return &HTTPError{Kind: KindStorage, StatusCode: http.StatusInternalServerError, Wrapped: err}
}

func internalError(err error) *HTTPError {
	return &HTTPError{Kind: KindInternal, StatusCode: http.StatusInternalServerError, Wrapped: err}
}
