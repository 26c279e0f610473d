package api

import (
	"errors"
	"net/http"
)

// HTTPError is an error with a status code and a machine readable key.
type HTTPError struct {
	Status int
	Key    string
}

func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrNotFound         = HTTPError{Status: http.StatusNotFound, Key: "not_found"}
	ErrMethodNotAllowed = HTTPError{Status: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
)

var (
	// ErrMissingField is returned when a required request field is absent.
	ErrMissingField = errors.New("missing required field")
)
