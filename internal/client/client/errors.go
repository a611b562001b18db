package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrAuthTokenMissing = errors.New("no authentication token available")
)

// RequestError is a non-2xx answer from the generation service.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401/403 responses.
func (e *RequestError) Is(target error) bool {
	return target == ErrUnauthorized && (e.Status == 401 || e.Status == 403)
}

func genericRequestMessage(status int) string {
	return fmt.Sprintf("request failed with status %d", status)
}
