package services

import (
	"errors"
	"sort"
	"strings"
)

const msgRequired = "This field is required."

// ErrNotFound is returned when a record is not in the backend's list.
var ErrNotFound = errors.New("record not found")

// ValidationError lists the fields that blocked a request before it was sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

type fieldErrors map[string]string

func (f fieldErrors) required(name, value string) {
	if strings.TrimSpace(value) == "" {
		f[name] = msgRequired
	}
}

func (f fieldErrors) check(ok bool, name, msg string) {
	if !ok {
		if _, exists := f[name]; !exists {
			f[name] = msg
		}
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: map[string]string(f)}
}

// IsValidation reports whether err is a *ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
