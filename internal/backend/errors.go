package backend

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Resource   string
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d", e.Operation, e.Resource, e.StatusCode)
}

// FieldErrors extracts per-field messages from a validation response such as
// {"title": ["This field is required."]}. It returns nil when the body has
// another shape.
func (e *StatusError) FieldErrors() map[string]string {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(e.Body), &raw); err != nil || len(raw) == 0 {
		return nil
	}

	fields := make(map[string]string, len(raw))
	for field, v := range raw {
		switch msg := v.(type) {
		case string:
			fields[field] = msg
		case []interface{}:
			parts := make([]string, 0, len(msg))
			for _, m := range msg {
				if s, ok := m.(string); ok {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				fields[field] = strings.Join(parts, " ")
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Summary renders the field errors as one line, or the status when there are none.
func (e *StatusError) Summary() string {
	fields := e.FieldErrors()
	if len(fields) == 0 {
		return http.StatusText(e.StatusCode)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
