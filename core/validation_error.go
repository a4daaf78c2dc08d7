package core

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ValidationError collects per-field validation messages, keyed by the JSON
// field name the client sent. Handlers render it as the "details" object of
// a 422 response, so a field can carry more than one message. url.Values
// already models exactly that shape.
type ValidationError url.Values

// Error summarizes the failed fields in a stable order. The summary is what
// ends up in logs; clients read the structured details instead.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "Validation failed"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if msgs := e[field]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msgs[0]))
		}
	}

	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

// NewValidationError returns an empty error ready for Add calls.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add records a message against a field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first message recorded for a field, or "".
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Has reports whether any message was recorded for the field.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty reports whether no field failed. Validators build an error
// unconditionally and return it only when this is false.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
