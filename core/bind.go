package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Binding errors
var (
	ErrInvalidJSON        = errors.New("invalid JSON")
	ErrMissingContentType = errors.New("missing content type")
	ErrWrongContentType   = errors.New("unsupported media type")
)

// BindJSON decodes a JSON request body into v.
// Unknown fields and trailing data are rejected so malformed client
// payloads fail loudly instead of being silently ignored.
func BindJSON(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
	}

	// Extract media type without parameters
	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}

	if mediaType != "application/json" {
		return fmt.Errorf("%w: got %s, expected application/json", ErrWrongContentType, mediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	// Ensure entire body was consumed
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
	}

	return nil
}
