package gateway

import (
	"fmt"
)

// APIError is a backend rejection, carried upward exactly as received:
// status code plus the structured error body. The gateway never interprets
// it; resource clients translate it into domain errors.
type APIError struct {
	StatusCode int
	// Body is the decoded JSON error payload, nil when the body was not a
	// JSON object.
	Body map[string]any
	// Raw is the unparsed response body.
	Raw []byte
}

func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Message returns the backend's top-level message, looked up under the keys
// the backend actually uses ("error", then "detail").
func (e *APIError) Message() string {
	for _, key := range []string{"error", "detail"} {
		if s, ok := e.Body[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// FieldErrors flattens the body into field -> messages. The backend emits
// either a string or a list of strings per field; both normalize to a slice.
func (e *APIError) FieldErrors() map[string][]string {
	if len(e.Body) == 0 {
		return nil
	}
	fields := make(map[string][]string, len(e.Body))
	for field, v := range e.Body {
		switch msg := v.(type) {
		case string:
			fields[field] = []string{msg}
		case []any:
			msgs := make([]string, 0, len(msg))
			for _, m := range msg {
				if s, ok := m.(string); ok {
					msgs = append(msgs, s)
				}
			}
			if len(msgs) > 0 {
				fields[field] = msgs
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
