package transport

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
	TraceID string
	Body    string
}

func (e *APIError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("%s (trace: %s)", e.Message, e.TraceID)
	}
	return e.Message
}

// NetworkError is a failure to reach the backend at all.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

var (
	messageFields = []string{"message", "detail", "error"}
	traceFields   = []string{"trace_id", "traceId", "request_id"}
)

// newAPIError picks the best message from the JSON error envelope:
// message, then detail, then error, then the status text.
func newAPIError(resp *http.Response, body []byte) *APIError {
	e := &APIError{
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(body)),
	}

	if gjson.ValidBytes(body) {
		env := gjson.ParseBytes(body)
		for _, field := range messageFields {
			if msg := envelopeText(env.Get(field)); msg != "" {
				e.Message = msg
				break
			}
		}
		for _, field := range traceFields {
			if v := env.Get(field); v.Exists() && v.String() != "" {
				e.TraceID = v.String()
				break
			}
		}
	}

	if e.TraceID == "" {
		e.TraceID = resp.Header.Get("X-Trace-Id")
	}

	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	return e
}

// envelopeText reads a message field that may be a string, a nested object
// with its own message, or a list of validation entries with msg fields.
func envelopeText(v gjson.Result) string {
	switch {
	case !v.Exists():
		return ""
	case v.Type == gjson.String:
		return strings.TrimSpace(v.Str)
	case v.IsObject():
		return strings.TrimSpace(v.Get("message").String())
	case v.IsArray():
		first := v.Get("0")
		if first.Type == gjson.String {
			return strings.TrimSpace(first.Str)
		}
		return strings.TrimSpace(first.Get("msg").String())
	default:
		return ""
	}
}
