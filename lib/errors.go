package lib

import (
	"fmt"
	"net/http"
)

// MetadataFetchError is returned when the properties endpoint answers with a
// non-success status. The stream cannot run without its property list.
type MetadataFetchError struct {
	ObjectType string
	StatusCode int
	Body       string
}

func (e *MetadataFetchError) Error() string {
	return fmt.Sprintf("Could not fetch properties for %v: %d, %s", e.ObjectType, e.StatusCode, e.Body)
}

// PageFetchError is returned for any non-200 answer from an object or search endpoint.
type PageFetchError struct {
	StatusCode int
	Method     string
	URL        string
	Params     string
	Body       string
}

func (e *PageFetchError) Reason() string {
	return http.StatusText(e.StatusCode)
}

func (e *PageFetchError) Error() string {
	kind := "Client"
	if e.StatusCode >= 500 {
		kind = "Server"
	}
	return fmt.Sprintf("%d %v Error: %v for %v with path: %v with params: %v", e.StatusCode, kind, e.Reason(), e.Method, e.URL, e.Params)
}

// ResponseParseError wraps malformed JSON or a response missing the records path.
type ResponseParseError struct {
	URL string
	Err error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("unable to parse response from %v: %v", e.URL, e.Err)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}
