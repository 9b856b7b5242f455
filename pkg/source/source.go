// Package source fetches conversation graph documents from the stores the
// viewer can read: a JSON bin over HTTP, an S3 object, a PostgreSQL row or a
// local file.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dd0wney/convograph/pkg/graph"
)

// Sentinel errors
var (
	ErrNotFound    = errors.New("graph not found")
	ErrServerError = errors.New("server error")
	ErrMalformed   = errors.New("malformed graph document")
)

// DefaultEnvelope is the wrapper key used by JSON bin stores
const DefaultEnvelope = "record"

// Source retrieves one graph snapshot
type Source interface {
	Fetch(ctx context.Context) (*graph.Data, error)
}

// StatusError reports an unexpected non-2xx response
type StatusError struct {
	Code int
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// statusErr maps an HTTP status code onto the package errors
func statusErr(code int, body string) error {
	switch {
	case code == http.StatusNotFound:
		return fmt.Errorf("%w (status %d)", ErrNotFound, code)
	case code == http.StatusInternalServerError:
		return fmt.Errorf("%w (status %d)", ErrServerError, code)
	default:
		return &StatusError{Code: code, Body: body}
	}
}

// Decode parses a graph document. When the top-level object carries the
// envelope key its value is the graph; otherwise the object itself is.
func Decode(body []byte, envelope string) (*graph.Data, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	payload := body
	if envelope != "" {
		if inner, ok := top[envelope]; ok {
			if t := bytes.TrimSpace(inner); len(t) == 0 || bytes.Equal(t, []byte("null")) {
				return nil, fmt.Errorf("%w: empty %q payload", ErrMalformed, envelope)
			}
			payload = inner
		}
	}

	var data graph.Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if data.Nodes == nil {
		data.Nodes = []graph.Node{}
	}
	if data.Edges == nil {
		data.Edges = []graph.Edge{}
	}
	return &data, nil
}

// Status classifies err for metrics labels
func Status(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrServerError):
		return "server_error"
	case errors.As(err, &se):
		return "status"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}

// Message returns the text shown to the user for a failed fetch
func Message(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "Graph not found (404). Check the source URL or key."
	case errors.Is(err, ErrServerError):
		return "The data store had an internal error (500). Try again later."
	case errors.As(err, &se):
		return fmt.Sprintf("The data store answered with HTTP %d.", se.Code)
	case errors.Is(err, ErrMalformed):
		return "The graph document could not be parsed."
	case errors.Is(err, context.DeadlineExceeded):
		return "Timed out fetching the graph."
	default:
		return "Failed to fetch the graph: " + err.Error()
	}
}

// Kind names the store behind s
func Kind(s Source) string {
	switch s.(type) {
	case *HTTP:
		return "http"
	case *S3:
		return "s3"
	case *Postgres:
		return "postgres"
	case *File:
		return "file"
	case *Static:
		return "static"
	default:
		return "custom"
	}
}

// Static serves a fixed snapshot
type Static struct {
	Data graph.Data
}

// Fetch returns a copy of the snapshot
func (s *Static) Fetch(ctx context.Context) (*graph.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d := s.Data.Clone()
	return &d, nil
}
