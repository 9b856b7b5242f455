package source

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/convograph/pkg/graph"
)

const doc = `{"nodes":[{"id":"alice","type":"participant"},{"id":"m1","type":"message","content":"hi","user":"alice"}],` +
	`"edges":[{"from":"alice","to":"m1","type":"authored"}]}`

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		envelope string
		nodes    int
		edges    int
		wantErr  error
	}{
		{"bare", doc, DefaultEnvelope, 2, 1, nil},
		{"enveloped", `{"record":` + doc + `,"metadata":{"id":"x"}}`, DefaultEnvelope, 2, 1, nil},
		{"custom envelope", `{"graph":` + doc + `}`, "graph", 2, 1, nil},
		{"no envelope configured", doc, "", 2, 1, nil},
		{"empty object", `{}`, DefaultEnvelope, 0, 0, nil},
		{"not json", `<html>`, DefaultEnvelope, 0, 0, ErrMalformed},
		{"array", `[1,2]`, DefaultEnvelope, 0, 0, ErrMalformed},
		{"null envelope", `{"record":null}`, DefaultEnvelope, 0, 0, ErrMalformed},
		{"null custom envelope", `{"graph": null , "metadata":{}}`, "graph", 0, 0, ErrMalformed},
		{"wrong shape", `{"record":{"nodes":"nope"}}`, DefaultEnvelope, 0, 0, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Decode([]byte(tt.body), tt.envelope)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, data.Nodes, tt.nodes)
			assert.Len(t, data.Edges, tt.edges)
			assert.NotNil(t, data.Nodes)
			assert.NotNil(t, data.Edges)
		})
	}
}

func TestMessageAndStatus(t *testing.T) {
	tests := []struct {
		err     error
		status  string
		message string
	}{
		{nil, "success", ""},
		{fmt.Errorf("wrap: %w", ErrNotFound), "not_found", "Graph not found (404)"},
		{fmt.Errorf("wrap: %w", ErrServerError), "server_error", "internal error (500)"},
		{&StatusError{Code: 418}, "status", "HTTP 418"},
		{fmt.Errorf("%w: bad", ErrMalformed), "malformed", "could not be parsed"},
		{fmt.Errorf("get: %w", context.DeadlineExceeded), "timeout", "Timed out"},
		{context.Canceled, "canceled", "Failed to fetch"},
		{errors.New("connection refused"), "error", "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.status, Status(tt.err))
			if tt.message == "" {
				assert.Empty(t, Message(tt.err))
				return
			}
			assert.Contains(t, Message(tt.err), tt.message)
		})
	}
}

// TestNotFoundAndServerErrorDistinct checks 404 and 500 never collapse into
// the same user-visible state
func TestNotFoundAndServerErrorDistinct(t *testing.T) {
	notFound := statusErr(404, "")
	server := statusErr(500, "")

	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.NotErrorIs(t, notFound, ErrServerError)
	assert.ErrorIs(t, server, ErrServerError)
	assert.NotErrorIs(t, server, ErrNotFound)
	assert.NotEqual(t, Message(notFound), Message(server))

	var se *StatusError
	assert.ErrorAs(t, statusErr(503, "busy"), &se)
	assert.Equal(t, 503, se.Code)
	assert.Equal(t, "unexpected status 503: busy", se.Error())
}

func TestStatic(t *testing.T) {
	s := &Static{Data: graph.Data{Nodes: []graph.Node{{ID: "a", Type: graph.NodeTopic}}}}
	data, err := s.Fetch(context.Background())
	require.NoError(t, err)
	data.Nodes[0].ID = "changed"
	assert.Equal(t, "a", s.Data.Nodes[0].ID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "http", Kind(&HTTP{}))
	assert.Equal(t, "s3", Kind(&S3{}))
	assert.Equal(t, "postgres", Kind(&Postgres{}))
	assert.Equal(t, "file", Kind(&File{}))
	assert.Equal(t, "static", Kind(&Static{}))
	assert.Equal(t, "custom", Kind(nil))
}
