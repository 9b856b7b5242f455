package source

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/convograph/pkg/config"
	"github.com/dd0wney/convograph/pkg/logging"
)

func TestFileFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	data, err := NewFile(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Nodes, 2)

	_, err = NewFile(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	f := NewFile(path)
	f.Debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	var changes atomic.Int32
	done := make(chan error, 1)
	go func() { done <- f.Watch(ctx, func() { changes.Add(1) }) }()

	// Unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o600))

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(doc), 0o600)
		return changes.Load() > 0
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()

	src, err := New(ctx, config.SourceConfig{Kind: config.SourceHTTP, URL: "http://x", AccessKey: "k", Envelope: "record"}, nil)
	require.NoError(t, err)
	h := src.(*HTTP)
	assert.Equal(t, "k", h.AccessKey)
	assert.Equal(t, "record", h.Envelope)

	src, err = New(ctx, config.SourceConfig{Kind: config.SourceFile, Path: "g.json"}, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, "file", Kind(src))

	_, err = New(ctx, config.SourceConfig{Kind: "ftp"}, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
