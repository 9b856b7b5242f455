package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/convograph/pkg/config"
	"github.com/dd0wney/convograph/pkg/explorer"
	"github.com/dd0wney/convograph/pkg/graph"
	"github.com/dd0wney/convograph/pkg/health"
	"github.com/dd0wney/convograph/pkg/layout"
	"github.com/dd0wney/convograph/pkg/source"
)

const graphDoc = `{"record":{"nodes":[` +
	`{"id":"alice","type":"participant"},` +
	`{"id":"m1","type":"message","content":"hello","user":"alice"},` +
	`{"id":"weather","type":"topic"}],` +
	`"edges":[{"from":"alice","to":"m1","type":"authored"},{"from":"m1","to":"weather","type":"discusses"},` +
	`{"from":"m1","to":"ghost","type":"mentions"}]}}`

func writeGraph(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(graphDoc), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvSourceURL, "")
	t.Setenv(config.EnvLogLevel, "error")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "convograph "+version))
}

func TestLayoutJSON(t *testing.T) {
	out, err := run(t, "layout", "--file", writeGraph(t), "--width", "1000")
	require.NoError(t, err)

	var l layout.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &l))
	assert.Equal(t, 1000.0, l.Width)
	assert.Len(t, l.Nodes, 3)
	assert.Len(t, l.Links, 2, "edges to unknown nodes are dropped")
	assert.Less(t, l.Alpha, 0.001)
	for _, n := range l.Nodes {
		assert.GreaterOrEqual(t, n.X, 50.0)
		assert.LessOrEqual(t, n.X, 950.0)
	}
}

func TestLayoutPublishTCP(t *testing.T) {
	out, err := run(t, "layout", "--file", writeGraph(t), "--publish", "tcp://127.0.0.1:0")
	require.NoError(t, err, "a publisher without subscribers must not fail the layout")

	var l layout.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &l))
	assert.Len(t, l.Nodes, 3)
}

func TestLayoutSnappyFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "layout.snappy")
	_, err := run(t, "layout", "--file", writeGraph(t), "-f", "snappy", "-o", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	l, err := layout.DecodeSnappy(data)
	require.NoError(t, err)
	assert.Len(t, l.Nodes, 3)
}

func TestLayoutSVG(t *testing.T) {
	out, err := run(t, "layout", "--file", writeGraph(t), "-f", "svg", "--fit")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "weather")
	assert.Contains(t, out, "Participant")
}

func TestLayoutErrors(t *testing.T) {
	_, err := run(t, "layout", "--file", writeGraph(t), "-f", "png")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "layout", "--file", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = run(t, "layout")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestLoadConfigFlags(t *testing.T) {
	t.Setenv(config.EnvSourceURL, "")
	t.Setenv(config.EnvLogLevel, "")

	cfg, err := loadConfig(&globalFlags{url: "http://example.com/b/1", logLevel: "debug", publishAddr: "inproc://frames"})
	require.NoError(t, err)
	assert.Equal(t, config.SourceHTTP, cfg.Source.Kind)
	assert.Equal(t, "http://example.com/b/1", cfg.Source.URL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "inproc://frames", cfg.Publish.Addr)

	cfg, err = loadConfig(&globalFlags{file: "g.json"})
	require.NoError(t, err)
	assert.Equal(t, config.SourceFile, cfg.Source.Kind)
}

type countingSource struct {
	source.Static
	fetches int
}

func (c *countingSource) Fetch(ctx context.Context) (*graph.Data, error) {
	c.fetches++
	return c.Static.Fetch(ctx)
}

func TestNewCheckerCachesSourceFetch(t *testing.T) {
	src := &countingSource{Static: source.Static{Data: graph.Data{Nodes: []graph.Node{{ID: "a", Type: graph.NodeTopic}}}}}
	c := newChecker(explorer.New(explorer.Options{}), src, time.Second)

	for i := 0; i < 5; i++ {
		assert.Equal(t, health.StatusHealthy, c.Check().Checks["source"].Status)
	}
	assert.Equal(t, 1, src.fetches, "repeated health checks reuse the last fetch")
	assert.Equal(t, "custom", c.Check().Checks["source"].Name)
}

func TestNewChecker(t *testing.T) {
	ex := explorer.New(explorer.Options{})
	src := &source.Static{Data: graph.Data{Nodes: []graph.Node{{ID: "a", Type: graph.NodeTopic}}}}
	c := newChecker(ex, src, time.Second)

	resp := c.CheckReadiness()
	assert.Equal(t, health.StatusDegraded, resp.Status)

	require.NoError(t, ex.Load(context.Background(), src))
	assert.Equal(t, health.StatusHealthy, c.CheckReadiness().Status)

	resp = c.Check()
	assert.Equal(t, health.StatusHealthy, resp.Status)
	assert.Equal(t, health.StatusHealthy, resp.Checks["source"].Status)

	ex.Fail(source.ErrNotFound)
	assert.Equal(t, health.StatusUnhealthy, c.Check().Status)
}
