package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	sim := New(chain(), Config{Width: 640, Height: 480, Seed: 5})
	sim.Pin("alice", 10, 20)
	sim.Tick(3)

	l := Export(sim)
	assert.Equal(t, sim.Generation(), l.Generation)
	assert.Equal(t, 640.0, l.Width)
	assert.Equal(t, 480.0, l.Height)
	assert.Equal(t, 3, l.Ticks)
	require.Len(t, l.Nodes, 3)
	require.Len(t, l.Links, 2)

	assert.Equal(t, "alice", l.Nodes[0].ID)
	assert.True(t, l.Nodes[0].Pinned)
	assert.Equal(t, 10.0, l.Nodes[0].X)
	assert.Equal(t, "hello", l.Nodes[1].Content)
	assert.Equal(t, "m1", l.Links[1].From)
	assert.Equal(t, "weather", l.Links[1].To)
}

func TestExportJSON(t *testing.T) {
	sim := New(chain(), Config{})
	data, err := Export(sim).JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "nodes")
	assert.Contains(t, decoded, "links")
	assert.Contains(t, decoded, "generation")
}

func TestExportSnappy(t *testing.T) {
	sim := New(chain(), Config{Seed: 11})
	sim.Tick(10)
	l := Export(sim)

	compressed, err := l.Snappy()
	require.NoError(t, err)

	decoded, err := DecodeSnappy(compressed)
	require.NoError(t, err)
	assert.Equal(t, l, decoded)

	_, err = DecodeSnappy([]byte("not snappy"))
	assert.Error(t, err)
}
