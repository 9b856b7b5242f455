package logging

import (
	"time"

	"go.uber.org/zap"
)

func String(key, value string) Field                 { return zap.String(key, value) }
func Int(key string, value int) Field                { return zap.Int(key, value) }
func Int64(key string, value int64) Field            { return zap.Int64(key, value) }
func Uint64(key string, value uint64) Field          { return zap.Uint64(key, value) }
func Float64(key string, value float64) Field        { return zap.Float64(key, value) }
func Bool(key string, value bool) Field              { return zap.Bool(key, value) }
func Duration(key string, value time.Duration) Field { return zap.Duration(key, value) }
func Any(key string, value any) Field                { return zap.Any(key, value) }

// Error attaches err under "error". A nil error adds nothing.
func Error(err error) Field { return zap.Error(err) }

// Domain fields

func Component(name string) Field   { return String("component", name) }
func NodeID(id string) Field        { return String("node_id", id) }
func Edge(key string) Field         { return String("edge", key) }
func Generation(gen uint64) Field   { return Uint64("generation", gen) }
func SimulationID(id string) Field  { return String("simulation_id", id) }
func SourceKind(kind string) Field  { return String("source", kind) }
func Alpha(a float64) Field         { return Float64("alpha", a) }
func Command(name string) Field     { return String("command", name) }
func Operation(op string) Field     { return String("operation", op) }
func Latency(d time.Duration) Field { return Duration("latency", d) }
func Count(n int) Field             { return Int("count", n) }
func Path(p string) Field           { return String("path", p) }
