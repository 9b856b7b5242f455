package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/convograph/pkg/layout"
)

// ErrInvalid is returned (wrapped) when a configuration fails validation
var ErrInvalid = errors.New("invalid configuration")

// Environment overrides
const (
	EnvSourceURL = "CONVOGRAPH_SOURCE_URL"
	EnvAccessKey = "CONVOGRAPH_ACCESS_KEY"
	EnvLogLevel  = "LOG_LEVEL"
)

// Source kinds
const (
	SourceHTTP     = "http"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
	SourceFile     = "file"
)

// Config is the complete viewer configuration
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Layout  LayoutConfig  `yaml:"layout"`
	View    ViewConfig    `yaml:"view"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Publish PublishConfig `yaml:"publish"`
}

// SourceConfig selects where the graph document comes from
type SourceConfig struct {
	Kind     string        `yaml:"kind"`
	Timeout  time.Duration `yaml:"timeout"`
	Envelope string        `yaml:"envelope"`

	// http
	URL       string `yaml:"url"`
	AccessKey string `yaml:"access_key"`

	// s3
	Bucket   string `yaml:"bucket"`
	Key      string `yaml:"key"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`

	// postgres
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
	Name  string `yaml:"name"`

	// file
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// LayoutConfig tunes the force simulation
type LayoutConfig struct {
	Placement      string  `yaml:"placement"`
	Seed           int64   `yaml:"seed"`
	LinkDistance   float64 `yaml:"link_distance"`
	ChargeStrength float64 `yaml:"charge_strength"`
	Theta          float64 `yaml:"theta"`
	VelocityDecay  float64 `yaml:"velocity_decay"`
}

// ViewConfig sizes the drawing surface
type ViewConfig struct {
	Height        float64 `yaml:"height"`
	CellWidth     float64 `yaml:"cell_width"`
	FPS           int     `yaml:"fps"`
	Labels        bool    `yaml:"labels"`
	EdgeTolerance float64 `yaml:"edge_tolerance"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// PublishConfig enables the frame publisher when Addr is set
type PublishConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Source: SourceConfig{
			Kind:     SourceHTTP,
			Timeout:  10 * time.Second,
			Envelope: "record",
			Table:    "graphs",
		},
		Layout: LayoutConfig{
			Placement:      string(layout.PlacementPhyllotaxis),
			Seed:           1,
			LinkDistance:   100,
			ChargeStrength: -300,
			Theta:          0.9,
			VelocityDecay:  0.4,
		},
		View: ViewConfig{
			Height:        600,
			CellWidth:     10,
			FPS:           30,
			Labels:        true,
			EdgeTolerance: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a YAML file over the defaults, then applies environment
// overrides. An empty path loads defaults and environment only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides fields from the environment
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvSourceURL); v != "" {
		c.Source.URL = v
	}
	if v := os.Getenv(EnvAccessKey); v != "" {
		c.Source.AccessKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks every section and reports all problems at once
func (c Config) Validate() error {
	var errs []error

	s := c.Source
	sv := NewValidator("source").
		OneOf("kind", s.Kind, []string{SourceHTTP, SourceS3, SourcePostgres, SourceFile}).
		MinDuration("timeout", s.Timeout, 0).
		When(s.Kind == SourceHTTP, func(v *Validator) { v.Required("url", s.URL) }).
		When(s.Kind == SourceS3, func(v *Validator) { v.Required("bucket", s.Bucket).Required("key", s.Key) }).
		When(s.Kind == SourcePostgres, func(v *Validator) {
			v.Required("dsn", s.DSN).Required("table", s.Table).Required("name", s.Name)
		}).
		When(s.Kind == SourceFile, func(v *Validator) { v.Required("path", s.Path) })
	errs = append(errs, sv.Errors()...)

	l := c.Layout
	lv := NewValidator("layout").
		OneOf("placement", l.Placement, []string{
			string(layout.PlacementPhyllotaxis), string(layout.PlacementRandom),
			string(layout.PlacementCircular), string(layout.PlacementHierarchical),
		}).
		PositiveFloat("link_distance", l.LinkDistance).
		NegativeFloat("charge_strength", l.ChargeStrength).
		RangeFloat("theta", l.Theta, 0.1, 2).
		RangeFloat("velocity_decay", l.VelocityDecay, 0.01, 1)
	errs = append(errs, lv.Errors()...)

	v := c.View
	vv := NewValidator("view").
		PositiveFloat("height", v.Height).
		PositiveFloat("cell_width", v.CellWidth).
		RangeInt("fps", v.FPS, 1, 120).
		RangeFloat("edge_tolerance", v.EdgeTolerance, 0, 50)
	errs = append(errs, vv.Errors()...)

	gv := NewValidator("logging").
		OneOf("level", c.Logging.Level, []string{"debug", "info", "warn", "warning", "error", "DEBUG", "INFO", "WARN", "WARNING", "ERROR"}).
		OneOf("format", c.Logging.Format, []string{"json", "console"})
	errs = append(errs, gv.Errors()...)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// SimulationConfig builds the layout configuration for a surface of the
// given width
func (c Config) SimulationConfig(width float64) layout.Config {
	return layout.Config{
		Width:          width,
		Height:         c.View.Height,
		LinkDistance:   c.Layout.LinkDistance,
		ChargeStrength: c.Layout.ChargeStrength,
		Theta:          c.Layout.Theta,
		VelocityDecay:  c.Layout.VelocityDecay,
		Placement:      layout.Placement(c.Layout.Placement),
		Seed:           c.Layout.Seed,
	}
}

// FrameInterval is the delay between frames
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(c.View.FPS, 1))
}
