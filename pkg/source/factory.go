package source

import (
	"context"
	"fmt"

	"github.com/dd0wney/convograph/pkg/config"
	"github.com/dd0wney/convograph/pkg/logging"
)

// New builds the source selected by cfg.Kind
func New(ctx context.Context, cfg config.SourceConfig, logger logging.Logger) (Source, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	switch cfg.Kind {
	case config.SourceHTTP, "":
		h := NewHTTP(cfg.URL, cfg.AccessKey, cfg.Timeout)
		h.Envelope = cfg.Envelope
		return h, nil

	case config.SourceS3:
		s, err := NewS3(ctx, S3Options{
			Bucket:   cfg.Bucket,
			Key:      cfg.Key,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		s.Envelope = cfg.Envelope
		return s, nil

	case config.SourcePostgres:
		p, err := NewPostgres(ctx, cfg.DSN, cfg.Table, cfg.Name)
		if err != nil {
			return nil, err
		}
		p.Envelope = cfg.Envelope
		return p, nil

	case config.SourceFile:
		f := NewFile(cfg.Path)
		f.Envelope = cfg.Envelope
		f.Logger = logger.With(logging.SourceKind(config.SourceFile))
		return f, nil

	default:
		return nil, fmt.Errorf("%w: unknown source kind %q", config.ErrInvalid, cfg.Kind)
	}
}
