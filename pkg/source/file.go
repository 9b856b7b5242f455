package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dd0wney/convograph/pkg/graph"
	"github.com/dd0wney/convograph/pkg/logging"
)

// DefaultDebounce coalesces bursts of file events into one reload
const DefaultDebounce = 200 * time.Millisecond

// File reads the graph document from disk
type File struct {
	Path     string
	Envelope string
	Debounce time.Duration
	Logger   logging.Logger
}

// NewFile creates a file source
func NewFile(path string) *File {
	return &File{Path: path, Envelope: DefaultEnvelope, Debounce: DefaultDebounce, Logger: logging.NewNopLogger()}
}

// Fetch reads and decodes the file
func (f *File) Fetch(ctx context.Context) (*graph.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, f.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	return Decode(body, f.Envelope)
}

// Watch calls onChange after the file is written, created or renamed into
// place, until ctx is done. The parent directory is watched so editors that
// replace the file atomically are still seen.
func (f *File) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	target, err := filepath.Abs(f.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", f.Path, err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	logger := f.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	debounce := f.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("graph file changed",
				logging.Path(f.Path),
				logging.String("op", event.Op.String()))

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, onChange)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", logging.Error(err))
		}
	}
}
