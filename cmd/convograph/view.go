package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dd0wney/convograph/pkg/logging"
	"github.com/dd0wney/convograph/pkg/metrics"
	"github.com/dd0wney/convograph/pkg/source"
	"github.com/dd0wney/convograph/pkg/tui"
)

func newViewCommand(flags *globalFlags) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore the graph interactively",
		Long: `Opens the terminal explorer. Click a node to pin it and see its details,
drag nodes to move them, drag the background to pan and scroll to zoom.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), flags, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the graph file changes (file source)")

	return cmd
}

func runView(ctx context.Context, flags *globalFlags, watch bool) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if watch {
		cfg.Source.Watch = true
	}

	// The terminal belongs to the UI; logs go to a file or nowhere
	logger, closeLog, err := newLogger(cfg.Logging, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reg := metrics.NewRegistry()

	src, err := source.New(ctx, cfg.Source, logger)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	ex, closePub, err := newExplorer(cfg, 0, reg, logger)
	if err != nil {
		return err
	}
	defer closePub()
	startMetrics(ctx, cfg.Metrics, reg, newChecker(ex, src, cfg.Source.Timeout), logger)

	var changes chan struct{}
	if f, ok := src.(*source.File); ok && cfg.Source.Watch {
		changes = make(chan struct{}, 1)
		go func() {
			err := f.Watch(ctx, func() {
				select {
				case changes <- struct{}{}:
				default:
				}
			})
			if err != nil {
				logger.Error("watch failed", logging.Path(f.Path), logging.Error(err))
			}
		}()
	}

	model := tui.New(tui.Options{
		Explorer:      ex,
		Source:        src,
		Logger:        logger,
		Height:        cfg.View.Height,
		CellWidth:     cfg.View.CellWidth,
		FrameInterval: cfg.FrameInterval(),
		EdgeTolerance: cfg.View.EdgeTolerance,
		ShowLabels:    cfg.View.Labels,
		FetchTimeout:  cfg.Source.Timeout,
		Changes:       changes,
	})

	logger.Info("starting view", logging.SourceKind(source.Kind(src)))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("view failed: %w", err)
	}
	return nil
}
