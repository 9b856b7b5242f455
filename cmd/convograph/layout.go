package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/convograph/pkg/config"
	"github.com/dd0wney/convograph/pkg/explorer"
	"github.com/dd0wney/convograph/pkg/logging"
	"github.com/dd0wney/convograph/pkg/metrics"
	"github.com/dd0wney/convograph/pkg/render"
	"github.com/dd0wney/convograph/pkg/source"
	"github.com/dd0wney/convograph/pkg/viewport"
)

type layoutOptions struct {
	output   string
	format   string
	width    float64
	maxTicks int
	legend   bool
	fit      bool
}

func newLayoutCommand(flags *globalFlags) *cobra.Command {
	opts := layoutOptions{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Run the layout to rest and export it",
		Long: `Fetches the graph, runs the force simulation until it cools down and writes
the resulting positions. Formats: json, snappy (snappy-compressed json) or svg.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case "json", "snappy", "svg":
			default:
				return fmt.Errorf("unknown format %q (want json, snappy or svg)", opts.format)
			}
			return runLayout(cmd.Context(), flags, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "output format: json, snappy or svg")
	cmd.Flags().Float64Var(&opts.width, "width", 800, "layout width")
	cmd.Flags().IntVar(&opts.maxTicks, "max-ticks", 10_000, "tick limit if the simulation does not cool down")
	cmd.Flags().BoolVar(&opts.legend, "legend", true, "draw the node type legend (svg)")
	cmd.Flags().BoolVar(&opts.fit, "fit", false, "scale the drawing to fit its bounds (svg)")

	return cmd
}

func runLayout(ctx context.Context, flags *globalFlags, opts layoutOptions, stdout io.Writer) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Logging, os.Stderr)
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

	ex, closePub, err := newExplorer(cfg, opts.width, reg, logger)
	if err != nil {
		return err
	}
	defer closePub()
	startMetrics(ctx, cfg.Metrics, reg, newChecker(ex, src, cfg.Source.Timeout), logger)

	if err := loadAndSettle(ctx, ex, src, cfg, opts.maxTicks, logger); err != nil {
		return err
	}

	w := stdout
	if opts.output != "-" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)

	if err := writeLayout(bw, ex, opts); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info("layout written",
		logging.String("format", opts.format),
		logging.String("output", opts.output),
		logging.Generation(ex.Generation()))
	return nil
}

func loadAndSettle(ctx context.Context, ex *explorer.Explorer, src source.Source, cfg config.Config, maxTicks int, logger logging.Logger) error {
	if cfg.Source.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Source.Timeout)
		defer cancel()
	}
	if err := ex.Load(ctx, src); err != nil {
		return fmt.Errorf("%s: %w", source.Message(err), err)
	}

	timer := logging.StartTimer(logger, "simulation settled")
	ticks, err := ex.Settle(maxTicks)
	if err != nil {
		timer.EndError(err)
		return err
	}
	timer.End()
	logger.Debug("settle", logging.Count(ticks), logging.Alpha(ex.Simulation().Alpha()))
	return nil
}

func writeLayout(w io.Writer, ex *explorer.Explorer, opts layoutOptions) error {
	switch opts.format {
	case "svg":
		scene := ex.Scene()
		t := viewport.Identity
		if opts.fit {
			if b, ok := ex.Simulation().Bounds(); ok {
				vc := viewport.New(viewport.Options{})
				vc.Fit(b, scene.Width, scene.Height, 40)
				t = vc.Transform()
			}
		}
		return render.WriteSVG(w, scene, t, opts.legend)

	case "snappy":
		l, err := ex.Export()
		if err != nil {
			return err
		}
		data, err := l.Snappy()
		if err != nil {
			return fmt.Errorf("failed to encode layout: %w", err)
		}
		_, err = w.Write(data)
		return err

	default:
		l, err := ex.Export()
		if err != nil {
			return err
		}
		data, err := l.JSON()
		if err != nil {
			return fmt.Errorf("failed to encode layout: %w", err)
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
}
