package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"geo-grid/internal/config"
	"geo-grid/internal/platform/logging"
	"geo-grid/internal/platform/obs"
	"geo-grid/internal/render"
	"geo-grid/internal/services"
)

var errUsage = errors.New("usage")

// app carries the wired dependencies shared by every subcommand.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	grid   *services.GridSystem
	out    *render.Renderer
}

// main is the composition root. It loads config, wires the grid and the
// adapters, and dispatches to a subcommand.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gridtool: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "gridtool",
		Short:         "Resolve, enumerate and measure the cells of a rectangular geographic grid.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.HasParent() {
				return nil
			}
			return a.wire(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return usageError("missing command")
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	pf := rootCmd.PersistentFlags()
	pf.String("format", "text", "output format: text, json, geojson, polyline")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.Float64("lat-step", 0.001, "grid latitude step in degrees")
	pf.Float64("lon-step", 0.001, "grid longitude step in degrees")

	rootCmd.AddCommand(
		newCellCmd(a),
		newCellsCmd(a),
		newCoverCmd(a),
		newDistanceCmd(a),
		newNearCmd(a),
		newLinkCmd(a),
	)
	return rootCmd
}

// wire checks the subcommand's flags, then loads config and builds the
// logger, run id, grid and renderer the subcommand runs against.
func (a *app) wire(cmd *cobra.Command) error {
	if err := cmd.ValidateRequiredFlags(); err != nil {
		return usageError("%v", err)
	}
	if err := cmd.ValidateFlagGroups(); err != nil {
		return usageError("%v", err)
	}

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg, config.Get("GEOGRID_APP_NAME", "gridtool"))
	slog.SetDefault(logger)

	runID := uuid.NewString()
	cmd.SetContext(obs.WithRunID(cmd.Context(), runID))
	logger = logger.With("run_id", runID)

	grid, err := services.NewGridSystem(cfg.Surface, cfg.LatStep, cfg.LonStep, services.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("grid ready", "grid", grid.String(), "rows", grid.Rows(), "cols", grid.Cols())

	a.cfg = cfg
	a.logger = logger
	a.grid = grid
	a.out = render.New(cmd.OutOrStdout(), cfg.OutputFormat)
	return nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError("%v", err)
	}
	return nil
}

// usageError reports a bad command line.
func usageError(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), errUsage)
}
