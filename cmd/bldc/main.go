package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ja7ad/bldc/pkg/bldc"
	"github.com/ja7ad/bldc/pkg/chart"
	"github.com/ja7ad/bldc/pkg/config"
	"github.com/ja7ad/bldc/pkg/report"
)

type opts struct {
	// model
	configPath string
	model      bldc.Config

	// outputs
	plotDir     string
	noPlots     bool
	tableStride int
	csvPath     string
	jsonPath    string
	htmlPath    string
	printConfig bool

	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o opts

	root := &cobra.Command{
		Use:   "bldc",
		Short: "BLDC motor steady-state performance and loss model",
		Long: `The bldc tool sweeps a brushless / PM DC motor from standstill to no-load
speed at a fixed bus voltage and reports torque, current, copper and core
losses, efficiency, and a lumped steady-state case temperature at the
worst-loss point.

Parameters come from the built-in reference motor, then an optional YAML
file (--config), then any flags given explicitly.

Examples:
  bldc
  bldc --kv 400 --bus-voltage 22.2 --resistance 0.08 -o plots/400kv
  bldc -c motor.yaml --csv out/sweep.csv --json out/sweep.json --no-plots`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if o.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, o)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), o, cfg)
		},
		Args: cobra.NoArgs,
	}

	bindFlags(root.Flags(), &o)
	return root
}

// resolveConfig layers defaults, the optional YAML file and explicit flags.
func resolveConfig(cmd *cobra.Command, o opts) (bldc.Config, error) {
	cfg := bldc.DefaultConfig()
	cfg.BaseSpeedRPM = 0
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return bldc.Config{}, err
		}
		cfg = loaded
		slog.Debug("loaded config", "path", o.configPath)
	}
	overlay(cmd.Flags(), cfg, o.model)
	config.ResolveBaseSpeed(cfg)
	return *cfg, nil
}

func run(w io.Writer, o opts, cfg bldc.Config) error {
	if o.printConfig {
		return config.Encode(w, &cfg)
	}

	res, err := bldc.Evaluate(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	slog.Debug("model evaluated", "samples", len(res.Points), "ke", res.BackEMFConstant, "max_loss_w", res.MaxLoss)

	if err := report.Summary(w, cfg, res); err != nil {
		return err
	}
	if o.tableStride > 0 {
		fmt.Fprintln(w)
		if err := report.Table(w, res, o.tableStride); err != nil {
			return err
		}
	}

	if o.csvPath != "" {
		if err := writeFile(o.csvPath, func(f io.Writer) error { return report.WriteCSV(f, res) }); err != nil {
			return err
		}
	}
	if o.jsonPath != "" {
		if err := writeFile(o.jsonPath, func(f io.Writer) error { return report.WriteJSON(f, cfg, res) }); err != nil {
			return err
		}
	}
	if o.htmlPath != "" {
		if err := writeFile(o.htmlPath, func(f io.Writer) error { return report.WriteHTML(f, cfg, res) }); err != nil {
			return err
		}
	}

	if o.noPlots {
		return nil
	}
	outdir, err := chart.WriteAll(o.plotDir, res)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "[DONE] Plots saved in: %s\n", outdir)
	return nil
}

// writeFile creates path (and its parent directory) and hands it to render.
func writeFile(path string, render func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("wrote", "path", path)
	return nil
}
