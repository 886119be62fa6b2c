package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/boy-johnny/fraud-data/config"
	"github.com/boy-johnny/fraud-data/render"
	"github.com/boy-johnny/fraud-data/services"
	"github.com/boy-johnny/fraud-data/storage"
	"github.com/boy-johnny/fraud-data/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		input    string
		out      string
		encoding string
		logLevel string
		png      bool
	)

	cmd := &cobra.Command{
		Use:           "fraud-data",
		Short:         "Analyse LINE ID fraud reports by month and weekday",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("input") {
				cfg.InputPath = input
			}
			if flags.Changed("out") {
				cfg.OutputDir = out
			}
			if flags.Changed("encoding") {
				cfg.Encoding = encoding
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("png") {
				cfg.RenderPNG = png
			}
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "path to the report CSV (env FRAUD_INPUT_PATH)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory for charts and exports (env FRAUD_OUTPUT_DIR)")
	cmd.Flags().StringVar(&encoding, "encoding", "", "input encoding: utf-8 or big5 (env FRAUD_ENCODING)")
	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn, error (env FRAUD_LOG_LEVEL)")
	cmd.Flags().BoolVar(&png, "png", false, "also rasterise charts to PNG with headless Chrome (env FRAUD_RENDER_PNG)")
	return cmd
}

// newPipeline builds a run-tagged logger and the pipeline that shares it.
func newPipeline(cfg *config.Config, out io.Writer) (*services.Pipeline, *utils.Logger) {
	runID := services.NewRunID()
	logger := utils.NewLoggerWithWriter(out, cfg.LogLevel).WithRun(runID)

	loader := storage.NewCSVLoader(logger, cfg.Encoding, cfg.ShowProgress)
	return services.NewPipeline(runID, logger, loader, time.Local), logger
}

func run(ctx context.Context, cfg *config.Config) error {
	pipeline, logger := newPipeline(cfg, os.Stdout)

	logger.Info("=== LINE ID fraud report analysis starting ===")
	logger.Info("Config: input: %s | encoding: %s | output: %s", cfg.InputPath, cfg.Encoding, cfg.OutputDir)

	analysis, err := pipeline.Run(cfg.InputPath)
	if err != nil {
		logger.Error("Analysis failed: %v", err)
		return err
	}

	pipeline.Insights().Print(analysis, cfg.SampleRows, cfg.RecentMonths)

	if cfg.ExportCSV {
		csvWriter, err := storage.NewCSVWriter(cfg.OutputDir)
		if err != nil {
			logger.Error("Failed to create CSV writer: %v", err)
		} else if err := csvWriter.Write(analysis); err != nil {
			logger.Error("CSV export failed: %v", err)
		} else {
			logger.Info("Reports and counts exported to %s", cfg.OutputDir)
		}
	}

	if cfg.RenderXLSX {
		if _, err := render.NewXLSXRenderer(logger).Render(analysis, cfg.OutputDir); err != nil {
			logger.Error("Workbook render failed: %v", err)
		}
	}

	if cfg.RenderHTML || cfg.RenderPNG {
		htmlPath, err := render.NewHTMLRenderer(logger, cfg.FontFamily).Render(analysis, cfg.OutputDir)
		if err != nil {
			logger.Error("Chart page render failed: %v", err)
		} else if cfg.RenderPNG {
			pngRenderer := render.NewPNGRenderer(logger, cfg.ChromeBin, cfg.RenderRetries)
			if _, err := pngRenderer.Render(ctx, htmlPath, cfg.OutputDir); err != nil {
				logger.Error("PNG render failed: %v", err)
			}
		}
	}

	logger.Info("Done. %d reports analysed, %d rows dropped, outputs in %s",
		len(analysis.Reports), analysis.Dropped, cfg.OutputDir)
	return nil
}
