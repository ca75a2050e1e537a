// Package main is the entry point for the Verdanta report engine CLI.
// Verdanta turns environmental-impact data into paginated PDF reports.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verdanta/verdanta/consts"
	"github.com/verdanta/verdanta/internal/config"
	"github.com/verdanta/verdanta/internal/model"
	"github.com/verdanta/verdanta/internal/report"
	"github.com/verdanta/verdanta/internal/report/template"
	"github.com/verdanta/verdanta/internal/storage"
	"github.com/verdanta/verdanta/pkg/errors"
	"github.com/verdanta/verdanta/pkg/logger"
)

// Build information - set via ldflags during build
// These variables are linked to consts package for global access
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// init synchronizes build info to consts package for global access
func init() {
	consts.Version = Version
	consts.BuildTime = BuildTime
	consts.GitCommit = GitCommit
}

// configPath holds the path to the configuration file
var configPath string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "verdanta",
	Short: "Verdanta - Sustainability Report Generation Engine",
	Long: `Verdanta renders life cycle assessment and sustainability reports as
paginated PDF documents from structured environmental-impact data.`,
}

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a report request into a PDF document",
	Long: `Render reads a report request (JSON) and produces a paginated PDF.

Example:
  verdanta render --input request.json --variant lca --output report.pdf`,
	RunE: runRender,
}

// variantsCmd lists the supported template variants
var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List supported template variants",
	Run: func(cmd *cobra.Command, args []string) {
		for _, v := range template.SupportedVariants() {
			fmt.Println(v)
		}
	},
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		color.New(color.FgGreen, color.Bold).Printf("%s %s\n", consts.ProjectName, Version)
		fmt.Printf("  Build Time: %s\n", BuildTime)
		fmt.Printf("  Git Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (optional)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(versionCmd)

	renderCmd.Flags().String("input", "", "report request JSON file (required)")
	renderCmd.Flags().String("output", "report.pdf", "output PDF file path")
	renderCmd.Flags().String("variant", template.VariantComprehensive, "template variant")
	_ = renderCmd.MarkFlagRequired("input")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRender loads the configuration and request, then runs the engine.
func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", zap.Error(err))
		os.Exit(errors.ExitCodeConfigValidation)
	}

	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	variant, _ := cmd.Flags().GetString("variant")

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}

	var req model.ReportRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse request file: %w", err)
	}

	ctx := context.Background()

	var store storage.ObjectStore
	if cfg.Storage.Endpoint != "" {
		connectCtx, cancel := context.WithTimeout(ctx, cfg.Storage.Timeout)
		store, err = storage.NewMinioStore(connectCtx, cfg.Storage)
		cancel()
		if err != nil {
			// The embedder degrades to placeholders without a store
			logger.Warn("Object store unavailable, images will use placeholders", zap.Error(err))
			store = nil
		}
	}

	engine := report.New(cfg.Report, store)

	startTime := time.Now()
	doc, err := engine.Generate(ctx, &req, variant)
	if err != nil {
		return fmt.Errorf("report generation failed: %w", err)
	}

	if err := os.WriteFile(outputPath, doc.Data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logger.Info("Report written",
		zap.String("path", outputPath),
		zap.String("variant", doc.Variant),
		zap.Int("size", len(doc.Data)),
		zap.Duration("duration", time.Since(startTime)),
	)
	return nil
}

// loadConfig loads the configuration file, or defaults when none is given.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	return cfg, nil
}
