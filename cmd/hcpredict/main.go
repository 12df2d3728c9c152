package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/hcpredict/internal/calculation"
	"github.com/rgehrsitz/hcpredict/internal/config"
	"github.com/rgehrsitz/hcpredict/internal/domain"
	"github.com/rgehrsitz/hcpredict/internal/logging"
	"github.com/rgehrsitz/hcpredict/internal/refdata"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds what every command needs once flags are parsed
type app struct {
	settings   *config.Settings
	logger     *zap.Logger
	engine     *calculation.PredictionEngine
	normalizer *config.Normalizer
}

// newApp loads settings, logging and reference data for cmd
func newApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := config.LoadSettings(configPath)
	if err != nil {
		return nil, err
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		settings.DataDir = dataDir
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		settings.Logging.Level = "debug"
	}

	logger, err := logging.New(settings.Logging)
	if err != nil {
		return nil, err
	}

	ref, err := loadReferenceData(settings.DataDir)
	if err != nil {
		return nil, err
	}
	engine, err := calculation.NewPredictionEngine(ref, settings.Model)
	if err != nil {
		return nil, err
	}
	sugar := logger.Sugar()
	engine.SetLogger(sugar)

	return &app{
		settings:   settings,
		logger:     logger,
		engine:     engine,
		normalizer: config.NewNormalizer(sugar),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// loadReferenceData reads dir, or the embedded tables when dir is empty
func loadReferenceData(dir string) (*domain.ReferenceData, error) {
	if dir == "" {
		return refdata.LoadDefault()
	}
	return refdata.Load(dir)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hcpredict %s (commit %s, built %s)\n", version, commit, date)
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				if info := buildInfo(); info != "" {
					fmt.Fprintln(cmd.OutOrStdout(), info)
				}
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hcpredict",
		Short: "Health cost predictor CLI",
		Long: `Estimate a person's annual healthcare cost from age, region, chronic
conditions, family history, lifestyle and insurance status.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Path to settings YAML file")
	root.PersistentFlags().String("data-dir", "", "Directory with reference data (default: embedded tables)")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")

	versionCommand := versionCmd()
	versionCommand.Flags().BoolP("verbose", "v", false, "Include Go build information")

	root.AddCommand(
		predictCmd(),
		validateDataCmd(),
		tablesCmd(),
		lifestyleCmd(),
		compareCmd(),
		batchCmd(),
		serveCmd(),
		versionCommand,
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
