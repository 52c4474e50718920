package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexiusacademia/goliq/internal/config"
	"github.com/alexiusacademia/goliq/internal/version"
)

var (
	verbose    bool
	configPath string
	envFile    string

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "goliq",
	Short: "Liquefaction assessment from boring-log XML",
	Long: `goliq - Go Liquefaction Assessment

A CLI tool that reads Japanese boring-log XML files and computes the
factor of safety against liquefaction (FL) at every SPT depth, following
the simplified method of the Japan Road Association (JRA) Specifications
for Highway Bridges, Part V (2012 / 2017).

This tool helps geotechnical engineers:
  - Parse boring logs (Shift_JIS / CP932 / UTF-8)
  - Derive the design seismic coefficient Khgl
  - Compute L, R and FL per SPT depth
  - Export results to CSV, JSON, XLSX and PDF
  - Assess whole directories of boreholes at once`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		// Initialize logger
		zc := zap.NewProductionConfig()
		if cfg.Logging.Level != "" {
			lvl, err := zapcore.ParseLevel(cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("invalid logging level: %w", err)
			}
			zc.Level = zap.NewAtomicLevelAt(lvl)
		}
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   goliq v%-49s║\n", version.Version)
		fmt.Println("  ║   Go Liquefaction Assessment (JRA simplified method)      ║")
		fmt.Printf("  ║   %-56s║\n", fmt.Sprintf("%s ©  %s", version.Author, version.Year))
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Computes the factor of safety against liquefaction (FL)")
		fmt.Println("  from boring-log XML files.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • JRA 2012 / 2017 seismic coefficient (Khgl) tables")
		fmt.Println("    • σv, σ'v, L, N1, Na, RL and FL per SPT depth")
		fmt.Println("    • Soil property tables and class name checks")
		fmt.Println("    • CSV, JSON, XLSX and PDF reports, depth profile charts")
		fmt.Println("    • Parallel batch runs with a parse cache")
		fmt.Println()
		fmt.Println("  Use 'goliq --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "goliq.yaml", "Configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before the configuration")
}
