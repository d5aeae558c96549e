// Command gdp-export converts the World Bank GDP CSV export into the JSON
// document read by the world map.
//
// @title GDP Export API
// @version 1.0
// @description Regenerates and serves the GDP by country document used by the world map.
// @host localhost:8080
// @BasePath /api/v1
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gdp-pipeline/internal/config"
	"gdp-pipeline/internal/logger"
	"gdp-pipeline/internal/pipeline"
	"gdp-pipeline/internal/store"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	inputPath  string
	outputPath string
	historyDB  string
	verbose    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gdp-export",
	Short: "Convert the World Bank GDP CSV into the world map JSON document",
	Long: `Reads the World Bank GDP export (indicator NY.GDP.MKTP.CD), keeps the
rows of ISO-3 countries, and writes their GDP by year, their latest figure and
the legend statistics to a single JSON file.

With no flags the default paths are used:
  public/API_NY.GDP.MKTP.CD_DS2_fr_csv_v2_22456.csv -> public/gdp_by_country.json`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runExport,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default gdp-export.yaml when present)")
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "input CSV file")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "output JSON file")
	rootCmd.PersistentFlags().StringVar(&historyDB, "history-db", "", "SQLite database recording export runs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
}

// setup loads .env, the config file, the environment and the flags, in
// increasing order of precedence, then builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env") // optional

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	loaded.ApplyEnv()
	if inputPath != "" {
		loaded.Input = inputPath
	}
	if outputPath != "" {
		loaded.Output = outputPath
	}
	if historyDB != "" {
		loaded.HistoryDB = historyDB
	}
	if verbose {
		loaded.Logging.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := logger.Setup(loaded.Logging.Level, loaded.Logging.Format); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	defer logger.Sync()
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(cmd.OutOrStdout(), "🚀 Converting GDP data...")

	runID, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	res, export, err := pipeline.Execute(ctx, runID, cfg.Job(), cfg.PipelineOptions())
	if err != nil {
		return err
	}

	pipeline.PrintSummary(cmd.OutOrStdout(), res, export.Path)
	fmt.Fprintln(cmd.OutOrStdout(), "✅ Conversion finished")
	return nil
}

// openHistory opens the run history when one is configured and records a
// new pending run. It returns an empty id when history is disabled.
func openHistory() (string, error) {
	if cfg.HistoryDB == "" {
		return "", nil
	}
	if err := store.InitDB(cfg.HistoryDB); err != nil {
		return "", fmt.Errorf("failed to open run history: %w", err)
	}

	runID := uuid.New().String()
	if err := store.SaveRun(runID, cfg.Job()); err != nil {
		// history is best effort; the export still runs untracked
		logger.L().Warn("save_run_error", zap.String("run_id", runID), zap.Error(err))
		return "", nil
	}
	return runID, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
