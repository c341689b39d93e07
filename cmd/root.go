package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/DataBuoy/databuoy-cli/internal/ai"
	cfgpkg "github.com/DataBuoy/databuoy-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile     string
	debug       bool
	flagDataset string
	flagModel   string
	flagProv    string
	flagTimeout int

	// Loaded configuration and logger
	cfg       *cfgpkg.Global
	logger    *slog.Logger
	logCloser func() error
)

var rootCmd = &cobra.Command{
	Use:   "databuoy",
	Short: "DataBuoy CLI: ask an AI model questions about the Titanic dataset",
	Long: `DataBuoy loads the Titanic passenger dataset, describes it to an AI
model, and runs the small table program the model writes back. Answers,
printed output, and chart specs come from real dataset values, never from
the model's memory.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	defer closeLogger()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		closeLogger()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.databuoy/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagDataset, "dataset", "", "path to the Titanic dataset (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "model to query (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagProv, "provider", "", "model provider: openrouter or ollama (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("dataset") && flagDataset != "" {
		cfg.DatasetPath = flagDataset
	}
	if f.Changed("model") && flagModel != "" {
		cfg.DefaultModel = flagModel
	}
	if f.Changed("provider") && flagProv != "" {
		cfg.DefaultProvider = flagProv
	}
	if f.Changed("http-timeout") && flagTimeout > 0 {
		cfg.HTTPTimeoutSec = flagTimeout
	}

	level := cfgpkg.ParseLevel(cfg.LogLevel)
	if debug {
		level = slog.LevelDebug
	}
	logger, logCloser = cfgpkg.SetupLogger(cfg.LogFile, level)
	slog.SetDefault(logger)
}

func closeLogger() {
	if logCloser != nil {
		_ = logCloser()
		logCloser = nil
	}
}

// buildRuntime resolves a model runtime from the effective config. Missing
// credentials and unknown providers are startup errors, not per-query ones.
func buildRuntime() (ai.Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}
	provider := cfg.DefaultProvider
	if provider == "" {
		provider = ai.ProviderOpenRouter
	}
	if provider == ai.ProviderOpenRouter && cfg.APIKey == "" {
		return nil, fmt.Errorf("api_key is not set: run 'databuoy config set api_key <key>' or export DATABUOY_API_KEY")
	}
	rt, ok := ai.GetRuntime(provider, ai.RuntimeConfig{
		HTTPTimeout: time.Duration(cfg.HTTPTimeoutSec) * time.Second,
		APIKey:      cfg.APIKey,
		Host:        cfg.OllamaHost,
	})
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (use openrouter or ollama)", provider)
	}
	return rt, nil
}
