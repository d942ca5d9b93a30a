package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nitin85058/VEYA/internal/config"
	"github.com/nitin85058/VEYA/internal/health"
	"github.com/nitin85058/VEYA/internal/logging"
	"github.com/nitin85058/VEYA/internal/pipeline"
	"github.com/nitin85058/VEYA/internal/vision"
	"github.com/nitin85058/VEYA/internal/vlm"
)

var (
	// Global flags
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veya",
	Short: "VEYA - Industrial equipment health analyzer",
	Long: `VEYA analyzes photographs of industrial electrical equipment.

Each image is classified into an equipment category (UPS, transformer,
stabilizer, PCB, meter, breaker panel, battery pack), scanned for visible
damage, OCR'd for nameplate text, parsed into structured fields, and
scored for health against a fixed rule table.

Run "veya serve" for the web dashboard or "veya analyze" for one-shot
terminal analysis.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		path := cfgPath
		if path == "" {
			if _, statErr := os.Stat("veya.yaml"); statErr == nil {
				path = "veya.yaml"
			}
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		if err := logging.Initialize(cfg.Logging.Dir, level, cfg.Logging.Format == "json"); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		if err := logging.InitAudit(); err != nil {
			return fmt.Errorf("failed to open audit trail: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAudit()
		logging.CloseAll()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config file (default: veya.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildRunner wires the cloud clients and active rules from config.
func buildRunner() (*pipeline.Runner, *health.ActiveRules, vlm.Client, error) {
	if err := cfg.RequireKeys(); err != nil {
		return nil, nil, nil, err
	}

	ocr := vision.NewClientWithConfig(vision.Config{
		APIKey:  cfg.Vision.APIKey,
		BaseURL: cfg.Vision.BaseURL,
		Timeout: cfg.GetVisionTimeout(),
	})

	model, err := vlm.New(vlm.Config{
		APIKey:          cfg.Gemini.APIKey,
		BaseURL:         cfg.Gemini.BaseURL,
		Model:           cfg.Gemini.Model,
		Backend:         cfg.Gemini.Backend,
		Timeout:         cfg.GetGeminiTimeout(),
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		Temperature:     cfg.Gemini.Temperature,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create vision-model client: %w", err)
	}

	rules, err := health.LoadRules(cfg.Health.RulesPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load scoring rules: %w", err)
	}
	active := health.NewActiveRules(rules)

	return pipeline.NewRunner(ocr, model, active), active, model, nil
}

// closeClient releases backend resources when the client holds any.
func closeClient(model vlm.Client) {
	if closer, ok := model.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("failed to close vision-model client", zap.Error(err))
		}
	}
}
