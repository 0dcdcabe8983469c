// Command stockcast samples a window of prices from the first stock files of every
// exchange directory and writes it back with a three-day forecast appended.
//
// Usage:
//
//	stockcast --config config.yaml
//	stockcast --input ./Input --output ./Output --files 2
//	stockcast --journal ./wal/outcomes --history
//
// Settings can also come from a .env file or STOCKCAST_* environment variables.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vadiminshakov/stockcast/config"
	"github.com/vadiminshakov/stockcast/internal/batch"
	"github.com/vadiminshakov/stockcast/internal/domain"
	"github.com/vadiminshakov/stockcast/internal/report"
	"github.com/vadiminshakov/stockcast/internal/services/forecaster"
	"github.com/vadiminshakov/stockcast/internal/services/sampler"
	"github.com/vadiminshakov/stockcast/internal/setup"
	"github.com/vadiminshakov/stockcast/internal/storage/runjournal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath  string
	flagValues  config.ConfigTmp
	showHistory bool
)

var rootCmd = &cobra.Command{
	Use:           "stockcast",
	Short:         "Forecast the next three prices of sampled stock files",
	Long:          `stockcast walks every exchange folder of the input directory, samples consecutive prices from the first files of each and writes them with three forecast rows to a mirrored output tree.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(".env"); err != nil {
			return err
		}

		cfg, err := config.Get(configPath, flagValues)
		if err != nil {
			return errors.Wrap(err, "failed to get configuration")
		}

		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		defer logger.Sync()

		if showHistory {
			return printHistory(cfg)
		}

		return run(cfg, logger)
	},
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "time"
	return cfg.Build()
}

func run(cfg config.Config, logger *zap.Logger) error {
	bounds := setup.Bounds{
		Min:     cfg.MinFilesPerExchange,
		Max:     cfg.MaxFilesPerExchange,
		Default: cfg.DefaultFilesPerExchange,
	}
	files, valid, err := setup.FilesPerExchange(setup.HuhPrompter{Out: os.Stdout}, cfg.FilesPerExchange, bounds)
	if err != nil {
		return errors.Wrap(err, "failed to read number of files")
	}
	if !valid {
		logger.Warn("input was invalid, default selected", zap.Int("files_per_exchange", files))
	}

	var samplerOpts []sampler.Option
	if cfg.Seed != 0 {
		samplerOpts = append(samplerOpts, sampler.WithSeed(cfg.Seed))
	}

	// left as a nil interface when journaling is off
	var journal interface {
		Save(domain.FileOutcome) error
	}
	if cfg.JournalDir != "" {
		store, err := runjournal.NewWALStore(cfg.JournalDir)
		if err != nil {
			return err
		}
		defer store.Close()
		journal = store
	}

	runner, err := batch.NewRunner(batch.Settings{
		InputDir:         cfg.InputDir,
		OutputDir:        cfg.OutputDir,
		WindowSize:       cfg.WindowSize,
		FilesPerExchange: files,
	}, sampler.New(samplerOpts...), forecaster.New(), journal, logger)
	if err != nil {
		return err
	}

	rep, err := runner.Run()
	if err != nil {
		return err
	}

	rep.Render(os.Stdout)
	return nil
}

func printHistory(cfg config.Config) error {
	if cfg.JournalDir == "" {
		return errors.New("--history requires a journal directory (--journal or journal_dir)")
	}

	journal, err := runjournal.NewWALStore(cfg.JournalDir)
	if err != nil {
		return err
	}
	defer journal.Close()

	outcomes, err := journal.Outcomes()
	if err != nil {
		return err
	}

	report.RenderOutcomes(os.Stdout, outcomes)
	return nil
}

func main() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "path to yaml config")
	flags.StringVarP(&flagValues.InputDir, "input", "i", "", "input directory with one folder per exchange (default ./Input)")
	flags.StringVarP(&flagValues.OutputDir, "output", "o", "", "output directory, mirrored from input (default ./Output)")
	flags.StringVarP(&flagValues.WindowSizeStr, "window", "w", "", "number of consecutive rows to sample (default 10)")
	flags.StringVarP(&flagValues.FilesPerExchangeStr, "files", "n", "", "files to process per exchange; asked interactively when unset")
	flags.StringVar(&flagValues.MaxFilesPerExchangeStr, "max-files", "", "upper bound for files per exchange (default 2)")
	flags.StringVar(&flagValues.SeedStr, "seed", "", "seed for reproducible sampling")
	flags.StringVar(&flagValues.JournalDir, "journal", "", "directory of the outcome journal; disabled when empty")
	flags.StringVar(&flagValues.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&showHistory, "history", false, "print outcomes stored in the journal and exit")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
