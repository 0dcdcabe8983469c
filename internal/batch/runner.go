// Package batch walks exchange directories and forecasts every selected stock file.
package batch

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/stockcast/internal/domain"
	"github.com/vadiminshakov/stockcast/internal/report"
	"github.com/vadiminshakov/stockcast/internal/storage/pricecsv"
	"go.uber.org/zap"
)

type windowSampler interface {
	Sample(rows []domain.Row, windowSize int) ([]domain.Row, error)
}

type windowExtender interface {
	Extend(window []domain.Row) ([]domain.Row, error)
}

type outcomeJournal interface {
	Save(outcome domain.FileOutcome) error
}

// Settings controls what a run reads and writes.
type Settings struct {
	InputDir         string
	OutputDir        string
	WindowSize       int
	FilesPerExchange int
}

// Runner processes exchanges one file at a time.
type Runner struct {
	settings   Settings
	sampler    windowSampler
	forecaster windowExtender
	journal    outcomeJournal
	logger     *zap.Logger
}

// NewRunner creates a Runner. journal may be nil.
func NewRunner(settings Settings, s windowSampler, f windowExtender, j outcomeJournal, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if s == nil || f == nil {
		return nil, errors.New("sampler and forecaster are required")
	}
	if settings.WindowSize < 1 {
		return nil, errors.Wrapf(domain.ErrInvalidWindowSize, "got %d", settings.WindowSize)
	}
	if settings.FilesPerExchange < 1 {
		return nil, errors.Errorf("files per exchange must be positive, got %d", settings.FilesPerExchange)
	}

	return &Runner{
		settings:   settings,
		sampler:    s,
		forecaster: f,
		journal:    j,
		logger:     logger,
	}, nil
}

// Run processes every exchange under the input directory. File-level failures are
// logged and recorded in the report; only an unreadable input root or an output root
// that cannot be created stops the run.
func (r *Runner) Run() (*report.Report, error) {
	runID := uuid.New().String()
	rep := report.New(runID, time.Now())
	logger := r.logger.With(zap.String("run_id", runID))

	exchanges, err := os.ReadDir(r.settings.InputDir)
	if err != nil {
		return nil, errors.Wrapf(err, "read input directory %s", r.settings.InputDir)
	}
	if err := os.MkdirAll(r.settings.OutputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", r.settings.OutputDir)
	}

	logger.Info("batch started",
		zap.String("input", r.settings.InputDir),
		zap.String("output", r.settings.OutputDir),
		zap.Int("window_size", r.settings.WindowSize),
		zap.Int("files_per_exchange", r.settings.FilesPerExchange))

	for _, entry := range exchanges {
		if !entry.IsDir() {
			logger.Debug("skipping non-directory entry", zap.String("name", entry.Name()))
			continue
		}
		r.runExchange(logger, rep, entry.Name())
	}

	rep.FinishedAt = time.Now()
	logger.Info("batch finished",
		zap.Int("files", len(rep.Outcomes)),
		zap.Int("failed", rep.Failed()),
		zap.Duration("took", rep.FinishedAt.Sub(rep.StartedAt)))

	return rep, nil
}

func (r *Runner) runExchange(logger *zap.Logger, rep *report.Report, exchange string) {
	logger = logger.With(zap.String("exchange", exchange))

	outDir := filepath.Join(r.settings.OutputDir, exchange)
	if _, err := os.Stat(outDir); err == nil {
		logger.Info("output folder already exists", zap.String("dir", outDir))
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		logger.Error("failed to create output folder, skipping exchange", zap.String("dir", outDir), zap.Error(err))
		return
	}

	entries, err := os.ReadDir(filepath.Join(r.settings.InputDir, exchange))
	if err != nil {
		logger.Error("failed to list exchange, skipping", zap.Error(err))
		return
	}

	processed := 0
	for _, entry := range entries {
		if processed >= r.settings.FilesPerExchange {
			break
		}
		if entry.IsDir() {
			continue
		}
		processed++

		stock := entry.Name()
		rows, err := r.processFile(
			filepath.Join(r.settings.InputDir, exchange, stock),
			filepath.Join(outDir, stock),
		)
		outcome := domain.NewFileOutcome(rep.RunID, exchange, stock, rows, err, time.Now())
		rep.Add(outcome)

		fileLogger := logger.With(zap.String("stock", stock), zap.String("status", string(outcome.Status)))
		if err != nil {
			fileLogger.Warn("stock file skipped", zap.Error(err))
		} else {
			fileLogger.Info("forecast written", zap.Int("rows", rows))
		}

		if r.journal != nil {
			if err := r.journal.Save(outcome); err != nil {
				fileLogger.Error("failed to journal outcome", zap.Error(err))
			}
		}
	}
}

// processFile runs load, sample, extend and save for one stock and returns the
// number of rows written.
func (r *Runner) processFile(src, dst string) (int, error) {
	rows, err := pricecsv.Load(src)
	if err != nil {
		return 0, err
	}

	window, err := r.sampler.Sample(rows, r.settings.WindowSize)
	if err != nil {
		return 0, errors.Wrap(err, src)
	}

	extended, err := r.forecaster.Extend(window)
	if err != nil {
		return 0, errors.Wrap(err, src)
	}

	if err := pricecsv.Save(dst, extended); err != nil {
		return 0, err
	}

	return len(extended), nil
}
