package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultInputDir                 = "./Input"
	defaultOutputDir                = "./Output"
	defaultWindowSize               = 10
	minFilesPerExchange             = 1
	defaultMaxFilesPerExchange      = 2
	defaultFallbackFilesPerExchange = 1
	defaultLogLevel                 = "info"
)

// Config resolved settings of a batch run.
type Config struct {
	InputDir   string
	OutputDir  string
	WindowSize int
	// FilesPerExchange 0 means the operator is asked.
	FilesPerExchange        int
	MinFilesPerExchange     int
	MaxFilesPerExchange     int
	DefaultFilesPerExchange int
	// Seed 0 means offsets are not reproducible.
	Seed uint64
	// JournalDir empty disables the outcome journal.
	JournalDir string
	LogLevel   zapcore.Level
}

// ConfigTmp raw settings as read from yaml, environment and flags.
type ConfigTmp struct {
	InputDir               string `yaml:"input_dir,omitempty"`
	OutputDir              string `yaml:"output_dir,omitempty"`
	WindowSizeStr          string `yaml:"window_size,omitempty"`
	FilesPerExchangeStr    string `yaml:"files_per_exchange,omitempty"`
	MaxFilesPerExchangeStr string `yaml:"max_files_per_exchange,omitempty"`
	SeedStr                string `yaml:"seed,omitempty"`
	JournalDir             string `yaml:"journal_dir,omitempty"`
	LogLevel               string `yaml:"log_level,omitempty"`
}

// env variable names, applied over yaml values
const (
	envInputDir            = "STOCKCAST_INPUT_DIR"
	envOutputDir           = "STOCKCAST_OUTPUT_DIR"
	envWindowSize          = "STOCKCAST_WINDOW_SIZE"
	envFilesPerExchange    = "STOCKCAST_FILES_PER_EXCHANGE"
	envMaxFilesPerExchange = "STOCKCAST_MAX_FILES_PER_EXCHANGE"
	envSeed                = "STOCKCAST_SEED"
	envJournalDir          = "STOCKCAST_JOURNAL_DIR"
	envLogLevel            = "STOCKCAST_LOG_LEVEL"
)

// LoadDotEnv loads variables from a .env file if it exists.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Get resolves the configuration. Precedence, lowest first: defaults, yaml file at
// path (optional), STOCKCAST_* environment variables, non-empty fields of flags.
func Get(path string, flags ConfigTmp) (Config, error) {
	var tmp ConfigTmp
	if path != "" {
		f, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(f, &tmp); err != nil {
			return Config{}, fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	}

	tmp.merge(fromEnv())
	tmp.merge(flags)

	return tmp.resolve()
}

func fromEnv() ConfigTmp {
	return ConfigTmp{
		InputDir:               os.Getenv(envInputDir),
		OutputDir:              os.Getenv(envOutputDir),
		WindowSizeStr:          os.Getenv(envWindowSize),
		FilesPerExchangeStr:    os.Getenv(envFilesPerExchange),
		MaxFilesPerExchangeStr: os.Getenv(envMaxFilesPerExchange),
		SeedStr:                os.Getenv(envSeed),
		JournalDir:             os.Getenv(envJournalDir),
		LogLevel:               os.Getenv(envLogLevel),
	}
}

// merge copies the non-empty fields of o over c.
func (c *ConfigTmp) merge(o ConfigTmp) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.InputDir, o.InputDir)
	set(&c.OutputDir, o.OutputDir)
	set(&c.WindowSizeStr, o.WindowSizeStr)
	set(&c.FilesPerExchangeStr, o.FilesPerExchangeStr)
	set(&c.MaxFilesPerExchangeStr, o.MaxFilesPerExchangeStr)
	set(&c.SeedStr, o.SeedStr)
	set(&c.JournalDir, o.JournalDir)
	set(&c.LogLevel, o.LogLevel)
}

func (c ConfigTmp) resolve() (Config, error) {
	cfg := Config{
		InputDir:                c.InputDir,
		OutputDir:               c.OutputDir,
		WindowSize:              defaultWindowSize,
		MinFilesPerExchange:     minFilesPerExchange,
		MaxFilesPerExchange:     defaultMaxFilesPerExchange,
		DefaultFilesPerExchange: defaultFallbackFilesPerExchange,
		JournalDir:              c.JournalDir,
	}

	if cfg.InputDir == "" {
		cfg.InputDir = defaultInputDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	if cfg.InputDir == cfg.OutputDir {
		return Config{}, fmt.Errorf("input_dir and output_dir must differ, both are %s", cfg.InputDir)
	}

	if c.WindowSizeStr != "" {
		size, err := strconv.Atoi(strings.TrimSpace(c.WindowSizeStr))
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'window_size' param (must be an integer), error: %w", err)
		}
		cfg.WindowSize = size
	}
	if cfg.WindowSize < 1 {
		return Config{}, fmt.Errorf("incorrect 'window_size' param: must be positive, got %d", cfg.WindowSize)
	}

	if c.MaxFilesPerExchangeStr != "" {
		maxFiles, err := strconv.Atoi(strings.TrimSpace(c.MaxFilesPerExchangeStr))
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'max_files_per_exchange' param (must be an integer), error: %w", err)
		}
		cfg.MaxFilesPerExchange = maxFiles
	}
	if cfg.MaxFilesPerExchange < cfg.MinFilesPerExchange {
		return Config{}, fmt.Errorf("incorrect 'max_files_per_exchange' param: must be at least %d, got %d",
			cfg.MinFilesPerExchange, cfg.MaxFilesPerExchange)
	}

	if c.FilesPerExchangeStr != "" {
		n, err := strconv.Atoi(strings.TrimSpace(c.FilesPerExchangeStr))
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'files_per_exchange' param (must be an integer), error: %w", err)
		}
		cfg.FilesPerExchange = n
	}

	if c.SeedStr != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(c.SeedStr), 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'seed' param (must be an unsigned integer), error: %w", err)
		}
		cfg.Seed = seed
	}

	level := c.LogLevel
	if level == "" {
		level = defaultLogLevel
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'log_level' param: %w", err)
	}
	cfg.LogLevel = lvl

	return cfg, nil
}
