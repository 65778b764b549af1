package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidSize   = errors.New("workload size must be positive")
	ErrInvalidRatio  = errors.New("ratio must be within [0, 1]")
	ErrInvalidRepeat = errors.New("repeat must be positive")
	ErrInvalidSlab   = errors.New("arena slab must be positive")
	ErrUnknownTree   = errors.New("unknown tree")
	ErrInvalidOps    = errors.New("check ops and key range must be positive")
	ErrInvalidFormat = errors.New("log format must be console or json")
)

const (
	defaultSize        = 1 << 16
	defaultRemoveRatio = 0.5
	defaultQueryRatio  = 1.0
	defaultRepeat      = 3
	defaultArenaSlab   = 1024
	defaultBenchtime   = "1s"
	defaultCheckOps    = 20000
	defaultKeyRange    = 4096
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
	defaultLogMaxMB    = 16
	defaultLogBackups  = 3
)

// Config holds everything the measure tool reads from file, environment and flags.
type Config struct {
	Workload WorkloadConfig `mapstructure:"workload"`
	Check    CheckConfig    `mapstructure:"check"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// WorkloadConfig drives the run command.
type WorkloadConfig struct {
	Trees       []string `mapstructure:"trees"`
	Size        int      `mapstructure:"size"`
	RemoveRatio float64  `mapstructure:"remove_ratio"`
	QueryRatio  float64  `mapstructure:"query_ratio"`
	Repeat      int      `mapstructure:"repeat"`
	ArenaSlab   int      `mapstructure:"arena_slab"`
	Seed        int64    `mapstructure:"seed"`
	Benchtime   string   `mapstructure:"benchtime"` // passed to the testing package, e.g. "1s" or "10x"
}

// CheckConfig drives the check command.
type CheckConfig struct {
	Ops      int   `mapstructure:"ops"`
	KeyRange int   `mapstructure:"key_range"`
	Seed     int64 `mapstructure:"seed"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Config keys each command's flags override. A key is only bound on the command
// that owns it, so flags sharing a name across commands stay independent.
var (
	runFlagKeys = map[string]string{
		"workload.trees":        "trees",
		"workload.size":         "size",
		"workload.remove_ratio": "remove-ratio",
		"workload.query_ratio":  "query-ratio",
		"workload.repeat":       "repeat",
		"workload.arena_slab":   "arena-slab",
		"workload.seed":         "seed",
		"workload.benchtime":    "benchtime",
	}
	checkFlagKeys = map[string]string{
		"check.ops":           "ops",
		"check.key_range":     "key-range",
		"check.seed":          "seed",
		"workload.arena_slab": "arena-slab",
	}
	logFlagKeys = map[string]string{
		"logging.level":  "log-level",
		"logging.format": "log-format",
		"logging.file":   "log-file",
	}
)

// LoadConfig loads configuration from defaults, an optional YAML file, MEASURE_*
// environment variables and, when cmd is not nil, the flags set on cmd. Only the
// sections cmd uses are validated; a nil cmd validates everything.
func LoadConfig(configPath string, cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("measure")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("MEASURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	command := ""
	if cmd != nil {
		command = cmd.Name()
		for _, keys := range []map[string]string{commandFlagKeys(command), logFlagKeys} {
			for k, name := range keys {
				if f := cmd.Flags().Lookup(name); f != nil {
					if err := v.BindPFlag(k, f); err != nil {
						return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
					}
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg, command); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workload.trees", treeNames)
	v.SetDefault("workload.size", defaultSize)
	v.SetDefault("workload.remove_ratio", defaultRemoveRatio)
	v.SetDefault("workload.query_ratio", defaultQueryRatio)
	v.SetDefault("workload.repeat", defaultRepeat)
	v.SetDefault("workload.arena_slab", defaultArenaSlab)
	v.SetDefault("workload.seed", 0)
	v.SetDefault("workload.benchtime", defaultBenchtime)

	v.SetDefault("check.ops", defaultCheckOps)
	v.SetDefault("check.key_range", defaultKeyRange)
	v.SetDefault("check.seed", 0)

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.format", defaultLogFormat)
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", defaultLogMaxMB)
	v.SetDefault("logging.max_backups", defaultLogBackups)
}

func commandFlagKeys(command string) map[string]string {
	switch command {
	case "run":
		return runFlagKeys
	case "check":
		return checkFlagKeys
	}
	return nil
}

// validateConfig checks the sections command reads. An empty command checks all.
func validateConfig(cfg *Config, command string) error {
	switch command {
	case "run":
		if err := validateWorkload(cfg.Workload); err != nil {
			return err
		}
	case "check":
		if err := validateCheck(cfg.Check, cfg.Workload.ArenaSlab); err != nil {
			return err
		}
	case "":
		if err := validateWorkload(cfg.Workload); err != nil {
			return err
		}
		if err := validateCheck(cfg.Check, cfg.Workload.ArenaSlab); err != nil {
			return err
		}
	}
	return validateLogging(cfg.Logging)
}

func validateWorkload(w WorkloadConfig) error {
	if w.Size <= 0 {
		return ErrInvalidSize
	}
	if w.RemoveRatio < 0 || w.RemoveRatio > 1 {
		return fmt.Errorf("remove_ratio %v: %w", w.RemoveRatio, ErrInvalidRatio)
	}
	if w.QueryRatio < 0 || w.QueryRatio > 1 {
		return fmt.Errorf("query_ratio %v: %w", w.QueryRatio, ErrInvalidRatio)
	}
	if w.Repeat <= 0 {
		return ErrInvalidRepeat
	}
	if w.ArenaSlab <= 0 {
		return ErrInvalidSlab
	}
	for _, name := range w.Trees {
		if !slices.Contains(treeNames, name) {
			return fmt.Errorf("%w %q, want one of %s", ErrUnknownTree, name, strings.Join(treeNames, ", "))
		}
	}
	return nil
}

// validateCheck also takes the arena slab size, the one workload setting check uses.
func validateCheck(c CheckConfig, arenaSlab int) error {
	if c.Ops <= 0 || c.KeyRange <= 0 {
		return ErrInvalidOps
	}
	if arenaSlab <= 0 {
		return ErrInvalidSlab
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	if _, err := zerolog.ParseLevel(strings.ToLower(l.Level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch l.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidFormat, l.Format)
	}
	return nil
}
