// Package config provides configuration management for zappi using Viper.
package config

import (
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/zappi/internal/errors"
	"github.com/thoreinstein/zappi/internal/logging"
	"github.com/thoreinstein/zappi/internal/paths"
)

// EnvPrefix is the prefix for environment overrides, e.g. ZAPPI_STORE_PATH.
const EnvPrefix = "ZAPPI"

// Config represents the top-level configuration structure.
type Config struct {
	Store   StoreConfig   `mapstructure:"store" yaml:"store"`
	Backup  BackupConfig  `mapstructure:"backup" yaml:"backup"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Detect  DetectConfig  `mapstructure:"detect" yaml:"detect"`
	Install InstallConfig `mapstructure:"install" yaml:"install"`
}

// StoreConfig locates the record store.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// BackupConfig controls store snapshots.
type BackupConfig struct {
	Dir       string `mapstructure:"dir" yaml:"dir"`
	Retention int    `mapstructure:"retention" yaml:"retention"`
}

// LogConfig controls the diagnostic error log. An empty ErrorFile disables it.
type LogConfig struct {
	ErrorFile string `mapstructure:"error_file" yaml:"error_file"`
}

// DetectConfig tunes detection.
type DetectConfig struct {
	MaxResults int           `mapstructure:"max_results" yaml:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// InstallConfig tunes the installation orchestrator and its backend.
type InstallConfig struct {
	Backend  string         `mapstructure:"backend" yaml:"backend"`
	Workers  int            `mapstructure:"workers" yaml:"workers"`
	Timeout  time.Duration  `mapstructure:"timeout" yaml:"timeout"`
	Simulate SimulateConfig `mapstructure:"simulate" yaml:"simulate"`
}

// SimulateConfig tunes the simulated install backend.
type SimulateConfig struct {
	SuccessRate float64       `mapstructure:"success_rate" yaml:"success_rate"`
	MinDelay    time.Duration `mapstructure:"min_delay" yaml:"min_delay"`
	MaxDelay    time.Duration `mapstructure:"max_delay" yaml:"max_delay"`
}

// Default values.
const (
	DefaultBackupRetention = 5
	DefaultDetectTimeout   = 15 * time.Second
	DefaultInstallBackend  = "simulated"
	DefaultInstallWorkers  = 1
	DefaultInstallTimeout  = 10 * time.Minute
	DefaultSuccessRate     = 0.8
	DefaultMinDelay        = time.Second
	DefaultMaxDelay        = 3 * time.Second
)

// Init resets the global Viper instance and installs the defaults.
// Call it before Load; flag bindings must be added afterwards.
func Init() {
	viper.Reset()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("store.path", d.Store.Path)
	viper.SetDefault("backup.dir", d.Backup.Dir)
	viper.SetDefault("backup.retention", d.Backup.Retention)
	viper.SetDefault("log.error_file", d.Log.ErrorFile)
	viper.SetDefault("detect.max_results", d.Detect.MaxResults)
	viper.SetDefault("detect.timeout", d.Detect.Timeout)
	viper.SetDefault("install.backend", d.Install.Backend)
	viper.SetDefault("install.workers", d.Install.Workers)
	viper.SetDefault("install.timeout", d.Install.Timeout)
	viper.SetDefault("install.simulate.success_rate", d.Install.Simulate.SuccessRate)
	viper.SetDefault("install.simulate.min_delay", d.Install.Simulate.MinDelay)
	viper.SetDefault("install.simulate.max_delay", d.Install.Simulate.MaxDelay)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store:  StoreConfig{Path: paths.StoreFile()},
		Backup: BackupConfig{Dir: paths.BackupDir(), Retention: DefaultBackupRetention},
		Log:    LogConfig{ErrorFile: logging.DefaultErrorLogFile},
		Detect: DetectConfig{Timeout: DefaultDetectTimeout},
		Install: InstallConfig{
			Backend: DefaultInstallBackend,
			Workers: DefaultInstallWorkers,
			Timeout: DefaultInstallTimeout,
			Simulate: SimulateConfig{
				SuccessRate: DefaultSuccessRate,
				MinDelay:    DefaultMinDelay,
				MaxDelay:    DefaultMaxDelay,
			},
		},
	}
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// Implicit load falls back to defaults.
			if path != "" {
				return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
			}
		case path != "" && isNotExist(err):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	cfg.Store.Path = paths.ExpandHome(cfg.Store.Path)
	cfg.Backup.Dir = paths.ExpandHome(cfg.Backup.Dir)

	return &cfg, nil
}

// ConfigFileUsed returns the config file Viper read, or "" when running on
// defaults.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
