package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"worktime.db"`

	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"`
	} `yaml:"log"`

	Server struct {
		Port         int `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
		ReadTimeout  int `yaml:"read_timeout" env-default:"15"`
		WriteTimeout int `yaml:"write_timeout" env-default:"15"`
		IdleTimeout  int `yaml:"idle_timeout" env-default:"60"`
	} `yaml:"server"`

	Accounting Accounting `yaml:"accounting"`
}

// Accounting holds the reconciliation knobs. The quota and scan bound
// drive the editable window; the scan bound is a degradation boundary,
// not a principled limit (see EditableWindow.Truncated).
type Accounting struct {
	WorkingDayQuota    int     `yaml:"working_day_quota" env:"WORKING_DAY_QUOTA" env-default:"3"`
	MaxScanDays        int     `yaml:"max_scan_days" env:"MAX_SCAN_DAYS" env-default:"30"`
	StandardDailyHours float64 `yaml:"standard_daily_hours" env:"STANDARD_DAILY_HOURS" env-default:"8"`
	MaxDailyHours      float64 `yaml:"max_daily_hours" env:"MAX_DAILY_HOURS" env-default:"24"`
}

// LoadConfig reads the YAML file at path with environment overrides.
// A missing file is not an error; the environment and defaults are
// used instead.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
	}

	if cfg.Accounting.WorkingDayQuota <= 0 {
		return nil, fmt.Errorf("working_day_quota must be positive, got %d", cfg.Accounting.WorkingDayQuota)
	}
	if cfg.Accounting.MaxScanDays < cfg.Accounting.WorkingDayQuota {
		return nil, fmt.Errorf("max_scan_days (%d) must be at least working_day_quota (%d)",
			cfg.Accounting.MaxScanDays, cfg.Accounting.WorkingDayQuota)
	}
	if cfg.Accounting.MaxDailyHours <= 0 {
		return nil, fmt.Errorf("max_daily_hours must be positive, got %v", cfg.Accounting.MaxDailyHours)
	}

	return &cfg, nil
}
