package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Business Business       `toml:"business"`
	Calendar CalendarConfig `toml:"calendar"`
	Export   ExportConfig   `toml:"export"`
	Rates    RatesConfig    `toml:"rates"`
	Notify   NotifyConfig   `toml:"notifications"`
}

type Business struct {
	Name     string `toml:"name"`
	Timezone string `toml:"timezone"`
}

type CalendarConfig struct {
	// Source is "google", an ICS URL, or an ICS file path.
	Source       string `toml:"source"`
	GoogleID     string `toml:"google_calendar_id"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	SyncDays     int    `toml:"sync_days"`
}

type ExportConfig struct {
	GroupBy         string `toml:"group_by"`
	EventSort       string `toml:"event_sort"`
	IncludeTime     bool   `toml:"include_time"`
	IncludeLocation bool   `toml:"include_location"`
	WorkOnly        bool   `toml:"work_only"`
}

// RatesConfig holds per-service billing rates in whole dollars, used by the
// stats revenue estimate.
type RatesConfig struct {
	DropIn15  int `toml:"dropin_15"`
	DropIn30  int `toml:"dropin_30"`
	DropIn45  int `toml:"dropin_45"`
	DropIn60  int `toml:"dropin_60"`
	Walk      int `toml:"walk"`
	Overnight int `toml:"overnight_per_night"`
	MeetGreet int `toml:"meet_greet"`
	NailTrim  int `toml:"nail_trim"`
}

type NotifyConfig struct {
	Enabled     bool `toml:"enabled"`
	LeadMinutes int  `toml:"lead_minutes"`
}

func DefaultConfig() Config {
	return Config{
		Business: Business{
			Name: "Pet Sitting",
		},
		Calendar: CalendarConfig{
			SyncDays: 90,
		},
		Export: ExportConfig{
			GroupBy:     "date",
			EventSort:   "time",
			IncludeTime: true,
			WorkOnly:    true,
		},
		Rates: RatesConfig{
			DropIn15:  18,
			DropIn30:  25,
			DropIn45:  32,
			DropIn60:  40,
			Walk:      25,
			Overnight: 85,
			MeetGreet: 0,
			NailTrim:  15,
		},
		Notify: NotifyConfig{
			Enabled:     true,
			LeadMinutes: 30,
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pawsched"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PAWSCHED_CALENDAR_SOURCE"); v != "" {
		cfg.Calendar.Source = v
	}
	if v := os.Getenv("PAWSCHED_GOOGLE_CALENDAR_ID"); v != "" {
		cfg.Calendar.GoogleID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		cfg.Calendar.ClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		cfg.Calendar.ClientSecret = v
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
