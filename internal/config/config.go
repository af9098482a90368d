package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/studyflow/internal/model"
)

// Config is the on-disk configuration. Every field is optional; zero values
// fall back to defaults when converted to settings.
type Config struct {
	DatabasePath          string   `yaml:"database_path,omitempty"`
	DailyAvailableHours   float64  `yaml:"daily_available_hours,omitempty"`
	WorkDays              []string `yaml:"work_days,omitempty"`
	StudyWindowStartHour  int      `yaml:"study_window_start_hour,omitempty"`
	StudyWindowEndHour    int      `yaml:"study_window_end_hour,omitempty"`
	MinSessionLengthMins  int      `yaml:"min_session_length_minutes,omitempty"`
	SuggestionStepMinutes int      `yaml:"suggestion_step_minutes,omitempty"`
	RedistributionDays    int      `yaml:"redistribution_days,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		DatabasePath:        defaultDatabasePath(),
		DailyAvailableHours: 4,
		WorkDays:            []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
	}
}

func configPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "studyflow", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "studyflow", "config.yaml")
}

func defaultDatabasePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "studyflow", "studyflow.db")
}

// Load reads the config file, falling back to defaults, then applies
// STUDYFLOW_* environment overrides on top.
func Load() *Config {
	cfg := LoadFile(configPath())
	return FromEnv(cfg)
}

// LoadFile loads config from one path, falling back to defaults on any
// read or parse failure.
func LoadFile(path string) *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}
	return cfg
}

// Path returns the config file path (for help text).
func Path() string {
	return configPath()
}

func FromEnv(base *Config) *Config {
	cfg := *base
	if v := strings.TrimSpace(os.Getenv("STUDYFLOW_DATABASE_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := getEnvFloat("STUDYFLOW_DAILY_AVAILABLE_HOURS"); ok && v > 0 {
		cfg.DailyAvailableHours = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDYFLOW_WORK_DAYS")); v != "" {
		cfg.WorkDays = strings.Split(v, ",")
	}
	if v, ok := getEnvInt("STUDYFLOW_WINDOW_START_HOUR"); ok {
		cfg.StudyWindowStartHour = v
	}
	if v, ok := getEnvInt("STUDYFLOW_WINDOW_END_HOUR"); ok {
		cfg.StudyWindowEndHour = v
	}
	if v, ok := getEnvInt("STUDYFLOW_MIN_SESSION_MINUTES"); ok && v > 0 {
		cfg.MinSessionLengthMins = v
	}
	if v, ok := getEnvInt("STUDYFLOW_SUGGESTION_STEP_MINUTES"); ok && v > 0 {
		cfg.SuggestionStepMinutes = v
	}
	if v, ok := getEnvInt("STUDYFLOW_REDISTRIBUTION_DAYS"); ok && v > 0 {
		cfg.RedistributionDays = v
	}
	return &cfg
}

// Settings converts the file form into scheduling settings, filling any
// missing field from the defaults.
func (c *Config) Settings() (model.Settings, error) {
	settings := model.DefaultSettings()
	if c.DailyAvailableHours > 0 {
		settings.DailyAvailableHours = c.DailyAvailableHours
	}
	if len(c.WorkDays) > 0 {
		days, err := parseWorkDays(c.WorkDays)
		if err != nil {
			return model.Settings{}, err
		}
		settings.WorkDays = days
	}
	if c.StudyWindowStartHour > 0 {
		settings.StudyWindowStartHour = c.StudyWindowStartHour
	}
	if c.StudyWindowEndHour > 0 {
		settings.StudyWindowEndHour = c.StudyWindowEndHour
	}
	if c.MinSessionLengthMins > 0 {
		settings.MinSessionLengthMins = c.MinSessionLengthMins
	}
	if c.SuggestionStepMinutes > 0 {
		settings.SuggestionStepMinutes = c.SuggestionStepMinutes
	}
	if err := settings.Validate(); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWorkDays(names []string) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("config: unknown work day %q", name)
		}
		out = append(out, day)
	}
	return out, nil
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvFloat(name string) (float64, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
