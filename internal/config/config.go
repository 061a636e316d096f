package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// CatalogOverride changes the recurrence of one catalog activity or
// disables it entirely
type CatalogOverride struct {
	Activity string `yaml:"activity" validate:"required"`
	RRule    string `yaml:"rrule,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// GmailConfig holds the settings for roster notification emails
type GmailConfig struct {
	UserID     string   `yaml:"userID" validate:"required"`
	Sender     string   `yaml:"sender,omitempty"`
	Recipients []string `yaml:"recipients" validate:"required,min=1,dive,email"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL        string            `yaml:"databaseURL" validate:"required"`
	MinAvailableAgents int               `yaml:"minAvailableAgents,omitempty" validate:"omitempty,min=1"`
	ArchiveAfterDays   int               `yaml:"archiveAfterDays,omitempty" validate:"omitempty,min=1"`
	GenerationCron     string            `yaml:"generationCron,omitempty"`
	Timezone           string            `yaml:"timezone,omitempty"`
	Gmail              *GmailConfig      `yaml:"gmail,omitempty"`
	CatalogOverrides   []CatalogOverride `yaml:"catalogOverrides,omitempty" validate:"dive"`
}

// Generation defaults: trigger Sunday evening local time, plan the week
// that starts the next morning.
const (
	DefaultGenerationCron = "0 20 * * SUN"
	DefaultTimezone       = "Africa/Dakar"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from planning_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix.
// For example, env="test" will look for "planning_config.test.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.GenerationCron == "" {
		cfg.GenerationCron = DefaultGenerationCron
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
}

// Validate validates the configuration struct and checks cron, timezone and
// rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := cron.ParseStandard(cfg.GenerationCron); err != nil {
		return fmt.Errorf("invalid generationCron %q: %w", cfg.GenerationCron, err)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	for i, override := range cfg.CatalogOverrides {
		if override.RRule == "" && !override.Disabled {
			return fmt.Errorf("catalogOverrides[%d] for %s changes nothing", i, override.Activity)
		}
		if override.RRule != "" {
			if _, err := rrule.StrToRRule(override.RRule); err != nil {
				return fmt.Errorf("invalid rrule in catalogOverrides[%d]: %w", i, err)
			}
		}
	}

	return nil
}

// findConfigFile searches for planning_config.yaml in current directory and
// home directory
func findConfigFile(env string) (string, error) {
	configFileName := "planning_config.yaml"
	if env != "" {
		configFileName = "planning_config." + env + ".yaml"
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
