// Package config loads the bot's configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"io"
	"io/fs"
	"log/slog"
	"time"
)

var validate = validator.New()

// Config holds the bot's configuration.
type Config struct {
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat      string        `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
	Addr           string        `envconfig:"ADDR" default:":8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s" validate:"gt=0"`

	// Slack is only validated when running the bot. See Slack.Validate.
	Slack     Slack     `envconfig:"SLACK" validate:"-"`
	Directory Directory `envconfig:"DIRECTORY"`

	// Reviewers receive the submitted feedback.
	Reviewers []string `envconfig:"REVIEWERS" default:"U03GQC0A9MJ,U03GFNM1XA6" validate:"min=1,dive,required"`
	// FallbackContact is the user people are told to contact when a lookup fails.
	FallbackContact string `envconfig:"FALLBACK_CONTACT" default:"U03GQC0A9MJ" validate:"required"`
	SourceURL       string `envconfig:"SOURCE_URL" default:"https://github.com/ky28059/hall-monitor" validate:"omitempty,url"`
}

// Slack holds the Slack credentials. The bot connects using Socket Mode, so it needs both a bot token and an
// app-level token.
type Slack struct {
	BotToken string `envconfig:"BOT_TOKEN" validate:"required,startswith=xoxb-"`
	AppToken string `envconfig:"APP_TOKEN" validate:"required,startswith=xapp-"`
}

// Validate checks that both tokens are set.
func (s Slack) Validate() error {
	return validate.Struct(s)
}

// Directory configures where the contacts directory is read from.
type Directory struct {
	Backend        string `envconfig:"BACKEND" default:"sheets" validate:"oneof=sheets xlsx"`
	Range          string `envconfig:"RANGE" default:"B2:G33" validate:"required"`
	SpreadsheetID  string `envconfig:"SPREADSHEET_ID" validate:"required_if=Backend sheets"`
	KeyFile        string `envconfig:"KEY_FILE" default:"keys.json" validate:"required_if=Backend sheets"`
	ReadsPerMinute int    `envconfig:"READS_PER_MINUTE" default:"60" validate:"gt=0"`
	XLSXPath       string `envconfig:"XLSX_PATH" validate:"required_if=Backend xlsx"`
	XLSXSheet      string `envconfig:"XLSX_SHEET" default:"Sheet1"`
}

// Load reads the configuration from the environment. If envFile exists, its variables are loaded first. Variables
// already set in the environment take precedence over those in envFile.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("env file: %w", err)
		}
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Logger returns a logger that writes to w, using the configured level and format.
func (c Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.LogLevel))
	opts := slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, &opts))
	}
	return slog.New(slog.NewTextHandler(w, &opts))
}
