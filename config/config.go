package config

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputPath string `envconfig:"INPUT_PATH" default:"../NPA_LineID.csv" validate:"required"`
	Encoding  string `envconfig:"ENCODING" default:"utf-8" validate:"oneof=utf-8 big5"`
	OutputDir string `envconfig:"OUTPUT_DIR" default:"./output" validate:"required"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	RecentMonths int  `envconfig:"RECENT_MONTHS" default:"12" validate:"min=1"`
	SampleRows   int  `envconfig:"SAMPLE_ROWS" default:"5" validate:"min=0"`
	ShowProgress bool `envconfig:"SHOW_PROGRESS" default:"true"`

	RenderHTML    bool   `envconfig:"RENDER_HTML" default:"true"`
	RenderXLSX    bool   `envconfig:"RENDER_XLSX" default:"true"`
	RenderPNG     bool   `envconfig:"RENDER_PNG" default:"false"`
	ExportCSV     bool   `envconfig:"EXPORT_CSV" default:"true"`
	RenderRetries int    `envconfig:"RENDER_RETRIES" default:"3" validate:"min=1,max=10"`
	ChromeBin     string `envconfig:"CHROME_BIN"`
	FontFamily    string `envconfig:"FONT_FAMILY" default:"Taipei Sans TC Beta, Noto Sans TC, PingFang TC, sans-serif"`
}

const envPrefix = "FRAUD"

// Load reads the .env file and returns a populated, validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints. Call it again after applying CLI overrides.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
