// internal/config/config.go
package config

import (
	"os"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"jobsbot/internal/scrape/rutgers"
)

type AppConfig struct {
	Port     int    `yaml:"port" json:"port" env:"JOBSBOT_PORT"`
	LogLevel string `yaml:"log_level" json:"log_level" env:"LOG_LEVEL"`
}

type BoardConfig struct {
	BaseURL        string `yaml:"base_url" json:"base_url" env:"JOBSBOT_BOARD_BASE_URL"`
	SearchPath     string `yaml:"search_path" json:"search_path" env:"JOBSBOT_BOARD_SEARCH_PATH"`
	UserAgent      string `yaml:"user_agent" json:"user_agent" env:"JOBSBOT_USER_AGENT"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds" env:"JOBSBOT_BOARD_TIMEOUT_SECONDS"`
	MaxResults     int    `yaml:"max_results" json:"max_results" env:"JOBSBOT_MAX_RESULTS"`
}

// BotConfig holds the intent names configured on the conversational platform.
type BotConfig struct {
	SearchIntent   string `yaml:"search_intent" json:"search_intent" env:"JOBSBOT_SEARCH_INTENT"`
	GreetingIntent string `yaml:"greeting_intent" json:"greeting_intent" env:"JOBSBOT_GREETING_INTENT"`
	GoodbyeIntent  string `yaml:"goodbye_intent" json:"goodbye_intent" env:"JOBSBOT_GOODBYE_INTENT"`
}

type Config struct {
	App   AppConfig   `yaml:"app" json:"app"`
	Board BoardConfig `yaml:"board" json:"board"`
	Bot   BotConfig   `yaml:"bot" json:"bot"`
}

// Defaults is a complete, valid configuration. The Lambda runs on it
// when no file is supplied.
func Defaults() Config {
	return Config{
		App: AppConfig{
			Port:     8080,
			LogLevel: "info",
		},
		Board: BoardConfig{
			BaseURL:        rutgers.DefaultBaseURL,
			SearchPath:     rutgers.DefaultSearchPath,
			UserAgent:      rutgers.DefaultUserAgent,
			TimeoutSeconds: int(rutgers.DefaultTimeout / time.Second),
			MaxResults:     5,
		},
		Bot: BotConfig{
			SearchIntent:   "SearchJobs",
			GreetingIntent: "Greeting",
			GoodbyeIntent:  "Goodbye",
		},
	}
}

func (b BoardConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// Scraper maps the board section onto the scraper's own config.
func (b BoardConfig) Scraper() rutgers.Config {
	return rutgers.Config{
		BaseURL:    b.BaseURL,
		SearchPath: b.SearchPath,
		UserAgent:  b.UserAgent,
		Timeout:    b.Timeout(),
	}
}

// Load layers defaults, the YAML file at path (optional), a .env file in
// the working directory (optional) and the process environment, then
// normalizes and validates the result.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config %s", path)
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	out, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		return out, vr.Err()
	}
	return out, nil
}

// ApplyEnv overrides cfg with any JOBSBOT_* / LOG_LEVEL variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "load .env")
	}
	if err := env.Parse(cfg); err != nil {
		return errors.Wrap(err, "parse environment")
	}
	return nil
}
