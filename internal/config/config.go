package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Data sources understood by the bot.
const (
	SourceBinance = "binance"
	SourceYahoo   = "yahoo"
	SourceREST    = "rest"
	SourceSQLite  = "sqlite"
	SourceMock    = "mock"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Market struct {
		Symbol   string `yaml:"symbol"`
		Interval string `yaml:"interval"`
		Window   int    `yaml:"window"`
	} `yaml:"market"`
	DataSource struct {
		Type    string `yaml:"type"`
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Schedule struct {
		Cron       string `yaml:"cron"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Default returns the configuration used when nothing else is provided:
// hourly BTCUSDT candles from Binance, evaluated at the top of every hour.
func Default() *Config {
	cfg := &Config{}
	cfg.Market.Symbol = "BTCUSDT"
	cfg.Market.Interval = "1h"
	cfg.Market.Window = 100
	cfg.DataSource.Type = SourceBinance
	cfg.Schedule.Cron = "0 0 * * * *"
	cfg.Schedule.RunOnStart = true
	cfg.Log.Level = "info"
	return cfg
}

// Load reads config from a YAML file, then a .env file, then applies
// environment variable overrides. Missing files are not an error.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("loading .env file: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"TELEGRAM_BOT_TOKEN": &c.Telegram.BotToken,
		"TELEGRAM_CHAT_ID":   &c.Telegram.ChatID,
		"SYMBOL":             &c.Market.Symbol,
		"INTERVAL":           &c.Market.Interval,
		"DATA_SOURCE":        &c.DataSource.Type,
		"DATA_BASE_URL":      &c.DataSource.BaseURL,
		"DATA_API_KEY":       &c.DataSource.APIKey,
		"SCHEDULE_CRON":      &c.Schedule.Cron,
		"SQLITE_PATH":        &c.Database.SQLitePath,
		"METRICS_ADDR":       &c.Metrics.Addr,
		"LOG_LEVEL":          &c.Log.Level,
		"HTTPS_PROXY":        &c.Proxy,
	}
	for name, dst := range strs {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	var errs error
	if v := os.Getenv("WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("WINDOW: %w", err))
		} else {
			c.Market.Window = n
		}
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("RUN_ON_START: %w", err))
		} else {
			c.Schedule.RunOnStart = b
		}
	}
	return errs
}

// TelegramEnabled reports whether chat credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

var intervalPattern = regexp.MustCompile(`^[1-9][0-9]*[mhdwM]$`)

// CronParser parses six field cron specs (seconds first) and descriptors.
var CronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs error

	if c.Market.Symbol == "" {
		errs = errors.Join(errs, fmt.Errorf("market.symbol is required"))
	}
	if !intervalPattern.MatchString(c.Market.Interval) {
		errs = errors.Join(errs, fmt.Errorf("market.interval %q is invalid", c.Market.Interval))
	}
	if c.Market.Window <= 0 {
		errs = errors.Join(errs, fmt.Errorf("market.window must be positive"))
	}

	switch c.DataSource.Type {
	case SourceBinance, SourceYahoo, SourceMock:
	case SourceREST:
		if c.DataSource.BaseURL == "" {
			errs = errors.Join(errs, fmt.Errorf("data_source.base_url is required for the rest source"))
		}
	case SourceSQLite:
		if c.Database.SQLitePath == "" {
			errs = errors.Join(errs, fmt.Errorf("database.sqlite_path is required for the sqlite source"))
		}
	default:
		errs = errors.Join(errs, fmt.Errorf("data_source.type %q is unknown", c.DataSource.Type))
	}

	if _, err := CronParser.Parse(c.Schedule.Cron); err != nil {
		errs = errors.Join(errs, fmt.Errorf("schedule.cron: %w", err))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = errors.Join(errs, fmt.Errorf("log.level: %w", err))
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		errs = errors.Join(errs, fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together"))
	}

	return errs
}
