package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/config"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/recorder"
)

// newLogger writes human readable output on a terminal and JSON otherwise.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if isatty.IsTerminal(os.Stderr.Fd()) {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath, opts.envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// app holds the components shared by every command.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	recorder  recorder.Recorder
	collector *collector.Collector
	notifier  notifier.Notifier
	telegram  *notifier.TelegramNotifier // nil without credentials
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.Log.Level)

	a := &app{cfg: cfg, logger: logger}

	var archive *recorder.SQLiteRecorder
	if cfg.Database.SQLitePath != "" {
		archive, err = recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			if cfg.DataSource.Type == config.SourceSQLite {
				return nil, fmt.Errorf("open candle archive: %w", err)
			}
			logger.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		}
	}

	var (
		fetcher collector.Fetcher
		sink    collector.Archive
	)
	if archive != nil {
		a.recorder = archive
		sink = archive
	} else {
		a.recorder = recorder.NewNoopRecorder()
	}

	switch cfg.DataSource.Type {
	case config.SourceBinance:
		fetcher = collector.NewBinanceFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	case config.SourceYahoo:
		fetcher = collector.NewYahooFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	case config.SourceREST:
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	case config.SourceSQLite:
		fetcher = archive
	case config.SourceMock:
		fetcher = &collector.MockFetcher{Price: 50000}
	}
	logger.Info().Str("source", fetcher.Name()).Str("symbol", cfg.Market.Symbol).
		Str("interval", cfg.Market.Interval).Int("window", cfg.Market.Window).Msg("data source configured")

	a.collector = collector.NewCollector(fetcher, sink, cfg.Market.Symbol, cfg.Market.Interval, cfg.Market.Window, logger)

	if cfg.TelegramEnabled() {
		a.telegram = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger)
		a.notifier = a.telegram
	} else {
		logger.Warn().Msg("telegram credentials missing, alerts will only be logged")
		a.notifier = notifier.NewLogNotifier(logger)
	}
	return a, nil
}

func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		a.logger.Error().Err(err).Msg("close recorder")
	}
}
