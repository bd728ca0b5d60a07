package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", cfg.Market.Symbol)
	assert.Equal(t, "1h", cfg.Market.Interval)
	assert.Equal(t, 100, cfg.Market.Window)
	assert.Equal(t, SourceBinance, cfg.DataSource.Type)
	assert.Equal(t, "0 0 * * * *", cfg.Schedule.Cron)
	assert.True(t, cfg.Schedule.RunOnStart)
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAMLKeepsUnsetDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
market:
  symbol: ETHUSDT
  window: 250
schedule:
  run_on_start: false
telegram:
  bot_token: abc
  chat_id: "123"
`)
	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "ETHUSDT", cfg.Market.Symbol)
	assert.Equal(t, 250, cfg.Market.Window)
	assert.Equal(t, "1h", cfg.Market.Interval)
	assert.False(t, cfg.Schedule.RunOnStart)
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "market:\n  symbol: ETHUSDT\n")
	t.Setenv("SYMBOL", "SOLUSDT")
	t.Setenv("INTERVAL", "4h")
	t.Setenv("WINDOW", "300")
	t.Setenv("RUN_ON_START", "false")
	t.Setenv("DATA_SOURCE", "mock")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "SOLUSDT", cfg.Market.Symbol)
	assert.Equal(t, "4h", cfg.Market.Interval)
	assert.Equal(t, 300, cfg.Market.Window)
	assert.False(t, cfg.Schedule.RunOnStart)
	assert.Equal(t, SourceMock, cfg.DataSource.Type)
}

func TestLoadBadEnvValues(t *testing.T) {
	t.Setenv("WINDOW", "many")
	t.Setenv("RUN_ON_START", "perhaps")

	_, err := Load("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WINDOW")
	assert.Contains(t, err.Error(), "RUN_ON_START")
}

func TestLoadDotEnv(t *testing.T) {
	envFile := writeFile(t, ".env", "TELEGRAM_BOT_TOKEN=from-dotenv\nTELEGRAM_CHAT_ID=77\n")
	t.Cleanup(func() {
		os.Unsetenv("TELEGRAM_BOT_TOKEN")
		os.Unsetenv("TELEGRAM_CHAT_ID")
	})

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Telegram.BotToken)
	assert.Equal(t, "77", cfg.Telegram.ChatID)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "market: [unterminated")
	_, err := Load(path, "")
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Market.Symbol = ""
	cfg.Market.Interval = "hourly"
	cfg.Market.Window = 0
	cfg.DataSource.Type = "carrier-pigeon"
	cfg.Schedule.Cron = "every hour"
	cfg.Log.Level = "loud"
	cfg.Telegram.BotToken = "abc"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"market.symbol", "market.interval", "market.window",
		"data_source.type", "schedule.cron", "log.level", "telegram.bot_token",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateSourceRequirements(t *testing.T) {
	cfg := Default()
	cfg.DataSource.Type = SourceREST
	assert.ErrorContains(t, cfg.Validate(), "data_source.base_url")

	cfg.DataSource.BaseURL = "http://localhost:8080"
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.DataSource.Type = SourceSQLite
	assert.ErrorContains(t, cfg.Validate(), "database.sqlite_path")

	cfg.Database.SQLitePath = "data/candles.db"
	assert.NoError(t, cfg.Validate())
}

func TestValidateCronDescriptors(t *testing.T) {
	cfg := Default()
	cfg.Schedule.Cron = "@every 15m"
	assert.NoError(t, cfg.Validate())

	cfg.Schedule.Cron = "0 * * * *"
	assert.Error(t, cfg.Validate(), "five field specs need the seconds field")
}
