package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSymbols are the four indices shown when no symbols are configured.
var DefaultSymbols = []string{"^GSPC", "BTC-USD", "^GDAXI", "^HSI"}

// Config holds all application configuration.
type Config struct {
	Symbols  []string `yaml:"symbols"`
	Analysis struct {
		FastWindow     int `yaml:"fast_window"`
		SlowWindow     int `yaml:"slow_window"`
		LookbackMonths int `yaml:"lookback_months"`
	} `yaml:"analysis"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		// YahooSymbols maps a display symbol to the Yahoo ticker.
		YahooSymbols map[string]string `yaml:"yahoo_symbols"`
	} `yaml:"data_source"`
	Binance struct {
		APIKey    string `yaml:"api_key"`
		SecretKey string `yaml:"secret_key"`
		// Symbols routes the listed display symbols to Binance, keyed to the Binance pair.
		Symbols map[string]string `yaml:"symbols"`
	} `yaml:"binance"`
	Output struct {
		ChartPath string `yaml:"chart_path"`
		Columns   int    `yaml:"columns"`
	} `yaml:"output"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then a .env file, then applies
// environment variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional; real environment variables take precedence over it.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("MARKETGRID_SYMBOLS"); v != "" {
		c.Symbols = splitList(v)
	}
	ints := []struct {
		env string
		dst *int
	}{
		{"FAST_WINDOW", &c.Analysis.FastWindow},
		{"SLOW_WINDOW", &c.Analysis.SlowWindow},
		{"LOOKBACK_MONTHS", &c.Analysis.LookbackMonths},
	}
	for _, iv := range ints {
		v := os.Getenv(iv.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", iv.env, err)
		}
		*iv.dst = n
	}

	strs := []struct {
		env string
		dst *string
	}{
		{"CHART_PATH", &c.Output.ChartPath},
		{"TELEGRAM_BOT_TOKEN", &c.Telegram.BotToken},
		{"TELEGRAM_CHAT_ID", &c.Telegram.ChatID},
		{"VSTRADER_BASE_URL", &c.DataSource.BaseURL},
		{"VSTRADER_API_KEY", &c.DataSource.APIKey},
		{"BINANCE_API_KEY", &c.Binance.APIKey},
		{"BINANCE_API_SECRET", &c.Binance.SecretKey},
		{"HTTPS_PROXY", &c.Proxy},
		{"SCHEDULE_CRON", &c.Schedule.Cron},
	}
	for _, sv := range strs {
		if v := os.Getenv(sv.env); v != "" {
			*sv.dst = v
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if len(c.Symbols) == 0 {
		c.Symbols = append([]string(nil), DefaultSymbols...)
	}
	if c.Analysis.FastWindow == 0 {
		c.Analysis.FastWindow = 20
	}
	if c.Analysis.SlowWindow == 0 {
		c.Analysis.SlowWindow = 50
	}
	if c.Analysis.LookbackMonths == 0 {
		c.Analysis.LookbackMonths = 36
	}
	if c.Output.ChartPath == "" {
		c.Output.ChartPath = "marketgrid.png"
	}
	if c.Output.Columns == 0 {
		c.Output.Columns = 2
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols must not be empty")
	}
	for _, s := range c.Symbols {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("symbols must not contain blank entries")
		}
	}
	if c.Analysis.FastWindow <= 0 || c.Analysis.SlowWindow <= 0 {
		return fmt.Errorf("analysis windows must be positive")
	}
	if c.Analysis.FastWindow >= c.Analysis.SlowWindow {
		return fmt.Errorf("analysis.fast_window (%d) must be less than analysis.slow_window (%d)",
			c.Analysis.FastWindow, c.Analysis.SlowWindow)
	}
	if c.Analysis.LookbackMonths <= 0 {
		return fmt.Errorf("analysis.lookback_months must be positive")
	}
	if c.Output.Columns <= 0 {
		return fmt.Errorf("output.columns must be positive")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether Telegram delivery is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
