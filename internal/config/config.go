package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

const (
	GLOBAL_LANGUAGE       = "global.interface_language"
	TELEGRAM_TOKEN        = "telegram.token"
	TELEGRAM_ALLOWED_USER = "telegram.allowed_user"
	AI_API_KEY            = "ai.api_key"
	AI_BASE_URL           = "ai.base_url"
	AI_DEFAULT_MODEL      = "ai.default_model"
	AI_MODELS_FILE        = "ai.models_file"
	AI_REQUEST_TIMEOUT    = "ai.request_timeout"
	LOGGING_LEVEL         = "logging.level"
	LOGGING_WRITE_IN_FILE = "logging.write_in_file"
	LOGGING_FILE_PATH     = "logging.file_path"
)

type Config struct {
	k *koanf.Koanf
}

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "", "Path to config file")
}

func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		GLOBAL_LANGUAGE:       "en",
		TELEGRAM_TOKEN:        "",
		TELEGRAM_ALLOWED_USER: int64(0),
		AI_API_KEY:            "",
		AI_BASE_URL:           "https://api.deepseek.com",
		AI_DEFAULT_MODEL:      "deepseek-chat",
		AI_MODELS_FILE:        "",
		AI_REQUEST_TIMEOUT:    2 * time.Minute,
		LOGGING_LEVEL:         "info",
		LOGGING_WRITE_IN_FILE: false,
	}
	k.Load(confmap.Provider(defaults, "."), nil)

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("error loading config %s: %v", path, err)
			}
			break
		}
	}

	k.Load(env.Provider("DSBOT_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "DSBOT_")),
			"_", ".",
		)
	}), nil)

	if k.String(TELEGRAM_TOKEN) == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	if k.Int64(TELEGRAM_ALLOWED_USER) == 0 {
		return nil, fmt.Errorf("telegram allowed user id is required")
	}
	if k.String(AI_API_KEY) == "" {
		return nil, fmt.Errorf("ai api key is required")
	}
	if k.String(AI_BASE_URL) == "" {
		return nil, fmt.Errorf("ai base url is required")
	}
	if k.String(AI_DEFAULT_MODEL) == "" {
		return nil, fmt.Errorf("ai default model is required")
	}

	return &Config{k: k}, nil
}

// NewFromMap builds a Config from raw values, bypassing files and env.
// Intended for tests.
func NewFromMap(values map[string]any) *Config {
	k := koanf.New(".")
	k.Load(confmap.Provider(values, "."), nil)
	return &Config{k: k}
}

func (c *Config) Telegram() TelegramConfig {
	return TelegramConfig{
		Token:       c.k.String(TELEGRAM_TOKEN),
		AllowedUser: c.k.Int64(TELEGRAM_ALLOWED_USER),
	}
}

func (c *Config) AI() AIConfig {
	return AIConfig{
		APIKey:         c.k.String(AI_API_KEY),
		BaseURL:        c.k.String(AI_BASE_URL),
		DefaultModel:   c.k.String(AI_DEFAULT_MODEL),
		ModelsFile:     c.k.String(AI_MODELS_FILE),
		RequestTimeout: c.k.Duration(AI_REQUEST_TIMEOUT),
	}
}

func (c *Config) Log() LoggingConfig {
	return LoggingConfig{
		LogLevel:    c.k.String(LOGGING_LEVEL),
		WriteInFile: c.k.Bool(LOGGING_WRITE_IN_FILE),
		FilePath:    c.k.String(LOGGING_FILE_PATH),
	}
}

func (c *Config) Global() GlobalConfig {
	return GlobalConfig{
		InterfaceLanguage: c.k.String(GLOBAL_LANGUAGE),
	}
}

func getConfigPaths() []string {
	if configPath != "" {
		return []string{configPath}
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, _ := os.UserHomeDir()
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		"deepseek-bot.toml",
		"config.toml",
		filepath.Join(xdgConfig, "deepseek-bot", "config.toml"),
		"/etc/deepseek-bot/config.toml",
	}
}
