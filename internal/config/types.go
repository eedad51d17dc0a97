package config

import (
	"strings"
	"time"
)

type GlobalConfig struct {
	InterfaceLanguage string `koanf:"interface_language"`
}

type LoggingConfig struct {
	LogLevel    string `koanf:"level"`
	WriteInFile bool   `koanf:"write_in_file"`
	FilePath    string `koanf:"file_path"`
}

func (c LoggingConfig) Level() string {
	return strings.ToLower(c.LogLevel)
}

type TelegramConfig struct {
	Token       string `koanf:"token"`
	AllowedUser int64  `koanf:"allowed_user"`
}

// IsUserAllowed reports whether userID is the single authorized account.
// An unconfigured (zero) allowed user authorizes nobody.
func (c TelegramConfig) IsUserAllowed(userID int64) bool {
	if c.AllowedUser == 0 {
		return false
	}
	return userID == c.AllowedUser
}

type AIConfig struct {
	APIKey         string        `koanf:"api_key"`
	BaseURL        string        `koanf:"base_url"`
	DefaultModel   string        `koanf:"default_model"`
	ModelsFile     string        `koanf:"models_file"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}
