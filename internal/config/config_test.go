package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
[telegram]
token = "123:abc"
allowed_user = 42

[ai]
api_key = "sk-test"
`

// loadWithFile points the -config flag path at a throwaway file and runs the
// full Load pipeline over it.
func loadWithFile(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	orig := configPath
	configPath = path
	t.Cleanup(func() { configPath = orig })

	return Load()
}

func TestLoad_HappyPathWithDefaults(t *testing.T) {
	cfg, err := loadWithFile(t, validConfig)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram().Token)
	assert.Equal(t, int64(42), cfg.Telegram().AllowedUser)
	assert.Equal(t, "sk-test", cfg.AI().APIKey)
	assert.Equal(t, "https://api.deepseek.com", cfg.AI().BaseURL)
	assert.Equal(t, "deepseek-chat", cfg.AI().DefaultModel)
	assert.Equal(t, 2*time.Minute, cfg.AI().RequestTimeout)
	assert.Equal(t, "en", cfg.Global().InterfaceLanguage)
	assert.Equal(t, "info", cfg.Log().Level())
}

func TestLoad_MissingRequiredKeys(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing token",
			content: `
[telegram]
allowed_user = 42

[ai]
api_key = "sk-test"
`,
			wantErr: "telegram token is required",
		},
		{
			name: "missing allowed user",
			content: `
[telegram]
token = "123:abc"

[ai]
api_key = "sk-test"
`,
			wantErr: "telegram allowed user id is required",
		},
		{
			name: "missing api key",
			content: `
[telegram]
token = "123:abc"
allowed_user = 42
`,
			wantErr: "ai api key is required",
		},
		{
			name:    "blanked base url",
			content: validConfig + "base_url = \"\"\n",
			wantErr: "ai base url is required",
		},
		{
			name:    "blanked default model",
			content: validConfig + "default_model = \"\"\n",
			wantErr: "ai default model is required",
		},
		{
			name:    "malformed file",
			content: "[telegram\ntoken=",
			wantErr: "error loading config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadWithFile(t, tt.content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsUserAllowed(t *testing.T) {
	t.Run("unconfigured zero id authorizes nobody", func(t *testing.T) {
		cfg := TelegramConfig{AllowedUser: 0}
		assert.False(t, cfg.IsUserAllowed(0))
		assert.False(t, cfg.IsUserAllowed(42))
		assert.False(t, cfg.IsUserAllowed(-1))
	})

	t.Run("configured id matches exactly", func(t *testing.T) {
		cfg := TelegramConfig{AllowedUser: 42}
		assert.True(t, cfg.IsUserAllowed(42))
		assert.False(t, cfg.IsUserAllowed(7))
		assert.False(t, cfg.IsUserAllowed(0))
	})
}
