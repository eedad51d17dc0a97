package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/ai"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/session"
)

func TestCompose_CommitMode(t *testing.T) {
	system, user, err := Compose("add login", session.ModeCommit, "deepseek-chat")
	require.NoError(t, err)

	assert.Contains(t, system, "commit message")
	assert.Equal(t, "Translate the following commit message into English:\n\nadd login", user.Text)
	assert.Empty(t, user.Content)
}

func TestCompose_PromptMode(t *testing.T) {
	system, user, err := Compose("какой-то текст", session.ModePrompt, "deepseek-chat")
	require.NoError(t, err)

	assert.Contains(t, system, "prompt")
	assert.True(t, strings.HasPrefix(user.Text, "Translate the following prompt into English:\n\n"))
	assert.True(t, strings.HasSuffix(user.Text, "какой-то текст"))
}

func TestCompose_ChatModeHasNoPrefix(t *testing.T) {
	system, user, err := Compose("hello there", session.ModeChat, "deepseek-chat")
	require.NoError(t, err)

	assert.Contains(t, system, "Traditional Chinese")
	assert.Equal(t, "hello there", user.Text)
}

func TestCompose_UnknownModeFails(t *testing.T) {
	_, _, err := Compose("text", session.Mode("TURBO"), "deepseek-chat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestCompose_ContentVariant(t *testing.T) {
	t.Run("structured family gets block content", func(t *testing.T) {
		_, user, err := Compose("add login", session.ModeCommit, "openai/gpt-4o")
		require.NoError(t, err)

		require.Len(t, user.Content, 1)
		assert.Equal(t, "text", user.Content[0].Type)
		assert.Equal(t, "Translate the following commit message into English:\n\nadd login", user.Content[0].Text)
		assert.Empty(t, user.Text)
	})

	t.Run("other models get flat content", func(t *testing.T) {
		_, user, err := Compose("add login", session.ModeCommit, "deepseek-reasoner")
		require.NoError(t, err)

		assert.Empty(t, user.Content)
		assert.NotEmpty(t, user.Text)
	})

	t.Run("variant never alters the text", func(t *testing.T) {
		_, flat, err := Compose("add login", session.ModeChat, "deepseek-chat")
		require.NoError(t, err)
		_, blocks, err := Compose("add login", session.ModeChat, "openai/gpt-4o")
		require.NoError(t, err)

		assert.Equal(t, flat.Text, blocks.Content[0].Text)
	})

	t.Run("user role is set", func(t *testing.T) {
		_, user, err := Compose("hi", session.ModeChat, "deepseek-chat")
		require.NoError(t, err)
		assert.Equal(t, ai.RoleUser, user.Role)
	})
}
