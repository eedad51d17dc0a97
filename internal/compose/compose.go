package compose

import (
	"fmt"
	"strings"

	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/ai"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/session"
)

// StructuredModelPrefix marks the model family that expects multi-part
// content blocks instead of a flat string. Detection by id prefix mirrors
// the provider's own naming convention.
const StructuredModelPrefix = "openai/"

const (
	promptSystemInstruction = "You are a translation assistant. Translate the user's text into concise, " +
		"unambiguous English suitable as a prompt for an AI model. " +
		"Reply with only the translated text, without quotes or commentary."

	commitSystemInstruction = "You are a translation assistant for git commit messages. Translate the user's " +
		"text into a single English sentence following conventional commit-message style. " +
		"Reply with the commit message in double quotes. You may add up to two alternate " +
		"phrasings, each on its own line starting with \"Alternative:\"."

	chatSystemInstruction = "You are a helpful conversational assistant. Answer in the language the user " +
		"writes in. If the user writes in Chinese, answer in Traditional Chinese."
)

const (
	promptPrefix = "Translate the following prompt into English"
	commitPrefix = "Translate the following commit message into English"
	separator    = ":\n\n"
)

// Compose builds the system instruction and user message for one exchange.
// payload must already be trimmed and non-empty; the empty-input
// short-circuit happens before the relay ever calls this. An unknown mode
// is a programming error, not user input, and fails loudly.
func Compose(payload string, mode session.Mode, modelID string) (string, ai.Message, error) {
	var system, text string

	switch mode {
	case session.ModePrompt:
		system = promptSystemInstruction
		text = promptPrefix + separator + payload
	case session.ModeCommit:
		system = commitSystemInstruction
		text = commitPrefix + separator + payload
	case session.ModeChat:
		system = chatSystemInstruction
		text = payload
	default:
		return "", ai.Message{}, fmt.Errorf("unknown mode: %q", mode)
	}

	return system, userMessage(text, modelID), nil
}

// userMessage picks the content variant: structured blocks for the
// designated model family, flat string for everything else. The choice is a
// pure function of the model id and never alters the text itself.
func userMessage(text, modelID string) ai.Message {
	if strings.HasPrefix(modelID, StructuredModelPrefix) {
		return ai.Message{
			Role:    ai.RoleUser,
			Content: []ai.Content{ai.NewTextContent(text)},
		}
	}
	return ai.Message{Role: ai.RoleUser, Text: text}
}
