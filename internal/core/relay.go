package core

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/ai"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/compose"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/logger"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/session"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/telegram"
)

// exchange is the transient record for one in-flight request, from
// acknowledgment through final delivery. Mode and model are snapshotted at
// dispatch time so a switch cannot relabel a request already underway.
type exchange struct {
	id      string
	chatID  int64
	replyTo int
	payload string
	mode    session.Mode
	modelID string
}

// relay handles the ordinary-payload path: acknowledge, call the remote
// model, then replace the acknowledgment with the outcome. Edit failures
// fall back to a fresh message; a failed acknowledgment skips straight to
// a fresh message.
func (b *Bot) relay(ctx context.Context, msg *telegram.MessageOriginal) {
	payload := strings.TrimSpace(msg.Text)
	if payload == "" {
		b.reply(msg.Chat.ID, msg.MessageID, b.localizer.Localize("payload.empty", nil))
		return
	}

	mode, modelID := b.session.Snapshot()
	ex := exchange{
		id:      uuid.NewString(),
		chatID:  msg.Chat.ID,
		replyTo: msg.MessageID,
		payload: payload,
		mode:    mode,
		modelID: modelID,
	}

	log := b.logger.WithFields(logger.Fields{
		"exchange_id": ex.id,
		"chat_id":     ex.chatID,
		"mode":        string(ex.mode),
		"model":       ex.modelID,
	})

	ackID := 0
	ack, err := b.tg.Send(telegram.NewMessage(ex.chatID, b.localizer.Localize("relay.ack", map[string]any{
		"Mode":  string(ex.mode),
		"Model": ex.modelID,
	}), ex.replyTo))
	if err != nil {
		log.WithError(err).Warn("Failed to send acknowledgment")
	} else {
		ackID = ack.MessageID
	}

	final := b.resolve(ctx, ex, log)
	b.deliver(ex, ackID, final, log)
}

// resolve produces the final reply text: the model output, a placeholder
// for a blank result, or a user-facing error string. It never returns an
// empty string.
func (b *Bot) resolve(ctx context.Context, ex exchange, log logger.Logger) string {
	system, user, err := compose.Compose(ex.payload, ex.mode, ex.modelID)
	if err != nil {
		log.WithError(err).Error("Request composition failed")
		return b.localizer.Localize("relay.internalError", nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, b.cfg.AI().RequestTimeout)
	defer cancel()

	content, err := b.ai.Complete(callCtx, ex.modelID, system, user)
	if err != nil {
		var aiErr *ai.AIError
		entry := log.WithError(err)
		if errors.As(err, &aiErr) {
			entry = entry.WithFields(logger.Fields{
				"status_code": aiErr.HTTPStatusCode,
				"error_code":  aiErr.ErrorCode,
			})
		}
		entry.Error("AI request failed")
		return b.localizer.Localize("relay.error", map[string]any{
			"Error": err.Error(),
		})
	}

	if content == "" {
		log.Warn("AI returned empty content")
		return b.localizer.Localize("relay.noResponse", nil)
	}
	return content
}

// deliver replaces the acknowledgment with the final text, falling back to
// a brand-new message when the edit (or the original ack) failed. A final
// unrecoverable send failure is logged and swallowed.
func (b *Bot) deliver(ex exchange, ackID int, final string, log logger.Logger) {
	if ackID != 0 {
		_, err := b.tg.Send(telegram.NewEditMessageText(ex.chatID, ackID, final))
		if err == nil {
			return
		}
		log.WithError(err).Warn("Failed to edit acknowledgment, sending new message")
	}

	if _, err := b.tg.Send(telegram.NewMessage(ex.chatID, final, ex.replyTo)); err != nil {
		log.WithError(err).Error("Failed to deliver final message")
	}
}
