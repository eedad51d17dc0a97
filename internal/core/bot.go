package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/ai"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/config"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/dispatch"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/logger"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/service"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/session"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/telegram"
)

type Bot struct {
	tg        telegram.Client
	ai        ai.Completer
	session   *session.Store
	cfg       *config.Config
	logger    logger.Logger
	localizer *service.Localizer
}

func NewBot(
	tg telegram.Client,
	aiClient ai.Completer,
	sessionStore *session.Store,
	cfg *config.Config,
	log logger.Logger,
	localizer *service.Localizer,
) *Bot {
	return &Bot{
		tg:        tg,
		ai:        aiClient,
		session:   sessionStore,
		cfg:       cfg,
		logger:    log,
		localizer: localizer,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	u := b.tg.NewUpdate(0, 60, 0)
	updates := b.tg.GetUpdatesChan(u)

	b.logger.Info("Bot started")

	for {
		select {
		case <-ctx.Done():
			b.tg.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			msg := update.Message
			if msg == nil || msg.From == nil {
				continue
			}
			b.logger.WithFields(logger.Fields{
				"update_id": update.UpdateID,
				"user_id":   msg.From.ID,
			}).Debug("Received update")
			go b.HandleMessage(ctx, msg)
		}
	}
}

// HandleMessage runs one inbound message through the gate, the dispatcher
// and, for ordinary payload, the relay. Each message is an independent
// task; two quick successive messages may resolve out of order.
func (b *Bot) HandleMessage(ctx context.Context, msg *telegram.MessageOriginal) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	text := msg.Text

	log := b.logger.WithFields(logger.Fields{
		"user_id": userID,
		"chat_id": chatID,
	})

	if !b.cfg.Telegram().IsUserAllowed(userID) {
		// The start command is the only input an unauthorized sender gets
		// a reply to. Everything else is dropped without a trace in chat.
		if dispatch.IsStart(text) {
			b.reply(chatID, msg.MessageID, b.localizer.Localize("start.denied", map[string]any{
				"UserID": userID,
			}))
			return
		}
		log.Warn("Unauthorized access attempt")
		return
	}

	// Media and other non-text messages are never commands and never
	// reach the composer.
	if text == "" {
		log.Debug("Ignoring non-text message")
		return
	}

	result := dispatch.Classify(text)
	switch result.Kind {
	case dispatch.KindStart:
		mode, modelID := b.session.Snapshot()
		b.reply(chatID, msg.MessageID, b.localizer.Localize("start.welcome", map[string]any{
			"Mode":  string(mode),
			"Model": modelID,
		}))

	case dispatch.KindHelp:
		mode, modelID := b.session.Snapshot()
		b.reply(chatID, msg.MessageID, b.localizer.Localize("help.text", map[string]any{
			"Mode":  string(mode),
			"Model": modelID,
		}))

	case dispatch.KindModeSwitch:
		b.session.SetMode(result.Mode)
		log.WithField("mode", string(result.Mode)).Info("Mode switched")
		b.reply(chatID, msg.MessageID, b.localizer.Localize("mode.switched", map[string]any{
			"Mode": string(result.Mode),
		}))

	case dispatch.KindModelSwitch:
		if err := b.session.SetModel(result.Arg); err != nil {
			b.reply(chatID, msg.MessageID, b.localizer.Localize("model.notFound", map[string]any{
				"Model": result.Arg,
			}))
			return
		}
		log.WithField("model", result.Arg).Info("Model switched")
		b.reply(chatID, msg.MessageID, b.localizer.Localize("model.switched", map[string]any{
			"Model": result.Arg,
		}))

	case dispatch.KindModelList:
		b.sendModelList(chatID, msg.MessageID)

	case dispatch.KindPayload:
		b.relay(ctx, msg)
	}
}

func (b *Bot) sendModelList(chatID int64, replyTo int) {
	active := b.session.ModelID()

	var list strings.Builder
	list.WriteString(b.tg.EscapeText(b.localizer.Localize("models.header", nil)))
	list.WriteString("\n")
	for _, entry := range b.session.Catalog().Entries() {
		marker := "•"
		if entry.ID == active {
			marker = "→"
		}
		label := entry.Name
		if entry.Notes != "" {
			label = fmt.Sprintf("%s (%s)", entry.Name, entry.Notes)
		}
		list.WriteString(fmt.Sprintf(
			"%s `%s` %s\n",
			marker,
			b.tg.EscapeText(entry.ID),
			b.tg.EscapeText(label),
		))
	}

	msg := telegram.NewMessage(chatID, list.String(), replyTo)
	msg.ParseMode = telegram.ModeMarkdownV2
	if _, err := b.tg.Send(msg); err != nil {
		b.logger.WithError(err).Error("Failed to send model list")
	}
}

func (b *Bot) reply(chatID int64, replyTo int, text string) {
	if _, err := b.tg.Send(telegram.NewMessage(chatID, text, replyTo)); err != nil {
		b.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send reply")
	}
}
