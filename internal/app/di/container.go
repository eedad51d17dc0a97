package di

import (
	"net/http"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/ai"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/catalog"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/config"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/logger"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/service"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/session"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/telegram"
)

type Container struct {
	BotClient  telegram.Client
	Logger     logger.Logger
	Cfg        *config.Config
	AI         *ai.Client
	Catalog    *catalog.Catalog
	Session    *session.Store
	Localizer  *service.Localizer
	HttpClient *http.Client
}

func NewContainer(cfg *config.Config) (*Container, error) {
	logCfg := cfg.Log()
	l := logger.NewLogrusLogger(&logCfg)

	localizer, err := service.NewLocalizer(cfg.Global().InterfaceLanguage)
	if err != nil {
		l.WithError(err).Fatal("Error create localizer")
	}

	aiCfg := cfg.AI()
	cat, err := catalog.Load(aiCfg.ModelsFile, aiCfg.DefaultModel, l)
	if err != nil {
		return nil, err
	}
	sessionStore := session.New(cat, aiCfg.DefaultModel, l)

	httpClient := &http.Client{}
	aiClient := ai.NewClient(aiCfg.BaseURL, aiCfg.APIKey, httpClient, l)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram().Token)
	if err != nil {
		l.WithError(err).Fatal("Bot API client initialization error")
	}
	l.Info("Bot API initialized")

	return &Container{
		BotClient:  telegram.NewBotClient(api, l),
		Logger:     l,
		Cfg:        cfg,
		AI:         aiClient,
		Catalog:    cat,
		Session:    sessionStore,
		Localizer:  localizer,
		HttpClient: httpClient,
	}, nil
}
