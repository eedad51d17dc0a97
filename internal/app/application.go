package app

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/app/di"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/config"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/core"
	"github.com/whodidthese/deepseek-telegram-translation-chatbot/internal/logger"
)

type Application struct {
	Logger logger.Logger
	cfg    *config.Config
	bot    *core.Bot
	di     *di.Container
	ctx    context.Context
	cancel context.CancelFunc
}

func New() (*Application, error) {
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.Load()
	if err != nil {
		cancel()
		return nil, err
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		cancel()
		return nil, err
	}
	container.Logger.Info("DI Container created")

	botInstance := core.NewBot(
		container.BotClient,
		container.AI,
		container.Session,
		cfg,
		container.Logger,
		container.Localizer,
	)

	return &Application{
		Logger: container.Logger,
		cfg:    cfg,
		bot:    botInstance,
		di:     container,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

func (a *Application) Start() error {
	a.Logger.Info("Starting application")
	defer a.cancel()

	err := a.bot.Start(a.ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *Application) WaitForShutdown() {
	<-a.ctx.Done()
	a.Logger.Info("Application stopped")
}
