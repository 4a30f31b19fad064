package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"telegram-menu-bot/internal/application"
	"telegram-menu-bot/internal/config"
	"telegram-menu-bot/internal/domain/ports/adapter"
	tele "telegram-menu-bot/internal/infra/adapters/telegram"
	"telegram-menu-bot/internal/infra/i18n"
	"telegram-menu-bot/internal/infra/logging"
)

// appContext is built once per command and passed down by reference.
type appContext struct {
	cfg    *config.Config
	log    *zerolog.Logger
	menus  *application.Menus
	texts  *i18n.Translator
	bot    adapter.TelegramBotAdapter
	webReg application.Registration
}

func loadConfig() (*config.Config, *zerolog.Logger, error) {
	cfg, err := config.LoadConfig(cfgFile, devMode)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("[DEV MODE] enabled")
	}
	return cfg, logger, nil
}

func loadMenus(lang string) (*i18n.Translator, *application.Menus, error) {
	tr, err := i18n.NewTranslator(i18n.LocalesFS, lang)
	if err != nil {
		return nil, nil, fmt.Errorf("i18n: %w", err)
	}
	menus, err := application.NewMenus(tr)
	if err != nil {
		return nil, nil, err
	}
	return tr, menus, nil
}

// newBot returns the Bot API client, or the logging stand-in when
// allowNoop is set and the process runs in dev mode.
func newBot(cfg *config.Config, logger *zerolog.Logger, allowNoop bool) (adapter.TelegramBotAdapter, error) {
	if allowNoop && cfg.Runtime.Dev {
		logger.Warn().Msg("using noop telegram adapter")
		return tele.NewNoopBotAdapter(logger), nil
	}
	bot, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, logger)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return bot, nil
}

func buildApp(allowNoop bool) (*appContext, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	texts, menus, err := loadMenus(cfg.Bot.Language)
	if err != nil {
		return nil, err
	}
	bot, err := newBot(cfg, logger, allowNoop)
	if err != nil {
		return nil, err
	}
	return &appContext{
		cfg:    cfg,
		log:    logger,
		menus:  menus,
		texts:  texts,
		bot:    bot,
		webReg: application.NewRegistration(cfg.Webhook.Scheme, cfg.Webhook.Host, cfg.Bot.Token),
	}, nil
}
