package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"telegram-menu-bot/internal/domain"
	"telegram-menu-bot/internal/domain/ports/adapter"
	"telegram-menu-bot/internal/infra/logging"
)

// WebhookPathPrefix is the fixed part of the webhook route.
const WebhookPathPrefix = "/webhook/"

// Registration is the externally visible webhook endpoint. The secret path
// segment is the bot token itself.
type Registration struct {
	Scheme string
	Host   string
	Secret string
}

func NewRegistration(scheme, host, token string) Registration {
	if scheme == "" {
		scheme = "https"
	}
	return Registration{Scheme: scheme, Host: host, Secret: token}
}

func (r Registration) Path() string { return WebhookPathPrefix + r.Secret }

func (r Registration) URL() string { return r.Scheme + "://" + r.Host + r.Path() }

// Redacted is safe to log.
func (r Registration) Redacted() string { return logging.RedactIn(r.URL(), r.Secret) }

// Lifecycle registers the webhook on start and removes it on shutdown.
type Lifecycle struct {
	registrar   adapter.WebhookRegistrar
	reg         Registration
	dropPending bool
	log         *zerolog.Logger
}

func NewLifecycle(registrar adapter.WebhookRegistrar, reg Registration, dropPending bool, logger *zerolog.Logger) (*Lifecycle, error) {
	if registrar == nil {
		return nil, errors.New("registrar is nil")
	}
	if reg.Host == "" || reg.Secret == "" {
		return nil, fmt.Errorf("%w: webhook host and secret are required", domain.ErrConfigurationMissing)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Lifecycle{registrar: registrar, reg: reg, dropPending: dropPending, log: logger}, nil
}

func (l *Lifecycle) Registration() Registration { return l.reg }

// Startup registers the webhook URL. The caller must treat an error as fatal.
func (l *Lifecycle) Startup(ctx context.Context) error {
	l.log.Info().Str("url", l.reg.Redacted()).Msg("setting webhook")
	if err := l.registrar.SetWebhook(ctx, l.reg.URL(), l.dropPending); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRegistration, err)
	}
	return nil
}

// Shutdown removes the webhook and releases the client session. Errors are
// logged only; the process is exiting regardless.
func (l *Lifecycle) Shutdown(ctx context.Context) {
	l.log.Info().Msg("deleting webhook")
	if err := l.registrar.DeleteWebhook(ctx, false); err != nil {
		l.log.Error().Err(fmt.Errorf("%w: %w", domain.ErrRegistration, err)).Msg("delete webhook failed")
	}
	l.registrar.Close()
}
