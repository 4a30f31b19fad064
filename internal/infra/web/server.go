package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"telegram-menu-bot/internal/application"
	"telegram-menu-bot/internal/domain"
	"telegram-menu-bot/internal/domain/model"
	"telegram-menu-bot/internal/infra/adapters/telegram"
	"telegram-menu-bot/internal/infra/logging"
	"telegram-menu-bot/internal/infra/metrics"
)

// MaxUpdateBytes caps a single webhook payload.
const MaxUpdateBytes = 1 << 20

// Dispatcher turns one event into a delivered reply.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev model.Event) (model.Reply, error)
}

// Server is the inbound webhook endpoint.
type Server struct {
	dispatcher Dispatcher
	secret     string
	log        *zerolog.Logger
	router     chi.Router
}

func NewServer(dispatcher Dispatcher, secret string, logger *zerolog.Logger) (*Server, error) {
	if dispatcher == nil {
		return nil, errors.New("dispatcher is nil")
	}
	if secret == "" {
		return nil, errors.New("webhook secret is empty")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{dispatcher: dispatcher, secret: secret, log: logger}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		TraceID(),
		RequestLog(s.log, s.secret),
		Recover(s.log),
	)
	r.Post(application.WebhookPathPrefix+"*", s.handleUpdate)
	return r
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logging.With(ctx, s.log)

	if chi.URLParam(r, "*") != s.secret {
		l.Warn().Err(domain.ErrAuthMismatch).Msg("rejected webhook request")
		s.reply(w, http.StatusForbidden)
		return
	}

	u, err := telegram.DecodeUpdate(http.MaxBytesReader(w, r.Body, MaxUpdateBytes))
	if err != nil {
		l.Warn().Err(err).Msg("malformed webhook payload")
		s.reply(w, http.StatusBadRequest)
		return
	}

	ev, err := telegram.EventFromUpdate(u)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedUpdate) {
			l.Debug().Int("update_id", u.UpdateID).Msg("ignoring unsupported update")
			metrics.IncUpdate(model.EventUnknown.String())
			s.reply(w, http.StatusOK)
			return
		}
		l.Error().Err(err).Msg("translate update")
		s.reply(w, http.StatusOK)
		return
	}
	metrics.IncUpdate(ev.Kind.String())

	ctx = logging.WithUpdateID(logging.WithChatID(ctx, ev.ChatID), ev.UpdateID)
	if _, err := s.dispatcher.Dispatch(ctx, ev); err != nil {
		logging.With(ctx, s.log).Error().Err(err).Str("kind", ev.Kind.String()).Msg("reply delivery failed")
	}
	s.reply(w, http.StatusOK)
}

func (s *Server) reply(w http.ResponseWriter, status int) {
	metrics.IncWebhookRequest(status)
	w.WriteHeader(status)
}

// NewHTTPServer wraps h with the listener timeouts used by every server.
func NewHTTPServer(addr string, h http.Handler, readTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// MetricsHandler exposes GET /metrics on its own router.
func MetricsHandler() http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	return r
}

// Serve runs srv until ctx is cancelled, then shuts it down within ttl.
func Serve(ctx context.Context, srv *http.Server, ttl time.Duration, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ttl)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
