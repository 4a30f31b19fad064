package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"telegram-menu-bot/internal/application"
	"telegram-menu-bot/internal/config"
	"telegram-menu-bot/internal/infra/metrics"
	"telegram-menu-bot/internal/infra/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Register the webhook and serve updates (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	app, err := buildApp(true)
	if err != nil {
		return err
	}
	cfg, log := app.cfg, app.log
	metrics.SetBuildInfo(version, commit)

	dispatcher, err := application.NewDispatcher(app.texts, app.menus, app.bot, log)
	if err != nil {
		return err
	}
	lifecycle, err := application.NewLifecycle(app.bot, app.webReg, cfg.Webhook.DropPending, log)
	if err != nil {
		return err
	}
	hook, err := web.NewServer(dispatcher, app.webReg.Secret, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registered := cfg.ShouldRegister()
	if registered {
		if err := lifecycle.Startup(ctx); err != nil {
			log.Error().Err(err).Msg("webhook registration failed")
			app.bot.Close()
			return err
		}
	} else {
		log.Warn().Msg("webhook registration disabled")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		srv := web.NewHTTPServer(cfg.ListenAddr(), hook.Handler(), cfg.Webhook.ReadTimeout)
		return web.Serve(gctx, srv, cfg.Webhook.ShutdownTTL, log)
	})
	if cfg.Metrics.Port > 0 {
		g.Go(func() error {
			addr := config.ListenHost + ":" + strconv.Itoa(cfg.Metrics.Port)
			srv := web.NewHTTPServer(addr, web.MetricsHandler(), cfg.Webhook.ReadTimeout)
			return web.Serve(gctx, srv, cfg.Webhook.ShutdownTTL, log)
		})
	}

	log.Info().Str("addr", cfg.ListenAddr()).Str("webhook", lifecycle.Registration().Redacted()).Msg("serving")
	serveErr := g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Webhook.ShutdownTTL)
	defer cancel()
	if registered {
		lifecycle.Shutdown(shutdownCtx)
	} else {
		app.bot.Close()
	}

	if serveErr != nil {
		return fmt.Errorf("serve: %w", serveErr)
	}
	log.Info().Msg("stopped")
	return nil
}
