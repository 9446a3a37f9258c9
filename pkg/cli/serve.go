package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/cli/config"
	controller "github.com/m-mizutani/modassign/pkg/controller/http"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		siteCfg     config.Site
		storageCfg  config.Storage
		downloadCfg config.Download
	)

	flags := append(serverCfg.Flags(), siteCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, downloadCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			app, err := newApplication(siteCfg, storageCfg, downloadCfg)
			if err != nil {
				return goerr.Wrap(err, "failed to set up application")
			}
			defer func() {
				if err := app.Close(); err != nil {
					logger.Warn("Failed to close application", "error", err)
				}
			}()

			logger.Info("Starting modassign server",
				slog.String("addr", serverCfg.Addr),
				slog.String("current_site", app.sites.GetID()),
				slog.String("db", storageCfg.DBPath),
			)

			server, err := controller.NewServer(
				ctx,
				app.contents,
				app.links,
				controller.WithAddr(serverCfg.Addr),
				controller.WithSiteIDs(app.sites.IDs()...),
				controller.WithNotifications(app.notifier),
				controller.WithNavigations(app.router),
				controller.WithPackages(app.store, app.sites),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}
			server.DestroyViews()

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
