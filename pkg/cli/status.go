package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/cli/config"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdStatus() *cli.Command {
	var (
		siteCfg    config.Site
		storageCfg config.Storage
		siteID     string
		moduleID   int64
		size       int64
	)

	flags := append(siteCfg.Flags(), storageCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "site-id",
			Usage:       "Site of the module (defaults to the current site)",
			Destination: &siteID,
		},
		&cli.Int64Flag{
			Name:        "module-id",
			Usage:       "Module id",
			Required:    true,
			Destination: &moduleID,
		},
		&cli.Int64Flag{
			Name:        "size",
			Usage:       "Package size in bytes to record",
			Destination: &size,
		},
	)

	return &cli.Command{
		Name:      "status",
		Usage:     "Record the download status of an assignment package",
		ArgsUsage: "not_downloaded|downloading|downloaded|outdated",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			status := model.Status(c.Args().First())
			if !status.IsValid() {
				return goerr.New("invalid status", goerr.V("status", status))
			}

			app, err := newApplication(siteCfg, storageCfg, config.Download{})
			if err != nil {
				return goerr.Wrap(err, "failed to set up application")
			}
			defer func() {
				if err := app.Close(); err != nil {
					logger.Warn("Failed to close application", "error", err)
				}
			}()

			if siteID == "" {
				siteID = app.sites.GetID()
			}
			if _, err := app.sites.Site(siteID); err != nil {
				return err
			}

			if size > 0 {
				if err := app.store.SetSize(ctx, siteID, types.ComponentTag, moduleID, size); err != nil {
					return err
				}
			}
			if err := app.store.SetStatus(ctx, siteID, types.ComponentTag, moduleID, status); err != nil {
				return err
			}

			logger.Info("Status recorded",
				"site_id", siteID,
				"module_id", moduleID,
				"status", status,
			)
			return nil
		},
	}
}
