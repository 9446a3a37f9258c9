package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/cli/config"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/domain/types"
	"github.com/m-mizutani/modassign/pkg/infra/linkresolver"
	"github.com/m-mizutani/modassign/pkg/infra/shell"
	"github.com/m-mizutani/modassign/pkg/registry"
	"github.com/m-mizutani/modassign/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdResolve() *cli.Command {
	var (
		siteCfg  config.Site
		siteIDs  []string
		courseID int64
	)

	flags := append(siteCfg.Flags(),
		&cli.StringSliceFlag{
			Name:        "site-id",
			Usage:       "Site to resolve the link on (repeatable, defaults to every configured site)",
			Destination: &siteIDs,
		},
		&cli.Int64Flag{
			Name:        "course-id",
			Usage:       "Course the link was opened from",
			Destination: &courseID,
		},
	)

	return &cli.Command{
		Name:      "resolve",
		Usage:     "Print the actions available for a URL",
		ArgsUsage: "URL",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one URL is required", goerr.V("args", c.Args().Slice()))
			}
			url := c.Args().First()

			sites, err := siteCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load sites")
			}
			if len(siteIDs) == 0 {
				siteIDs = sites.IDs()
			}

			links := registry.NewContentLinksDelegate()
			links.Register(types.LinkHandlerName, usecase.NewLink(sites, sites, linkresolver.New(shell.NewRouter())))

			actions := links.Actions(ctx, siteIDs, url, courseID)
			printActions(os.Stdout, url, actions)
			return nil
		},
	}
}

func printActions(w io.Writer, url string, actions []*model.Action) {
	header := color.New(color.Bold)
	site := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	if len(actions) == 0 {
		_, _ = faint.Fprintf(w, "no action for %s\n", url)
		return
	}

	_, _ = header.Fprintf(w, "%d action(s) for %s\n", len(actions), url)
	for _, a := range actions {
		_, _ = fmt.Fprintf(w, "- %s (%s) -> %s %v\n", a.Message, a.Icon, a.Route, a.Params)
		for _, s := range a.SiteIDs {
			_, _ = site.Fprintf(w, "    %s\n", s)
		}
	}
}
