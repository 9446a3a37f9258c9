package config

import (
	"github.com/m-mizutani/modassign/pkg/infra/site"
	"github.com/urfave/cli/v3"
)

// Site holds the site registry configuration
type Site struct {
	Path    string
	Current string
}

// Flags returns CLI flags for site configuration
func (c *Site) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "site-config",
			Usage:       "Path to the TOML file listing sites",
			Required:    true,
			Destination: &c.Path,
			Sources:     cli.EnvVars("MODASSIGN_SITE_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "current-site",
			Usage:       "Site id used as current site (overrides the file)",
			Destination: &c.Current,
			Sources:     cli.EnvVars("MODASSIGN_CURRENT_SITE"),
		},
	}
}

// Configure loads the site registry
func (c *Site) Configure() (*site.Registry, error) {
	reg, err := site.Load(c.Path)
	if err != nil {
		return nil, err
	}
	if c.Current != "" {
		if err := reg.SetCurrent(c.Current); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
