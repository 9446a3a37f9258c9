package config

import "github.com/urfave/cli/v3"

// Storage holds the status database configuration
type Storage struct {
	DBPath string
}

// Flags returns CLI flags for storage configuration
func (c *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db",
			Usage:       "SQLite database path for package statuses (\":memory:\" for in-memory)",
			Value:       "modassign.db",
			Destination: &c.DBPath,
			Sources:     cli.EnvVars("MODASSIGN_DB"),
		},
	}
}
