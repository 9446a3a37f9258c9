package config

import "github.com/urfave/cli/v3"

// Download holds download confirmation settings
type Download struct {
	ConfirmLimit int64
}

// Flags returns CLI flags for download configuration
func (c *Download) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "download-confirm-limit",
			Usage:       "Largest package size in bytes accepted without asking (0 accepts any size)",
			Value:       0,
			Destination: &c.ConfirmLimit,
			Sources:     cli.EnvVars("MODASSIGN_DOWNLOAD_CONFIRM_LIMIT"),
		},
	}
}
