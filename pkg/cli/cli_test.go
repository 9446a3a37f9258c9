package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/modassign/pkg/cli"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/domain/types"
	"github.com/m-mizutani/modassign/pkg/infra/site"
	"github.com/m-mizutani/modassign/pkg/infra/sqlite"
)

const siteConfig = `
current_site = "school"

[[sites]]
id = "school"
url = "https://school.example.com"
plugin_enabled = true
prefetch_enabled = true
`

func writeSiteConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sites.toml")
	gt.NoError(t, os.WriteFile(path, []byte(siteConfig), 0600))
	return path
}

func TestRun_Status(t *testing.T) {
	ctx := context.Background()
	cfg := writeSiteConfig(t)
	db := filepath.Join(t.TempDir(), "status.db")

	err := cli.Run(ctx, []string{"modassign", "--log-level", "error",
		"status", "--site-config", cfg, "--db", db, "--module-id", "42", "--size", "2048", "outdated"})
	gt.NoError(t, err)

	sites, err := site.Load(cfg)
	gt.NoError(t, err)
	store := sqlite.New(db, sites, nil)
	gt.NoError(t, store.Open())
	defer func() {
		_ = store.Close()
	}()

	status, err := store.Status(ctx, "school", types.ComponentTag, 42)
	gt.NoError(t, err)
	gt.V(t, status).Equal(model.StatusOutdated)

	size, err := store.Size(ctx, "school", types.ComponentTag, 42)
	gt.NoError(t, err)
	gt.V(t, size).Equal(int64(2048))
}

func TestRun_StatusInvalid(t *testing.T) {
	cfg := writeSiteConfig(t)
	db := filepath.Join(t.TempDir(), "status.db")

	err := cli.Run(context.Background(), []string{"modassign", "--log-level", "error",
		"status", "--site-config", cfg, "--db", db, "--module-id", "42", "archived"})
	gt.Error(t, err)
}

func TestRun_Resolve(t *testing.T) {
	cfg := writeSiteConfig(t)

	err := cli.Run(context.Background(), []string{"modassign", "--log-level", "error",
		"resolve", "--site-config", cfg, "--course-id", "3", "https://school.example.com/mod/assign/view.php?id=5"})
	gt.NoError(t, err)

	err = cli.Run(context.Background(), []string{"modassign", "--log-level", "error",
		"resolve", "--site-config", cfg})
	gt.Error(t, err)
}

func TestRun_InvalidLogLevel(t *testing.T) {
	err := cli.Run(context.Background(), []string{"modassign", "--log-level", "verbose", "resolve"})
	gt.Error(t, err)
}
