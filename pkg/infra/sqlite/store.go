// Package sqlite stores module package statuses in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/domain/types"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `
CREATE TABLE IF NOT EXISTS packages (
	site_id      TEXT    NOT NULL,
	component    TEXT    NOT NULL,
	component_id INTEGER NOT NULL,
	status       TEXT    NOT NULL DEFAULT 'not_downloaded',
	size         INTEGER NOT NULL DEFAULT 0,
	updated_at   INTEGER NOT NULL,
	PRIMARY KEY (site_id, component, component_id)
);
`

// Store keeps package statuses and publishes their changes.
// It implements interfaces.StatusDelegate for the current site.
type Store struct {
	db   *sql.DB
	path string
	site interfaces.SiteContext
	bus  interfaces.EventBus
}

var _ interfaces.StatusDelegate = (*Store)(nil)

// New creates a Store. Use ":memory:" for an in-memory database.
func New(path string, site interfaces.SiteContext, bus interfaces.EventBus) *Store {
	return &Store{path: path, site: site, bus: bus}
}

// Open opens the database and creates the schema if needed
func (s *Store) Open() error {
	conn, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return goerr.Wrap(err, "failed to open database", goerr.V("path", s.path))
	}

	// one writer at a time
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return goerr.Wrap(err, "failed to connect to database", goerr.V("path", s.path))
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = conn.Close()
		return goerr.Wrap(err, "failed to set busy timeout")
	}

	if s.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			_ = conn.Close()
			return goerr.Wrap(err, "failed to enable WAL mode")
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return goerr.Wrap(err, "failed to create schema")
	}

	// no download survives a restart
	if _, err := conn.Exec(
		`UPDATE packages SET status = ?, updated_at = ? WHERE status = ?`,
		string(model.StatusNotDownloaded), time.Now().Unix(), string(model.StatusDownloading),
	); err != nil {
		_ = conn.Close()
		return goerr.Wrap(err, "failed to reset interrupted downloads")
	}

	s.db = conn
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetModuleStatus returns the package status of module on the current site.
// Modules never seen before are not downloaded.
func (s *Store) GetModuleStatus(ctx context.Context, module *model.Module, courseID int64) (model.Status, error) {
	status, err := s.Status(ctx, s.site.GetID(), types.ComponentTag, module.ID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get module status",
			goerr.V("module_id", module.ID),
			goerr.V("course_id", courseID),
		)
	}
	return status, nil
}

// Status returns the stored status of a package
func (s *Store) Status(ctx context.Context, siteID, component string, componentID int64) (model.Status, error) {
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT status FROM packages WHERE site_id = ? AND component = ? AND component_id = ?`,
		siteID, component, componentID,
	).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.StatusNotDownloaded, nil
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to query package status",
			goerr.V("site_id", siteID),
			goerr.V("component", component),
			goerr.V("component_id", componentID),
		)
	}
	return model.Status(status), nil
}

// SetStatus stores status and publishes EventPackageStatusChanged
func (s *Store) SetStatus(ctx context.Context, siteID, component string, componentID int64, status model.Status) error {
	if !status.IsValid() {
		return goerr.New("invalid package status", goerr.V("status", status))
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO packages (site_id, component, component_id, status, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (site_id, component, component_id)
		DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at`,
		siteID, component, componentID, string(status), time.Now().Unix(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to store package status",
			goerr.V("site_id", siteID),
			goerr.V("component_id", componentID),
			goerr.V("status", status),
		)
	}

	ctxlog.From(ctx).Debug("Package status changed",
		"site_id", siteID,
		"component", component,
		"component_id", componentID,
		"status", status,
	)

	if s.bus != nil {
		s.bus.Trigger(ctx, types.EventPackageStatusChanged, &model.StatusChangedEvent{
			SiteID:      siteID,
			ComponentID: componentID,
			Component:   component,
			Status:      status,
		})
	}
	return nil
}

// SetSize records the package size
func (s *Store) SetSize(ctx context.Context, siteID, component string, componentID, size int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO packages (site_id, component, component_id, size, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (site_id, component, component_id)
		DO UPDATE SET size = excluded.size, updated_at = excluded.updated_at`,
		siteID, component, componentID, size, time.Now().Unix(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to store package size",
			goerr.V("site_id", siteID),
			goerr.V("component_id", componentID),
		)
	}
	return nil
}

// Size returns the recorded package size, 0 when unknown
func (s *Store) Size(ctx context.Context, siteID, component string, componentID int64) (int64, error) {
	var size int64
	err := s.db.QueryRowContext(ctx,
		`SELECT size FROM packages WHERE site_id = ? AND component = ? AND component_id = ?`,
		siteID, component, componentID,
	).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, goerr.Wrap(err, "failed to query package size",
			goerr.V("site_id", siteID),
			goerr.V("component_id", componentID),
		)
	}
	return size, nil
}
