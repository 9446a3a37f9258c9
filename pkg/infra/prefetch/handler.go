// Package prefetch keeps track of offline downloads of assign packages.
//
// It does not transfer files: it records status transitions in the status
// store so the course contents follow a download from start to end.
package prefetch

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/domain/types"
)

// Store is the subset of the status store used by Handler
type Store interface {
	Status(ctx context.Context, siteID, component string, componentID int64) (model.Status, error)
	SetStatus(ctx context.Context, siteID, component string, componentID int64, status model.Status) error
	Size(ctx context.Context, siteID, component string, componentID int64) (int64, error)
}

// FetchFunc retrieves the package content of a module
type FetchFunc func(ctx context.Context, module *model.Module, courseID int64) error

// Handler implements interfaces.PrefetchHandler over a status store
type Handler struct {
	store Store
	site  interfaces.SiteContext
	fetch FetchFunc
}

var _ interfaces.PrefetchHandler = (*Handler)(nil)

// Option configures Handler
type Option func(*Handler)

// WithFetch sets the function that retrieves package content
func WithFetch(fn FetchFunc) Option {
	return func(h *Handler) {
		h.fetch = fn
	}
}

// New creates a Handler
func New(store Store, site interfaces.SiteContext, opts ...Option) *Handler {
	h := &Handler{
		store: store,
		site:  site,
		fetch: func(ctx context.Context, module *model.Module, courseID int64) error { return nil },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// GetDownloadSize returns the recorded size of the module package
func (h *Handler) GetDownloadSize(ctx context.Context, module *model.Module, courseID int64) (*model.DownloadSize, error) {
	size, err := h.store.Size(ctx, h.site.GetID(), types.ComponentTag, module.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get download size", goerr.V("module_id", module.ID))
	}
	return &model.DownloadSize{Size: size, Total: size > 0}, nil
}

// Prefetch downloads the module package, moving its status to downloading and then downloaded.
// On failure the previous status is restored.
func (h *Handler) Prefetch(ctx context.Context, module *model.Module, courseID int64) error {
	siteID := h.site.GetID()
	logger := ctxlog.From(ctx)

	previous, err := h.store.Status(ctx, siteID, types.ComponentTag, module.ID)
	if err != nil {
		return goerr.Wrap(err, "failed to read status before prefetch", goerr.V("module_id", module.ID))
	}
	if previous == model.StatusDownloading {
		previous = model.StatusNotDownloaded
	}

	if err := h.store.SetStatus(ctx, siteID, types.ComponentTag, module.ID, model.StatusDownloading); err != nil {
		return goerr.Wrap(err, "failed to mark module as downloading", goerr.V("module_id", module.ID))
	}

	logger.Info("Prefetching module",
		"site_id", siteID,
		"module_id", module.ID,
		"course_id", courseID,
	)

	if err := h.fetch(ctx, module, courseID); err != nil {
		if restoreErr := h.store.SetStatus(ctx, siteID, types.ComponentTag, module.ID, previous); restoreErr != nil {
			logger.Warn("Failed to restore status after prefetch failure",
				"module_id", module.ID,
				"error", restoreErr,
			)
		}
		return goerr.Wrap(err, "failed to prefetch module",
			goerr.V("module_id", module.ID),
			goerr.V("course_id", courseID),
		)
	}

	if err := h.store.SetStatus(ctx, siteID, types.ComponentTag, module.ID, model.StatusDownloaded); err != nil {
		return goerr.Wrap(err, "failed to mark module as downloaded", goerr.V("module_id", module.ID))
	}
	return nil
}

// InvalidateContent marks a downloaded package as outdated
func (h *Handler) InvalidateContent(ctx context.Context, moduleID, courseID int64) error {
	siteID := h.site.GetID()

	current, err := h.store.Status(ctx, siteID, types.ComponentTag, moduleID)
	if err != nil {
		return goerr.Wrap(err, "failed to read status before invalidation", goerr.V("module_id", moduleID))
	}
	if current != model.StatusDownloaded {
		return nil
	}

	if err := h.store.SetStatus(ctx, siteID, types.ComponentTag, moduleID, model.StatusOutdated); err != nil {
		return goerr.Wrap(err, "failed to invalidate module content",
			goerr.V("module_id", moduleID),
			goerr.V("course_id", courseID),
		)
	}
	return nil
}
