package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/domain/types"
)

// LinkHandler recognises assign index URLs
type LinkHandler struct {
	plugin   interfaces.PluginService
	sites    interfaces.SiteCapabilities
	resolver interfaces.ModuleIndexResolver
}

var _ interfaces.LinkHandler = (*LinkHandler)(nil)

// NewLink creates a LinkHandler
func NewLink(plugin interfaces.PluginService, sites interfaces.SiteCapabilities, resolver interfaces.ModuleIndexResolver) *LinkHandler {
	return &LinkHandler{
		plugin:   plugin,
		sites:    sites,
		resolver: resolver,
	}
}

// IsEnabled reports whether assign links can be opened on siteID. Without a
// course (courseID 0) the site must be able to fetch a module by id only.
// Failing checks count as disabled.
func (h *LinkHandler) IsEnabled(ctx context.Context, siteID string, courseID int64) (bool, error) {
	logger := ctxlog.From(ctx)

	enabled, err := h.plugin.IsPluginEnabled(ctx, siteID)
	if err != nil {
		logger.Debug("Plugin enablement check failed", "site_id", siteID, "error", err)
		return false, nil
	}
	if !enabled {
		return false, nil
	}
	if courseID != 0 {
		return true, nil
	}

	can, err := h.sites.CanUseModuleWithoutCourse(ctx, siteID)
	if err != nil {
		logger.Debug("Site capability check failed", "site_id", siteID, "error", err)
		return false, nil
	}
	return can, nil
}

// GetActions returns the actions for url, or an empty list when url is not an assign link
func (h *LinkHandler) GetActions(ctx context.Context, siteIDs []string, url string, courseID int64) ([]*model.Action, error) {
	if _, ok := h.Handles(url); !ok {
		return []*model.Action{}, nil
	}

	actions, err := h.resolver.TreatModuleIndexURL(ctx, siteIDs, url, h.IsEnabled, courseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve assign link",
			goerr.V("url", url),
			goerr.V("course_id", courseID),
		)
	}
	return actions, nil
}

// Handles returns the part of url before the assign index path
func (h *LinkHandler) Handles(url string) (string, bool) {
	idx := strings.Index(url, types.IndexPathMarker)
	if idx < 0 {
		return "", false
	}
	return url[:idx], true
}
