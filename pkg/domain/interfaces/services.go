package interfaces

import (
	"context"

	"github.com/m-mizutani/modassign/pkg/domain/model"
)

// PluginService reports whether the assign plugin is usable
type PluginService interface {
	// IsPluginEnabled checks the plugin on siteID, or on the current site when siteID is empty
	IsPluginEnabled(ctx context.Context, siteID string) (bool, error)

	// IsPrefetchEnabled reports whether assign packages can be downloaded for offline use
	IsPrefetchEnabled() bool
}

// SiteCapabilities exposes per-site features needed for link resolution
type SiteCapabilities interface {
	// CanUseModuleWithoutCourse reports whether the site can fetch a module without its course id
	CanUseModuleWithoutCourse(ctx context.Context, siteID string) (bool, error)
}

// SiteContext exposes the current site
type SiteContext interface {
	GetID() string
}

// PrefetchHandler downloads module packages
type PrefetchHandler interface {
	GetDownloadSize(ctx context.Context, module *model.Module, courseID int64) (*model.DownloadSize, error)
	Prefetch(ctx context.Context, module *model.Module, courseID int64) error
	InvalidateContent(ctx context.Context, moduleID, courseID int64) error
}

// StatusDelegate reports the download status of modules
type StatusDelegate interface {
	GetModuleStatus(ctx context.Context, module *model.Module, courseID int64) (model.Status, error)
}

// Subscription is a live event bus registration
type Subscription interface {
	// Off releases the registration. Calling it more than once is a no-op.
	Off()
}

// EventBus delivers named events to listeners
type EventBus interface {
	On(name string, fn func(ctx context.Context, data any)) Subscription
	Trigger(ctx context.Context, name string, data any)
}

// Notifier talks to the user
type Notifier interface {
	// ConfirmDownloadSize returns ErrDownloadDeclined when the user declines
	ConfirmDownloadSize(ctx context.Context, size *model.DownloadSize) error
	ShowErrorModal(ctx context.Context, message string, isKey bool)
}

// Router navigates between app pages
type Router interface {
	Go(ctx context.Context, route string, params map[string]any) error
}

// IconLookup resolves module icons
type IconLookup interface {
	GetModuleIconSrc(modName string) string
}

// EnabledFunc decides whether a link can be handled on siteID
type EnabledFunc func(ctx context.Context, siteID string, courseID int64) (bool, error)

// ModuleIndexResolver builds actions for module index URLs
type ModuleIndexResolver interface {
	TreatModuleIndexURL(ctx context.Context, siteIDs []string, url string, isEnabled EnabledFunc, courseID int64) ([]*model.Action, error)
}
