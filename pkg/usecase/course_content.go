package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/domain/types"
	"github.com/m-mizutani/modassign/pkg/utils/async"
)

// CourseContentDeps are the services used by CourseContentHandler
type CourseContentDeps struct {
	Plugin   interfaces.PluginService
	Prefetch interfaces.PrefetchHandler
	Status   interfaces.StatusDelegate
	Events   interfaces.EventBus
	Site     interfaces.SiteContext
	Notifier interfaces.Notifier
	Router   interfaces.Router
	Icons    interfaces.IconLookup
}

// CourseContentHandler renders assign modules in the course contents
type CourseContentHandler struct {
	deps CourseContentDeps
}

var _ interfaces.CourseContentHandler = (*CourseContentHandler)(nil)

// NewCourseContent creates a CourseContentHandler
func NewCourseContent(deps CourseContentDeps) *CourseContentHandler {
	return &CourseContentHandler{deps: deps}
}

// IsEnabled reports whether the assign plugin is enabled on the current site.
// A failing check counts as disabled.
func (h *CourseContentHandler) IsEnabled(ctx context.Context) bool {
	enabled, err := h.deps.Plugin.IsPluginEnabled(ctx, "")
	if err != nil {
		ctxlog.From(ctx).Debug("Plugin enablement check failed", "error", err)
		return false
	}
	return enabled
}

// GetController returns the card controller factory for module
func (h *CourseContentHandler) GetController(module *model.Module, courseID int64) interfaces.ViewControllerFactory {
	return &viewFactory{handler: h, module: module, courseID: courseID}
}

type viewFactory struct {
	handler  *CourseContentHandler
	module   *model.Module
	courseID int64
}

func (f *viewFactory) New(ctx context.Context) interfaces.ViewController {
	return f.handler.NewView(ctx, f.module, f.courseID)
}

// View is one course content card. It is safe for concurrent use.
type View struct {
	deps     *CourseContentDeps
	module   *model.Module
	courseID int64

	mu    sync.Mutex
	state model.ViewState

	alive   atomic.Bool
	sub     interfaces.Subscription
	release sync.Once
	pending async.Tracker
}

var _ interfaces.ViewController = (*View)(nil)

// NewView sets up a card for module. The download status is loaded in the
// background and kept in sync with status change events until Destroy.
func (h *CourseContentHandler) NewView(ctx context.Context, module *model.Module, courseID int64) *View {
	v := &View{
		deps:     &h.deps,
		module:   module,
		courseID: courseID,
	}
	v.alive.Store(true)

	modName := module.ModName
	if modName == "" {
		modName = types.ModName
	}

	v.state = model.ViewState{
		Title:   module.Name,
		Icon:    h.deps.Icons.GetModuleIconSrc(modName),
		Class:   types.CSSClass,
		Spinner: true,
	}

	if h.deps.Plugin.IsPrefetchEnabled() {
		v.state.Download = &model.Button{
			Hidden: true,
			Icon:   types.IconDownload,
			Label:  types.KeyDownload,
			Action: func(ctx context.Context) { v.dispatch(ctx, v.Download) },
		}
		v.state.Refresh = &model.Button{
			Hidden: true,
			Icon:   types.IconRefresh,
			Label:  types.KeyRefresh,
			Action: func(ctx context.Context) { v.dispatch(ctx, v.Refresh) },
		}
	}

	v.dispatch(ctx, v.loadStatus)
	v.sub = h.deps.Events.On(types.EventPackageStatusChanged, v.onStatusChanged)

	return v
}

// State returns a snapshot of the card
func (v *View) State() model.ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Clone()
}

// Alive reports whether Destroy has not been called yet
func (v *View) Alive() bool {
	return v.alive.Load()
}

// Wait blocks until background work started by the view has finished
func (v *View) Wait() {
	v.pending.Wait()
}

// Download fetches the current package size, asks for confirmation and prefetches the module.
// Failures end up in the view state or in an error modal.
func (v *View) Download(ctx context.Context) {
	logger := ctxlog.From(ctx)
	v.setSpinner(true)

	// the package may have changed since the last time, so always ask again
	size, err := v.deps.Prefetch.GetDownloadSize(ctx, v.module, v.courseID)
	if err != nil {
		logger.Warn("Failed to get download size",
			"module_id", v.module.ID,
			"error", err,
		)
		v.setSpinner(false)
		if v.Alive() {
			message, isKey := displayMessage(err)
			v.deps.Notifier.ShowErrorModal(ctx, message, isKey)
		}
		return
	}

	if err := v.deps.Notifier.ConfirmDownloadSize(ctx, size); err != nil {
		if !errors.Is(err, interfaces.ErrDownloadDeclined) {
			logger.Warn("Download confirmation failed", "module_id", v.module.ID, "error", err)
		}
		v.setSpinner(false)
		return
	}

	if err := v.deps.Prefetch.Prefetch(ctx, v.module, v.courseID); err != nil {
		logger.Warn("Failed to prefetch module",
			"module_id", v.module.ID,
			"course_id", v.courseID,
			"error", err,
		)
		if !v.Alive() {
			return
		}
		v.deps.Notifier.ShowErrorModal(ctx, types.KeyErrorDownloading, true)
	}

	v.loadStatus(ctx)
}

// Refresh invalidates the downloaded package and downloads it again
func (v *View) Refresh(ctx context.Context) {
	if err := v.deps.Prefetch.InvalidateContent(ctx, v.module.ID, v.courseID); err != nil {
		ctxlog.From(ctx).Warn("Failed to invalidate module content",
			"module_id", v.module.ID,
			"error", err,
		)
	}
	v.Download(ctx)
}

// Open navigates to the assignment page
func (v *View) Open(ctx context.Context) error {
	params := map[string]any{
		"module":   v.module,
		"courseId": v.courseID,
	}
	if err := v.deps.Router.Go(ctx, types.RouteAssignIndex, params); err != nil {
		return goerr.Wrap(err, "failed to open assignment",
			goerr.V("module_id", v.module.ID),
			goerr.V("course_id", v.courseID),
		)
	}
	return nil
}

// Destroy stops status updates. It can be called any number of times.
func (v *View) Destroy() {
	v.alive.Store(false)
	v.release.Do(func() {
		if v.sub != nil {
			v.sub.Off()
		}
	})
}

func (v *View) dispatch(ctx context.Context, fn func(ctx context.Context)) {
	v.pending.Go(ctx, func(ctx context.Context) error {
		fn(ctx)
		return nil
	})
}

func (v *View) loadStatus(ctx context.Context) {
	status, err := v.deps.Status.GetModuleStatus(ctx, v.module, v.courseID)
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to get module status",
			"module_id", v.module.ID,
			"error", err,
		)
		v.setSpinner(false)
		return
	}
	v.applyStatus(status)
}

func (v *View) onStatusChanged(ctx context.Context, data any) {
	ev, ok := data.(*model.StatusChangedEvent)
	if !ok || ev == nil {
		return
	}
	if !ev.Matches(v.deps.Site.GetID(), types.ComponentTag, v.module.ID) {
		return
	}
	v.applyStatus(ev.Status)
}

func (v *View) applyStatus(status model.Status) {
	v.update(func(s *model.ViewState) {
		s.ApplyStatus(status)
	})
}

func (v *View) setSpinner(on bool) {
	v.update(func(s *model.ViewState) {
		s.Spinner = on
	})
}

// update mutates the state unless the view is gone
func (v *View) update(fn func(s *model.ViewState)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.alive.Load() {
		return
	}
	fn(&v.state)
}

// displayMessage picks the message of a size failure. Only a *model.UserError
// in the chain carries text meant for the user; any other error, including
// wrapped driver or I/O errors, shows the generic download error key.
func displayMessage(err error) (string, bool) {
	var userErr *model.UserError
	if errors.As(err, &userErr) && userErr.Message != "" {
		return userErr.Message, false
	}
	return types.KeyErrorDownloading, true
}
