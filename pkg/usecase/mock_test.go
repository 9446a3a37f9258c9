package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
)

// MockPluginService is a mock implementation of PluginService
type MockPluginService struct {
	isPluginEnabledFunc func(ctx context.Context, siteID string) (bool, error)
	prefetchEnabled     bool
}

func (m *MockPluginService) IsPluginEnabled(ctx context.Context, siteID string) (bool, error) {
	if m.isPluginEnabledFunc != nil {
		return m.isPluginEnabledFunc(ctx, siteID)
	}
	return true, nil
}

func (m *MockPluginService) IsPrefetchEnabled() bool {
	return m.prefetchEnabled
}

// MockSiteCapabilities is a mock implementation of SiteCapabilities
type MockSiteCapabilities struct {
	canUseFunc func(ctx context.Context, siteID string) (bool, error)
}

func (m *MockSiteCapabilities) CanUseModuleWithoutCourse(ctx context.Context, siteID string) (bool, error) {
	if m.canUseFunc != nil {
		return m.canUseFunc(ctx, siteID)
	}
	return false, nil
}

// MockPrefetchHandler is a mock implementation of PrefetchHandler
type MockPrefetchHandler struct {
	getDownloadSizeFunc   func(ctx context.Context, module *model.Module, courseID int64) (*model.DownloadSize, error)
	prefetchFunc          func(ctx context.Context, module *model.Module, courseID int64) error
	invalidateContentFunc func(ctx context.Context, moduleID, courseID int64) error

	mu              sync.Mutex
	sizeCalls       int
	prefetchCalls   int
	invalidateCalls int
}

func (m *MockPrefetchHandler) GetDownloadSize(ctx context.Context, module *model.Module, courseID int64) (*model.DownloadSize, error) {
	m.mu.Lock()
	m.sizeCalls++
	m.mu.Unlock()
	if m.getDownloadSizeFunc != nil {
		return m.getDownloadSizeFunc(ctx, module, courseID)
	}
	return &model.DownloadSize{Size: 100, Total: true}, nil
}

func (m *MockPrefetchHandler) Prefetch(ctx context.Context, module *model.Module, courseID int64) error {
	m.mu.Lock()
	m.prefetchCalls++
	m.mu.Unlock()
	if m.prefetchFunc != nil {
		return m.prefetchFunc(ctx, module, courseID)
	}
	return nil
}

func (m *MockPrefetchHandler) InvalidateContent(ctx context.Context, moduleID, courseID int64) error {
	m.mu.Lock()
	m.invalidateCalls++
	m.mu.Unlock()
	if m.invalidateContentFunc != nil {
		return m.invalidateContentFunc(ctx, moduleID, courseID)
	}
	return nil
}

func (m *MockPrefetchHandler) calls() (size, prefetch, invalidate int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sizeCalls, m.prefetchCalls, m.invalidateCalls
}

// MockStatusDelegate is a mock implementation of StatusDelegate
type MockStatusDelegate struct {
	mu     sync.Mutex
	status model.Status
	err    error
}

func (m *MockStatusDelegate) GetModuleStatus(ctx context.Context, module *model.Module, courseID int64) (model.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status, m.err
}

func (m *MockStatusDelegate) set(status model.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
}

type fixedSite string

func (s fixedSite) GetID() string { return string(s) }

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	confirmFunc func(ctx context.Context, size *model.DownloadSize) error

	mu     sync.Mutex
	modals []model.Notification
}

func (m *MockNotifier) ConfirmDownloadSize(ctx context.Context, size *model.DownloadSize) error {
	if m.confirmFunc != nil {
		return m.confirmFunc(ctx, size)
	}
	return nil
}

func (m *MockNotifier) ShowErrorModal(ctx context.Context, message string, isKey bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modals = append(m.modals, model.Notification{Message: message, IsKey: isKey})
}

func (m *MockNotifier) shown() []model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Notification{}, m.modals...)
}

// MockRouter is a mock implementation of Router
type MockRouter struct {
	err         error
	navigations []model.Navigation
}

func (m *MockRouter) Go(ctx context.Context, route string, params map[string]any) error {
	m.navigations = append(m.navigations, model.Navigation{Route: route, Params: params})
	return m.err
}

type mockIcons struct{}

func (mockIcons) GetModuleIconSrc(modName string) string {
	return "icons/" + modName + ".svg"
}

// MockResolver is a mock implementation of ModuleIndexResolver
type MockResolver struct {
	treatFunc func(ctx context.Context, siteIDs []string, url string, isEnabled interfaces.EnabledFunc, courseID int64) ([]*model.Action, error)
	calls     int
}

func (m *MockResolver) TreatModuleIndexURL(ctx context.Context, siteIDs []string, url string, isEnabled interfaces.EnabledFunc, courseID int64) ([]*model.Action, error) {
	m.calls++
	if m.treatFunc != nil {
		return m.treatFunc(ctx, siteIDs, url, isEnabled, courseID)
	}
	return nil, errors.New("mock not configured")
}

// MockSubscription counts releases
type MockSubscription struct {
	mu  sync.Mutex
	off int
}

func (m *MockSubscription) Off() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.off++
}

// MockEventBus hands out MockSubscription without delivering anything
type MockEventBus struct {
	sub *MockSubscription
}

func (m *MockEventBus) On(name string, fn func(ctx context.Context, data any)) interfaces.Subscription {
	if m.sub == nil {
		return nil
	}
	return m.sub
}

func (m *MockEventBus) Trigger(ctx context.Context, name string, data any) {}
