package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	controller "github.com/m-mizutani/modassign/pkg/controller/http"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/domain/types"
	"github.com/m-mizutani/modassign/pkg/infra/eventbus"
	"github.com/m-mizutani/modassign/pkg/infra/linkresolver"
	"github.com/m-mizutani/modassign/pkg/infra/prefetch"
	"github.com/m-mizutani/modassign/pkg/infra/shell"
	"github.com/m-mizutani/modassign/pkg/infra/site"
	"github.com/m-mizutani/modassign/pkg/infra/sqlite"
	"github.com/m-mizutani/modassign/pkg/registry"
	"github.com/m-mizutani/modassign/pkg/usecase"
)

type testApp struct {
	server   *controller.Server
	store    *sqlite.Store
	bus      *eventbus.Bus
	notifier *shell.Notifier
	router   *shell.Router
}

func newTestApp(t *testing.T, opts ...prefetch.Option) *testApp {
	t.Helper()
	ctx := context.Background()

	sites, err := site.New("school",
		&model.Site{ID: "school", URL: "https://school.example.com", PluginEnabled: true, PrefetchEnabled: true},
		&model.Site{ID: "campus", URL: "https://campus.example.com", PluginEnabled: true, ModuleWithoutCourse: true},
	)
	gt.NoError(t, err)

	bus := eventbus.New()
	store := sqlite.New(":memory:", sites, bus)
	gt.NoError(t, store.Open())
	t.Cleanup(func() {
		_ = store.Close()
	})

	notifier := shell.NewNotifier(0)
	router := shell.NewRouter()

	contents := registry.NewCourseContentDelegate()
	contents.Register(types.ModName, usecase.NewCourseContent(usecase.CourseContentDeps{
		Plugin:   sites,
		Prefetch: prefetch.New(store, sites, opts...),
		Status:   store,
		Events:   bus,
		Site:     sites,
		Notifier: notifier,
		Router:   router,
		Icons:    shell.NewIcons(""),
	}))

	links := registry.NewContentLinksDelegate()
	links.Register(types.LinkHandlerName, usecase.NewLink(sites, sites, linkresolver.New(router)))

	server, err := controller.NewServer(ctx, contents, links,
		controller.WithAddr("localhost:0"),
		controller.WithSiteIDs(sites.IDs()...),
		controller.WithNotifications(notifier),
		controller.WithNavigations(router),
		controller.WithPackages(store, sites),
	)
	gt.NoError(t, err)
	t.Cleanup(server.DestroyViews)

	return &testApp{server: server, store: store, bus: bus, notifier: notifier, router: router}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.server.Handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}
