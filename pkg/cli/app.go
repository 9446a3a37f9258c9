package cli

import (
	"github.com/m-mizutani/modassign/pkg/cli/config"
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

// application holds every wired component of a running instance
type application struct {
	sites    *site.Registry
	bus      *eventbus.Bus
	store    *sqlite.Store
	notifier *shell.Notifier
	router   *shell.Router
	contents *registry.CourseContentDelegate
	links    *registry.ContentLinksDelegate
}

func newApplication(siteCfg config.Site, storageCfg config.Storage, downloadCfg config.Download) (*application, error) {
	sites, err := siteCfg.Configure()
	if err != nil {
		return nil, err
	}

	bus := eventbus.New()
	store := sqlite.New(storageCfg.DBPath, sites, bus)
	if err := store.Open(); err != nil {
		return nil, err
	}

	notifier := shell.NewNotifier(downloadCfg.ConfirmLimit)
	router := shell.NewRouter()

	contents := registry.NewCourseContentDelegate()
	contents.Register(types.ModName, usecase.NewCourseContent(usecase.CourseContentDeps{
		Plugin:   sites,
		Prefetch: prefetch.New(store, sites),
		Status:   store,
		Events:   bus,
		Site:     sites,
		Notifier: notifier,
		Router:   router,
		Icons:    shell.NewIcons(""),
	}))

	links := registry.NewContentLinksDelegate()
	links.Register(types.LinkHandlerName, usecase.NewLink(sites, sites, linkresolver.New(router)))

	return &application{
		sites:    sites,
		bus:      bus,
		store:    store,
		notifier: notifier,
		router:   router,
		contents: contents,
		links:    links,
	}, nil
}

func (a *application) Close() error {
	a.bus.Wait()
	return a.store.Close()
}
