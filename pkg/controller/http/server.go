package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/registry"
)

// NotificationSource lists error modals shown so far
type NotificationSource interface {
	Notifications() []model.Notification
}

// NavigationSource lists navigations performed so far
type NavigationSource interface {
	Navigations() []model.Navigation
}

// config holds internal HTTP server configuration
type config struct {
	addr          string
	siteIDs       []string
	notifications NotificationSource
	navigations   NavigationSource
	packages      PackageStore
	site          interfaces.SiteContext
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithSiteIDs sets the sites used for link resolution when a request names none
func WithSiteIDs(siteIDs ...string) Option {
	return func(c *config) {
		c.siteIDs = siteIDs
	}
}

// WithNotifications exposes recorded error modals on /notifications
func WithNotifications(src NotificationSource) Option {
	return func(c *config) {
		c.notifications = src
	}
}

// WithNavigations exposes recorded navigations on /navigations
func WithNavigations(src NavigationSource) Option {
	return func(c *config) {
		c.navigations = src
	}
}

// WithPackages accepts package status reports on /packages/{moduleID}/status.
// Reports without a site id are stored for the current site of site.
func WithPackages(store PackageStore, site interfaces.SiteContext) Option {
	return func(c *config) {
		c.packages = store
		c.site = site
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	views *viewStore
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	contents *registry.CourseContentDelegate,
	links *registry.ContentLinksDelegate,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr: "localhost:8080",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	views := newViewStore()

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)

	viewHandler := &ViewHandler{contents: contents, views: views}
	router.Route("/views", func(r chi.Router) {
		r.Post("/", viewHandler.Create)
		r.Route("/{viewID}", func(r chi.Router) {
			r.Get("/", viewHandler.Get)
			r.Delete("/", viewHandler.Destroy)
			r.Post("/download", viewHandler.Download)
			r.Post("/refresh", viewHandler.Refresh)
			r.Post("/open", viewHandler.Open)
		})
	})

	linkHandler := &LinkHandler{links: links, defaultSiteIDs: cfg.siteIDs}
	router.Get("/links/actions", linkHandler.Actions)
	router.Post("/links/open", linkHandler.Open)

	if cfg.packages != nil && cfg.site != nil {
		packageHandler := &PackageHandler{store: cfg.packages, site: cfg.site}
		router.Put("/packages/{moduleID}/status", packageHandler.SetStatus)
	}

	if cfg.notifications != nil {
		router.Get("/notifications", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(r.Context(), w, http.StatusOK, map[string]any{
				"notifications": cfg.notifications.Notifications(),
			})
		})
	}
	if cfg.navigations != nil {
		router.Get("/navigations", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(r.Context(), w, http.StatusOK, map[string]any{
				"navigations": cfg.navigations.Navigations(),
			})
		})
	}

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		views: views,
	}

	return server, nil
}

// DestroyViews tears down every live view and waits for their pending work.
// Call it after Shutdown and before closing the status store.
func (s *Server) DestroyViews() {
	s.views.destroyAll()
}
