package shell

import (
	"context"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
)

// Router records navigations instead of rendering pages
type Router struct {
	mu          sync.Mutex
	navigations []model.Navigation
}

var _ interfaces.Router = (*Router)(nil)

// NewRouter creates an empty Router
func NewRouter() *Router {
	return &Router{}
}

// Go records a navigation to route
func (r *Router) Go(ctx context.Context, route string, params map[string]any) error {
	if route == "" {
		return goerr.New("route is required")
	}

	ctxlog.From(ctx).Info("Navigating", "route", route, "params", params)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigations = append(r.navigations, model.Navigation{Route: route, Params: params})
	if len(r.navigations) > maxRecords {
		r.navigations = r.navigations[len(r.navigations)-maxRecords:]
	}
	return nil
}

// Navigations returns recorded navigations, oldest first
func (r *Router) Navigations() []model.Navigation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Navigation{}, r.navigations...)
}
