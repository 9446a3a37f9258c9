package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
)

// ContentLinksDelegate dispatches URLs to the link handlers that recognise them
type ContentLinksDelegate struct {
	mu       sync.RWMutex
	handlers map[string]interfaces.LinkHandler
}

// NewContentLinksDelegate creates an empty delegate
func NewContentLinksDelegate() *ContentLinksDelegate {
	return &ContentLinksDelegate{
		handlers: make(map[string]interfaces.LinkHandler),
	}
}

// Register sets the handler registered under name, replacing any previous one
func (d *ContentLinksDelegate) Register(name string, h interfaces.LinkHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = h
}

// Actions collects the actions of every handler that recognises url, in handler name order.
// A failing handler is logged and skipped.
func (d *ContentLinksDelegate) Actions(ctx context.Context, siteIDs []string, url string, courseID int64) []*model.Action {
	logger := ctxlog.From(ctx)

	d.mu.RLock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	handlers := make(map[string]interfaces.LinkHandler, len(d.handlers))
	for name, h := range d.handlers {
		handlers[name] = h
	}
	d.mu.RUnlock()
	sort.Strings(names)

	actions := []*model.Action{}
	for _, name := range names {
		h := handlers[name]
		if _, ok := h.Handles(url); !ok {
			continue
		}

		found, err := h.GetActions(ctx, siteIDs, url, courseID)
		if err != nil {
			logger.Warn("Link handler failed", "handler", name, "url", url, "error", err)
			continue
		}
		actions = append(actions, found...)
	}
	return actions
}
