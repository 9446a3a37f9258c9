// Package site keeps the sites the app is logged in to, loaded from a TOML file.
package site

import (
	"context"
	"os"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
)

// File is the on-disk layout of the site configuration
type File struct {
	CurrentSite string        `toml:"current_site"`
	Sites       []*model.Site `toml:"sites"`
}

// Registry implements SiteContext, PluginService and SiteCapabilities over a fixed set of sites
type Registry struct {
	mu      sync.RWMutex
	current string
	sites   map[string]*model.Site
	order   []string
}

var (
	_ interfaces.SiteContext      = (*Registry)(nil)
	_ interfaces.PluginService    = (*Registry)(nil)
	_ interfaces.SiteCapabilities = (*Registry)(nil)
)

// Load reads a site configuration file
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read site config", goerr.V("path", path))
	}
	return Parse(raw)
}

// Parse decodes TOML site configuration
func Parse(raw []byte) (*Registry, error) {
	var f File
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse site config")
	}
	return New(f.CurrentSite, f.Sites...)
}

// New builds a registry. current defaults to the first site when empty.
func New(current string, sites ...*model.Site) (*Registry, error) {
	if len(sites) == 0 {
		return nil, goerr.New("no site configured")
	}

	r := &Registry{
		sites: make(map[string]*model.Site, len(sites)),
	}
	for _, s := range sites {
		if s.ID == "" {
			return nil, goerr.New("site id is required", goerr.V("url", s.URL))
		}
		if _, ok := r.sites[s.ID]; ok {
			return nil, goerr.New("duplicated site id", goerr.V("site_id", s.ID))
		}
		r.sites[s.ID] = s
		r.order = append(r.order, s.ID)
	}

	if current == "" {
		current = r.order[0]
	}
	if _, ok := r.sites[current]; !ok {
		return nil, goerr.Wrap(interfaces.ErrSiteNotFound, "current site is not configured", goerr.V("site_id", current))
	}
	r.current = current

	return r, nil
}

// GetID returns the current site id
func (r *Registry) GetID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// SetCurrent switches the current site
func (r *Registry) SetCurrent(siteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sites[siteID]; !ok {
		return goerr.Wrap(interfaces.ErrSiteNotFound, "cannot switch site", goerr.V("site_id", siteID))
	}
	r.current = siteID
	return nil
}

// Site returns a copy of the site configuration
func (r *Registry) Site(siteID string) (*model.Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sites[siteID]
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrSiteNotFound, "unknown site", goerr.V("site_id", siteID))
	}
	copied := *s
	return &copied, nil
}

// IDs returns site ids in configuration order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// IsPluginEnabled reports whether the assign plugin is enabled on siteID.
// An empty siteID means the current site.
func (r *Registry) IsPluginEnabled(ctx context.Context, siteID string) (bool, error) {
	if siteID == "" {
		siteID = r.GetID()
	}
	s, err := r.Site(siteID)
	if err != nil {
		return false, err
	}
	return s.PluginEnabled, nil
}

// IsPrefetchEnabled reports whether the current site allows offline downloads
func (r *Registry) IsPrefetchEnabled() bool {
	s, err := r.Site(r.GetID())
	if err != nil {
		return false
	}
	return s.PrefetchEnabled
}

// CanUseModuleWithoutCourse reports whether siteID can fetch a module by id only
func (r *Registry) CanUseModuleWithoutCourse(ctx context.Context, siteID string) (bool, error) {
	s, err := r.Site(siteID)
	if err != nil {
		return false, err
	}
	return s.ModuleWithoutCourse, nil
}
