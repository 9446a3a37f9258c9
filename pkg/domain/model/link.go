package model

import "context"

// Action is a navigable action produced for a deep link
type Action struct {
	Message string         `json:"message"`
	Icon    string         `json:"icon"`
	SiteIDs []string       `json:"site_ids"`
	Route   string         `json:"route"`
	Params  map[string]any `json:"params"`

	// Run performs the navigation on one of SiteIDs
	Run func(ctx context.Context, siteID string) error `json:"-"`
}

// Navigation records a route change requested by a handler
type Navigation struct {
	Route  string         `json:"route"`
	Params map[string]any `json:"params"`
}
