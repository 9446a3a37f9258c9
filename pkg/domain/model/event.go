package model

// StatusChangedEvent is published on the event bus when a package status changes
type StatusChangedEvent struct {
	SiteID      string `json:"site_id"`
	ComponentID int64  `json:"component_id"`
	Component   string `json:"component"`
	Status      Status `json:"status"`
}

// Matches reports whether the event targets the given site, component and module
func (e *StatusChangedEvent) Matches(siteID, component string, componentID int64) bool {
	if e == nil {
		return false
	}
	return e.SiteID == siteID && e.Component == component && e.ComponentID == componentID
}
