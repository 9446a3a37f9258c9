package model

import "context"

// Button is a card button rendered next to a module
type Button struct {
	Hidden bool   `json:"hidden"`
	Icon   string `json:"icon"`
	Label  string `json:"label"`

	Action func(ctx context.Context) `json:"-"`
}

// ViewState holds what a course content card displays
type ViewState struct {
	Title    string  `json:"title"`
	Icon     string  `json:"icon"`
	Class    string  `json:"class"`
	Download *Button `json:"download,omitempty"`
	Refresh  *Button `json:"refresh,omitempty"`
	Spinner  bool    `json:"spinner"`
}

// ApplyStatus updates spinner and button visibility for status.
// It returns false and leaves the state untouched when status is unset.
func (s *ViewState) ApplyStatus(status Status) bool {
	if !status.IsSet() {
		return false
	}

	var showDownload, showRefresh bool
	switch status {
	case StatusDownloading:
		s.Spinner = true
	case StatusNotDownloaded:
		s.Spinner = false
		showDownload = true
	case StatusOutdated:
		s.Spinner = false
		showRefresh = true
	default:
		s.Spinner = false
	}

	if s.Download != nil {
		s.Download.Hidden = !showDownload
	}
	if s.Refresh != nil {
		s.Refresh.Hidden = !showRefresh
	}
	return true
}

// Clone returns a copy that does not share buttons with s
func (s *ViewState) Clone() ViewState {
	c := *s
	if s.Download != nil {
		b := *s.Download
		c.Download = &b
	}
	if s.Refresh != nil {
		b := *s.Refresh
		c.Refresh = &b
	}
	return c
}
