package model

// Site is one LMS site the app is logged in to
type Site struct {
	ID                  string `toml:"id" json:"id"`
	URL                 string `toml:"url" json:"url"`
	Token               string `toml:"token" json:"token" masq:"secret"`
	PluginEnabled       bool   `toml:"plugin_enabled" json:"plugin_enabled"`
	PrefetchEnabled     bool   `toml:"prefetch_enabled" json:"prefetch_enabled"`
	ModuleWithoutCourse bool   `toml:"module_without_course" json:"module_without_course"`
}

// Notification is an error modal shown to the user
type Notification struct {
	Message string `json:"message"`
	IsKey   bool   `json:"is_key"`
}
