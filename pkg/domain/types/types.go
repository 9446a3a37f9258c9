package types

// Version is the application version, overridden at build time
var Version = "dev"

// ModName is the course module name handled by this plugin
const ModName = "assign"

// ComponentTag identifies assign modules in prefetch and status events
const ComponentTag = "mmaModAssign"

// LinkHandlerName is the key the link handler registers under
const LinkHandlerName = "AddonModAssignLinkHandler"

// IndexPathMarker is the URL path that identifies an assign index page
const IndexPathMarker = "/mod/assign/view.php"

// CSSClass is attached to assign cards in the course contents
const CSSClass = "core-course-module-assign-handler"

// EventPackageStatusChanged is published whenever a module download status changes
const EventPackageStatusChanged = "package_status_changed"

// Route names used for navigation
const (
	RouteAssignIndex  = "site.mod_assign"
	RouteCourseModule = "core.course.module"
)

// Language keys used in notifications and actions
const (
	KeyErrorDownloading = "core.errordownloading"
	KeyDownload         = "core.download"
	KeyRefresh          = "core.refresh"
	KeyView             = "core.view"
)

// Button icons
const (
	IconDownload = "cloud-download"
	IconRefresh  = "refresh"
	IconView     = "eye"
)
