package interfaces

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrDownloadDeclined is returned by Notifier.ConfirmDownloadSize when the user says no
	ErrDownloadDeclined = goerr.New("download declined")

	// ErrHandlerNotFound is returned when no handler is registered for a module type
	ErrHandlerNotFound = goerr.New("handler not found")

	// ErrHandlerDisabled is returned when a registered handler is disabled on the current site
	ErrHandlerDisabled = goerr.New("handler disabled")

	// ErrSiteNotFound is returned for unknown site ids
	ErrSiteNotFound = goerr.New("site not found")
)
