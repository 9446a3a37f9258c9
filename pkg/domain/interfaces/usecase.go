package interfaces

import (
	"context"

	"github.com/m-mizutani/modassign/pkg/domain/model"
)

// ViewController is one live course content card
type ViewController interface {
	State() model.ViewState
	Download(ctx context.Context)
	Refresh(ctx context.Context)
	Open(ctx context.Context) error
	Destroy()

	// Wait blocks until asynchronous work started by the controller has finished
	Wait()
}

// ViewControllerFactory instantiates card controllers for one module
type ViewControllerFactory interface {
	New(ctx context.Context) ViewController
}

// CourseContentHandler renders a module type in the course contents
type CourseContentHandler interface {
	IsEnabled(ctx context.Context) bool
	GetController(module *model.Module, courseID int64) ViewControllerFactory
}

// LinkHandler turns URLs into navigable actions
type LinkHandler interface {
	IsEnabled(ctx context.Context, siteID string, courseID int64) (bool, error)
	GetActions(ctx context.Context, siteIDs []string, url string, courseID int64) ([]*model.Action, error)

	// Handles returns the URL prefix before the matched path and true when url is handled
	Handles(url string) (string, bool)
}
