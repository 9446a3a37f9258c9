// Package registry keeps the handlers contributed by content type plugins.
package registry

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
)

// CourseContentDelegate maps module names to course content handlers
type CourseContentDelegate struct {
	mu       sync.RWMutex
	handlers map[string]interfaces.CourseContentHandler
}

// NewCourseContentDelegate creates an empty delegate
func NewCourseContentDelegate() *CourseContentDelegate {
	return &CourseContentDelegate{
		handlers: make(map[string]interfaces.CourseContentHandler),
	}
}

// Register sets the handler for modName, replacing any previous one
func (d *CourseContentDelegate) Register(modName string, h interfaces.CourseContentHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[modName] = h
}

// Handler returns the handler registered for modName
func (d *CourseContentDelegate) Handler(modName string) (interfaces.CourseContentHandler, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.handlers[modName]
	return h, ok
}

// Controller returns the card factory of module if its handler is enabled
func (d *CourseContentDelegate) Controller(ctx context.Context, module *model.Module, courseID int64) (interfaces.ViewControllerFactory, error) {
	h, ok := d.Handler(module.ModName)
	if !ok {
		return nil, goerr.Wrap(interfaces.ErrHandlerNotFound, "no course content handler", goerr.V("modname", module.ModName))
	}
	if !h.IsEnabled(ctx) {
		return nil, goerr.Wrap(interfaces.ErrHandlerDisabled, "course content handler is disabled", goerr.V("modname", module.ModName))
	}
	return h.GetController(module, courseID), nil
}
