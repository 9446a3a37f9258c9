package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/registry"
	"github.com/m-mizutani/modassign/pkg/utils/async"
)

type viewStore struct {
	mu    sync.RWMutex
	views map[string]interfaces.ViewController

	// views deleted while their work was still running
	draining async.Tracker
}

func newViewStore() *viewStore {
	return &viewStore{views: make(map[string]interfaces.ViewController)}
}

func (s *viewStore) add(v interfaces.ViewController) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[id] = v
	return id
}

func (s *viewStore) get(id string) (interfaces.ViewController, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.views[id]
	return v, ok
}

func (s *viewStore) remove(id string) (interfaces.ViewController, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.views[id]
	delete(s.views, id)
	return v, ok
}

// retire destroys v and keeps track of its pending work until drained
func (s *viewStore) retire(ctx context.Context, v interfaces.ViewController) {
	v.Destroy()
	s.draining.Go(ctx, func(ctx context.Context) error {
		v.Wait()
		return nil
	})
}

// destroyAll tears every view down and returns once no view work is running
func (s *viewStore) destroyAll() {
	s.mu.Lock()
	views := s.views
	s.views = make(map[string]interfaces.ViewController)
	s.mu.Unlock()

	for _, v := range views {
		v.Destroy()
	}
	for _, v := range views {
		v.Wait()
	}
	s.draining.Wait()
}

// CreateViewRequest is the body of POST /views
type CreateViewRequest struct {
	Module   *model.Module `json:"module"`
	CourseID int64         `json:"course_id"`
}

// ViewResponse describes one live view
type ViewResponse struct {
	ID    string          `json:"id"`
	State model.ViewState `json:"state"`
}

// ViewHandler drives course content cards over HTTP
type ViewHandler struct {
	contents *registry.CourseContentDelegate
	views    *viewStore
}

// Create instantiates a card for a module
func (h *ViewHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	var req CreateViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	if req.Module == nil || req.Module.ID == 0 {
		writeError(ctx, w, goerr.New("module id is required"), http.StatusBadRequest)
		return
	}
	courseID := req.CourseID
	if courseID == 0 {
		courseID = req.Module.CourseID
	}

	factory, err := h.contents.Controller(ctx, req.Module, courseID)
	switch {
	case errors.Is(err, interfaces.ErrHandlerNotFound):
		writeError(ctx, w, err, http.StatusNotFound)
		return
	case errors.Is(err, interfaces.ErrHandlerDisabled):
		writeError(ctx, w, err, http.StatusForbidden)
		return
	case err != nil:
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}

	view := factory.New(ctx)
	id := h.views.add(view)

	logger.Info("View created",
		"view_id", id,
		"module_id", req.Module.ID,
		"course_id", courseID,
	)

	writeJSON(ctx, w, http.StatusCreated, &ViewResponse{ID: id, State: view.State()})
}

// Get returns the current state of a card
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, view, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, &ViewResponse{ID: id, State: view.State()})
}

// Download presses the download button of a card
func (h *ViewHandler) Download(w http.ResponseWriter, r *http.Request) {
	h.press(w, r, func(s model.ViewState) *model.Button { return s.Download })
}

// Refresh presses the refresh button of a card
func (h *ViewHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.press(w, r, func(s model.ViewState) *model.Button { return s.Refresh })
}

// Open navigates to the module page
func (h *ViewHandler) Open(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, view, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := view.Open(ctx); err != nil {
		ctxlog.From(ctx).Error("Failed to open module", "view_id", id, "error", err)
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "opened"})
}

// Destroy tears a card down
func (h *ViewHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	view, ok := h.views.remove(id)
	if !ok {
		writeError(r.Context(), w, goerr.New("view not found", goerr.V("view_id", id)), http.StatusNotFound)
		return
	}
	h.views.retire(r.Context(), view)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ViewHandler) press(w http.ResponseWriter, r *http.Request, pick func(model.ViewState) *model.Button) {
	ctx := r.Context()
	id, view, ok := h.lookup(w, r)
	if !ok {
		return
	}

	button := pick(view.State())
	if button == nil || button.Action == nil {
		writeError(ctx, w, goerr.New("button is not available for this module", goerr.V("view_id", id)), http.StatusConflict)
		return
	}

	button.Action(ctx)
	writeJSON(ctx, w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *ViewHandler) lookup(w http.ResponseWriter, r *http.Request) (string, interfaces.ViewController, bool) {
	id := chi.URLParam(r, "viewID")
	view, ok := h.views.get(id)
	if !ok {
		writeError(r.Context(), w, goerr.New("view not found", goerr.V("view_id", id)), http.StatusNotFound)
		return "", nil, false
	}
	return id, view, true
}
