package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/domain/types"
)

// PackageStore records package statuses and publishes their changes
type PackageStore interface {
	SetStatus(ctx context.Context, siteID, component string, componentID int64, status model.Status) error
	SetSize(ctx context.Context, siteID, component string, componentID, size int64) error
}

// SetPackageStatusRequest is the body of PUT /packages/{moduleID}/status
type SetPackageStatusRequest struct {
	Status model.Status `json:"status"`
	Size   int64        `json:"size,omitempty"`
	SiteID string       `json:"site_id,omitempty"`
}

// PackageHandler lets outside downloaders report package statuses
type PackageHandler struct {
	store PackageStore
	site  interfaces.SiteContext
}

// SetStatus stores the status of an assign package. Live views of the module
// follow through the status change event.
func (h *PackageHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := chi.URLParam(r, "moduleID")
	moduleID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || moduleID <= 0 {
		writeError(ctx, w, goerr.New("invalid module id", goerr.V("module_id", raw)), http.StatusBadRequest)
		return
	}

	var req SetPackageStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	if !req.Status.IsValid() {
		writeError(ctx, w, goerr.New("invalid status", goerr.V("status", req.Status)), http.StatusBadRequest)
		return
	}
	if req.Size < 0 {
		writeError(ctx, w, goerr.New("size must not be negative", goerr.V("size", req.Size)), http.StatusBadRequest)
		return
	}

	siteID := req.SiteID
	if siteID == "" {
		siteID = h.site.GetID()
	}

	if req.Size > 0 {
		if err := h.store.SetSize(ctx, siteID, types.ComponentTag, moduleID, req.Size); err != nil {
			writeError(ctx, w, err, http.StatusInternalServerError)
			return
		}
	}
	if err := h.store.SetStatus(ctx, siteID, types.ComponentTag, moduleID, req.Status); err != nil {
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}

	ctxlog.From(ctx).Info("Package status reported",
		"site_id", siteID,
		"module_id", moduleID,
		"status", req.Status,
	)

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"site_id":   siteID,
		"module_id": moduleID,
		"status":    req.Status,
	})
}
