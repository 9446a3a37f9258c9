package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/registry"
)

// OpenLinkRequest is the body of POST /links/open
type OpenLinkRequest struct {
	URL      string `json:"url"`
	SiteID   string `json:"site_id"`
	CourseID int64  `json:"course_id"`
}

// LinkHandler resolves deep links over HTTP
type LinkHandler struct {
	links          *registry.ContentLinksDelegate
	defaultSiteIDs []string
}

// Actions lists the actions available for a URL
func (h *LinkHandler) Actions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	url := q.Get("url")
	if url == "" {
		writeError(ctx, w, goerr.New("url is required"), http.StatusBadRequest)
		return
	}

	var courseID int64
	if raw := q.Get("course_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(ctx, w, goerr.Wrap(err, "invalid course_id", goerr.V("course_id", raw)), http.StatusBadRequest)
			return
		}
		courseID = v
	}

	siteIDs := q["site_id"]
	if len(siteIDs) == 0 {
		siteIDs = h.defaultSiteIDs
	}

	actions := h.links.Actions(ctx, siteIDs, url, courseID)
	writeJSON(ctx, w, http.StatusOK, map[string]any{"actions": actions})
}

// Open resolves a URL and runs its first action on the requested site
func (h *LinkHandler) Open(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OpenLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}
	if req.URL == "" || req.SiteID == "" {
		writeError(ctx, w, goerr.New("url and site_id are required"), http.StatusBadRequest)
		return
	}

	action := firstActionFor(h.links.Actions(ctx, []string{req.SiteID}, req.URL, req.CourseID), req.SiteID)
	if action == nil {
		writeError(ctx, w, goerr.New("no action for link", goerr.V("url", req.URL)), http.StatusNotFound)
		return
	}

	if err := action.Run(ctx, req.SiteID); err != nil {
		ctxlog.From(ctx).Error("Failed to run link action", "url", req.URL, "error", err)
		writeError(ctx, w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(ctx, w, http.StatusOK, action)
}

func firstActionFor(actions []*model.Action, siteID string) *model.Action {
	for _, a := range actions {
		if a.Run == nil {
			continue
		}
		for _, s := range a.SiteIDs {
			if s == siteID {
				return a
			}
		}
	}
	return nil
}
