// Package linkresolver builds navigation actions for module index URLs.
package linkresolver

import (
	"context"
	"net/url"
	"strconv"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// Resolver implements interfaces.ModuleIndexResolver
type Resolver struct {
	router interfaces.Router
}

var _ interfaces.ModuleIndexResolver = (*Resolver)(nil)

// New creates a Resolver that navigates with router
func New(router interfaces.Router) *Resolver {
	return &Resolver{router: router}
}

// TreatModuleIndexURL returns a single "view" action for the module referenced by rawURL,
// usable on every site of siteIDs where isEnabled holds. courseID 0 falls back to the
// courseid or cid query parameter.
func (r *Resolver) TreatModuleIndexURL(ctx context.Context, siteIDs []string, rawURL string, isEnabled interfaces.EnabledFunc, courseID int64) ([]*model.Action, error) {
	logger := ctxlog.From(ctx)

	params, err := queryParams(rawURL)
	if err != nil {
		logger.Debug("Ignoring unparsable module URL", "url", rawURL, "error", err)
		return []*model.Action{}, nil
	}

	moduleID, ok := intParam(params, "id")
	if !ok {
		return []*model.Action{}, nil
	}
	if courseID == 0 {
		if v, ok := intParam(params, "courseid"); ok {
			courseID = v
		} else if v, ok := intParam(params, "cid"); ok {
			courseID = v
		}
	}

	enabled := make([]bool, len(siteIDs))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, siteID := range siteIDs {
		eg.Go(func() error {
			ok, err := isEnabled(egCtx, siteID, courseID)
			if err != nil {
				logger.Warn("Link handler enablement check failed",
					"site_id", siteID,
					"error", err,
				)
				return nil
			}
			enabled[i] = ok
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to check sites", goerr.V("url", rawURL))
	}

	var sites []string
	for i, siteID := range siteIDs {
		if enabled[i] {
			sites = append(sites, siteID)
		}
	}
	if len(sites) == 0 {
		return []*model.Action{}, nil
	}

	routeParams := map[string]any{
		"moduleId": moduleID,
		"courseId": courseID,
	}

	action := &model.Action{
		Message: types.KeyView,
		Icon:    types.IconView,
		SiteIDs: sites,
		Route:   types.RouteCourseModule,
		Params:  routeParams,
	}
	action.Run = func(ctx context.Context, siteID string) error {
		navParams := map[string]any{"siteId": siteID}
		for k, v := range routeParams {
			navParams[k] = v
		}
		if err := r.router.Go(ctx, types.RouteCourseModule, navParams); err != nil {
			return goerr.Wrap(err, "failed to navigate to module",
				goerr.V("site_id", siteID),
				goerr.V("module_id", moduleID),
			)
		}
		return nil
	}

	return []*model.Action{action}, nil
}

func queryParams(rawURL string) (url.Values, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse URL")
	}
	return u.Query(), nil
}

func intParam(params url.Values, key string) (int64, bool) {
	raw := params.Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
