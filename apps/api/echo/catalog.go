package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/trezcool/campus/core/catalog"
)

const resetParam = "reset"

type catalogHandler struct {
	sources  map[string]catalog.Source
	sessions *cache.Cache
	metrics  *metrics
}

func registerCatalogs(
	e *echo.Echo,
	api *echo.Group,
	csrf echo.MiddlewareFunc,
	sources []catalog.Source,
	sessions *cache.Cache,
	m *metrics,
) {
	h := catalogHandler{
		sources:  make(map[string]catalog.Source, len(sources)),
		sessions: sessions,
		metrics:  m,
	}
	for _, src := range sources {
		h.sources[src.Name()] = src
	}

	cg := e.Group("/catalog", csrf, visitorMiddleware)
	cg.GET("/:name", h.page)
	cg.POST("/:name/toggle/:id", h.toggle)

	ag := api.Group("/catalog", visitorMiddleware)
	ag.GET("/:name", h.view)
	ag.POST("/:name/toggle/:id", h.toggleAPI)
}

// browser returns the visitor's session over the catalog named in the path, opening it on first use.
func (h *catalogHandler) browser(ctx echo.Context) (string, catalog.Browser, error) {
	name := ctx.Param("name")
	src, ok := h.sources[name]
	if !ok {
		return "", nil, errHttpNotFound
	}
	rctx := ctx.Request().Context()
	key := contextVisitor(ctx) + "/" + name

	if cached, found := h.sessions.Get(key); found {
		b := cached.(catalog.Browser)
		if err := src.Refresh(rctx, b); err != nil {
			return "", nil, errors.Wrap(err, "refreshing catalog")
		}
		h.sessions.SetDefault(key, b) // extend the session
		return name, b, nil
	}

	b, err := src.Open(rctx)
	if err != nil {
		return "", nil, errors.Wrap(err, "opening catalog")
	}
	if err = h.sessions.Add(key, b, cache.DefaultExpiration); err != nil { // opened concurrently
		if cached, found := h.sessions.Get(key); found {
			b = cached.(catalog.Browser)
		}
	}
	h.metrics.catalogSessions.Inc()
	return name, b, nil
}

// applyQuery sets the criteria found in the query string; with "reset" they apply over the defaults.
// A rejected query leaves the session untouched.
func applyQuery(ctx echo.Context, b catalog.Browser) error {
	params := ctx.QueryParams()
	criteria := make(catalog.Criteria, len(params))
	for dim, vals := range params {
		if dim == resetParam || len(vals) == 0 {
			continue
		}
		criteria[dim] = vals[0]
	}
	if _, ok := params[resetParam]; ok {
		return b.ReplaceCriteria(criteria)
	}
	if len(criteria) == 0 {
		return nil
	}
	return b.SetCriteria(criteria)
}

func (h *catalogHandler) render(ctx echo.Context) (catalog.View, error) {
	name, b, err := h.browser(ctx)
	if err != nil {
		return catalog.View{}, err
	}
	if err = applyQuery(ctx, b); err != nil {
		return catalog.View{}, errors.Wrap(err, "setting criteria")
	}
	h.metrics.catalogViews.WithLabelValues(name).Inc()
	return b.View(), nil
}

func (h *catalogHandler) doToggle(ctx echo.Context) (catalog.Browser, error) {
	id, err := bindID(ctx)
	if err != nil {
		return nil, err
	}
	name, b, err := h.browser(ctx)
	if err != nil {
		return nil, err
	}
	b.Toggle(id)
	h.metrics.catalogToggles.WithLabelValues(name).Inc()
	return b, nil
}

// Handlers

func (h *catalogHandler) page(ctx echo.Context) error {
	view, err := h.render(ctx)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, tplCatalog, newPage(ctx, view.Title, view))
}

func (h *catalogHandler) view(ctx echo.Context) error {
	view, err := h.render(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (h *catalogHandler) toggle(ctx echo.Context) error {
	if _, err := h.doToggle(ctx); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/catalog/"+ctx.Param("name")+"#item-"+ctx.Param("id"))
}

func (h *catalogHandler) toggleAPI(ctx echo.Context) error {
	b, err := h.doToggle(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, b.View())
}
