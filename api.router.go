package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpswagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/jeamon/locadora/docs"
)

// MiddlewareMap contains middlwares chain to
// use for public-facing and ops requests.
type MiddlewareMap struct {
	public func(httprouter.Handle) httprouter.Handle
	ops    func(httprouter.Handle) httprouter.Handle
}

// SetupRoutes enforces the api routes.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.HandleMethodNotAllowed = false
	router.NotFound = api.NotFound()
	router.GlobalOPTIONS = api.Preflight()

	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	router.GET("/swagger/*any", m.public(api.OpsHandlerWrapper(httpswagger.WrapHandler)))

	api.SetupMovieRoutes(router, m)

	if api.config != nil && api.config.OpsEndpointsEnable {
		api.SetupOpsRoutes(router, m)
	}
	return router
}

// SetupMovieRoutes registers the movies endpoints. The rent and return actions
// share the `/filmes/:id` prefix with the update route, so they are reached
// through `/filmes/:id/:target` and dispatched by MovieAvailability.
func (api *APIHandler) SetupMovieRoutes(router *httprouter.Router, m *MiddlewareMap) {
	router.GET("/filmes", m.public(api.ListMovies))
	router.POST("/filmes", m.public(api.CreateMovie))
	router.GET("/filmes/:id", m.public(api.GetOneMovie))
	router.PUT("/filmes/:id", m.public(api.UpdateMovie))
	router.DELETE("/filmes/:id", m.public(api.DeleteMovie))
	router.PUT("/filmes/:id/:target", m.public(api.MovieAvailability))
}

// SetupOpsRoutes registers the internal endpoints.
func (api *APIHandler) SetupOpsRoutes(router *httprouter.Router, m *MiddlewareMap) {
	router.GET("/ops/configs", m.ops(api.GetConfigs))
	router.GET("/ops/stats", m.ops(api.GetStatistics))
	router.GET("/ops/maintenance", m.ops(api.Maintenance))
}

// MovieAvailability routes `PUT /filmes/alugar/:id` and `PUT /filmes/devolver/:id`
// to the rent and return handlers.
func (api *APIHandler) MovieAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	params := httprouter.Params{{Key: "id", Value: ps.ByName("target")}}
	switch ps.ByName("id") {
	case "alugar":
		api.RentMovie(w, r, params)
	case "devolver":
		api.ReturnMovie(w, r, params)
	default:
		api.NotFound().ServeHTTP(w, r)
	}
}
