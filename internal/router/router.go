package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"star-catalog-api/internal/config"
	"star-catalog-api/internal/handler"
	"star-catalog-api/internal/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Favorite *handler.FavoriteHandler
	Catalog  *handler.CatalogHandler
	Static   *handler.StaticHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/login", h.Auth.Login)
	r.Post("/register", h.Auth.Register)
	r.With(authMiddleware.RequireAuth).Post("/logout", h.Auth.Logout)
	r.With(authMiddleware.RequireAuth).Get("/who_am_i", h.Auth.WhoAmI)

	r.Route("/favorites", func(fav chi.Router) {
		fav.Use(authMiddleware.RequireAuth)
		fav.Get("/{target}", h.Favorite.List)
		fav.Post("/{target}/{id}", h.Favorite.Add)
		fav.Delete("/{target}/{id}", h.Favorite.Remove)
	})

	r.Get("/people", h.Catalog.ListPeople)
	r.Get("/people/{id}", h.Catalog.GetPerson)
	r.Get("/planets", h.Catalog.ListPlanets)
	r.Get("/planets/{id}", h.Catalog.GetPlanet)

	// Everything else is served from the static root, with index.html
	// as the SPA fallback.
	if h.Static != nil {
		r.NotFound(h.Static.Serve)
	}

	return r
}
