// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/middleware"
)

// Router wires the handler into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	publicDir     string
}

// NewRouter builds a Router from cfg.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	publicDir := ""
	if cfg != nil {
		mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
		mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
		mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
		mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled
		publicDir = cfg.Server.PublicDir
	}
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
		publicDir:     publicDir,
	}
}

// SetupChi configures every route.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(router.chiMiddleware.CORS())

	r.Get("/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if router.publicDir != "" {
		fs := http.StripPrefix("/public/", http.FileServer(noListingFS{http.Dir(router.publicDir)}))
		r.Get("/public/*", fs.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/ws", router.handler.WebSocket)

		r.Route("/movies", router.registerMovieRoutes)
		r.Route("/movieComments", func(r chi.Router) {
			r.Get("/{movieId}", router.handler.StandaloneComments)
			r.Post("/add", router.handler.AddStandaloneComment)
		})
		r.Route("/users", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitAuth()).Post("/signup", router.handler.Signup)
			r.With(router.chiMiddleware.RateLimitAuth()).Post("/login", router.handler.Login)
			r.Put("/profile/{identifier}", router.handler.UpdateProfile)
			router.registerUserRoutes(r)
		})
		r.Route("/profile", func(r chi.Router) {
			r.Get("/profile/{identifier}", router.handler.GetUser)
			r.Put("/profile/{identifier}", router.handler.UpdateProfile)
			router.registerUserRoutes(r)
		})
	})

	return r
}

func (router *Router) registerMovieRoutes(r chi.Router) {
	r.Get("/", router.handler.ListMovies)
	r.Post("/seed", router.handler.SeedMovies)
	r.Get("/download/{movieId}", router.handler.DownloadMovie)
	r.Get("/{movieId}", router.handler.GetMovie)
	r.Get("/{movieId}/similar", router.handler.SimilarMovies)
	r.Get("/{movieId}/comments", router.handler.MovieComments)
	r.Post("/{movieId}/comments", router.handler.AddMovieComment)
}

// registerUserRoutes mounts the per-user routes shared by /api/users and
// /api/profile.
func (router *Router) registerUserRoutes(r chi.Router) {
	r.Get("/{identifier}", router.handler.GetUser)
	r.Put("/{identifier}", router.handler.UpdateProfile)
	r.Get("/{identifier}/favorites", router.handler.GetFavorites)
	r.Put("/{identifier}/favorites", router.handler.PutFavorite)
	r.Get("/{identifier}/recentlyViewed", router.handler.GetRecentlyViewed)
	r.Put("/{identifier}/recentlyViewed", router.handler.PutRecentlyViewed)
}

// noListingFS hides directories so /public never renders an index.
type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
