// Package router wires handlers and middleware into the gin engine.
package router

import (
	"time"

	"moviehub/internal/api/handler"
	"moviehub/internal/api/middleware"
	"moviehub/internal/api/service"
	"moviehub/internal/cache"
	"moviehub/internal/logging"
	"moviehub/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Movies service.MovieService
	Actors service.ActorService
	Auth   service.AuthService
	DB     handler.Pinger

	CORSOrigins []string

	// TrustedProxies may set X-Forwarded-For. Empty trusts none, so the
	// client IP is always the socket peer.
	TrustedProxies []string

	// optional
	Cache   *cache.Cache
	Metrics *metrics.Metrics
	Limiter *middleware.RateLimiter
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		logging.Warn().Err(err).Strs("trusted_proxies", d.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), logging.GinMiddleware())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", d.Metrics.Handler())
	}
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	r.GET("/check-conn", handler.NewHealthHandler(d.DB).CheckConn)

	var protected []gin.HandlerFunc
	if d.Limiter != nil {
		protected = append(protected, d.Limiter.Middleware())
	}
	protected = append(protected,
		middleware.AuthMiddleware(d.Auth),
		middleware.RequireRole(service.DefaultRole),
	)

	// login stays outside the cached group so it never invalidates
	handler.NewAuthHandler(d.Auth).RegisterRoutes(r.Group("/api/auth"))

	api := r.Group("/api")
	api.Use(d.Cache.Middleware(), d.Cache.Invalidator())

	handler.NewMovieHandler(d.Movies).RegisterRoutes(api.Group("/movie"), protected...)
	handler.NewActorHandler(d.Actors, d.Movies).RegisterRoutes(api.Group("/actor"), protected...)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", logging.RequestIDHeader},
		ExposeHeaders: []string{"Location", "X-Total-Count", logging.RequestIDHeader, cache.HeaderCache},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
