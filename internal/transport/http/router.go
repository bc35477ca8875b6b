package httptransport

import (
	"log/slog"

	"github.com/RusilKoirala/rusil-stream/internal/auth"
	"github.com/RusilKoirala/rusil-stream/internal/transport/http/handler"
	"github.com/RusilKoirala/rusil-stream/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Profile *handler.ProfileHandler
	History *handler.HistoryHandler
	Saved   *handler.SavedHandler
	Stream  *handler.StreamHandler
}

func NewRouter(logger *slog.Logger, sessions *auth.Sessions, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	// Public auth routes
	r.POST("/api/auth/signup", h.Auth.Signup)
	r.POST("/api/auth/verify", h.Auth.Verify)
	r.POST("/api/login", h.Auth.Login)
	r.POST("/api/logout", h.Auth.Logout)

	// Catalog browsing is public; user-scoped data is not.
	r.GET("/api/movies", h.Catalog.Browse)
	r.GET("/api/stream/:id", h.Stream.Get)

	authMW := middleware.Auth(sessions)

	api := r.Group("/api", authMW)
	api.GET("/auth/me", h.Auth.Me)

	api.POST("/profiles", h.Profile.Create)
	api.PUT("/profiles", h.Profile.Update)
	api.DELETE("/profiles", h.Profile.Delete)

	api.GET("/history", h.History.List)
	api.POST("/history", h.History.Record)

	api.GET("/saved", h.Saved.List)
	api.POST("/saved", h.Saved.Add)
	api.DELETE("/saved", h.Saved.Remove)

	return r
}
