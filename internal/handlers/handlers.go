package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"creatorhub/internal/config"
	"creatorhub/internal/content"
	"creatorhub/internal/middleware"
	"creatorhub/internal/session"
	"creatorhub/internal/storage"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	store    storage.Store
	sessions *session.Manager
	posts    *content.Repository
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, store storage.Store, sessions *session.Manager, posts *content.Repository) HandlerSet {
	return HandlerSet{
		log:      log,
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		posts:    posts,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	v1.Use(middleware.Auth(h.cfg))
	{
		auth := v1.Group("/auth")
		auth.POST("/register", h.SignUp)
		auth.POST("/login", h.SignIn)
		auth.POST("/logout", h.SignOut)

		me := v1.Group("/auth")
		me.Use(middleware.Gate(h.sessions, false))
		me.GET("/me", h.Me)

		// The feed and the age gate back the public landing page.
		v1.GET("/feed", h.Feed)
		v1.GET("/age-verification", h.AgeVerified)
		v1.POST("/age-verification", h.ConfirmAge)

		billing := v1.Group("/billing")
		billing.Use(middleware.Gate(h.sessions, false))
		billing.GET("/plans", h.BillingPlans)

		posts := v1.Group("/posts")
		posts.Use(middleware.Gate(h.sessions, true))
		posts.POST("", h.CreatePost)
		posts.DELETE("/:id", h.DeletePost)

		admin := v1.Group("/admin")
		admin.Use(middleware.Gate(h.sessions, true))
		admin.GET("/stats", h.AdminStats)
		admin.GET("/users", h.AdminUsers)
	}
}
