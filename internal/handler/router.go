package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministerio-antioquia/antioquia-api/internal/middleware"
	"github.com/ministerio-antioquia/antioquia-api/internal/models"
	"github.com/ministerio-antioquia/antioquia-api/internal/service"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Clock      *ClockHandler
	Board      *BoardHandler
	Suggestion *SuggestionHandler
	News       *NewsHandler
	Missionary *MissionaryHandler
	Setting    *SettingHandler
	Push       *PushHandler
	Events     *EventsHandler
}

// RegisterRoutes mounts the API surface on the engine.
//
// Public routes sit behind the maintenance gate so the site can be taken
// offline with a single setting. Admin routes bypass the gate, otherwise
// nobody could turn maintenance off again.
func RegisterRoutes(r *gin.Engine, h Handlers, auth *service.AuthService, settings *service.SettingService, metrics *service.MetricsService) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Login stays reachable during maintenance so operators can get back in.
	r.POST("/api/auth/login", h.Auth.Login)
	r.POST("/api/auth/refresh", h.Auth.Refresh)

	public := r.Group("/api")
	public.Use(middleware.Maintenance(settings))
	{
		public.GET("/clock", h.Clock.PublicView)
		public.GET("/board", h.Board.PublicView)
		public.POST("/suggestions", h.Suggestion.Submit)

		public.GET("/news", h.News.List)
		public.GET("/news/:id", h.News.Get)
		public.GET("/missionaries", h.Missionary.List)
		public.GET("/missionaries/:id", h.Missionary.Get)

		public.POST("/push/subscribe", h.Push.Subscribe)
	}

	authed := r.Group("/api")
	authed.Use(middleware.JWT(auth))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/me", h.Auth.Me)
		authed.PUT("/auth/password", h.Auth.ChangePassword)
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.JWT(auth))
	admin.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleEditor))
	{
		admin.GET("/clocks", h.Clock.List)
		admin.POST("/clocks", h.Clock.Create)
		admin.PUT("/clocks/:id", h.Clock.Update)
		admin.DELETE("/clocks/:id", h.Clock.Delete)
		admin.GET("/clocks/:id/export", h.Clock.Export)
		admin.POST("/clocks/:id/volunteers", h.Clock.AddVolunteer)
		admin.PUT("/volunteers/:id", h.Clock.UpdateVolunteer)
		admin.DELETE("/volunteers/:id", h.Clock.RemoveVolunteer)
		admin.POST("/clocks/:id/requests", h.Clock.AddPrayerRequest)
		admin.PUT("/requests/:id", h.Clock.UpdatePrayerRequest)
		admin.DELETE("/requests/:id", h.Clock.RemovePrayerRequest)

		admin.GET("/boards", h.Board.List)
		admin.POST("/boards", h.Board.Create)
		admin.PUT("/boards/:id", h.Board.Update)
		admin.DELETE("/boards/:id", h.Board.Delete)
		admin.GET("/postits", h.Board.ListPostIts)
		admin.POST("/postits", h.Board.CreatePostIt)
		admin.PUT("/postits/:id", h.Board.UpdatePostIt)
		admin.DELETE("/postits/:id", h.Board.DeletePostIt)

		admin.GET("/suggestions/pending", h.Suggestion.ListPending)
		admin.GET("/suggestions/pending/count", h.Suggestion.PendingCount)
		admin.GET("/suggestions/history", h.Suggestion.ListHistory)
		admin.POST("/suggestions/:id/approve", h.Suggestion.Approve)
		admin.POST("/suggestions/:id/refuse", h.Suggestion.Refuse)
		admin.GET("/events", h.Events.Stream)

		admin.POST("/news", h.News.Create)
		admin.PUT("/news/:id", h.News.Update)
		admin.DELETE("/news/:id", h.News.Delete)

		admin.POST("/missionaries", h.Missionary.Create)
		admin.PUT("/missionaries/:id", h.Missionary.Update)
		admin.DELETE("/missionaries/:id", h.Missionary.Delete)

		admin.POST("/push/broadcast", h.Push.Broadcast)
	}

	adminOnly := r.Group("/api/admin")
	adminOnly.Use(middleware.JWT(auth))
	adminOnly.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		adminOnly.GET("/settings", h.Setting.List)
		adminOnly.GET("/settings/:key", h.Setting.Get)
		adminOnly.PUT("/settings/:key", h.Setting.Update)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
