package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/KeithOruwari19/walkingbuddy/internal/adapters/events"
	"github.com/KeithOruwari19/walkingbuddy/internal/app"
	"github.com/KeithOruwari19/walkingbuddy/internal/config"
	"github.com/KeithOruwari19/walkingbuddy/internal/nav"
)

// Handlers carries the dependencies shared by all REST endpoints.
type Handlers struct {
	Orch *app.Orchestrator
	Nav  *nav.Client
	Cfg  *config.Config
}

func SetupRouter(ctx context.Context, cfg *config.Config, orch *app.Orchestrator, navClient *nav.Client) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions(cfg.SessionName, store))

	h := &Handlers{Orch: orch, Nav: navClient, Cfg: cfg}
	ev := &events.Controller{
		Hub:          orch.Hub,
		ReadLimit:    cfg.ReadLimit,
		PingPeriod:   cfg.PingPeriod,
		RateLimit:    cfg.ChatRateLimit,
		RateInterval: cfg.ChatRateInterval,
	}

	log.Info().Str("module", "adapters.http").Msg("router setup")

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.signup)
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
		auth.GET("/verify", h.verify)
		auth.GET("/me", h.verify)
	}

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.POST("/create", h.createRoom)
			rooms.GET("/list", h.listRooms)
			rooms.POST("/join", h.joinRoom)
			rooms.POST("/leave", h.leaveRoom)
			rooms.PUT("/status", h.updateRoomStatus)
			rooms.DELETE("/:room_id", h.deleteRoom)
		}

		chat := api.Group("/chat")
		{
			chat.POST("/send", h.sendMessage)
			chat.GET("/:room_id/messages", h.getMessages)
			chat.DELETE("/:room_id/messages", h.clearMessages)
		}

		api.GET("/ws/events", func(c *gin.Context) {
			ev.HandleEvents(ctx, c)
		})
	}

	service := r.Group("/service/v1")
	{
		service.POST("/route", h.route)
		service.POST("/walking_buddy", h.bookWalk)
		service.GET("/my_bookings", h.myBookings)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
