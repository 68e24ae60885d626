package api

import (
	stdhttp "net/http"

	intconfig "busconductor/internal/config"
	h "busconductor/internal/http/handlers"
	"busconductor/internal/http/middleware"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func NewRouter(env intconfig.Env, handlers *h.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.GET("/db-check", handlers.DBCheck)

		// Routes & fares
		api.GET("/routes", handlers.ListRoutes)
		api.GET("/routes/:routeNumber", handlers.GetRoute)
		api.POST("/calculate-fare", handlers.CalculateFare)

		// Tickets
		tickets := api.Group("/tickets")
		tickets.POST("", handlers.CreateTicket)
		tickets.GET("", handlers.ListTickets)
		tickets.POST("/generate", handlers.GenerateTicket)
		tickets.GET("/:ticketNumber", handlers.GetTicket)
		tickets.GET("/:ticketNumber/pdf", handlers.TicketPDF)

		api.GET("/statistics", handlers.Statistics)
		api.POST("/login", handlers.Login)

		// Assistant
		chat := api.Group("/chat")
		chat.POST("", handlers.Chat)
		chat.POST("/conversation", handlers.Conversation)
		chat.GET("/history/:conductorId", handlers.ChatHistory)
		chat.DELETE("/history/:conductorId", handlers.ClearChatHistory)
	}

	return r
}
