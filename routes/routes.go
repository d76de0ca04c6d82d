package routes

import (
	"net/http"
	"time"

	"droptruck/handlers"
	"droptruck/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCallRoutes registers call-session endpoints.
func RegisterCallRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calls")
	{
		api.POST("/start", hb.StartCall)
		api.POST("/:sessionID/turn", hb.HandleTurn)
		api.GET("/:sessionID/booking", hb.GetBooking)
		api.GET("/:sessionID/transcript", hb.GetTranscript)
		api.POST("/:sessionID/end", hb.EndCall)
	}
}

// RegisterSTTRoutes registers the speech-to-text endpoint.
func RegisterSTTRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/stt")
	{
		api.POST("", hb.Transcribe)
	}
}

// RegisterRoutes sets up CORS, the health endpoint, and all route groups.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})

	RegisterCallRoutes(r, hb)
	RegisterSTTRoutes(r, hb)
}
