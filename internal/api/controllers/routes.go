package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wanderlust/pkg/middleware"
	"wanderlust/pkg/utils"
)

func RegisterRoutes(r *gin.Engine, jwt *utils.JWTManager, itineraries *ItineraryController) {
	r.GET("/healthz", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"ok": true}, "healthy")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	group := r.Group("/itineraries")
	group.POST("/validate", itineraries.ValidateTrip)
	group.POST("/auto-fix", itineraries.AutoFixTrip)
	group.POST("/auto-fix-day", itineraries.AutoFixDay)
	group.GET("/day-policy", itineraries.GetDayPolicy)

	authed := group.Group("", middleware.JWTAuthMiddleware(jwt))
	authed.POST("/generate", itineraries.GenerateItinerary)
	authed.POST("", itineraries.SaveItinerary)
	authed.GET("", itineraries.ListItineraries)
	authed.GET("/:id", itineraries.GetItinerary)
	authed.DELETE("/:id", itineraries.DeleteItinerary)

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "Route not found")
	})
}
