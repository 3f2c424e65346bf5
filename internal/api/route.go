package api

import (
	"Linkstone/internal/api/middleware"
	"Linkstone/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		analyticsGroup := apiGroup.Group("/analytics")
		analyticsGroup.Use(middleware.AuthMiddleware())
		{
			analyticsGroup.GET("/:platform", group.AnalyticsHandler.GetAnalytics)
			analyticsGroup.POST("/:platform", group.AnalyticsHandler.SaveHandle)
			analyticsGroup.POST("/:platform/refresh", group.AnalyticsHandler.Refresh)
			analyticsGroup.DELETE("/:platform", group.AnalyticsHandler.DeleteHandle)
			analyticsGroup.GET("/:platform/quota", group.AnalyticsHandler.GetQuota)
		}
	}

	return r
}
