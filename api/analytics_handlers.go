package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/faq-assistant/services"
)

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	if api.analytics == nil {
		SendError(c, http.StatusNotImplemented, ErrorCodeNotConfigured, "Analytics are not enabled")
		return
	}

	dashboard, err := api.analytics.GetDashboardData(c.Request.Context())
	if err != nil {
		SendInternalError(c, "retrieve analytics data", err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// HealthCheckHandler reports whether the FAQ store is reachable
func (api *API) HealthCheckHandler(c *gin.Context) {
	active, err := api.manager.Count(c.Request.Context(), services.ListOptions{ActiveOnly: true})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"service":   "faq-assistant",
			"error":     err.Error(),
			"timestamp": time.Now().Unix(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     "faq-assistant",
		"active_faqs": active,
		"timestamp":   time.Now().Unix(),
	})
}
