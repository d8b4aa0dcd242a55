package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all HTTP routes: the flight/passenger API, the messaging
// API, the liveness probe and the metrics endpoint.
func NewRouter(flights *FlightsHandler, whatsapp *WhatsAppHandler) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	api := engine.Group("/api")
	flights.Register(api.Group("/flights"))
	whatsapp.Register(api.Group("/whatsapp"))

	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return engine
}
