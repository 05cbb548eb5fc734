package router

import (
	"ecoRecommend/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")
	reco.GET("/cold-start", handler.ColdStart)
	reco.GET("/users/:id", handler.Personalized)
	reco.GET("/users/:id/debug", handler.DebugPersonalized)
	reco.POST("", handler.Envelope)

	api.GET("/search", handler.Search)
}

func SetupOpsRoutes(e *echo.Echo) {
	e.GET("/healthz", rest.Healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
