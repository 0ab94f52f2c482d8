package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/routehaven/orsproxy/internal/handlers"
	"github.com/routehaven/orsproxy/internal/middleware"
)

// Setup wires every endpoint onto router. /health is left unauthenticated;
// every other route sits behind the shared-token auth gate.
func Setup(router *gin.Engine, deps *handlers.Deps, proxyToken string) {
	router.GET("/health", handlers.Health)

	authed := router.Group("/")
	authed.Use(middleware.AuthRequired(proxyToken))
	{
		authed.GET("/route", deps.Route)
		authed.GET("/route/v1/:profile/:coords", deps.RouteV1)
		authed.GET("/table", deps.Table)
		authed.POST("/table", deps.Table)
		authed.GET("/search", deps.Search)
	}
}
