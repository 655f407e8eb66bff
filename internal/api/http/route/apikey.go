package route

import (
	"github.com/gin-gonic/gin"
)

type APIKeyHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Revoke(c *gin.Context)
}

func RegisterAPIKeyRoutes(g *gin.RouterGroup, h APIKeyHandler, jwtAuthMiddleware gin.HandlerFunc) {
	protected := g.Group("", jwtAuthMiddleware)
	protected.POST("", h.Create)
	protected.GET("/list", h.List)
	protected.POST("/revoke", h.Revoke)
}
