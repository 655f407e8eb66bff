package route

import (
	"github.com/gin-gonic/gin"
)

type VisitHandler interface {
	GetStats(c *gin.Context)
	StreamStats(c *gin.Context)
}

func RegisterStatsRoutes(g *gin.RouterGroup, h VisitHandler, jwtAuthMiddleware, allowManagerAndAdminMiddleware gin.HandlerFunc) {
	protected := g.Group("", jwtAuthMiddleware, allowManagerAndAdminMiddleware)
	protected.GET("/visits", h.GetStats)
	protected.GET("/ws/live", h.StreamStats)
}
