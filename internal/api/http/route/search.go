package route

import (
	"github.com/gin-gonic/gin"
)

type SearchHandler interface {
	Search(c *gin.Context)
}

func RegisterSearchRoutes(g *gin.RouterGroup, h SearchHandler) {
	g.GET("", h.Search)
}
