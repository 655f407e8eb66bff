package route

import (
	"github.com/gin-gonic/gin"
)

type PageHandler interface {
	CreatePage(c *gin.Context)
	GetPage(c *gin.Context)
	ListPages(c *gin.Context)
	UpdatePage(c *gin.Context)
	DeletePage(c *gin.Context)
}

func RegisterPageRoutes(g *gin.RouterGroup, h PageHandler, jwtAuthMiddleware, allowManagerAndAdminMiddleware gin.HandlerFunc) {
	// Публичные маршруты: только опубликованные страницы.
	public := g.Group("/pages")
	{
		public.GET("", h.ListPages)
		public.GET("/:page_id", h.GetPage)
	}

	protected := g.Group("/admin/pages", jwtAuthMiddleware, allowManagerAndAdminMiddleware)
	{
		protected.GET("", h.ListPages)
		protected.GET("/:page_id", h.GetPage)
		protected.POST("", h.CreatePage)
		protected.PATCH("/:page_id", h.UpdatePage)
		protected.DELETE("/:page_id", h.DeletePage)
	}
}
