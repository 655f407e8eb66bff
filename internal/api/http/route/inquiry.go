package route

import (
	"github.com/gin-gonic/gin"
)

type InquiryHandler interface {
	CreateInquiry(c *gin.Context)
	CreateSecretInquiry(c *gin.Context)
	VerifyInquiry(c *gin.Context)
	GetInquiry(c *gin.Context)
	ListInquiries(c *gin.Context)
	AnswerInquiry(c *gin.Context)
	UpdateInquiry(c *gin.Context)
	DeleteInquiry(c *gin.Context)
}

func RegisterInquiryRoutes(g *gin.RouterGroup, h InquiryHandler, jwtAuthMiddleware, allowManagerAndAdminMiddleware gin.HandlerFunc) {
	// Публичные маршруты: посетители создают обращения и
	// смотрят их, секретные закрыты паролем.
	public := g.Group("/inquiries")
	{
		public.POST("", h.CreateInquiry)
		public.POST("/secret", h.CreateSecretInquiry)
		public.GET("", h.ListInquiries)
		public.GET("/:id", h.GetInquiry)
		public.POST("/:id/verify", h.VerifyInquiry)
	}

	// Админские маршруты: просмотр без пароля, ответы и модерация.
	protected := g.Group("/admin/inquiries", jwtAuthMiddleware, allowManagerAndAdminMiddleware)
	{
		protected.GET("", h.ListInquiries)
		protected.GET("/:id", h.GetInquiry)
		protected.POST("/:id/answer", h.AnswerInquiry)
		protected.PATCH("/:id", h.UpdateInquiry)
		protected.DELETE("/:id", h.DeleteInquiry)
	}
}
