package route

import (
	"github.com/gin-gonic/gin"
)

type NoticeHandler interface {
	CreateNotice(c *gin.Context)
	GetNotice(c *gin.Context)
	ListNotices(c *gin.Context)
	UpdateNotice(c *gin.Context)
	DeleteNotice(c *gin.Context)
	UploadAttachment(c *gin.Context)
	GetAttachmentURL(c *gin.Context)
	DeleteAttachment(c *gin.Context)
}

func RegisterNoticeRoutes(g *gin.RouterGroup, h NoticeHandler, jwtAuthMiddleware, allowManagerAndAdminMiddleware gin.HandlerFunc) {
	public := g.Group("/notices")
	{
		public.GET("", h.ListNotices)
		public.GET("/:notice_id", h.GetNotice)
		public.GET("/:notice_id/attachments/:attachment_id", h.GetAttachmentURL)
	}

	protected := g.Group("/admin/notices", jwtAuthMiddleware, allowManagerAndAdminMiddleware)
	{
		protected.POST("", h.CreateNotice)
		protected.PATCH("/:notice_id", h.UpdateNotice)
		protected.DELETE("/:notice_id", h.DeleteNotice)
		protected.POST("/:notice_id/attachments", h.UploadAttachment)
		protected.DELETE("/:notice_id/attachments/:attachment_id", h.DeleteAttachment)
	}
}
