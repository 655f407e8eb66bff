package route

import (
	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	GetUser(*gin.Context)
	GetUserJWT(c *gin.Context)
	CreateUser(c *gin.Context)
	DeleteUser(c *gin.Context)
	BlockUser(c *gin.Context)

	ForgotPassword(c *gin.Context)
	ResetPassword(c *gin.Context)
	DeleteSelf(c *gin.Context)
}

// RegisterAdminUserRoutes вешает управление учётными записями сотрудников.
// Публична только заявка на восстановление пароля, остальное за JWT.
func RegisterAdminUserRoutes(g *gin.RouterGroup, h UserHandler, jwtAuthMiddleware, allowManagerAndAdminMiddleware, adminOnlyMiddleware gin.HandlerFunc) {
	g.POST("/password-forgot", h.ForgotPassword)

	protected := g.Group("", jwtAuthMiddleware)
	protected.GET("", h.GetUserJWT)
	protected.POST("/password-reset", h.ResetPassword)
	protected.DELETE("", h.DeleteSelf)

	adminOrManagerRequired := protected.Group("", allowManagerAndAdminMiddleware)
	adminOrManagerRequired.GET("/:user_id", h.GetUser)
	adminOrManagerRequired.POST("/block/:user_id", h.BlockUser)

	// Заводить и удалять сотрудников может только администратор.
	adminRequired := protected.Group("", adminOnlyMiddleware)
	adminRequired.POST("", h.CreateUser)
	adminRequired.DELETE(":user_id", h.DeleteUser)
}
