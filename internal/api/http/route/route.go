package route

import (
	"crypto/ecdsa"
	"corpsite-back/internal/api/http/handler"
	"corpsite-back/internal/api/http/middleware"
	"io"

	"corpsite-back/internal/config"
	"corpsite-back/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxMultipartMemory = 1 << 30

func SetupRouter(
	log *zap.Logger,
	cfg *config.Config,
	publicKey *ecdsa.PublicKey,
	healthHdl HealthHandler,
	authHdl AuthHandler,
	userHdl UserHandler,
	inquiryHdl InquiryHandler,
	pageHdl PageHandler,
	noticeHdl NoticeHandler,
	searchHdl SearchHandler,
	visitHdl VisitHandler,
	apiKeyHdl APIKeyHandler,
	apiKeyRepo middleware.APIKeyRepositoryInterface,
	visitRecorder middleware.VisitRecorder,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard

	router := gin.Default()
	router.MaxMultipartMemory = maxMultipartMemory

	// middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.RequestTimeout(cfg.HTTPServer.Timeout.Request))
	router.Use(middleware.CORS(cfg.CORS))

	jwtAuthMiddleware := middleware.JWTAuth(publicKey)
	allowManagerAndAdminMiddleware := middleware.RequireRoles(model.RoleManager, model.RoleAdmin)
	adminOnlyMiddleware := middleware.RequireRoles(model.RoleAdmin)
	apiKeyMiddleware := middleware.APIKeyAuthMiddleware(apiKeyRepo)

	router.HandleMethodNotAllowed = true
	router.NoMethod(handler.NoMethod)
	router.NoRoute(handler.NoRoute)

	basePath := router.Group(cfg.BasePath)

	docsPath := basePath.Group("/docs")
	RegisterDock(docsPath)

	healthPath := basePath.Group("/health")
	RegisterHealth(healthPath, healthHdl, jwtAuthMiddleware)

	authPath := basePath.Group("/auth")
	RegisterAuth(authPath, authHdl)

	userPath := basePath.Group("/user")
	RegisterAdminUserRoutes(userPath, userHdl, jwtAuthMiddleware, allowManagerAndAdminMiddleware, adminOnlyMiddleware)

	apiKeyPath := basePath.Group("/auth/api-key")
	RegisterAPIKeyRoutes(apiKeyPath, apiKeyHdl, jwtAuthMiddleware)

	// Публичная часть сайта пишет события посещений в outbox.
	sitePath := basePath.Group("", middleware.RecordVisits(log, visitRecorder))
	RegisterPageRoutes(sitePath, pageHdl, jwtAuthMiddleware, allowManagerAndAdminMiddleware)
	RegisterNoticeRoutes(sitePath, noticeHdl, jwtAuthMiddleware, allowManagerAndAdminMiddleware)

	boardPath := basePath.Group("/board", middleware.RecordVisits(log, visitRecorder))
	RegisterInquiryRoutes(boardPath, inquiryHdl, jwtAuthMiddleware, allowManagerAndAdminMiddleware)

	searchPath := basePath.Group("/search", middleware.RecordVisits(log, visitRecorder))
	RegisterSearchRoutes(searchPath, searchHdl)

	statsPath := basePath.Group("/stats")
	RegisterStatsRoutes(statsPath, visitHdl, jwtAuthMiddleware, allowManagerAndAdminMiddleware)

	// 🔑 API Key защищенные маршруты (для приложений)
	apiGroup := basePath.Group("/api-key")
	apiGroup.Use(apiKeyMiddleware)
	{
		// Доступ к контенту через API Key
		apiGroup.GET("/pages", pageHdl.ListPages)
		apiGroup.GET("/pages/:page_id", pageHdl.GetPage)
		apiGroup.GET("/notices", noticeHdl.ListNotices)
		apiGroup.GET("/notices/:notice_id", noticeHdl.GetNotice)
		apiGroup.GET("/search", searchHdl.Search)
	}

	return router
}
