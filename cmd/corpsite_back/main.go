// nolint: staticcheck // Ignore imports.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"corpsite-back/internal/app"
	"corpsite-back/internal/config"
	"corpsite-back/internal/docs"
	_ "corpsite-back/internal/docs" // DO NOT REMOVE MFK
	"corpsite-back/pkg/logger"
)

// @title Corpsite API
// @version 0.1.0
// @description Бэкенд корпоративного сайта: страницы, объявления, обращения (включая секретные), поиск и статистика посещений.
// @description Публичная часть доступна без авторизации, админ-портал закрыт JWT.
// @description Первый администратор регистрируется через /auth/register, подтверждает почту кодом с ручки confirm
// @description (при проблемах код переотправляется через resend-confirmation); после этого регистрация закрывается,
// @description и учётные записи сотрудников заводит администратор через POST /user.
// @description login/refresh выставляют access и refresh токены в cookie, браузер отправляет их сам при каждом запросе.
// @description Интеграции без cookie передают заголовок Authorization: Bearer *access_token*, а при refresh - токен в теле запроса.
// @description Партнёрские приложения ходят в контент через /api-key с заголовком X-API-Key.
// @host localhost:8080
// @BasePath /api/
func main() {
	ctx := context.Background()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoadConfig()
	config.MustPrintConfig(cfg)

	docs.SwaggerInfo.Title = cfg.ServiceName
	docs.SwaggerInfo.Version = cfg.Version
	docs.SwaggerInfo.BasePath = cfg.BasePath
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.HTTPServer.Port)

	loggerCfg := &logger.Config{
		Level:      cfg.Level,
		FormatJSON: cfg.FormatJSON,
		Rotation: logger.Rotation{
			File:       cfg.Rotation.File,
			MaxSize:    cfg.Rotation.MaxSize,
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAge:     cfg.Rotation.MaxAge,
		},
	}

	log := logger.MustSetupLogger(loggerCfg)

	errors := make(chan error)

	application := app.MustNew(cfg, log)

	defer func() {
		close(errors)

		if err := application.Shutdown(); err != nil {
			log.Error("Failed to shutdown application", zap.Error(err))
		}

		if err := log.Sync(); err != nil {
			log.Warn("Failed to sync logger", zap.Error(err))
		}

		log.Info("Application has shutdown")
	}()

	go func() { errors <- application.Run(ctx) }()

	select {
	case err := <-errors:
		if err != nil {
			log.Error("Server error, shutting down...", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("Received stop signal, shutting down...")
	}
}
