package main

import (
	"go-hiring/internal/app"
	"go-hiring/internal/bootstrap"
	"go-hiring/internal/shared/apperror"
	"go-hiring/internal/shared/audit"
	"go-hiring/internal/shared/config"
	"go-hiring/internal/visa"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	apperror.Init(visa.DocumentTypeRule)
	r := gin.Default()

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  cfg.Server.Read,
			WriteTimeout: cfg.Server.Write,
			IdleTimeout:  cfg.Server.Idle,
		},
		audit.NewZapLogger(logger),
	)
}
