package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"terminal-terrace/foodgram/config"
	"terminal-terrace/foodgram/internal/database"
	"terminal-terrace/foodgram/internal/pkg/logger"
	"terminal-terrace/foodgram/internal/route"
)

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g cmd/server/main.go -d ../.. -o ../../docs --parseDependency --parseInternal

// @title Foodgram API
// @version 1.0
// @description 菜谱分享服务
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	config.MustLoad(configPath())
	conf := config.Conf

	// 2. 初始化日志
	flush, err := logger.Init(conf.Log.Level, conf.Log.Format)
	if err != nil {
		panic(err)
	}
	defer flush()

	if conf.Server.Mode != "" {
		gin.SetMode(conf.Server.Mode)
	}

	// 3. 初始化数据库
	database.InitDatabase()
	defer database.Close()

	// 4. 设置路由
	r := route.SetupRouter(route.Deps{
		Conf:   conf,
		DB:     database.GetDB(),
		Redis:  database.RedisDB,
		Logger: zap.L(),
	})

	// 5. 启动服务
	srv := &http.Server{
		Addr:         conf.Server.Addr(),
		Handler:      r,
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	go func() {
		zap.S().Infow("服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("服务启动失败", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.S().Info("正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Errorw("服务关闭异常", "error", err)
	}
}

func configPath() string {
	if p := os.Getenv("FOODGRAM_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}
