package route

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"terminal-terrace/foodgram/config"
	"terminal-terrace/foodgram/internal/catalog"
	"terminal-terrace/foodgram/internal/handler"
	"terminal-terrace/foodgram/internal/media"
	"terminal-terrace/foodgram/internal/middleware"
	"terminal-terrace/foodgram/internal/pkg/token"
	"terminal-terrace/foodgram/internal/recipe"
	"terminal-terrace/foodgram/internal/service"
	"terminal-terrace/foodgram/internal/user"
	"terminal-terrace/foodgram/packages/database"
	"terminal-terrace/foodgram/packages/response"
)

// Deps 路由所需的外部依赖
type Deps struct {
	Conf   *config.AppConfig
	DB     *gorm.DB
	Redis  *database.RedisClient // 可为 nil
	Logger *zap.Logger
}

func initRoute(r *gin.Engine, deps Deps) {
	conf := deps.Conf

	// 初始化依赖
	var revoked token.Store
	if deps.Redis != nil {
		revoked = token.NewRedisStore(deps.Redis)
	}
	tm := token.NewManager(conf.JWT.Secret, time.Duration(conf.JWT.ExpireTime)*time.Hour, revoked)
	images := media.NewFileStore(conf.Media.Root, conf.Media.URLPrefix, conf.Media.MaxWidth).
		WithLimits(conf.Media.MaxBytes, conf.Media.MaxPixels)
	authLimiter := middleware.NewKeyedLimiter(conf.RateLimit.RPS, conf.RateLimit.Burst)

	healthHandler := handler.NewHealthHandler(service.NewHealthService(deps.DB, deps.Redis))

	// Swagger 文档路由, 生产环境不开放
	if conf.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api", middleware.BodyLimit(conf.Server.MaxBodyBytes))
	api.GET("/health", healthHandler.HandleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	user.RegisterRoutes(api, deps.DB, tm, authLimiter)
	catalog.RegisterRoutes(api, deps.DB, tm)
	recipe.RegisterRoutes(api, deps.DB, tm, images)

	// 图片文件
	r.Static(strings.TrimRight(conf.Media.URLPrefix, "/"), conf.Media.Root)
}

func SetupRouter(deps Deps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.L()
	}

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log), middleware.Metrics())

	origin := deps.Conf.Server.FrontendURL
	if origin == "" {
		origin = "http://localhost:3000" // 默认值
	}

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.ErrorResponse(response.NotFound, "资源不存在"))
	})

	initRoute(r, deps)

	return r
}
