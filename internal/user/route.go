package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/middleware"
	"terminal-terrace/foodgram/internal/pkg/token"
)

// RegisterRoutes 注册认证、用户与订阅路由
// limiter 作用于登录与注册接口, 为 nil 时不限流
func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB, tm *token.Manager, limiter *middleware.KeyedLimiter) {
	handler := NewUserHandler(NewUserService(db, tm))

	throttle := func(c *gin.Context) { c.Next() }
	if limiter != nil {
		throttle = middleware.RateLimit(limiter)
	}

	auth := r.Group("/auth/token")
	{
		auth.POST("/login", throttle, handler.Login)
		auth.POST("/logout", middleware.JWTAuth(tm), handler.Logout)
	}

	users := r.Group("/users")
	{
		users.GET("", middleware.OptionalJWTAuth(tm), handler.ListUsers)
		users.POST("", throttle, handler.Register)
		users.GET("/:id", middleware.OptionalJWTAuth(tm), handler.GetUser)
		users.GET("/:id/subscriptions", middleware.OptionalJWTAuth(tm), handler.UserSubscriptions)

		authRequired := users.Group("")
		authRequired.Use(middleware.JWTAuth(tm))
		{
			authRequired.GET("/me", handler.Me)
			authRequired.POST("/set_password", handler.SetPassword)
			authRequired.GET("/subscriptions", handler.Subscriptions)
			authRequired.POST("/:id/subscribe", handler.Subscribe)
			authRequired.DELETE("/:id/subscribe", handler.Unsubscribe)
		}
	}
}
