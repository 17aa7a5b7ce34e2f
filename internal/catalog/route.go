package catalog

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/middleware"
	"terminal-terrace/foodgram/internal/pkg/token"
)

// RegisterRoutes 注册标签与食材路由
func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB, tm *token.Manager) {
	handler := NewCatalogHandler(NewCatalogService(db))

	tags := r.Group("/tags")
	{
		tags.GET("", handler.ListTags)
		tags.GET("/:id", handler.GetTag)
		tags.POST("", middleware.JWTAuth(tm), middleware.RequireAdmin(), handler.CreateTag)
	}

	ingredients := r.Group("/ingredients")
	{
		ingredients.GET("", handler.ListIngredients)
		ingredients.GET("/:id", handler.GetIngredient)
	}
}
