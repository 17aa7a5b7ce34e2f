package recipe

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/middleware"
	"terminal-terrace/foodgram/internal/pkg/token"
)

// RegisterRoutes 注册菜谱、收藏、购物车路由
func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB, tm *token.Manager, images ImageStore) {
	handler := NewRecipeHandler(NewRecipeService(db, images))

	recipes := r.Group("/recipes")
	{
		// 查询类接口（可选认证：登录后返回收藏/购物车/订阅状态）
		recipes.GET("", middleware.OptionalJWTAuth(tm), handler.ListRecipes)
		recipes.GET("/:id", middleware.OptionalJWTAuth(tm), handler.GetRecipe)

		authRequired := recipes.Group("")
		authRequired.Use(middleware.JWTAuth(tm))
		{
			authRequired.GET("/download_shopping_cart", handler.DownloadShoppingCart)

			authRequired.POST("", handler.CreateRecipe)
			authRequired.PUT("/:id", handler.UpdateRecipe)
			authRequired.PATCH("/:id", handler.UpdateRecipe)
			authRequired.DELETE("/:id", handler.DeleteRecipe)

			authRequired.POST("/:id/favorite", handler.AddFavorite)
			authRequired.DELETE("/:id/favorite", handler.RemoveFavorite)
			authRequired.POST("/:id/shopping_cart", handler.AddToCart)
			authRequired.DELETE("/:id/shopping_cart", handler.RemoveFromCart)
		}
	}
}
