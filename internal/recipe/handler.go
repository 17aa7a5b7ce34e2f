package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"terminal-terrace/foodgram/internal/dto"
)

const shoppingListFilename = "shopping_list.txt"

type RecipeHandler struct {
	recipeService *RecipeService
}

func NewRecipeHandler(recipeService *RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// ListRecipes 菜谱列表
// @Summary 菜谱列表
// @Description 按标签 slug、作者过滤; is_favorited / is_in_shopping_cart 仅对登录用户生效
// @Tags 菜谱
// @Produce json
// @Param tags query []string false "标签 slug, 可重复"
// @Param author query int false "作者ID"
// @Param is_favorited query int false "仅收藏"
// @Param is_in_shopping_cart query int false "仅购物车"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=dto.Page[dto.RecipeView]}
// @Router /recipes [get]
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	query := ListQuery{
		Tags:             c.QueryArray("tags"),
		Author:           uint(max(dto.QueryInt(c, "author", 0), 0)),
		IsFavorited:      dto.QueryBool(c, "is_favorited"),
		IsInShoppingCart: dto.QueryBool(c, "is_in_shopping_cart") || dto.QueryBool(c, "is_in_purchases_list"),
		Page:             dto.QueryInt(c, "page", 1),
		Limit:            dto.QueryInt(c, "limit", dto.DefaultPageSize),
	}

	page, err := h.recipeService.List(dto.CurrentPrincipal(c), query)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, page)
}

// GetRecipe 菜谱详情
// @Summary 菜谱详情
// @Tags 菜谱
// @Produce json
// @Param id path int true "菜谱ID"
// @Success 200 {object} response.Response{data=dto.RecipeView}
// @Router /recipes/{id} [get]
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	view, err := h.recipeService.Get(dto.CurrentPrincipal(c), id)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, view)
}

// CreateRecipe 发布菜谱
// @Summary 发布菜谱
// @Tags 菜谱
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecipeWriteRequest true "菜谱内容"
// @Success 201 {object} response.Response{data=dto.RecipeView}
// @Router /recipes [post]
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BindError(c, err)
		return
	}

	draft, err := ParseWriteRequest(req, true)
	if err != nil {
		dto.Error(c, err)
		return
	}

	view, err := h.recipeService.Create(dto.CurrentPrincipal(c).UserID, draft)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.CreatedResponse(c, view)
}

// UpdateRecipe 修改菜谱
// @Summary 修改菜谱
// @Description 标签与食材整体替换, 不传图片时保留原图
// @Tags 菜谱
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜谱ID"
// @Param request body RecipeWriteRequest true "菜谱内容"
// @Success 200 {object} response.Response{data=dto.RecipeView}
// @Router /recipes/{id} [put]
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	var req RecipeWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BindError(c, err)
		return
	}

	draft, err := ParseWriteRequest(req, false)
	if err != nil {
		dto.Error(c, err)
		return
	}

	view, err := h.recipeService.Update(id, dto.CurrentPrincipal(c), draft)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, view)
}

// DeleteRecipe 删除菜谱
// @Summary 删除菜谱
// @Tags 菜谱
// @Security BearerAuth
// @Param id path int true "菜谱ID"
// @Success 204
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.recipeService.Delete(id, dto.CurrentPrincipal(c)); err != nil {
		dto.Error(c, err)
		return
	}
	dto.NoContentResponse(c)
}

// AddFavorite 加入收藏
// @Summary 加入收藏
// @Tags 收藏与购物车
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜谱ID"
// @Success 201 {object} response.Response{data=dto.RecipeShortView}
// @Router /recipes/{id}/favorite [post]
func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addEntry(c, h.recipeService.AddFavorite)
}

// RemoveFavorite 取消收藏
// @Summary 取消收藏
// @Tags 收藏与购物车
// @Security BearerAuth
// @Param id path int true "菜谱ID"
// @Success 204
// @Router /recipes/{id}/favorite [delete]
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeEntry(c, h.recipeService.RemoveFavorite)
}

// AddToCart 加入购物车
// @Summary 加入购物车
// @Tags 收藏与购物车
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜谱ID"
// @Success 201 {object} response.Response{data=dto.RecipeShortView}
// @Router /recipes/{id}/shopping_cart [post]
func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addEntry(c, h.recipeService.AddToCart)
}

// RemoveFromCart 移出购物车
// @Summary 移出购物车
// @Tags 收藏与购物车
// @Security BearerAuth
// @Param id path int true "菜谱ID"
// @Success 204
// @Router /recipes/{id}/shopping_cart [delete]
func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeEntry(c, h.recipeService.RemoveFromCart)
}

// DownloadShoppingCart 下载购物清单
// @Summary 下载购物清单
// @Description 默认返回 text/plain 附件, format=json 时返回 JSON
// @Tags 收藏与购物车
// @Produce plain
// @Produce json
// @Security BearerAuth
// @Param format query string false "txt 或 json"
// @Success 200 {string} string
// @Router /recipes/download_shopping_cart [get]
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	items, err := h.recipeService.ShoppingList(dto.CurrentPrincipal(c).UserID)
	if err != nil {
		dto.Error(c, err)
		return
	}

	if c.Query("format") == "json" {
		dto.SuccessResponse(c, items)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+shoppingListFilename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(RenderShoppingList(items)))
}

func (h *RecipeHandler) addEntry(c *gin.Context, add func(userID, recipeID uint) (*dto.RecipeShortView, error)) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	view, err := add(dto.CurrentPrincipal(c).UserID, id)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.CreatedResponse(c, view)
}

func (h *RecipeHandler) removeEntry(c *gin.Context, remove func(userID, recipeID uint) error) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	if err := remove(dto.CurrentPrincipal(c).UserID, id); err != nil {
		dto.Error(c, err)
		return
	}
	dto.NoContentResponse(c)
}
