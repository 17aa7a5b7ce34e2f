package catalog

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/foodgram/internal/dto"
)

type CatalogHandler struct {
	catalogService *CatalogService
}

func NewCatalogHandler(catalogService *CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListTags 获取标签列表
// @Summary 标签列表
// @Tags 参考数据
// @Produce json
// @Success 200 {object} response.Response{data=[]recipe.Tag}
// @Router /tags [get]
func (h *CatalogHandler) ListTags(c *gin.Context) {
	tags, err := h.catalogService.ListTags()
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, tags)
}

// GetTag 获取单个标签
// @Summary 标签详情
// @Tags 参考数据
// @Produce json
// @Param id path int true "标签ID"
// @Success 200 {object} response.Response{data=recipe.Tag}
// @Router /tags/{id} [get]
func (h *CatalogHandler) GetTag(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	tag, err := h.catalogService.GetTag(id)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, tag)
}

// CreateTag 创建标签
// @Summary 创建标签（管理员）
// @Tags 参考数据
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTagRequest true "标签"
// @Success 201 {object} response.Response{data=recipe.Tag}
// @Router /tags [post]
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BindError(c, err)
		return
	}

	tag, err := h.catalogService.CreateTag(req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.CreatedResponse(c, tag)
}

// ListIngredients 获取食材列表
// @Summary 食材列表
// @Description name 参数按前缀搜索, 不区分大小写
// @Tags 参考数据
// @Produce json
// @Param name query string false "名称前缀"
// @Success 200 {object} response.Response{data=[]recipe.Ingredient}
// @Router /ingredients [get]
func (h *CatalogHandler) ListIngredients(c *gin.Context) {
	var query IngredientQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.BindError(c, err)
		return
	}

	ingredients, err := h.catalogService.ListIngredients(query)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, ingredients)
}

// GetIngredient 获取单个食材
// @Summary 食材详情
// @Tags 参考数据
// @Produce json
// @Param id path int true "食材ID"
// @Success 200 {object} response.Response{data=recipe.Ingredient}
// @Router /ingredients/{id} [get]
func (h *CatalogHandler) GetIngredient(c *gin.Context) {
	id, ok := dto.ParseID(c, "id")
	if !ok {
		return
	}

	ingredient, err := h.catalogService.GetIngredient(id)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.SuccessResponse(c, ingredient)
}
