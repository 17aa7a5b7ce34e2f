package recipe

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/dto"
	"terminal-terrace/foodgram/internal/metrics"
	recipeModel "terminal-terrace/foodgram/internal/model/recipe"
	"terminal-terrace/foodgram/packages/response"
)

// ImageStore 图片存储能力, 由 media.FileStore 实现
type ImageStore interface {
	Save(payload string) (string, error)
	Delete(ref string)
}

type RecipeService struct {
	db     *gorm.DB
	repo   *RecipeRepository
	images ImageStore
}

func NewRecipeService(db *gorm.DB, images ImageStore) *RecipeService {
	return &RecipeService{
		db:     db,
		repo:   NewRecipeRepository(db),
		images: images,
	}
}

// Create 在一个事务中写入菜谱及其标签、食材关联
func (s *RecipeService) Create(authorID uint, draft RecipeDraft) (*dto.RecipeView, error) {
	imageRef, err := s.saveImage(draft.Image)
	if err != nil {
		return nil, err
	}

	var recipeID uint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := NewRecipeRepository(tx)

		if err := checkReferences(repo, draft); err != nil {
			return err
		}

		rec := &recipeModel.Recipe{
			AuthorID:    authorID,
			Name:        draft.Name,
			Text:        draft.Text,
			CookingTime: draft.CookingTime,
			Image:       imageRef,
		}
		if err := repo.Create(rec); err != nil {
			return response.NewInternalError("创建菜谱失败", err)
		}
		if err := repo.ReplaceJoins(rec.ID, draft.Tags, draft.Ingredients); err != nil {
			return response.NewInternalError("保存菜谱关联失败", err)
		}

		recipeID = rec.ID
		return nil
	})
	if err != nil {
		s.images.Delete(imageRef)
		return nil, err
	}
	metrics.RecipeWrites.WithLabelValues("create").Inc()

	return s.Get(dto.Principal{UserID: authorID}, recipeID)
}

// Update 替换菜谱内容, 仅作者或管理员可操作
// 未提供新图片时保留原图
func (s *RecipeService) Update(recipeID uint, principal dto.Principal, draft RecipeDraft) (*dto.RecipeView, error) {
	var newImage, oldImage string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := NewRecipeRepository(tx)

		rec, err := loadForWrite(repo, recipeID, principal)
		if err != nil {
			return err
		}
		if err := checkReferences(repo, draft); err != nil {
			return err
		}

		if draft.Image != "" {
			if newImage, err = s.saveImage(draft.Image); err != nil {
				return err
			}
			oldImage = rec.Image
			rec.Image = newImage
		}

		rec.Name = draft.Name
		rec.Text = draft.Text
		rec.CookingTime = draft.CookingTime
		if err := repo.UpdateContent(rec); err != nil {
			return response.NewInternalError("更新菜谱失败", err)
		}
		if err := repo.ReplaceJoins(rec.ID, draft.Tags, draft.Ingredients); err != nil {
			return response.NewInternalError("保存菜谱关联失败", err)
		}
		return nil
	})
	if err != nil {
		if newImage != "" {
			s.images.Delete(newImage)
		}
		return nil, err
	}
	if oldImage != "" {
		s.images.Delete(oldImage)
	}
	metrics.RecipeWrites.WithLabelValues("update").Inc()

	return s.Get(principal, recipeID)
}

// Delete 删除菜谱, 仅作者或管理员可操作
func (s *RecipeService) Delete(recipeID uint, principal dto.Principal) error {
	var image string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := NewRecipeRepository(tx)

		rec, err := loadForWrite(repo, recipeID, principal)
		if err != nil {
			return err
		}
		if err := repo.Delete(rec.ID); err != nil {
			return response.NewInternalError("删除菜谱失败", err)
		}
		image = rec.Image
		return nil
	})
	if err != nil {
		return err
	}

	s.images.Delete(image)
	metrics.RecipeWrites.WithLabelValues("delete").Inc()
	return nil
}

// Get 菜谱详情, 收藏/购物车/订阅状态相对 viewer 计算
func (s *RecipeService) Get(viewer dto.Principal, recipeID uint) (*dto.RecipeView, error) {
	rec, err := s.repo.GetByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("菜谱不存在")
		}
		return nil, response.NewInternalError("获取菜谱失败", err)
	}

	views, err := render(s.repo, viewer, []recipeModel.Recipe{*rec})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List 菜谱列表, 收藏与购物车过滤仅对登录用户生效
func (s *RecipeService) List(viewer dto.Principal, query ListQuery) (*dto.Page[dto.RecipeView], error) {
	page, limit := dto.Pagination(query.Page, query.Limit)

	filter := ListFilter{
		TagSlugs:         query.Tags,
		AuthorID:         query.Author,
		UserID:           viewer.UserID,
		IsFavorited:      query.IsFavorited,
		IsInShoppingCart: query.IsInShoppingCart,
	}

	recipes, total, err := s.repo.List(filter, dto.Offset(page, limit), limit)
	if err != nil {
		return nil, response.NewInternalError("获取菜谱列表失败", err)
	}

	views, err := render(s.repo, viewer, recipes)
	if err != nil {
		return nil, err
	}

	return &dto.Page[dto.RecipeView]{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: views,
	}, nil
}

func (s *RecipeService) saveImage(payload string) (string, error) {
	if payload == "" {
		return "", nil
	}
	ref, err := s.images.Save(payload)
	if err != nil {
		return "", response.NewValidationError(map[string][]string{
			"image": {err.Error()},
		})
	}
	return ref, nil
}

// loadForWrite 读取待修改的菜谱并校验权限
func loadForWrite(repo *RecipeRepository, recipeID uint, principal dto.Principal) (*recipeModel.Recipe, error) {
	rec, err := repo.GetByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("菜谱不存在")
		}
		return nil, response.NewInternalError("获取菜谱失败", err)
	}
	if rec.AuthorID != principal.UserID && !principal.IsAdmin() {
		return nil, response.NewForbiddenError("只有作者可以修改菜谱")
	}
	return rec, nil
}

// checkReferences 标签与食材必须都已存在
func checkReferences(repo *RecipeRepository, draft RecipeDraft) error {
	fields := make(map[string][]string)

	missingTags, err := repo.MissingTagIDs(draft.Tags)
	if err != nil {
		return response.NewInternalError("检查标签失败", err)
	}
	for _, id := range missingTags {
		fields["tags"] = append(fields["tags"], fmt.Sprintf("标签 %d 不存在", id))
	}

	ingredientIDs := make([]uint, 0, len(draft.Ingredients))
	for _, item := range draft.Ingredients {
		ingredientIDs = append(ingredientIDs, item.ID)
	}
	missingIngredients, err := repo.MissingIngredientIDs(ingredientIDs)
	if err != nil {
		return response.NewInternalError("检查食材失败", err)
	}
	for _, id := range missingIngredients {
		fields["ingredients"] = append(fields["ingredients"], fmt.Sprintf("食材 %d 不存在", id))
	}

	if len(fields) > 0 {
		return response.NewValidationError(fields)
	}
	return nil
}

// render 批量组装菜谱视图
func render(repo *RecipeRepository, viewer dto.Principal, recipes []recipeModel.Recipe) ([]dto.RecipeView, error) {
	views := make([]dto.RecipeView, 0, len(recipes))
	if len(recipes) == 0 {
		return views, nil
	}

	recipeIDs := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for _, rec := range recipes {
		recipeIDs = append(recipeIDs, rec.ID)
		authorIDs = append(authorIDs, rec.AuthorID)
	}

	tags, err := repo.TagsByRecipe(recipeIDs)
	if err != nil {
		return nil, response.NewInternalError("加载标签失败", err)
	}
	ingredients, err := repo.IngredientsByRecipe(recipeIDs)
	if err != nil {
		return nil, response.NewInternalError("加载食材失败", err)
	}
	authors, err := repo.UsersByID(authorIDs)
	if err != nil {
		return nil, response.NewInternalError("加载作者失败", err)
	}

	favorited, inCart, subscribed := map[uint]bool{}, map[uint]bool{}, map[uint]bool{}
	if viewer.IsAuthenticated() {
		if favorited, err = repo.FavoritedSet(viewer.UserID, recipeIDs); err != nil {
			return nil, response.NewInternalError("加载收藏状态失败", err)
		}
		if inCart, err = repo.CartSet(viewer.UserID, recipeIDs); err != nil {
			return nil, response.NewInternalError("加载购物车状态失败", err)
		}
		if subscribed, err = repo.SubscribedSet(viewer.UserID, authorIDs); err != nil {
			return nil, response.NewInternalError("加载订阅状态失败", err)
		}
	}

	for _, rec := range recipes {
		view := dto.RecipeView{
			ID:               rec.ID,
			Tags:             tags[rec.ID],
			Ingredients:      ingredients[rec.ID],
			IsFavorited:      favorited[rec.ID],
			IsInShoppingCart: inCart[rec.ID],
			Name:             rec.Name,
			Image:            rec.Image,
			Text:             rec.Text,
			CookingTime:      rec.CookingTime,
		}
		if view.Tags == nil {
			view.Tags = []recipeModel.Tag{}
		}
		if view.Ingredients == nil {
			view.Ingredients = []dto.IngredientAmountView{}
		}
		if author, ok := authors[rec.AuthorID]; ok {
			view.Author = dto.NewUserView(author, subscribed[rec.AuthorID])
		}
		views = append(views, view)
	}
	return views, nil
}
