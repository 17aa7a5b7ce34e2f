package user

import (
	"errors"

	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/dto"
	"terminal-terrace/foodgram/internal/metrics"
	userModel "terminal-terrace/foodgram/internal/model/user"
	"terminal-terrace/foodgram/packages/response"
)

// Follow userID 关注 authorID, 返回作者及其菜谱摘要
func (s *UserService) Follow(userID, authorID uint, recipesLimit int) (*dto.FollowView, error) {
	author, err := s.repo.GetByID(authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("用户不存在")
		}
		return nil, response.NewInternalError("查询用户失败", err)
	}

	if userID == authorID {
		return nil, response.NewValidationError(map[string][]string{
			"non_field_errors": {"不能关注自己"},
		})
	}

	exists, err := s.repo.FollowExists(userID, authorID)
	if err != nil {
		return nil, response.NewInternalError("查询订阅失败", err)
	}
	if exists {
		return nil, response.NewConflictError("已经关注该用户")
	}

	if err := s.repo.CreateFollow(&userModel.Follow{UserID: userID, AuthorID: authorID}); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, response.NewConflictError("已经关注该用户")
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, response.NewNotFoundError("用户不存在")
		}
		return nil, response.NewInternalError("关注失败", err)
	}
	metrics.FollowChanges.WithLabelValues("follow").Inc()

	views, err := s.followViews(userID, []userModel.User{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Unfollow 取消关注
func (s *UserService) Unfollow(userID, authorID uint) error {
	if _, err := s.repo.GetByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("用户不存在")
		}
		return response.NewInternalError("查询用户失败", err)
	}

	affected, err := s.repo.DeleteFollow(userID, authorID)
	if err != nil {
		return response.NewInternalError("取消关注失败", err)
	}
	if affected == 0 {
		return response.NewNotFoundError("未关注该用户")
	}
	metrics.FollowChanges.WithLabelValues("unfollow").Inc()
	return nil
}

// Subscriptions 当前用户关注的作者列表
func (s *UserService) Subscriptions(viewerID uint, page, limit, recipesLimit int) (*dto.Page[dto.FollowView], error) {
	return s.listFollowed(viewerID, viewerID, page, limit, recipesLimit)
}

// SubscriptionsOf 指定用户关注的作者列表, is_subscribed 相对 viewer 计算
func (s *UserService) SubscriptionsOf(viewer dto.Principal, followerID uint, page, limit, recipesLimit int) (*dto.Page[dto.FollowView], error) {
	if _, err := s.repo.GetByID(followerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("用户不存在")
		}
		return nil, response.NewInternalError("查询用户失败", err)
	}
	return s.listFollowed(viewer.UserID, followerID, page, limit, recipesLimit)
}

func (s *UserService) listFollowed(viewerID, followerID uint, page, limit, recipesLimit int) (*dto.Page[dto.FollowView], error) {
	page, limit = dto.Pagination(page, limit)

	authors, total, err := s.repo.FollowedAuthors(followerID, dto.Offset(page, limit), limit)
	if err != nil {
		return nil, response.NewInternalError("获取订阅列表失败", err)
	}

	views, err := s.followViews(viewerID, authors, recipesLimit)
	if err != nil {
		return nil, err
	}

	return &dto.Page[dto.FollowView]{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: views,
	}, nil
}

// followViews 组装作者视图: 订阅状态、菜谱数量与最新菜谱
func (s *UserService) followViews(viewerID uint, authors []userModel.User, recipesLimit int) ([]dto.FollowView, error) {
	views := make([]dto.FollowView, 0, len(authors))
	if len(authors) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}

	subscribed, err := s.repo.SubscribedSet(viewerID, ids)
	if err != nil {
		return nil, response.NewInternalError("查询订阅状态失败", err)
	}
	counts, err := s.repo.RecipeCounts(ids)
	if err != nil {
		return nil, response.NewInternalError("统计菜谱失败", err)
	}

	for i := range authors {
		recipes, err := s.repo.RecentRecipes(authors[i].ID, recipesLimit)
		if err != nil {
			return nil, response.NewInternalError("获取菜谱失败", err)
		}

		short := make([]dto.RecipeShortView, 0, len(recipes))
		for j := range recipes {
			short = append(short, dto.NewRecipeShortView(&recipes[j]))
		}

		views = append(views, dto.FollowView{
			UserView:     dto.NewUserView(&authors[i], subscribed[authors[i].ID]),
			RecipesCount: counts[authors[i].ID],
			Recipes:      short,
		})
	}
	return views, nil
}
