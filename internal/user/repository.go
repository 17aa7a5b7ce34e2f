package user

import (
	"gorm.io/gorm"

	recipeModel "terminal-terrace/foodgram/internal/model/recipe"
	userModel "terminal-terrace/foodgram/internal/model/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id uint) (*userModel.User, error) {
	var u userModel.User
	err := r.db.First(&u, id).Error
	return &u, err
}

func (r *UserRepository) GetByEmail(email string) (*userModel.User, error) {
	var u userModel.User
	err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	return &u, err
}

// FindByEmailOrUsername 查找邮箱或用户名已被占用的用户
func (r *UserRepository) FindByEmailOrUsername(email, username string) (*userModel.User, error) {
	var u userModel.User
	err := r.db.Where("LOWER(email) = LOWER(?) OR username = ?", email, username).First(&u).Error
	return &u, err
}

func (r *UserRepository) Create(u *userModel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) UpdatePassword(userID uint, hash string) error {
	return r.db.Model(&userModel.User{}).Where("id = ?", userID).Update("password_hash", hash).Error
}

// List 按 ID 分页
func (r *UserRepository) List(offset, limit int) ([]userModel.User, int64, error) {
	var total int64
	if err := r.db.Model(&userModel.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []userModel.User
	err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

// SubscribedSet 用户关注了哪些作者
func (r *UserRepository) SubscribedSet(userID uint, authorIDs []uint) (map[uint]bool, error) {
	set := make(map[uint]bool, len(authorIDs))
	if userID == 0 || len(authorIDs) == 0 {
		return set, nil
	}

	var ids []uint
	err := r.db.Model(&userModel.Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	for _, id := range ids {
		set[id] = true
	}
	return set, err
}

func (r *UserRepository) FollowExists(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&userModel.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) CreateFollow(follow *userModel.Follow) error {
	return r.db.Create(follow).Error
}

// DeleteFollow 返回删除的行数
func (r *UserRepository) DeleteFollow(userID, authorID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&userModel.Follow{})
	return result.RowsAffected, result.Error
}

// FollowedAuthors 用户关注的作者, 最近关注的在前
func (r *UserRepository) FollowedAuthors(userID uint, offset, limit int) ([]userModel.User, int64, error) {
	var total int64
	if err := r.db.Model(&userModel.Follow{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []userModel.User
	err := r.db.Model(&userModel.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.id DESC").
		Offset(offset).Limit(limit).
		Find(&authors).Error
	return authors, total, err
}

// RecipeCounts 每个作者的菜谱数量
func (r *UserRepository) RecipeCounts(authorIDs []uint) (map[uint]int64, error) {
	type row struct {
		AuthorID uint
		Count    int64
	}
	var rows []row
	err := r.db.Model(&recipeModel.Recipe{}).
		Select("author_id, COUNT(*) AS count").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.AuthorID] = row.Count
	}
	return counts, nil
}

// RecentRecipes 作者最新的菜谱, limit <= 0 时不限制数量
func (r *UserRepository) RecentRecipes(authorID uint, limit int) ([]recipeModel.Recipe, error) {
	var recipes []recipeModel.Recipe
	query := r.db.Where("author_id = ?", authorID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&recipes).Error
	return recipes, err
}
