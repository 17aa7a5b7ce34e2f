package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/dto"
	userModel "terminal-terrace/foodgram/internal/model/user"
	"terminal-terrace/foodgram/internal/pkg/token"
	"terminal-terrace/foodgram/internal/pkg/validation"
	"terminal-terrace/foodgram/packages/response"
)

type UserService struct {
	repo      *UserRepository
	tokens    *token.Manager
	validator *validation.Validator
	hashCost  int
}

func NewUserService(db *gorm.DB, tokens *token.Manager) *UserService {
	return &UserService{
		repo:      NewUserRepository(db),
		tokens:    tokens,
		validator: validation.New(),
		hashCost:  bcrypt.DefaultCost,
	}
}

// Register 注册新用户, 邮箱与用户名均需唯一
func (s *UserService) Register(req RegisterRequest) (*dto.UserView, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if fields := s.validator.Struct(req); fields != nil {
		return nil, response.NewValidationError(fields)
	}

	existing, err := s.repo.FindByEmailOrUsername(req.Email, req.Username)
	if err == nil {
		if strings.EqualFold(existing.Email, req.Email) {
			return nil, response.NewConflictError("邮箱已被注册")
		}
		return nil, response.NewConflictError("用户名已存在")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewInternalError("查询用户失败", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, response.NewInternalError("密码加密失败", err)
	}

	u := &userModel.User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Role:         userModel.RoleUser,
	}
	if err := s.repo.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflictError("邮箱或用户名已存在")
		}
		return nil, response.NewInternalError("用户创建失败", err)
	}

	view := dto.NewUserView(u, false)
	return &view, nil
}

// Login 邮箱密码登录, 返回访问令牌
func (s *UserService) Login(req LoginRequest) (*LoginResponse, error) {
	if fields := s.validator.Struct(req); fields != nil {
		return nil, response.NewValidationError(fields)
	}

	invalid := response.NewValidationError(map[string][]string{
		"non_field_errors": {"邮箱或密码错误"},
	})

	u, err := s.repo.GetByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, response.NewInternalError("查询用户失败", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, invalid
	}

	signed, _, err := s.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, response.NewInternalError("生成令牌失败", err)
	}
	return &LoginResponse{AuthToken: signed}, nil
}

// Logout 注销当前令牌
func (s *UserService) Logout(ctx context.Context, claims *token.Claims) error {
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return response.NewInternalError("注销令牌失败", err)
	}
	return nil
}

// Me 当前用户信息
func (s *UserService) Me(userID uint) (*dto.UserView, error) {
	return s.GetUser(dto.Principal{UserID: userID}, userID)
}

// GetUser 用户详情, is_subscribed 相对 viewer 计算
func (s *UserService) GetUser(viewer dto.Principal, id uint) (*dto.UserView, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("用户不存在")
		}
		return nil, response.NewInternalError("查询用户失败", err)
	}

	subscribed, err := s.repo.SubscribedSet(viewer.UserID, []uint{u.ID})
	if err != nil {
		return nil, response.NewInternalError("查询订阅状态失败", err)
	}

	view := dto.NewUserView(u, subscribed[u.ID])
	return &view, nil
}

// ListUsers 用户列表
func (s *UserService) ListUsers(viewer dto.Principal, page, limit int) (*dto.Page[dto.UserView], error) {
	page, limit = dto.Pagination(page, limit)

	users, total, err := s.repo.List(dto.Offset(page, limit), limit)
	if err != nil {
		return nil, response.NewInternalError("获取用户列表失败", err)
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	subscribed, err := s.repo.SubscribedSet(viewer.UserID, ids)
	if err != nil {
		return nil, response.NewInternalError("查询订阅状态失败", err)
	}

	views := make([]dto.UserView, 0, len(users))
	for i := range users {
		views = append(views, dto.NewUserView(&users[i], subscribed[users[i].ID]))
	}

	return &dto.Page[dto.UserView]{
		Count:   total,
		Page:    page,
		Limit:   limit,
		Results: views,
	}, nil
}

// SetPassword 校验当前密码后修改密码
func (s *UserService) SetPassword(userID uint, req SetPasswordRequest) error {
	if fields := s.validator.Struct(req); fields != nil {
		return response.NewValidationError(fields)
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("用户不存在")
		}
		return response.NewInternalError("查询用户失败", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return response.NewValidationError(map[string][]string{
			"current_password": {"当前密码错误"},
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return response.NewInternalError("密码加密失败", err)
	}
	if err := s.repo.UpdatePassword(u.ID, string(hash)); err != nil {
		return response.NewInternalError("修改密码失败", err)
	}
	return nil
}
