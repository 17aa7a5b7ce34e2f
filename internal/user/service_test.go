package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/dto"
	"terminal-terrace/foodgram/internal/pkg/token"
	"terminal-terrace/foodgram/internal/testutils"
	"terminal-terrace/foodgram/packages/response"
)

// revokedSet 测试用注销列表
type revokedSet map[string]bool

func (s revokedSet) Revoke(_ context.Context, jti string, _ time.Duration) error {
	s[jti] = true
	return nil
}

func (s revokedSet) IsRevoked(_ context.Context, jti string) (bool, error) {
	return s[jti], nil
}

func setupUserService(t *testing.T) (*UserService, *gorm.DB, *token.Manager) {
	db := testutils.SetupTestDB(t)
	tm := token.NewManager("test-secret", time.Hour, revokedSet{})
	service := NewUserService(db, tm)
	service.hashCost = bcrypt.MinCost
	return service, db, tm
}

func TestUserService_Register(t *testing.T) {
	service, db, _ := setupUserService(t)
	testutils.CreateTestUser(db, testutils.WithEmail("taken@example.com"), testutils.WithUsername("taken"))

	valid := RegisterRequest{
		Email:     "cook@example.com",
		Username:  "cook.master",
		FirstName: "Иван",
		LastName:  "Петров",
		Password:  "Str0ngPass",
	}

	tests := []struct {
		name     string
		mutate   func(r *RegisterRequest)
		wantCode response.ResponseCode
		wantOK   bool
	}{
		{"注册成功", func(r *RegisterRequest) {}, 0, true},
		{"邮箱已注册（不区分大小写）", func(r *RegisterRequest) { r.Email = "TAKEN@example.com" }, response.Conflict, false},
		{"用户名已存在", func(r *RegisterRequest) { r.Username = "taken" }, response.Conflict, false},
		{"用户名包含非法字符", func(r *RegisterRequest) { r.Username = "bad name!" }, response.ValidationFailed, false},
		{"邮箱格式错误", func(r *RegisterRequest) { r.Email = "not-an-email" }, response.ValidationFailed, false},
		{"密码过短", func(r *RegisterRequest) { r.Password = "short" }, response.ValidationFailed, false},
		{"缺少姓名", func(r *RegisterRequest) { r.FirstName = " " }, response.ValidationFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			view, err := service.Register(req)
			if tt.wantOK {
				require.NoError(t, err)
				assert.NotZero(t, view.ID)
				assert.Equal(t, req.Username, view.Username)
				assert.False(t, view.IsSubscribed)
				return
			}
			assert.Nil(t, view)
			assert.True(t, response.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestUserService_LoginLogout(t *testing.T) {
	service, db, tm := setupUserService(t)
	u := testutils.CreateTestUser(db, testutils.WithEmail("login@example.com"))

	_, err := service.Login(LoginRequest{Email: "login@example.com", Password: "wrong-password"})
	assert.True(t, response.IsCode(err, response.ValidationFailed))

	_, err = service.Login(LoginRequest{Email: "nobody@example.com", Password: testutils.TestPassword})
	assert.True(t, response.IsCode(err, response.ValidationFailed))

	resp, err := service.Login(LoginRequest{Email: "Login@Example.com", Password: testutils.TestPassword})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AuthToken)

	ctx := context.Background()
	claims, err := tm.Parse(ctx, resp.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	require.NoError(t, service.Logout(ctx, claims))
	_, err = tm.Parse(ctx, resp.AuthToken)
	assert.ErrorIs(t, err, token.ErrRevokedToken)
}

func TestUserService_SetPassword(t *testing.T) {
	service, db, _ := setupUserService(t)
	u := testutils.CreateTestUser(db)

	err := service.SetPassword(u.ID, SetPasswordRequest{CurrentPassword: "incorrect", NewPassword: "NewPassword1"})
	require.Error(t, err)
	be, ok := err.(*response.BusinessError)
	require.True(t, ok)
	assert.Contains(t, be.Fields, "current_password")

	err = service.SetPassword(u.ID, SetPasswordRequest{CurrentPassword: testutils.TestPassword, NewPassword: "short"})
	assert.True(t, response.IsCode(err, response.ValidationFailed))

	require.NoError(t, service.SetPassword(u.ID, SetPasswordRequest{
		CurrentPassword: testutils.TestPassword,
		NewPassword:     "NewPassword1",
	}))

	_, err = service.Login(LoginRequest{Email: u.Email, Password: testutils.TestPassword})
	assert.Error(t, err)
	_, err = service.Login(LoginRequest{Email: u.Email, Password: "NewPassword1"})
	assert.NoError(t, err)
}

func TestUserService_GetAndList(t *testing.T) {
	service, db, _ := setupUserService(t)
	viewer := testutils.CreateTestUser(db)
	author := testutils.CreateTestUser(db)
	other := testutils.CreateTestUser(db)
	testutils.CreateFollow(db, viewer.ID, author.ID)

	view, err := service.GetUser(dto.Principal{UserID: viewer.ID}, author.ID)
	require.NoError(t, err)
	assert.True(t, view.IsSubscribed)

	view, err = service.GetUser(dto.Principal{}, author.ID)
	require.NoError(t, err)
	assert.False(t, view.IsSubscribed)

	_, err = service.GetUser(dto.Principal{}, other.ID+100)
	assert.True(t, response.IsCode(err, response.NotFound))

	me, err := service.Me(viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, viewer.Email, me.Email)

	page, err := service.ListUsers(dto.Principal{UserID: viewer.ID}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, viewer.ID, page.Results[0].ID)
	assert.True(t, page.Results[1].IsSubscribed)

	page, err = service.ListUsers(dto.Principal{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, other.ID, page.Results[0].ID)
}
