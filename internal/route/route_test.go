package route

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"terminal-terrace/foodgram/config"
	"terminal-terrace/foodgram/internal/testutils"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conf := &config.AppConfig{
		Server:    config.ServerConfig{FrontendURL: "http://localhost:3000"},
		JWT:       config.JWTConfig{Secret: "route-test-secret", ExpireTime: 1},
		Media:     config.MediaConfig{Root: t.TempDir(), URLPrefix: "/media", MaxWidth: 800},
		RateLimit: config.RateLimitConfig{RPS: 100, Burst: 100},
	}
	return SetupRouter(Deps{
		Conf:   conf,
		DB:     testutils.SetupTestDB(t),
		Logger: zap.NewNop(),
	})
}

func TestSetupRouter_Routes(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"健康检查", http.MethodGet, "/api/health", http.StatusOK},
		{"指标", http.MethodGet, "/metrics", http.StatusOK},
		{"Swagger 页面", http.MethodGet, "/swagger/index.html", http.StatusOK},
		{"标签列表", http.MethodGet, "/api/tags", http.StatusOK},
		{"食材列表", http.MethodGet, "/api/ingredients", http.StatusOK},
		{"菜谱列表匿名可访问", http.MethodGet, "/api/recipes", http.StatusOK},
		{"用户列表匿名可访问", http.MethodGet, "/api/users", http.StatusOK},
		{"当前用户需要认证", http.MethodGet, "/api/users/me", http.StatusUnauthorized},
		{"购物清单需要认证", http.MethodGet, "/api/recipes/download_shopping_cart", http.StatusUnauthorized},
		{"未知路由", http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestSetupRouter_RegisterAndLogin(t *testing.T) {
	r := newTestRouter(t)

	post := func(path string, body any) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post("/api/users", gin.H{
		"email":      "cook@example.com",
		"username":   "cook",
		"first_name": "Ann",
		"last_name":  "Cook",
		"password":   "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = post("/api/auth/token/login", gin.H{"email": "cook@example.com", "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AuthToken string `json:"auth_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AuthToken)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Token "+resp.Data.AuthToken)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"username":"cook"`)
}

func TestSetupRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/recipes/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
