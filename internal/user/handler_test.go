package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/foodgram/internal/pkg/token"
	"terminal-terrace/foodgram/internal/testutils"
)

func doRequest(t *testing.T, r *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Token "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserHandler_AuthFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutils.SetupTestDB(t)
	tm := token.NewManager("test-secret", time.Hour, revokedSet{})

	r := gin.New()
	RegisterRoutes(r.Group("/api"), db, tm, nil)

	w := doRequest(t, r, http.MethodPost, "/api/users", "", RegisterRequest{
		Email:     "chef@example.com",
		Username:  "chef",
		FirstName: "Chef",
		LastName:  "Cook",
		Password:  "Password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodPost, "/api/auth/token/login", "", LoginRequest{
		Email:    "chef@example.com",
		Password: "Password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	bearer := resp.Data.AuthToken
	require.NotEmpty(t, bearer)

	w = doRequest(t, r, http.MethodGet, "/api/users/me", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"chef"`)

	w = doRequest(t, r, http.MethodPost, "/api/auth/token/logout", bearer, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/users/me", bearer, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_Subscribe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutils.SetupTestDB(t)
	tm := token.NewManager("test-secret", time.Hour, nil)

	r := gin.New()
	RegisterRoutes(r.Group("/api"), db, tm, nil)

	follower := testutils.CreateTestUser(db)
	author := testutils.CreateTestUser(db)
	bearer, _, err := tm.Generate(follower.ID, follower.Role)
	require.NoError(t, err)

	path := "/api/users/" + strconv.FormatUint(uint64(author.ID), 10) + "/subscribe"
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, r, http.MethodPost, path, "", nil).Code)
	assert.Equal(t, http.StatusCreated, doRequest(t, r, http.MethodPost, path, bearer, nil).Code)
	assert.Equal(t, http.StatusConflict, doRequest(t, r, http.MethodPost, path, bearer, nil).Code)

	w := doRequest(t, r, http.MethodGet, "/api/users/subscriptions?recipes_limit=1", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"recipes_count":0`)

	public := "/api/users/" + strconv.FormatUint(uint64(follower.ID), 10) + "/subscriptions"
	w = doRequest(t, r, http.MethodGet, public, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	selfPath := "/api/users/" + strconv.FormatUint(uint64(follower.ID), 10) + "/subscribe"
	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, http.MethodPost, selfPath, bearer, nil).Code)

	assert.Equal(t, http.StatusNoContent, doRequest(t, r, http.MethodDelete, path, bearer, nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, r, http.MethodDelete, path, bearer, nil).Code)
}
