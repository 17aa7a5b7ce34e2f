package recipe

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
	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/pkg/token"
	"terminal-terrace/foodgram/internal/testutils"
)

type envelope struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Fields  map[string][]string `json:"fields"`
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *token.Manager) {
	gin.SetMode(gin.TestMode)
	db := testutils.SetupTestDB(t)
	tm := token.NewManager("test-secret", time.Hour, nil)

	r := gin.New()
	RegisterRoutes(r.Group("/api"), db, tm, &fakeImageStore{})
	return r, db, tm
}

func doRequest(t *testing.T, r *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecipeHandler_CreateAndGet(t *testing.T) {
	r, db, tm := setupRouter(t)

	author := testutils.CreateTestUser(db)
	tag := testutils.CreateTestTag(db)
	egg := testutils.CreateTestIngredient(db, "egg", "pcs")
	bearer, _, err := tm.Generate(author.ID, author.Role)
	require.NoError(t, err)

	body := RecipeWriteRequest{
		Ingredients: []IngredientInput{{ID: egg.ID, Amount: 2}},
		Tags:        []uint{tag.ID},
		Image:       "omelette",
		Name:        "Omelette",
		Text:        "Beat and fry",
		CookingTime: 5,
	}

	// 未登录
	w := doRequest(t, r, http.MethodPost, "/api/recipes", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/recipes", bearer, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var created struct {
		ID          uint `json:"id"`
		Ingredients []struct {
			Name   string `json:"name"`
			Amount int    `json:"amount"`
		} `json:"ingredients"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.Len(t, created.Ingredients, 1)
	assert.Equal(t, "egg", created.Ingredients[0].Name)

	w = doRequest(t, r, http.MethodGet, "/api/recipes/"+itoa(created.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/recipes/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipeHandler_CreateValidation(t *testing.T) {
	r, db, tm := setupRouter(t)
	author := testutils.CreateTestUser(db)
	bearer, _, err := tm.Generate(author.ID, author.Role)
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodPost, "/api/recipes", bearer, RecipeWriteRequest{
		Name:        "No parts",
		Text:        "text",
		CookingTime: 0,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "ingredients")
	assert.Contains(t, resp.Fields, "tags")
	assert.Contains(t, resp.Fields, "image")
	assert.Contains(t, resp.Fields, "cooking_time")
}

func TestRecipeHandler_LedgerAndDownload(t *testing.T) {
	r, db, tm := setupRouter(t)

	author := testutils.CreateTestUser(db)
	shopper := testutils.CreateTestUser(db)
	tag := testutils.CreateTestTag(db)
	milk := testutils.CreateTestIngredient(db, "milk", "ml")
	rec := testutils.CreateTestRecipe(db, author.ID, []uint{tag.ID},
		[]testutils.IngredientAmount{{IngredientID: milk.ID, Amount: 250}})

	bearer, _, err := tm.Generate(shopper.ID, shopper.Role)
	require.NoError(t, err)

	path := "/api/recipes/" + itoa(rec.ID) + "/shopping_cart"
	assert.Equal(t, http.StatusCreated, doRequest(t, r, http.MethodPost, path, bearer, nil).Code)
	assert.Equal(t, http.StatusConflict, doRequest(t, r, http.MethodPost, path, bearer, nil).Code)

	w := doRequest(t, r, http.MethodGet, "/api/recipes/download_shopping_cart", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping_list.txt")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "milk (ml): 250")

	w = doRequest(t, r, http.MethodGet, "/api/recipes/download_shopping_cart?format=json", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.JSONEq(t, `[{"name":"milk","measurement_unit":"ml","amount":250}]`, string(resp.Data))

	w = doRequest(t, r, http.MethodGet, "/api/recipes?is_in_shopping_cart=1", bearer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var page struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.Equal(t, int64(1), page.Count)

	assert.Equal(t, http.StatusNoContent, doRequest(t, r, http.MethodDelete, path, bearer, nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(t, r, http.MethodDelete, path, bearer, nil).Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
