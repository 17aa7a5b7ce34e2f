package testutils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/model/recipe"
	"terminal-terrace/foodgram/internal/model/user"
)

// TestPassword is the plain password of every fixture user
const TestPassword = "Secret123"

// CreateTestUser creates a test user with unique username/email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := shortID()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("Failed to hash test password: %v", err))
	}

	testUser := &user.User{
		Username:     fmt.Sprintf("test_user_%s", uniqueID),
		Email:        fmt.Sprintf("test_%s@example.com", uniqueID),
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hash),
		Role:         user.RoleUser,
		CreatedAt:    time.Now(),
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

// WithUsername sets the username
func WithUsername(username string) UserOption {
	return func(u *user.User) {
		u.Username = username
	}
}

// WithEmail sets the email
func WithEmail(email string) UserOption {
	return func(u *user.User) {
		u.Email = email
	}
}

// WithRole sets the role
func WithRole(role string) UserOption {
	return func(u *user.User) {
		u.Role = role
	}
}

// CreateTestTag creates a tag with a unique slug and color
func CreateTestTag(db *gorm.DB, opts ...TagOption) *recipe.Tag {
	uniqueID := shortID()

	tag := &recipe.Tag{
		Name:  "Tag " + uniqueID,
		Slug:  "tag-" + uniqueID,
		Color: "#" + uniqueID[:6],
	}

	for _, opt := range opts {
		opt(tag)
	}

	if err := db.Create(tag).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test tag: %v", err))
	}
	return tag
}

// TagOption configures test tag
type TagOption func(*recipe.Tag)

// WithSlug sets the tag slug
func WithSlug(slug string) TagOption {
	return func(t *recipe.Tag) {
		t.Slug = slug
	}
}

// WithColor sets the tag color
func WithColor(color string) TagOption {
	return func(t *recipe.Tag) {
		t.Color = color
	}
}

// CreateTestIngredient creates an ingredient
func CreateTestIngredient(db *gorm.DB, name, unit string) *recipe.Ingredient {
	ingredient := &recipe.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ingredient).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test ingredient: %v", err))
	}
	return ingredient
}

// IngredientAmount pairs an ingredient with its amount in a fixture recipe
type IngredientAmount struct {
	IngredientID uint
	Amount       int
}

// CreateTestRecipe writes a recipe with its join rows directly, bypassing the service
func CreateTestRecipe(db *gorm.DB, authorID uint, tagIDs []uint, ingredients []IngredientAmount, opts ...RecipeOption) *recipe.Recipe {
	r := &recipe.Recipe{
		AuthorID:    authorID,
		Name:        "Recipe " + shortID(),
		Image:       "/media/recipes/test.png",
		Text:        "Test recipe description",
		CookingTime: 10,
		CreatedAt:   time.Now(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := db.Create(r).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test recipe: %v", err))
	}
	for _, tagID := range tagIDs {
		if err := db.Create(&recipe.RecipeTag{RecipeID: r.ID, TagID: tagID}).Error; err != nil {
			panic(fmt.Sprintf("Failed to create recipe tag: %v", err))
		}
	}
	for i, ia := range ingredients {
		row := &recipe.RecipeIngredient{RecipeID: r.ID, IngredientID: ia.IngredientID, Amount: ia.Amount, Position: i}
		if err := db.Create(row).Error; err != nil {
			panic(fmt.Sprintf("Failed to create recipe ingredient: %v", err))
		}
	}
	return r
}

// RecipeOption configures test recipe
type RecipeOption func(*recipe.Recipe)

// WithRecipeName sets the recipe name
func WithRecipeName(name string) RecipeOption {
	return func(r *recipe.Recipe) {
		r.Name = name
	}
}

// WithCreatedAt sets the recipe creation time
func WithCreatedAt(at time.Time) RecipeOption {
	return func(r *recipe.Recipe) {
		r.CreatedAt = at
	}
}

// AddToCart puts a recipe into a user's shopping cart
func AddToCart(db *gorm.DB, userID, recipeID uint) {
	if err := db.Create(&recipe.ShoppingCartItem{UserID: userID, RecipeID: recipeID}).Error; err != nil {
		panic(fmt.Sprintf("Failed to add cart item: %v", err))
	}
}

// AddFavorite marks a recipe as favorite for a user
func AddFavorite(db *gorm.DB, userID, recipeID uint) {
	if err := db.Create(&recipe.Favorite{UserID: userID, RecipeID: recipeID}).Error; err != nil {
		panic(fmt.Sprintf("Failed to add favorite: %v", err))
	}
}

// CreateFollow makes userID follow authorID
func CreateFollow(db *gorm.DB, userID, authorID uint) {
	if err := db.Create(&user.Follow{UserID: userID, AuthorID: authorID}).Error; err != nil {
		panic(fmt.Sprintf("Failed to create follow: %v", err))
	}
}

// shortID 十六进制短 ID, 可同时用于 slug 与颜色
func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
