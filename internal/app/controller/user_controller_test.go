package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"github.com/ikkim/foodgram-backend/internal/app/service"
	"github.com/ikkim/foodgram-backend/internal/db"
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
	"github.com/ikkim/foodgram-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type userControllerFixture struct {
	router *gin.Engine
	db     *gorm.DB
	reader *model.User
	author *model.User
}

func setupUserControllerTest(t *testing.T) *userControllerFixture {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	f := &userControllerFixture{db: testDB}
	f.reader = &model.User{Email: "reader@example.com", Username: "reader", FirstName: "R", LastName: "R", PasswordHash: "hash"}
	f.author = &model.User{Email: "author@example.com", Username: "author", FirstName: "A", LastName: "A", PasswordHash: "hash"}
	require.NoError(t, testDB.Create(f.reader).Error)
	require.NoError(t, testDB.Create(f.author).Error)

	for _, name := range []string{"First", "Second", "Third"} {
		recipe := &model.Recipe{Name: name, Description: "d", CookTime: 10, AuthorID: &f.author.ID}
		require.NoError(t, testDB.Omit("Author").Create(recipe).Error)
	}

	userRepo := repository.NewUserRepository(testDB)
	followRepo := repository.NewFollowRepository(testDB)
	ctrl := NewUserController(
		service.NewUserService(userRepo, followRepo),
		service.NewFollowService(followRepo, userRepo, repository.NewRecipeRepository(testDB)),
	)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if c.GetHeader("X-Test-User") == "reader" {
			c.Set(middleware.UserIDKey, f.reader.ID)
		}
		c.Next()
	})
	router.GET("/users", ctrl.ListUsers)
	router.GET("/users/subscriptions", ctrl.Subscriptions)
	router.GET("/users/:id", ctrl.GetUser)
	router.POST("/users/:id/subscribe", ctrl.Subscribe)
	router.DELETE("/users/:id/subscribe", ctrl.Unsubscribe)
	f.router = router
	return f
}

func (f *userControllerFixture) request(method, path string, asReader bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if asReader {
		req.Header.Set("X-Test-User", "reader")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestUserController_SubscribeFlow(t *testing.T) {
	f := setupUserControllerTest(t)

	w := f.request("POST", fmt.Sprintf("/users/%d/subscribe?recipes_limit=2", f.author.ID), true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sub SubscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	assert.Equal(t, f.author.ID, sub.ID)
	assert.True(t, sub.IsSubscribed)
	assert.Equal(t, int64(3), sub.RecipesCount)
	require.Len(t, sub.Recipes, 2)
	assert.Equal(t, "First", sub.Recipes[0].Name)

	w = f.request("POST", fmt.Sprintf("/users/%d/subscribe", f.author.ID), true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.request("GET", fmt.Sprintf("/users/%d", f.author.ID), true)
	require.Equal(t, http.StatusOK, w.Code)
	var profile UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.True(t, profile.IsSubscribed)

	w = f.request("GET", "/users/subscriptions?recipes_limit=1", true)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Count   int64                  `json:"count"`
		Results []SubscriptionResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Count)
	require.Len(t, page.Results, 1)
	assert.Len(t, page.Results[0].Recipes, 1)

	w = f.request("DELETE", fmt.Sprintf("/users/%d/subscribe", f.author.ID), true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.request("DELETE", fmt.Sprintf("/users/%d/subscribe", f.author.ID), true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserController_SelfSubscribe(t *testing.T) {
	f := setupUserControllerTest(t)

	for _, method := range []string{"POST", "DELETE"} {
		w := f.request(method, fmt.Sprintf("/users/%d/subscribe", f.reader.ID), true)
		assert.Equal(t, http.StatusBadRequest, w.Code, method)

		var resp apperrors.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, apperrors.FollowSelfForbidden, resp.Error)
	}
}

func TestUserController_AnonymousAccess(t *testing.T) {
	f := setupUserControllerTest(t)

	w := f.request("POST", fmt.Sprintf("/users/%d/subscribe", f.author.ID), false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.request("GET", "/users", false)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Count   int64          `json:"count"`
		Results []UserResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(2), page.Count)
	for _, u := range page.Results {
		assert.False(t, u.IsSubscribed)
	}

	w = f.request("GET", "/users/9999", false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.request("GET", "/users/abc", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
