package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/app/service"
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
	"github.com/ikkim/foodgram-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRecipeControllerTest(svc *stubRecipeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewRecipeController(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uint(7))
		c.Next()
	})
	router.GET("/recipes", ctrl.ListRecipes)
	router.POST("/recipes", ctrl.CreateRecipe)
	router.GET("/recipes/:id", ctrl.GetRecipe)
	router.PATCH("/recipes/:id", ctrl.UpdateRecipe)
	router.DELETE("/recipes/:id", ctrl.DeleteRecipe)
	return router
}

func sampleView() *service.RecipeView {
	authorID := uint(3)
	return &service.RecipeView{
		Recipe: &model.Recipe{
			ID:          11,
			Name:        "Bread",
			Description: "Bake it",
			CookTime:    40,
			Image:       "/media/recipes/bread.png",
			AuthorID:    &authorID,
			Author:      &model.User{ID: authorID, Email: "chef@example.com", Username: "chef"},
			RecipeTags: []model.RecipeTag{
				{RecipeID: 11, TagID: 1, Tag: model.Tag{ID: 1, Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}},
			},
			IngredientLines: []model.IngredientLine{
				{IngredientID: 5, Quantity: 200, Ingredient: model.Ingredient{ID: 5, Name: "Flour", MeasurementUnit: model.UnitGram}},
			},
			IsInShoppingCart: true,
		},
		AuthorSubscribed: true,
	}
}

func TestRecipeController_CreateMapsPayload(t *testing.T) {
	svc := &stubRecipeService{view: sampleView()}
	router := setupRecipeControllerTest(svc)

	body, _ := json.Marshal(RecipeWriteRequest{
		Name:        "Bread",
		Description: "Bake it",
		CookTime:    40,
		Image:       "data:image/png;base64,AAAA",
		Tags:        []uint{1},
		Ingredients: []IngredientAmountRequest{{ID: 5, Quantity: 200}},
	})
	req := httptest.NewRequest("POST", "/recipes", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Bread", svc.lastInput.Name)
	assert.Equal(t, []uint{1}, svc.lastInput.TagIDs)
	assert.Equal(t, []service.IngredientAmount{{IngredientID: 5, Quantity: 200}}, svc.lastInput.Ingredients)

	var resp RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(11), resp.ID)
	assert.True(t, resp.Author.IsSubscribed)
	assert.False(t, resp.IsFavorited)
	assert.True(t, resp.IsInShoppingCart)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "breakfast", resp.Tags[0].Slug)
	assert.Equal(t, []RecipeIngredientResponse{
		{ID: 5, Name: "Flour", MeasurementUnit: model.UnitGram, Quantity: 200},
	}, resp.Ingredients)
}

func TestRecipeController_CreateValidationError(t *testing.T) {
	svc := &stubRecipeService{err: service.ErrInvalidCookTime}
	router := setupRecipeControllerTest(svc)

	req := httptest.NewRequest("POST", "/recipes", bytes.NewBufferString(`{"name":"Bread","cook_time":0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.RecipeInvalidCookTime, resp.Error)
	assert.Contains(t, resp.Fields, "cook_time")
}

func TestRecipeController_CreateMalformedJSON(t *testing.T) {
	router := setupRecipeControllerTest(&stubRecipeService{})

	req := httptest.NewRequest("POST", "/recipes", bytes.NewBufferString(`{"cook_time":"soon"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipeController_ListParsesFilters(t *testing.T) {
	svc := &stubRecipeService{view: sampleView()}
	router := setupRecipeControllerTest(svc)

	req := httptest.NewRequest("GET", "/recipes?author=3&tags=breakfast&tags=lunch&is_favorited=1&is_in_shopping_cart=0&page=2&limit=500", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	q := svc.lastQuery
	require.NotNil(t, q.AuthorID)
	assert.Equal(t, uint(3), *q.AuthorID)
	assert.Equal(t, []string{"breakfast", "lunch"}, q.TagSlugs)
	require.NotNil(t, q.IsFavorited)
	assert.True(t, *q.IsFavorited)
	require.NotNil(t, q.IsInShoppingCart)
	assert.False(t, *q.IsInShoppingCart)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, service.MaxPageSize, q.Limit)

	var page struct {
		Count   int64            `json:"count"`
		Page    int              `json:"page"`
		Limit   int              `json:"limit"`
		Results []RecipeResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Count)
	assert.Len(t, page.Results, 1)
}

func TestRecipeController_ListDefaults(t *testing.T) {
	svc := &stubRecipeService{}
	router := setupRecipeControllerTest(svc)

	req := httptest.NewRequest("GET", "/recipes?page=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.lastQuery.AuthorID)
	assert.Nil(t, svc.lastQuery.IsFavorited)
	assert.Equal(t, 1, svc.lastQuery.Page)
	assert.Equal(t, service.DefaultPageSize, svc.lastQuery.Limit)
	assert.JSONEq(t, `{"count":0,"page":1,"limit":6,"results":[]}`, w.Body.String())
}

func TestRecipeController_ListCapsHugePage(t *testing.T) {
	svc := &stubRecipeService{}
	router := setupRecipeControllerTest(svc)

	req := httptest.NewRequest("GET", "/recipes?page=9223372036854775807", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.MaxPage, svc.lastQuery.Page)
	assert.JSONEq(t, fmt.Sprintf(`{"count":0,"page":%d,"limit":6,"results":[]}`, service.MaxPage), w.Body.String())
}

func TestRecipeController_ListInvalidAuthor(t *testing.T) {
	router := setupRecipeControllerTest(&stubRecipeService{})

	req := httptest.NewRequest("GET", "/recipes?author=me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipeController_InvalidID(t *testing.T) {
	router := setupRecipeControllerTest(&stubRecipeService{})

	for _, method := range []string{"GET", "PATCH", "DELETE"} {
		req := httptest.NewRequest(method, "/recipes/zero", bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, method)

		var resp apperrors.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, apperrors.ValidationInvalidID, resp.Error)
	}
}

func TestRecipeController_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		method string
		status int
	}{
		{"not found", service.ErrRecipeNotFound, "GET", http.StatusNotFound},
		{"forbidden", apperrors.Permission(apperrors.AuthzAuthorOnly, "only the author can modify this recipe"), "PATCH", http.StatusForbidden},
		{"deleted", nil, "DELETE", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubRecipeService{err: tt.err, view: sampleView()}
			router := setupRecipeControllerTest(svc)

			req := httptest.NewRequest(tt.method, "/recipes/11", bytes.NewBufferString(`{"name":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, uint(11), svc.lastID)
		})
	}
}
