package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/foodgram-backend/internal/app/repository"
	"github.com/ikkim/foodgram-backend/internal/app/service"
	"github.com/ikkim/foodgram-backend/internal/db"
	apperrors "github.com/ikkim/foodgram-backend/internal/errors"
	"github.com/ikkim/foodgram-backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupAuthControllerTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, testSecret, 15*time.Minute, 7*24*time.Hour)
	userService := service.NewUserService(userRepo, repository.NewFollowRepository(testDB))

	ctrl := NewAuthController(authService)
	users := NewUserController(userService, nil)
	authMiddleware := middleware.NewAuthMiddleware(testSecret)

	router := gin.New()
	router.POST("/users", ctrl.Register)
	router.POST("/login", ctrl.Login)
	router.POST("/logout", authMiddleware.Authenticate(), ctrl.Logout)
	router.POST("/set_password", authMiddleware.Authenticate(), ctrl.SetPassword)
	router.GET("/me", authMiddleware.Authenticate(), users.GetMe)
	return router
}

func postJSON(router *gin.Engine, path, token string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Julia",
		LastName:  "Child",
		Password:  "password123",
	}
}

func TestAuthController_Register_Success(t *testing.T) {
	router := setupAuthControllerTest(t)

	w := postJSON(router, "/users", "", validRegisterRequest())
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "cook@example.com", response["email"])
	assert.Equal(t, "cook", response["username"])
	assert.NotContains(t, response, "password")
}

func TestAuthController_Register_InvalidInput(t *testing.T) {
	router := setupAuthControllerTest(t)

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"invalid email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }},
		{"missing first name", func(r *RegisterRequest) { r.FirstName = "" }},
		{"missing username", func(r *RegisterRequest) { r.Username = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			w := postJSON(router, "/users", "", req)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, apperrors.ValidationInvalidInput, response.Error)
		})
	}
}

func TestAuthController_Register_Duplicate(t *testing.T) {
	router := setupAuthControllerTest(t)

	require.Equal(t, http.StatusCreated, postJSON(router, "/users", "", validRegisterRequest()).Code)

	req := validRegisterRequest()
	req.Username = "another"
	w := postJSON(router, "/users", "", req)
	assert.Equal(t, http.StatusConflict, w.Code)

	var response apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, apperrors.AuthEmailAlreadyExists, response.Error)
}

func TestAuthController_LoginAndMe(t *testing.T) {
	router := setupAuthControllerTest(t)
	require.Equal(t, http.StatusCreated, postJSON(router, "/users", "", validRegisterRequest()).Code)

	w := postJSON(router, "/login", "", LoginRequest{Email: "cook@example.com", Password: "password123"})
	require.Equal(t, http.StatusOK, w.Code)

	var tokens map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))
	require.NotEmpty(t, tokens["auth_token"])
	assert.NotEmpty(t, tokens["refresh_token"])

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Token "+tokens["auth_token"])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var me UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "cook", me.Username)
	assert.False(t, me.IsSubscribed)
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	router := setupAuthControllerTest(t)
	require.Equal(t, http.StatusCreated, postJSON(router, "/users", "", validRegisterRequest()).Code)

	w := postJSON(router, "/login", "", LoginRequest{Email: "cook@example.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(router, "/login", "", map[string]string{"email": "cook@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_LogoutRequiresToken(t *testing.T) {
	router := setupAuthControllerTest(t)

	w := postJSON(router, "/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_SetPassword(t *testing.T) {
	router := setupAuthControllerTest(t)
	require.Equal(t, http.StatusCreated, postJSON(router, "/users", "", validRegisterRequest()).Code)

	w := postJSON(router, "/login", "", LoginRequest{Email: "cook@example.com", Password: "password123"})
	var tokens map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))
	token := tokens["auth_token"]

	w = postJSON(router, "/set_password", token, SetPasswordRequest{CurrentPassword: "nope-nope", NewPassword: "newpassword123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, apperrors.AuthWrongPassword, response.Error)
	assert.Contains(t, response.Fields, "current_password")

	w = postJSON(router, "/set_password", token, SetPasswordRequest{CurrentPassword: "password123", NewPassword: "newpassword123"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = postJSON(router, "/login", "", LoginRequest{Email: "cook@example.com", Password: "newpassword123"})
	assert.Equal(t, http.StatusOK, w.Code)
}
