package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/foodgram-backend/internal/access"
	"github.com/ikkim/foodgram-backend/internal/app/model"
	"github.com/ikkim/foodgram-backend/internal/errors"
	"github.com/ikkim/foodgram-backend/pkg/redis"
	"github.com/ikkim/foodgram-backend/pkg/util"
)

// Context keys for user information
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
	PrincipalKey = "principal"
	TokenKey     = "auth_token"
	ClaimsKey    = "auth_claims"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// extractToken reads "Bearer <token>" or "Token <token>"
func extractToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "Token") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// verify validates the token and rejects refresh and revoked tokens
func (m *AuthMiddleware) verify(c *gin.Context, token string) (*util.Claims, string, error) {
	claims, err := util.ValidateToken(token, m.jwtSecret)
	if err != nil {
		if err == util.ErrExpiredToken {
			return nil, errors.AuthTokenExpired, err
		}
		return nil, errors.AuthTokenInvalid, err
	}
	if claims.TokenType != util.TokenTypeAccess {
		return nil, errors.AuthTokenInvalid, util.ErrInvalidToken
	}

	revoked, err := redis.IsTokenBlacklisted(c.Request.Context(), token)
	if err != nil {
		// Redis 장애 시 토큰 검증만으로 통과
		GetLoggerFromContext(c).Warn("Token blacklist lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if revoked {
		return nil, errors.AuthTokenRevoked, util.ErrInvalidToken
	}
	return claims, "", nil
}

func setIdentity(c *gin.Context, token string, claims *util.Claims) {
	role := model.UserRole(claims.Role)
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserEmailKey, claims.Email)
	c.Set(UserRoleKey, role)
	c.Set(TokenKey, token)
	c.Set(ClaimsKey, claims)
	c.Set(PrincipalKey, access.NewPrincipal(claims.UserID, role))
}

// Authenticate validates the access token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		token, ok := extractToken(authHeader)
		if !ok {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, code, err := m.verify(c, token)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"code":  code,
				"error": err.Error(),
			})
			errors.RespondWithError(c, http.StatusUnauthorized, code, "Invalid or expired token")
			c.Abort()
			return
		}

		setIdentity(c, token, claims)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})

		c.Next()
	}
}

// OptionalAuthenticate validates the token if present; otherwise the
// request continues as anonymous
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		token, ok := extractToken(authHeader)
		if !ok {
			log.Debug("Invalid authorization header format - continuing as guest", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			c.Next()
			return
		}

		claims, _, err := m.verify(c, token)
		if err != nil {
			log.Debug("Token validation failed - continuing as guest", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		setIdentity(c, token, claims)

		log.Debug("User authenticated successfully (optional)", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})

		c.Next()
	}
}

// RequireRole checks if user has required role
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		role, exists := GetUserRole(c)
		if !exists {
			log.Warn("Role information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Forbidden(c, "")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role == model.UserRole(r) {
				c.Next()
				return
			}
		}

		userID, _ := GetUserID(c)
		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":        userID,
			"user_role":      role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})
		errors.Forbidden(c, "")
		c.Abort()
	}
}

// GetPrincipal returns the request principal, anonymous when unauthenticated
func GetPrincipal(c *gin.Context) access.Principal {
	if p, exists := c.Get(PrincipalKey); exists {
		if principal, ok := p.(access.Principal); ok {
			return principal
		}
	}
	// 테스트에서 user_id만 설정한 경우
	if userID, ok := GetUserID(c); ok {
		role, _ := GetUserRole(c)
		if role == "" {
			role = model.RoleUser
		}
		return access.NewPrincipal(userID, role)
	}
	return access.Anonymous()
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUserEmail extracts user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetUserRole extracts user role from context
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(model.UserRole), true
}

// GetToken returns the raw access token and its claims
func GetToken(c *gin.Context) (string, *util.Claims, bool) {
	token := c.GetString(TokenKey)
	claims, exists := c.Get(ClaimsKey)
	if token == "" || !exists {
		return "", nil, false
	}
	return token, claims.(*util.Claims), true
}
