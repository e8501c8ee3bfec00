package errors

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Status  int    // HTTP 상태 코드
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// ParseError converts an error that is not an AppError into a response code and message.
// Database details are hidden; context names the failed operation ("create recipe", "user").
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: "internal server error",
		}
	}

	// 1. GORM 기본 에러
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return parseDuplicateKeyError(err.Error())
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return parseForeignKeyError(err.Error())
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 2. PostgreSQL / SQLite 메시지 파싱

	// 2-1. Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr)
	}

	// 2-3. Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return parseCheckConstraintError(errStr)
	}

	// 3. 네트워크/연결 에러
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Status:  http.StatusServiceUnavailable,
			Code:    InternalDatabaseError,
			Message: "a backing service is unavailable, try again later",
		}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	conflict := func(code, msg string) ErrorInfo {
		return ErrorInfo{Status: http.StatusConflict, Code: code, Message: msg}
	}

	switch {
	case strings.Contains(errLower, "email"):
		return conflict(AuthEmailAlreadyExists, "a user with this email already exists")
	case strings.Contains(errLower, "username"):
		return conflict(AuthUsernameExists, "a user with this username already exists")
	case strings.Contains(errLower, "favorites"):
		return conflict(FavoriteAlreadyExists, "recipe is already in favorites")
	case strings.Contains(errLower, "cart_items"):
		return conflict(CartAlreadyExists, "recipe is already in the shopping cart")
	case strings.Contains(errLower, "follows"):
		return conflict(FollowAlreadyExists, "already subscribed to this author")
	case strings.Contains(errLower, "ingredient_lines"):
		return ErrorInfo{Status: http.StatusBadRequest, Code: RecipeDuplicateIngredient, Message: "ingredient must be unique"}
	}

	return conflict(ResourceAlreadyExists, "resource already exists")
}

func parseForeignKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// 삭제 시 참조 중인 데이터가 있는 경우
	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    ResourceConflict,
			Message: "resource is referenced by other data and cannot be deleted",
		}
	}

	switch {
	case strings.Contains(errLower, "ingredient_id"):
		return ErrorInfo{Status: http.StatusNotFound, Code: IngredientNotFound, Message: "ingredient not found"}
	case strings.Contains(errLower, "tag_id"):
		return ErrorInfo{Status: http.StatusNotFound, Code: TagNotFound, Message: "tag not found"}
	case strings.Contains(errLower, "recipe_id"):
		return ErrorInfo{Status: http.StatusNotFound, Code: RecipeNotFound, Message: "recipe not found"}
	case strings.Contains(errLower, "user_id") || strings.Contains(errLower, "author_id"):
		return ErrorInfo{Status: http.StatusNotFound, Code: UserNotFound, Message: "user not found"}
	}

	return ErrorInfo{
		Status:  http.StatusNotFound,
		Code:    ResourceNotFound,
		Message: "referenced resource not found",
	}
}

func parseCheckConstraintError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	switch {
	case strings.Contains(errLower, "cook_time"):
		return ErrorInfo{Status: http.StatusBadRequest, Code: RecipeInvalidCookTime, Message: "cook time must be at least 1"}
	case strings.Contains(errLower, "quantity"):
		return ErrorInfo{Status: http.StatusBadRequest, Code: RecipeInvalidQuantity, Message: "minimum quantity is 1"}
	case strings.Contains(errLower, "follow"):
		return ErrorInfo{Status: http.StatusBadRequest, Code: FollowSelfForbidden, Message: "self-follow not allowed"}
	}

	return ErrorInfo{
		Status:  http.StatusBadRequest,
		Code:    ValidationInvalidInput,
		Message: "invalid input",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "recipe"):
		return "recipe not found"
	case strings.Contains(contextLower, "ingredient"):
		return "ingredient not found"
	case strings.Contains(contextLower, "tag"):
		return "tag not found"
	case strings.Contains(contextLower, "user"):
		return "user not found"
	}
	return "resource not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "failed to create resource, try again later"
	case strings.Contains(contextLower, "update"):
		return "failed to update resource, try again later"
	case strings.Contains(contextLower, "delete"):
		return "failed to delete resource, try again later"
	}
	return "internal server error"
}
