package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 표준 에러 응답 구조
type ErrorResponse struct {
	Error   string            `json:"error"`            // 에러 코드 (프론트엔드에서 매핑용)
	Message string            `json:"message"`          // 사용자 친화적 메시지
	Fields  map[string]string `json:"fields,omitempty"` // 필드별 오류 메시지
}

// RespondWithError writes a standard error body
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Respond writes err as a response. AppErrors keep their kind's status;
// anything else goes through ParseError with context describing the operation.
func Respond(c *gin.Context, err error, context string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		resp := ErrorResponse{
			Error:   appErr.Code,
			Message: appErr.Message,
		}
		if appErr.Field != "" {
			resp.Fields = map[string]string{appErr.Field: appErr.Message}
		}
		c.JSON(appErr.Kind.HTTPStatus(), resp)
		return
	}

	info := ParseError(err, context)
	c.JSON(info.Status, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}

// 자주 사용하는 에러 응답 단축 함수들

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication credentials were not provided"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "you do not have permission to perform this action"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// RespondWithValidationError reports binding failures per field
func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   ValidationInvalidInput,
		Message: "invalid input",
		Fields:  fields,
	})
}
