package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist/internal/apperr"
)

// envelope is the response shape shared by every successful endpoint.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errorBody struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
	Details   any    `json:"details,omitempty"`
}

func respond(c *gin.Context, code int, message string, data any) {
	c.JSON(code, envelope{Status: "success", Message: message, Data: data})
}

// respondError maps a typed application error to its HTTP representation.
// This is the single place failures cross the transport boundary.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)

	code := http.StatusInternalServerError
	message := err.Error()
	switch kind {
	case apperr.Validation, apperr.BusinessRule:
		code = http.StatusBadRequest
	case apperr.NotFound:
		code = http.StatusNotFound
	case apperr.Duplicate:
		code = http.StatusConflict
	default:
		message = "internal server error"
	}

	c.JSON(code, errorBody{
		Status:    "error",
		Message:   message,
		ErrorCode: kind.Code(),
	})
}
