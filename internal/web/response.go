package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/ensoview/schema"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func fail(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// statusFor maps pipeline errors to HTTP statuses.
func statusFor(err error) int {
	var unknown *schema.UnknownIndexError
	var missing *schema.SourceMissingError
	var schemaErr *schema.SchemaError
	var empty *schema.EmptySeriesError
	switch {
	case errors.As(err, &unknown), errors.As(err, &missing):
		return http.StatusNotFound
	case errors.As(err, &schemaErr), errors.As(err, &empty):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
