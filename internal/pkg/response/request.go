package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace/internal/pkg/validator"
)

// BindJSON decodes and validates the request body into dst. On failure it
// writes a 400 and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if validator.IsValidationError(err) {
			ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validator.Fields(err))
			return false
		}
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	return true
}

// ParamID parses a positive integer path parameter. On failure it writes a
// 400 and returns false.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

// QueryID parses an optional positive integer query parameter; absent or
// malformed values yield 0.
func QueryID(c *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
