package ginutil

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QueryInt extracts an integer from query parameters with default value
func QueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// ParamUUID extracts a UUID from path parameters
func ParamUUID(c *gin.Context, key string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(key))
}

// Pagination reads page/per_page query parameters (per_page capped at 100)
func Pagination(c *gin.Context) (page, perPage int) {
	page = QueryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage = QueryInt(c, "per_page", 20)
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
