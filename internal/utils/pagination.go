package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseLimit reads the "limit" query parameter. Anything that is not a
// positive integer yields 0, which means no limit.
func ParseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
