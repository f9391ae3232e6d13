package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pagination reads the page/size query parameters, defaulting to the
// first page of 10.
func pagination(c *gin.Context) (page, size int) {
	page = 1
	size = 10
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := c.Query("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = n
		}
	}
	return page, size
}
