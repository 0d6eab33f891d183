package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

// Pagination holds the page and page_size query parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// ParsePagination reads page and page_size. Missing, malformed or
// non-positive values fall back to the defaults; page_size is capped.
func ParsePagination(c *gin.Context) Pagination {
	page := parseQueryInt(c, "page", constants.DefaultPage)
	pageSize := parseQueryInt(c, "page_size", constants.DefaultPageSize)
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}

// TotalPages never returns less than one so an empty list still has a page.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
