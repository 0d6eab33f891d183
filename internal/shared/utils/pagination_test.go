package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", constants.DefaultPage, constants.DefaultPageSize},
		{"explicit", "?page=3&page_size=50", 3, 50},
		{"capped", "?page_size=1000", constants.DefaultPage, constants.MaxPageSize},
		{"zero page", "?page=0", constants.DefaultPage, constants.DefaultPageSize},
		{"negative size", "?page_size=-5", constants.DefaultPage, constants.DefaultPageSize},
		{"not a number", "?page=abc&page_size=xyz", constants.DefaultPage, constants.DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/tickets"+tt.query, nil)

			got := ParsePagination(c)

			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 7, 15},
		{10, 0, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.pageSize), "total=%d pageSize=%d", tt.total, tt.pageSize)
	}
}
