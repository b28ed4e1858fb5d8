package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestValidatePagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, PageSize: 20}, ValidatePagination(0, 0))
	assert.Equal(t, Pagination{Page: 3, PageSize: 100}, ValidatePagination(3, 500))
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/assets?page=2&page_size=abc", nil)

	assert.Equal(t, Pagination{Page: 2, PageSize: 20}, ParsePagination(c))
}
