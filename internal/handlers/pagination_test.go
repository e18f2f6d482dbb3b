package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, rawQuery string, defaultLimit int, defaultSort, defaultOrder string) pageParams {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return parsePageParams(c, defaultLimit, defaultSort, defaultOrder)
}

func TestParsePageParamsDefaults(t *testing.T) {
	p := paramsFor(t, "", 10, "name", "asc")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "name", p.SortBy)
	assert.Equal(t, "asc", p.Order)
	assert.Equal(t, 0, p.Offset())
}

func TestParsePageParamsOverrides(t *testing.T) {
	p := paramsFor(t, "page=3&limit=25&sort_by=created_at&order=desc", 10, "name", "asc")

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, "created_at", p.SortBy)
	assert.Equal(t, "desc", p.Order)
	assert.Equal(t, 50, p.Offset())
}

func TestParsePageParamsRejectsGarbage(t *testing.T) {
	p := paramsFor(t, "page=-2&limit=zero&order=sideways", 20, "date", "desc")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, "desc", p.Order)
}
