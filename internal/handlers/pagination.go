package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type pageParams struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
}

func parsePageParams(c *gin.Context, defaultLimit int, defaultSort, defaultOrder string) pageParams {
	p := pageParams{
		Page:   1,
		Limit:  defaultLimit,
		SortBy: c.DefaultQuery("sort_by", defaultSort),
		Order:  c.DefaultQuery("order", defaultOrder),
	}

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = defaultOrder
	}

	return p
}

func (p pageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
