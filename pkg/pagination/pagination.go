package pagination

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params holds page-based pagination parameters extracted from a request.
// Pages are numbered from 1.
type Params struct {
	Page     int
	PageSize int
}

// FromContext extracts pagination parameters from the echo context.
func FromContext(c echo.Context) Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	size, _ := strconv.Atoi(c.QueryParam("limit"))
	if size <= 0 {
		size, _ = strconv.Atoi(c.QueryParam("pageSize"))
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Params{Page: page, PageSize: size}
}

// Offset returns the number of rows to skip for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// SQL returns the LIMIT and OFFSET clause for SQL queries.
func (p Params) SQL() string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", p.PageSize, p.Offset())
}

// TotalPages returns the page count for a total row count, rounding up.
func (p Params) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// Response wraps a paginated API response.
type Response struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

func NewResponse(data interface{}, total int, p Params) *Response {
	return &Response{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages(total),
	}
}
