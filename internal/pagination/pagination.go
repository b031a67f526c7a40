// Package pagination applies page windows to registry listings and
// wraps the results with paging metadata.
package pagination

import "gorm.io/gorm"

// Definition listings are small; a page of 25 covers a typical budget
// in one request.
const defaultPageSize = 25

// PageRequest carries the listing window parsed from query parameters.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Defaults normalizes an unset request to the first page at the
// standard listing size.
func (p *PageRequest) Defaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
}

// PageResponse is one window of a listing plus its paging metadata.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse wraps one window of results. A nil window marshals as
// an empty list, not null.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Paginate is a gorm scope applying the request's window.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((req.Page - 1) * req.PageSize).Limit(req.PageSize)
	}
}
