package service

import "github.com/noah-isme/tutorbot-admin/internal/dto"

// PageRequest selects one page of a listing. Zero values pick the defaults.
type PageRequest struct {
	Page     int
	PageSize int
}

// PageConfig bounds listing pages.
type PageConfig struct {
	DefaultSize int
	MaxSize     int
}

func (c PageConfig) normalise(req PageRequest) PageRequest {
	defaultSize := c.DefaultSize
	if defaultSize <= 0 {
		defaultSize = 20
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = defaultSize
	}
	if c.MaxSize > 0 && req.PageSize > c.MaxSize {
		req.PageSize = c.MaxSize
	}
	return req
}

// bounds is the inclusive row range of the page.
func (r PageRequest) bounds() (start, end int) {
	start = (r.Page - 1) * r.PageSize
	return start, start + r.PageSize - 1
}

func newPage[T any](req PageRequest, items []T, total int) dto.Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + req.PageSize - 1) / req.PageSize
	}
	return dto.Page[T]{Data: items, Total: total, Page: req.Page, PageSize: req.PageSize, TotalPages: totalPages}
}
