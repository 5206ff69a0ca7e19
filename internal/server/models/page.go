package models

import "strconv"

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageRequest is a validated page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePageRequest reads raw "page" and "limit" query values. Missing,
// non-numeric or non-positive values fall back to the defaults; limit is
// clamped to maxLimit when maxLimit is positive.
func ParsePageRequest(rawPage, rawLimit string, maxLimit int) PageRequest {
	p := PageRequest{Page: parsePositive(rawPage, DefaultPage), Limit: parsePositive(rawLimit, DefaultLimit)}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Pagination describes one page of a larger result set.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalCount  int `json:"totalCount"`
	Limit       int `json:"limit"`
}

// NewPagination computes totalPages as ceil(total/limit).
func NewPagination(req PageRequest, total int) Pagination {
	pages := 0
	if req.Limit > 0 {
		pages = (total + req.Limit - 1) / req.Limit
	}
	return Pagination{CurrentPage: req.Page, TotalPages: pages, TotalCount: total, Limit: req.Limit}
}
