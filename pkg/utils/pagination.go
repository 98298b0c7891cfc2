package utils

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 8
	MaxPageSize     = 100
)

// Offset returns the row offset of a 1-based page.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// ParsePage reads page/pageSize query values, applying defaults to empty strings.
func ParsePage(pageStr, pageSizeStr string, defaultSize int) (int, int, error) {
	page := 1
	pageSize := defaultSize

	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, ErrInvalidPage
		}
		page = p
	}

	if pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil || ps < 1 || ps > MaxPageSize {
			return 0, 0, ErrInvalidPageSize
		}
		pageSize = ps
	}

	// keeps Offset from overflowing
	if page > math.MaxInt/pageSize {
		return 0, 0, ErrInvalidPage
	}

	return page, pageSize, nil
}
