package queries

import (
	"errors"
	"fmt"
)

var ErrInvalidPageSize = errors.New("invalid page size")

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Rows       []T `json:"rows"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalRows  int `json:"totalRows"`
}

// Paginate returns page pageNumber of rows. The page number is clamped into [1, TotalPages] and
// TotalPages is at least 1, so an empty input gives page 1 of 1 with no rows.
func Paginate[T any](rows []T, pageSize, pageNumber int) (Page[T], error) {
	if pageSize < 1 {
		return Page[T]{}, fmt.Errorf("%w: %d", ErrInvalidPageSize, pageSize)
	}

	totalPages := (len(rows) + pageSize - 1) / pageSize
	totalPages = max(totalPages, 1)
	pageNumber = min(max(pageNumber, 1), totalPages)

	start := min((pageNumber-1)*pageSize, len(rows))
	end := min(start+pageSize, len(rows))

	pageRows := make([]T, end-start)
	copy(pageRows, rows[start:end])

	return Page[T]{
		Rows:       pageRows,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalRows:  len(rows),
	}, nil
}
