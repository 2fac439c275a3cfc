package domain

import (
	"math"

	apperrors "messenger/pkg/errors"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Page is a validated 1-based page window.
type Page struct {
	Number  int
	PerPage int
}

func NewPage(number, perPage int) (Page, error) {
	if number <= 0 {
		return Page{}, apperrors.ErrInvalidPage
	}
	if perPage <= 0 || perPage > MaxPerPage {
		return Page{}, apperrors.ErrInvalidPerPage
	}
	// the offset of the page must fit in an int
	if number-1 > math.MaxInt/perPage {
		return Page{}, apperrors.ErrInvalidPage
	}
	return Page{Number: number, PerPage: perPage}, nil
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) Limit() int {
	return p.PerPage
}
