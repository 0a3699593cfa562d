package pagination

import (
	pkgerrors "github.com/stocktrail/stocktrail-backend/pkg/errors"
)

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 10
	// MaxPerPage caps how many rows any page query can request.
	MaxPerPage = 100
)

// Params holds 1-indexed page pagination inputs.
type Params struct {
	Page    int
	PerPage int
}

// Normalize validates the inputs, applying defaults for omitted values.
// A zero or negative per_page is rejected outright rather than clamped:
// letting it through is how the naive division-by-zero bug happens.
func Normalize(p Params) (Params, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Page < 1 {
		return Params{}, pkgerrors.New(pkgerrors.CodeValidation, "page must be at least 1")
	}
	if p.PerPage == 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage < 1 {
		return Params{}, pkgerrors.New(pkgerrors.CodeValidation, "per_page must be at least 1")
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p, nil
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// TotalPages computes ceil(total / perPage) for a normalized page size.
func TotalPages(total int64, perPage int) int {
	if perPage < 1 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
