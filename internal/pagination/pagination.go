package pagination

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Count    int64
	PerPage  int
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page[T]) NextPageNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

func (p Page[T]) PreviousPageNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

// Paginator holds the arithmetic for splitting Count rows into pages.
type Paginator struct {
	Count   int64
	PerPage int
}

// NumPages is never below 1, an empty result still has one (empty) page.
func (p Paginator) NumPages() int {
	if p.Count <= 0 || p.PerPage <= 0 {
		return 1
	}
	return int((p.Count + int64(p.PerPage) - 1) / int64(p.PerPage))
}

// Clamp turns a raw ?page= value into a valid page number. Garbage falls back
// to the first page, out-of-range numbers to the nearest valid page.
func (p Paginator) Clamp(raw string) int {
	n := Number(raw)
	if last := p.NumPages(); n > last {
		return last
	}
	return n
}

// Number parses a raw ?page= value without an upper bound. Garbage and
// numbers below 1 give 1.
func Number(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (p Paginator) Offset(number int) int {
	return (number - 1) * p.PerPage
}

// Paginate counts query, clamps raw and loads the requested page into Items.
// Ordering and preloads go in scopes so they are not applied to the count.
func Paginate[T any](query *gorm.DB, raw string, perPage int, scopes ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return Page[T]{}, err
	}

	p := Paginator{Count: count, PerPage: perPage}
	number := p.Clamp(raw)

	var items []T
	err := query.Session(&gorm.Session{}).
		Scopes(scopes...).
		Offset(p.Offset(number)).
		Limit(perPage).
		Find(&items).Error
	if err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Items:    items,
		Number:   number,
		NumPages: p.NumPages(),
		Count:    count,
		PerPage:  perPage,
	}, nil
}
