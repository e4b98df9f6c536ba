package domain

import (
	"fmt"
	"strings"
)

// Category is the closed set of product groups the shop sells into.
type Category string

const (
	CategoryMen     Category = "men"
	CategoryWomen   Category = "women"
	CategoryKids    Category = "kids"
	CategoryCouples Category = "couples"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryMen, CategoryWomen, CategoryKids, CategoryCouples}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryKids, CategoryCouples:
		return true
	}
	return false
}

// ParseCategory normalizes raw input into a Category.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrValidation, raw)
	}
	return c, nil
}

// CategoryFilter selects a view over the catalog. FilterAll disables filtering.
type CategoryFilter string

const FilterAll CategoryFilter = "all"

// ParseCategoryFilter accepts "all" (or an empty value) and every Category.
func ParseCategoryFilter(raw string) (CategoryFilter, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == string(FilterAll) {
		return FilterAll, nil
	}
	c, err := ParseCategory(v)
	if err != nil {
		return "", err
	}
	return CategoryFilter(c), nil
}

// Matches reports whether a product in category c passes the filter.
func (f CategoryFilter) Matches(c Category) bool {
	return f == FilterAll || Category(f) == c
}
