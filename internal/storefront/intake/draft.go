package intake

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/storefront/client"
)

// Draft is the admin's in-progress product. Price stays text until submit.
type Draft struct {
	Name        string
	Price       string
	Category    domain.Category
	Image       string
	Description string
}

// DefaultDraft is the empty form: category men, everything else blank.
func DefaultDraft() Draft {
	return Draft{Category: domain.CategoryMen}
}

var maxPrice = decimal.NewFromInt(math.MaxInt64)

// Validate checks the draft and converts it to the wire payload.
func (d Draft) Validate() (client.NewProduct, error) {
	name := strings.TrimSpace(d.Name)
	price := strings.TrimSpace(d.Price)
	image := strings.TrimSpace(d.Image)
	if name == "" || price == "" || image == "" {
		return client.NewProduct{}, domain.ErrMissingFields
	}

	amount, err := decimal.NewFromString(price)
	if err != nil {
		return client.NewProduct{}, fmt.Errorf("%w: price %q is not a number", domain.ErrValidation, d.Price)
	}
	if !amount.IsInteger() || amount.IsNegative() || amount.GreaterThan(maxPrice) {
		return client.NewProduct{}, fmt.Errorf("%w: price must be a whole non-negative amount", domain.ErrValidation)
	}
	if !d.Category.Valid() {
		return client.NewProduct{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, d.Category)
	}

	return client.NewProduct{
		Name:        name,
		Price:       amount.IntPart(),
		Category:    d.Category,
		Image:       image,
		Description: strings.TrimSpace(d.Description),
	}, nil
}

// Set updates one field by name. Category values are parsed.
func (d *Draft) Set(field, value string) error {
	switch strings.ToLower(field) {
	case "name":
		d.Name = value
	case "price":
		d.Price = value
	case "category":
		c, err := domain.ParseCategory(value)
		if err != nil {
			return err
		}
		d.Category = c
	case "image":
		d.Image = value
	case "description":
		d.Description = value
	default:
		return fmt.Errorf("%w: unknown draft field %q", domain.ErrValidation, field)
	}
	return nil
}
