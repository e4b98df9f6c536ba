package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// Result counts what a run did.
type Result struct {
	Imported int
	// Skipped counts rows whose product name already exists.
	Skipped int
}

// CSVImporter reads product rows with the header
// name,price,category,image,description (any order, description optional).
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

var requiredColumns = []string{"name", "price", "category", "image"}

// Run imports every row. It stops at the first invalid row, reporting its
// line; rows before it stay imported.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result
	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return res, fmt.Errorf("missing column %q", col)
		}
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)
		if blank(record) {
			continue
		}

		p, err := parseRow(record, index)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := i.productRepo.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("line %d: create product %q: %w", line, p.Name, err)
		}
		res.Imported++
	}
	return res, nil
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	name := pick(record, index, "name")
	priceStr := pick(record, index, "price")
	image := pick(record, index, "image")
	if name == "" || priceStr == "" || image == "" || pick(record, index, "category") == "" {
		return domain.Product{}, domain.ErrMissingFields
	}

	price, err := parsePrice(priceStr)
	if err != nil {
		return domain.Product{}, err
	}
	category, err := domain.ParseCategory(pick(record, index, "category"))
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		Name:        name,
		Price:       price,
		Category:    category,
		Image:       image,
		Description: pick(record, index, "description"),
	}, nil
}

var maxPrice = decimal.NewFromInt(math.MaxInt64)

// parsePrice accepts whole amounts, optionally written with a zero fraction
// ("4990.00") or grouping spaces ("4 990").
func parsePrice(raw string) (int64, error) {
	cleaned := strings.NewReplacer(" ", "", "\u00a0", "").Replace(raw)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: price %q is not a number", domain.ErrValidation, raw)
	}
	if !d.IsInteger() || d.IsNegative() || d.GreaterThan(maxPrice) {
		return 0, fmt.Errorf("%w: price %q must be a whole non-negative amount", domain.ErrValidation, raw)
	}
	return d.IntPart(), nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
