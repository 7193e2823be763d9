package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	"github.com/shopspring/decimal"
)

type ComboWriter interface {
	UpsertCombo(ctx context.Context, c domain.Combo) error
}

// CSVImporter reads combo CSV files and inserts/updates combos with their
// ingredient lines.
//
// A row with a combo_id starts a combo. Rows with an empty combo_id add
// further ingredient lines to the combo above them.
type CSVImporter struct {
	reader *csv.Reader
	combos ComboWriter
}

func NewCSVImporter(r io.Reader, combos ComboWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader: csvr,
		combos: combos,
	}
}

// Required columns.
var requiredHeaders = []string{"combo_id", "category", "name", "base_price", "ingredient_id"}

type csvRow struct {
	line      int
	ComboID   string
	Category  string
	Name      string
	Tagline   string
	Desc      string
	Image     string
	BasePrice string
	Nutrients string
	Badge     string
	Lines     []domain.Ingredient
}

// Run parses CSV rows and upserts combos. It returns how many combos were written.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, h := range requiredHeaders {
		if _, ok := index[h]; !ok {
			return 0, fmt.Errorf("missing column %q", h)
		}
	}

	var (
		current  *csvRow
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		comboID := pick(record, index, "combo_id")
		ingredient, hasIngredient, err := parseIngredient(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}

		if comboID != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = parseCombo(record, index, line)
		} else if current == nil {
			if hasIngredient {
				return imported, fmt.Errorf("line %d: ingredient row before any combo", line)
			}
			continue
		}

		if hasIngredient {
			current.Lines = append(current.Lines, ingredient)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.ComboID == "" || row.Category == "" || row.Name == "" || row.BasePrice == "" {
		return fmt.Errorf("line %d: invalid combo row (missing required fields) for %q", row.line, row.ComboID)
	}
	price, err := parseMoney(row.BasePrice)
	if err != nil {
		return fmt.Errorf("line %d: base_price for %q: %w", row.line, row.ComboID, err)
	}
	nutrients := 0
	if row.Nutrients != "" {
		nutrients, err = strconv.Atoi(row.Nutrients)
		if err != nil || nutrients < 0 {
			return fmt.Errorf("line %d: invalid nutrients %q for %q", row.line, row.Nutrients, row.ComboID)
		}
	}
	seen := make(map[string]struct{}, len(row.Lines))
	for _, in := range row.Lines {
		if _, dup := seen[in.ID]; dup {
			return fmt.Errorf("combo %q lists ingredient %q twice", row.ComboID, in.ID)
		}
		seen[in.ID] = struct{}{}
	}

	c := domain.Combo{
		ID:             row.ComboID,
		CategoryID:     row.Category,
		Name:           row.Name,
		Tagline:        row.Tagline,
		Description:    row.Desc,
		Image:          row.Image,
		BasePrice:      price,
		NutrientsCount: nutrients,
		Badge:          row.Badge,
		Ingredients:    row.Lines,
	}
	if err := i.combos.UpsertCombo(ctx, c); err != nil {
		return fmt.Errorf("upsert combo %q: %w", row.ComboID, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func parseCombo(record []string, index map[string]int, line int) *csvRow {
	return &csvRow{
		line:      line,
		ComboID:   pick(record, index, "combo_id"),
		Category:  pick(record, index, "category"),
		Name:      pick(record, index, "name"),
		Tagline:   pick(record, index, "tagline"),
		Desc:      pick(record, index, "description"),
		Image:     pick(record, index, "image"),
		BasePrice: pick(record, index, "base_price"),
		Nutrients: pick(record, index, "nutrients"),
		Badge:     pick(record, index, "badge"),
	}
}

func parseIngredient(record []string, index map[string]int) (domain.Ingredient, bool, error) {
	id := pick(record, index, "ingredient_id")
	if id == "" {
		return domain.Ingredient{}, false, nil
	}
	in := domain.Ingredient{
		ID:         id,
		Name:       pick(record, index, "ingredient_name"),
		UnitAmount: pick(record, index, "unit_amount"),
		Unit:       pick(record, index, "unit"),
		Image:      pick(record, index, "ingredient_image"),
		Benefit:    pick(record, index, "benefit"),
	}
	if in.Name == "" {
		in.Name = id
	}
	price, err := parseMoney(pick(record, index, "unit_price"))
	if err != nil {
		return in, false, fmt.Errorf("unit_price for %q: %w", id, err)
	}
	in.UnitPrice = price

	in.DefaultQuantity = 1
	if q := pick(record, index, "quantity"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			return in, false, fmt.Errorf("invalid quantity %q for %q", q, id)
		}
		in.DefaultQuantity = n
	}
	return in, true, nil
}

func parseMoney(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %s", v)
	}
	return d, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
