package menu

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JawwadIrshad/Resturant-App/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Items []seedItem `yaml:"items"`
}

type seedItem struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Category    string   `yaml:"category"`
	Image       string   `yaml:"image"`
	Stock       int      `yaml:"stock"`
	Featured    bool     `yaml:"featured"`
	PrepTime    int      `yaml:"prep_time"`
	Calories    int      `yaml:"calories"`
	Allergens   []string `yaml:"allergens"`
}

// LoadFile reads a YAML menu seed.
func LoadFile(path string) ([]models.MenuItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse menu file: %w", err)
	}

	items := make([]models.MenuItem, 0, len(f.Items))
	seen := make(map[string]bool)
	for i, s := range f.Items {
		price, err := decimal.NewFromString(strings.TrimSpace(s.Price))
		if err != nil {
			return nil, fmt.Errorf("menu item %d (%s): invalid price %q", i+1, s.ID, s.Price)
		}
		it := models.MenuItem{
			ID:          strings.TrimSpace(s.ID),
			Name:        strings.TrimSpace(s.Name),
			Description: strings.TrimSpace(s.Description),
			Price:       price,
			Category:    models.MenuCategory(strings.ToLower(strings.TrimSpace(s.Category))),
			Image:       s.Image,
			Stock:       s.Stock,
			IsFeatured:  s.Featured,
			PrepTime:    s.PrepTime,
			Calories:    s.Calories,
			Allergens:   s.Allergens,
		}
		if err := Validate(it); err != nil {
			return nil, fmt.Errorf("menu item %d: %w", i+1, err)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("menu item %d: duplicate id %q", i+1, it.ID)
		}
		seen[it.ID] = true
		items = append(items, it)
	}
	return items, nil
}

// Validate checks the fields every orderable item must carry.
func Validate(it models.MenuItem) error {
	switch {
	case it.ID == "":
		return fmt.Errorf("id is required")
	case it.Name == "":
		return fmt.Errorf("%s: name is required", it.ID)
	case !it.Price.IsPositive():
		return fmt.Errorf("%s: price must be positive", it.ID)
	case !it.Category.Valid():
		return fmt.Errorf("%s: unknown category %q", it.ID, it.Category)
	case it.Stock < 0:
		return fmt.Errorf("%s: stock cannot be negative", it.ID)
	case it.PrepTime < 0 || it.Calories < 0:
		return fmt.Errorf("%s: prep time and calories cannot be negative", it.ID)
	}
	return nil
}

// RowError describes a spreadsheet row that was skipped during import.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ReadXLSX parses the first sheet of a workbook with the columns
// id, name, description, price, category, stock, prep_time, calories,
// allergens (comma separated), featured. A header row is skipped when its
// first cell says "id".
func ReadXLSX(r io.Reader) ([]models.MenuItem, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}

	var items []models.MenuItem
	var rowErrs []RowError
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "id") {
			continue
		}
		it, err := parseRow(row)
		if err == nil {
			err = Validate(it)
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Reason: err.Error()})
			continue
		}
		items = append(items, it)
	}
	return items, rowErrs, nil
}

func parseRow(row []string) (models.MenuItem, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	atoi := func(name string, i int) (int, error) {
		if cell(i) == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(cell(i))
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q", name, cell(i))
		}
		return n, nil
	}

	price, err := decimal.NewFromString(cell(3))
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("invalid price %q", cell(3))
	}
	stock, err := atoi("stock", 5)
	if err != nil {
		return models.MenuItem{}, err
	}
	prep, err := atoi("prep_time", 6)
	if err != nil {
		return models.MenuItem{}, err
	}
	cal, err := atoi("calories", 7)
	if err != nil {
		return models.MenuItem{}, err
	}

	var allergens []string
	for _, a := range strings.Split(cell(8), ",") {
		if a = strings.TrimSpace(a); a != "" {
			allergens = append(allergens, strings.ToLower(a))
		}
	}

	featured := false
	switch strings.ToLower(cell(9)) {
	case "1", "true", "yes", "y":
		featured = true
	}

	return models.MenuItem{
		ID:          cell(0),
		Name:        cell(1),
		Description: cell(2),
		Price:       price,
		Category:    models.MenuCategory(strings.ToLower(cell(4))),
		Stock:       stock,
		PrepTime:    prep,
		Calories:    cal,
		Allergens:   allergens,
		IsFeatured:  featured,
	}, nil
}
