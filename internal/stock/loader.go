package stock

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Items []seedItem `yaml:"items"`
}

type seedItem struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Category      string  `yaml:"category"`
	Quantity      float64 `yaml:"quantity"`
	Unit          string  `yaml:"unit"`
	MinThreshold  float64 `yaml:"min_threshold"`
	MaxThreshold  float64 `yaml:"max_threshold"`
	LastRestocked string  `yaml:"last_restocked"`
	Supplier      string  `yaml:"supplier"`
	CostPerUnit   string  `yaml:"cost_per_unit"`
}

// LoadFile reads a YAML ingredient seed.
func LoadFile(path string) ([]models.StockItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stock file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse stock file: %w", err)
	}

	items := make([]models.StockItem, 0, len(f.Items))
	seen := make(map[string]bool)
	for i, s := range f.Items {
		cost := decimal.Zero
		if strings.TrimSpace(s.CostPerUnit) != "" {
			if cost, err = decimal.NewFromString(strings.TrimSpace(s.CostPerUnit)); err != nil {
				return nil, fmt.Errorf("stock item %d (%s): invalid cost %q", i+1, s.ID, s.CostPerUnit)
			}
		}
		var restocked time.Time
		if s.LastRestocked != "" {
			if restocked, err = time.Parse("2006-01-02", s.LastRestocked); err != nil {
				return nil, fmt.Errorf("stock item %d (%s): invalid date %q", i+1, s.ID, s.LastRestocked)
			}
		}

		it := models.StockItem{
			ID:            strings.TrimSpace(s.ID),
			Name:          strings.TrimSpace(s.Name),
			Category:      strings.TrimSpace(s.Category),
			Quantity:      s.Quantity,
			Unit:          strings.TrimSpace(s.Unit),
			MinThreshold:  s.MinThreshold,
			MaxThreshold:  s.MaxThreshold,
			LastRestocked: restocked,
			Supplier:      strings.TrimSpace(s.Supplier),
			CostPerUnit:   cost,
		}
		if it.ID == "" {
			return nil, fmt.Errorf("stock item %d: id is required", i+1)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("stock item %d: duplicate id %q", i+1, it.ID)
		}
		if err := validate(it); err != nil {
			return nil, fmt.Errorf("stock item %d (%s): %w", i+1, it.ID, err)
		}
		seen[it.ID] = true
		items = append(items, it)
	}
	return items, nil
}
