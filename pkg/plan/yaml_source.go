package plan

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk representation of a plan catalog.
type catalogFile struct {
	Plans []planEntry `yaml:"plans"`
}

type planEntry struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tier        string   `yaml:"tier"`
	Interval    string   `yaml:"interval"`
	Features    []string `yaml:"features"`
	Price       Money    `yaml:"price"`
}

// LoadFile builds a catalog from a YAML file. The file goes through the
// same validation as New, so a malformed catalog fails at load time.
//
// Expected shape:
//
//	plans:
//	  - id: premium_mensal
//	    name: Premium Mensal
//	    tier: premium
//	    interval: monthly
//	    features: [clients, vehicles, inventory]
//	    price: {amount: 8990, currency: BRL}
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("read %s: %w", path, err))
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("parse %s: %w", path, err))
	}

	plans := make([]Plan, 0, len(file.Plans))
	for _, e := range file.Plans {
		features := make([]Feature, 0, len(e.Features))
		for _, f := range e.Features {
			features = append(features, Feature(f))
		}
		plans = append(plans, Plan{
			ID:          ID(e.ID),
			Name:        e.Name,
			Description: e.Description,
			Tier:        Tier(e.Tier),
			Interval:    Interval(e.Interval),
			Features:    features,
			Price:       e.Price,
		})
	}

	return New(plans...)
}
