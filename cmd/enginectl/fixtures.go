package main

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/watermelon/decision-engine/internal/application/dto"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures are the canned suppliers, buyers and products a replay draws from.
type Fixtures struct {
	Suppliers []dto.OnboardSupplierRequest `yaml:"suppliers"`
	Buyers    []BuyerFixture               `yaml:"buyers"`
	Products  []dto.ForecastDemandRequest  `yaml:"products"`
}

// BuyerFixture describes a buyer relative to the replay's start time.
type BuyerFixture struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	LastOrderDaysAgo int     `yaml:"last_order_days_ago"`
	OrderFrequency   int     `yaml:"order_frequency"`
	BasketSize       float64 `yaml:"basket_size"`
}

// Request builds the churn request as of now.
func (b BuyerFixture) Request(now time.Time) dto.AnalyzeChurnRequest {
	return dto.AnalyzeChurnRequest{
		ID:             b.ID,
		Name:           b.Name,
		LastOrderDate:  now.Add(-time.Duration(b.LastOrderDaysAgo) * 24 * time.Hour).Format(time.RFC3339),
		OrderFrequency: b.OrderFrequency,
		BasketSize:     b.BasketSize,
	}
}

// ParseFixtures decodes fixtures from YAML and checks none of the lists is empty.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if len(f.Suppliers) == 0 || len(f.Buyers) == 0 || len(f.Products) == 0 {
		return nil, fmt.Errorf("fixtures need at least one supplier, buyer and product")
	}
	return &f, nil
}
