// Package catalog holds the static deduction question catalog: one
// ordered question list per employment status. The default catalog is
// embedded; a YAML file on disk can override it.
package catalog

import (
	_ "embed"
	"fmt"

	"steuer-chat/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// catalogFile mirrors the YAML structure on disk.
type catalogFile struct {
	Flows map[string][]catalogQuestion `yaml:"flows"`
}

type catalogQuestion struct {
	ID        string  `yaml:"id"`
	Prompt    string  `yaml:"prompt"`
	Category  string  `yaml:"category"`
	MaxAmount float64 `yaml:"max_amount"`
}

// Catalog is the parsed, validated question catalog. Read-only after
// construction.
type Catalog struct {
	flows map[models.EmploymentStatus][]models.DeductionQuestion
}

// Parse builds a Catalog from YAML data and validates it: every status
// must map to a known employment status, question ids must be unique
// within a flow, and caps must be positive.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing catalog: %w", err)
	}
	if len(file.Flows) == 0 {
		return nil, fmt.Errorf("catalog defines no flows")
	}

	flows := make(map[models.EmploymentStatus][]models.DeductionQuestion, len(file.Flows))
	for name, questions := range file.Flows {
		status, ok := models.ParseEmploymentStatus(name)
		if ok {
			ok = string(status) == name
		}
		if !ok {
			return nil, fmt.Errorf("catalog flow '%s' is not a known employment status", name)
		}
		if len(questions) == 0 {
			return nil, fmt.Errorf("catalog flow '%s' has no questions", name)
		}

		seen := make(map[string]bool, len(questions))
		flow := make([]models.DeductionQuestion, 0, len(questions))
		for _, q := range questions {
			if q.ID == "" || q.Prompt == "" {
				return nil, fmt.Errorf("catalog flow '%s' has a question without id or prompt", name)
			}
			if seen[q.ID] {
				return nil, fmt.Errorf("catalog flow '%s' repeats question id '%s'", name, q.ID)
			}
			seen[q.ID] = true
			if q.MaxAmount <= 0 {
				return nil, fmt.Errorf("question '%s' in flow '%s' needs a positive max_amount", q.ID, name)
			}
			flow = append(flow, models.DeductionQuestion{
				ID:        q.ID,
				Prompt:    q.Prompt,
				Category:  q.Category,
				MaxAmount: decimal.NewFromFloat(q.MaxAmount),
			})
		}
		flows[status] = flow
	}

	return &Catalog{flows: flows}, nil
}

// Default returns the embedded catalog. The embedded file is part of the
// build, so a parse failure here is a programming error.
func Default() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Questions returns the ordered question list for a status. The returned
// slice must not be modified.
func (c *Catalog) Questions(status models.EmploymentStatus) ([]models.DeductionQuestion, bool) {
	flow, ok := c.flows[status]
	return flow, ok
}

// Statuses returns the statuses the catalog covers, in the canonical
// presentation order.
func (c *Catalog) Statuses() []models.EmploymentStatus {
	var statuses []models.EmploymentStatus
	for _, s := range models.AllStatuses() {
		if _, ok := c.flows[s]; ok {
			statuses = append(statuses, s)
		}
	}
	return statuses
}
