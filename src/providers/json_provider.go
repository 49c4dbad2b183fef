package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"rewardmax-server/src/models"
)

// JSONFileProvider loads offers from a local JSON file, typically a manually
// curated bank or social offer dump.
type JSONFileProvider struct {
	source string
	path   string
}

func NewJSONFileProvider(source, path string) *JSONFileProvider {
	return &JSONFileProvider{source: source, path: path}
}

func (p *JSONFileProvider) Source() string {
	return p.source
}

func (p *JSONFileProvider) FetchOffers(ctx context.Context) ([]models.Offer, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read offers file %s: %w", p.path, err)
	}
	var offers []models.Offer
	if err := json.Unmarshal(raw, &offers); err != nil {
		return nil, fmt.Errorf("parse offers file %s: %w", p.path, err)
	}
	return normalize(offers, p.source), nil
}
