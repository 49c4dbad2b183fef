package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rewardmax-server/src/models"
)

// RemoteFeedProvider pulls offers from an HTTP JSON feed, e.g. a bank's
// published offer endpoint or an internal crawler's output.
type RemoteFeedProvider struct {
	source     string
	url        string
	httpClient *http.Client
}

func NewRemoteFeedProvider(source, url string) *RemoteFeedProvider {
	return &RemoteFeedProvider{
		source: source,
		url:    url,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (p *RemoteFeedProvider) Source() string {
	return p.source
}

func (p *RemoteFeedProvider) FetchOffers(ctx context.Context) ([]models.Offer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "RewardMax/1.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch offers feed %s: %w", p.source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("offers feed %s returned status %d", p.source, resp.StatusCode)
	}

	var offers []models.Offer
	if err := json.NewDecoder(resp.Body).Decode(&offers); err != nil {
		return nil, fmt.Errorf("decode offers feed %s: %w", p.source, err)
	}
	return normalize(offers, p.source), nil
}
