package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewardmax-server/src/models"
)

func TestJSONFileProvider_NormalizesOffers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "offers.json")
	payload := `[
		{"offer_id": "o1", "card_id": "hdfc-millennia", "merchant": "Zomato", "channel": "Zomato", "discount_type": "percent", "discount_value": 0.1, "min_spend": 100, "max_discount": 250},
		{"card_id": "axis-ace", "merchant": "swiggy", "discount_type": "flat", "discount_value": 50}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	p := NewJSONFileProvider("bank", path)
	offers, err := p.FetchOffers(context.Background())

	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "zomato", offers[0].Merchant)
	assert.Equal(t, "bank", offers[0].Source)
	assert.True(t, offers[0].Active)
	// Missing offer_id and channel get backfilled.
	assert.NotEmpty(t, offers[1].OfferID)
	assert.Equal(t, "all", offers[1].Channel)
}

func TestJSONFileProvider_MissingFile(t *testing.T) {
	p := NewJSONFileProvider("bank", "/nonexistent/offers.json")

	_, err := p.FetchOffers(context.Background())

	assert.Error(t, err)
}

func TestRemoteFeedProvider_FetchesAndNormalizes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Offer{
			{OfferID: "r1", CardID: "icici-amazon", Merchant: "Amazon", Channel: "web", DiscountType: "percent", DiscountValue: 0.05, MaxDiscount: 300},
		})
	}))
	defer server.Close()

	p := NewRemoteFeedProvider("crawler", server.URL)
	offers, err := p.FetchOffers(context.Background())

	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "amazon", offers[0].Merchant)
	assert.Equal(t, "crawler", offers[0].Source)
}

func TestRemoteFeedProvider_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	p := NewRemoteFeedProvider("crawler", server.URL)
	_, err := p.FetchOffers(context.Background())

	assert.Error(t, err)
}
