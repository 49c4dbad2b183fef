package insight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewardmax-server/src/models"
)

func TestMemoryCache_ExpiresEntries(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	val, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)

	require.NoError(t, cache.Set(ctx, "gone", "v", -time.Second))
	_, ok = cache.Get(ctx, "gone")
	assert.False(t, ok)
}

func TestScan_CollectsRedditItemsAndCaches(t *testing.T) {
	calls := 0
	reddit := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"data":{"children":[
			{"data":{"title":"Best card for Zomato?","selftext":"long discussion","permalink":"/r/CreditCardsIndia/1"}}
		]}}`))
	}))
	defer reddit.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	scanner := NewSocialScanner(NewMemoryCache())
	scanner.redditBaseURL = reddit.URL
	scanner.technofinoBaseURL = down.URL

	result := scanner.Scan(context.Background(), "Zomato")

	require.Len(t, result.Items, 1)
	assert.Equal(t, "reddit", result.Items[0].Source)
	assert.Equal(t, "Best card for Zomato?", result.Items[0].Title)
	assert.Contains(t, result.Summary, "1 community mentions")
	require.Len(t, result.Sources, 1)

	// Second scan for the same merchant is served from cache.
	scanner.Scan(context.Background(), "zomato")
	assert.Equal(t, 1, calls)
}

func TestScan_UpstreamFailuresDegradeToEmptyResult(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	scanner := NewSocialScanner(NewMemoryCache())
	scanner.redditBaseURL = down.URL
	scanner.technofinoBaseURL = down.URL

	result := scanner.Scan(context.Background(), "dmart")

	assert.Empty(t, result.Items)
	assert.Empty(t, result.Sources)
	assert.Contains(t, result.Summary, "0 community mentions")
}

func TestScanTechnoFino_ParsesResultRows(t *testing.T) {
	page := `<html><body>
		<div class="contentRow-title"><a href="/threads/zomato-offers.123/">Zomato  offers  thread</a></div>
		<div class="contentRow-title"><a href="https://example.com/abs">Absolute link</a></div>
	</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	scanner := NewSocialScanner(NewMemoryCache())
	scanner.technofinoBaseURL = server.URL

	items := scanner.scanTechnoFino(context.Background(), "zomato")

	require.Len(t, items, 2)
	assert.Equal(t, "Zomato offers thread", items[0].Title)
	assert.True(t, strings.HasPrefix(items[0].URL, server.URL))
	assert.Equal(t, "https://example.com/abs", items[1].URL)
}

func TestRefine_FallsBackToDeterministicSummary(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer down.Close()

	refiner := NewRefiner()
	refiner.ollamaURL = down.URL
	refiner.openAIKey = ""

	text := refiner.Refine(context.Background(), RefineContext{
		Merchant: "zomato",
		Amount:   1000,
		Recommendations: []models.Recommendation{
			{CardID: "hdfc-millennia", Savings: 50, Reason: "merchant multiplier 5x"},
			{CardID: "axis-ace", Savings: 20, Reason: "base rate 2%"},
		},
	})

	assert.Contains(t, text, "1. Use hdfc-millennia first")
	assert.Contains(t, text, "2. Use axis-ace first")
	assert.Contains(t, text, "local deterministic summary")
}

func TestRefine_UsesOllamaWhenAvailable(t *testing.T) {
	ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		w.Write([]byte(`{"response": "Use the Millennia card first.\n"}`))
	}))
	defer ollama.Close()

	refiner := NewRefiner()
	refiner.ollamaURL = ollama.URL

	text := refiner.Refine(context.Background(), RefineContext{Merchant: "zomato", Amount: 500})

	assert.Equal(t, "Use the Millennia card first.", text)
}
