package providers

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"rewardmax-server/src/models"
)

// OfferProvider is the pluggable source of card offers. Implementations
// return normalized Offer records; how they obtain them (file, feed, scrape)
// is their own business and invisible to the engine.
type OfferProvider interface {
	Source() string
	FetchOffers(ctx context.Context) ([]models.Offer, error)
}

// normalize stamps the provider's source on each offer, lower-cases match
// keys, and backfills a uuid for feeds that omit offer ids.
func normalize(offers []models.Offer, source string) []models.Offer {
	for i := range offers {
		offers[i].Source = source
		offers[i].Active = true
		offers[i].Merchant = strings.ToLower(strings.TrimSpace(offers[i].Merchant))
		offers[i].Channel = strings.ToLower(strings.TrimSpace(offers[i].Channel))
		if offers[i].Channel == "" {
			offers[i].Channel = "all"
		}
		if offers[i].OfferID == "" {
			offers[i].OfferID = source + "-" + uuid.NewString()
		}
	}
	return offers
}
