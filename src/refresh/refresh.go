package refresh

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"rewardmax-server/src/db"
	sql "rewardmax-server/src/db/sql"
	"rewardmax-server/src/providers"
)

// RefreshOffers runs one refresh pass: each provider's offers replace its
// previous batch, and every outcome lands in refresh_log. One provider
// failing never blocks the others.
func RefreshOffers(ctx context.Context, pool *pgxpool.Pool, offerProviders []providers.OfferProvider) {
	for _, provider := range offerProviders {
		source := provider.Source()
		offers, err := provider.FetchOffers(ctx)
		if err != nil {
			log.Printf("ERROR: Offer refresh from %s failed: %v", source, err)
			if logErr := sql.LogRefresh(ctx, pool, source, "failed", err.Error()); logErr != nil {
				log.Printf("ERROR: Failed to write refresh log for %s: %v", source, logErr)
			}
			continue
		}
		if err := sql.ReplaceOffers(ctx, pool, offers, source); err != nil {
			log.Printf("ERROR: Failed to store offers from %s: %v", source, err)
			if logErr := sql.LogRefresh(ctx, pool, source, "failed", err.Error()); logErr != nil {
				log.Printf("ERROR: Failed to write refresh log for %s: %v", source, logErr)
			}
			continue
		}
		db.ClearAllOfferCaches()
		log.Printf("INFO: Refreshed %d offers from %s", len(offers), source)
		if err := sql.LogRefresh(ctx, pool, source, "ok", fmt.Sprintf("offers=%d", len(offers))); err != nil {
			log.Printf("ERROR: Failed to write refresh log for %s: %v", source, err)
		}
	}
}

// Daemon refreshes offers on a fixed interval until ctx is cancelled. The
// engine has no lifecycle coupling to this loop; it reads whatever offer
// snapshot is current at request time.
func Daemon(ctx context.Context, pool *pgxpool.Pool, offerProviders []providers.OfferProvider, interval time.Duration) {
	RefreshOffers(ctx, pool, offerProviders)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			RefreshOffers(ctx, pool, offerProviders)
		}
	}
}
