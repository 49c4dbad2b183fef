package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	db "rewardmax-server/src/db/sql"
	"rewardmax-server/src/models"
	"rewardmax-server/src/providers"
	"rewardmax-server/src/refresh"
)

// TriggerRefresh runs one synchronous offer refresh pass across all
// configured providers.
func TriggerRefresh(pool *pgxpool.Pool, offerProviders []providers.OfferProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh.RefreshOffers(r.Context(), pool, offerProviders)
		log.Printf("INFO: Manual offer refresh completed across %d providers", len(offerProviders))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "providers": len(offerProviders)})
	}
}

func GetRefreshLog(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		entries, err := db.ListRefreshLog(r.Context(), pool, limit)
		if err != nil {
			log.Printf("ERROR: Failed to list refresh log: %v", err)
			http.Error(w, "failed to list refresh log", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []models.RefreshLogEntry{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"log": entries})
	}
}
