package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	db "rewardmax-server/src/db/sql"
	"rewardmax-server/src/models"
)

func GetOffers(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchant := r.URL.Query().Get("merchant")
		offers, err := db.ListActiveOffers(r.Context(), pool, merchant)
		if err != nil {
			log.Printf("ERROR: Failed to list offers: %v", err)
			http.Error(w, "failed to list offers", http.StatusInternalServerError)
			return
		}
		if offers == nil {
			offers = []models.Offer{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"offers": offers})
	}
}
