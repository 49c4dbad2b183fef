package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "rewardmax-server/src/db"
	db "rewardmax-server/src/db/sql"
	"rewardmax-server/src/models"
	"rewardmax-server/src/util"
)

const maxUploadBytes = 4 << 20

func GetCards(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := db.ListCards(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to list cards: %v", err)
			http.Error(w, "failed to list cards", http.StatusInternalServerError)
			return
		}
		if cards == nil {
			cards = []models.CardProfile{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"cards": cards})
	}
}

func CreateCard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var card models.CardProfile
		if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
			log.Printf("ERROR: Failed to decode card body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := util.ValidateCard(card); err != nil {
			log.Printf("ERROR: Rejected card payload: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := db.UpsertCards(r.Context(), pool, []models.CardProfile{card}); err != nil {
			log.Printf("ERROR: Failed to upsert card %s: %v", card.CardID, err)
			http.Error(w, "failed to save card", http.StatusInternalServerError)
			return
		}
		cache.ClearCardsCache()
		log.Printf("INFO: Saved card %s (%s %s)", card.CardID, card.Bank, card.Network)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	}
}

func DeleteCard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID := chi.URLParam(r, "card_id")
		if err := db.DeleteCard(r.Context(), pool, cardID); err != nil {
			log.Printf("ERROR: Failed to delete card %s: %v", cardID, err)
			http.Error(w, "card not found", http.StatusNotFound)
			return
		}
		cache.ClearCardsCache()
		log.Printf("INFO: Deleted card %s", cardID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	}
}

// UploadCards accepts a multipart upload of the whole wallet as a .json or
// .csv file and upserts every card in it.
func UploadCards(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			log.Printf("ERROR: Failed to parse cards upload: %v", err)
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("cards_file")
		if err != nil {
			http.Error(w, "cards_file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			log.Printf("ERROR: Failed to read cards upload: %v", err)
			http.Error(w, "failed to read upload", http.StatusBadRequest)
			return
		}
		cards, err := util.ParseCardsPayload(header.Filename, raw)
		if err != nil {
			log.Printf("ERROR: Rejected cards upload %s: %v", header.Filename, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := db.UpsertCards(r.Context(), pool, cards); err != nil {
			log.Printf("ERROR: Failed to upsert %d uploaded cards: %v", len(cards), err)
			http.Error(w, "failed to save cards", http.StatusInternalServerError)
			return
		}
		cache.ClearCardsCache()
		log.Printf("INFO: Uploaded %d cards from %s", len(cards), header.Filename)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "count": len(cards)})
	}
}
