package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	db "rewardmax-server/src/db/sql"
	"rewardmax-server/src/engine"
	"rewardmax-server/src/models"
)

type expenseRequest struct {
	CardID   string  `json:"card_id"`
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Channel  string  `json:"channel"`
}

// RecordExpense is the only mutating entry point: it charges an expense to a
// card and atomically reserves its reward against the monthly cap. Accepts
// JSON or a plain HTML form post.
func RecordExpense(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeExpense(r)
		if err != nil {
			log.Printf("ERROR: Failed to decode expense request: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		usage, err := e.RecordExpense(r.Context(), req.CardID, models.TransactionContext{
			Merchant: req.Merchant,
			Amount:   req.Amount,
			Category: req.Category,
			Channel:  req.Channel,
		})
		if err != nil {
			writeEngineError(w, "record expense", err)
			return
		}

		log.Printf("INFO: Recorded expense of %.2f on %s at %s", req.Amount, req.CardID, req.Merchant)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(usage)
	}
}

func decodeExpense(r *http.Request) (expenseRequest, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req expenseRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}

	if err := r.ParseForm(); err != nil {
		return expenseRequest{}, err
	}
	amount, _ := strconv.ParseFloat(r.PostFormValue("amount"), 64)
	return expenseRequest{
		CardID:   strings.TrimSpace(r.PostFormValue("card_id")),
		Merchant: strings.TrimSpace(r.PostFormValue("merchant")),
		Amount:   amount,
		Category: r.PostFormValue("category"),
		Channel:  r.PostFormValue("channel"),
	}, nil
}

func GetExpenses(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		expenses, err := db.ListExpenses(r.Context(), pool, limit)
		if err != nil {
			log.Printf("ERROR: Failed to list expenses: %v", err)
			http.Error(w, "failed to list expenses", http.StatusInternalServerError)
			return
		}
		if expenses == nil {
			expenses = []models.Expense{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"expenses": expenses})
	}
}
