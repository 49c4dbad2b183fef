package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	db "rewardmax-server/src/db/sql"
	"rewardmax-server/src/engine"
	"rewardmax-server/src/models"
)

const lifestyleReportStateKey = "lifestyle_report"

func SetupStatus(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hasCards, err := db.HasCards(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to check setup status: %v", err)
			http.Error(w, "failed to check setup status", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"needs_setup": !hasCards})
	}
}

// RunLifestyleReport analyses recorded expenses, suggests the wallet card
// whose multipliers best match the dominant spend category, and stores the
// snapshot so GetLifestyleReport can serve it without recomputing.
func RunLifestyleReport(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SelectedCard string `json:"selected_card"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		expenses, err := db.ListExpenses(r.Context(), pool, 1000)
		if err != nil {
			log.Printf("ERROR: Failed to load expenses for lifestyle report: %v", err)
			http.Error(w, "failed to load expenses", http.StatusInternalServerError)
			return
		}
		cards, err := db.ListCards(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to load cards for lifestyle report: %v", err)
			http.Error(w, "failed to load cards", http.StatusInternalServerError)
			return
		}

		report := buildLifestyleReport(expenses, cards, req.SelectedCard)

		raw, err := json.Marshal(report)
		if err != nil {
			log.Printf("ERROR: Failed to marshal lifestyle report: %v", err)
			http.Error(w, "failed to build report", http.StatusInternalServerError)
			return
		}
		if err := db.SetState(r.Context(), pool, lifestyleReportStateKey, string(raw)); err != nil {
			log.Printf("ERROR: Failed to persist lifestyle report: %v", err)
			http.Error(w, "failed to persist report", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Lifestyle report generated over %d expenses", len(expenses))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"report": report})
	}
}

// GetLifestyleReport serves the last stored snapshot; an empty report if
// none has been run yet.
func GetLifestyleReport(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := db.GetState(r.Context(), pool, lifestyleReportStateKey)
		if err != nil {
			log.Printf("ERROR: Failed to load lifestyle report: %v", err)
			http.Error(w, "failed to load report", http.StatusInternalServerError)
			return
		}
		var report models.LifestyleReport
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &report); err != nil {
				log.Printf("ERROR: Corrupt lifestyle report snapshot: %v", err)
				http.Error(w, "corrupt report snapshot", http.StatusInternalServerError)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"report": report})
	}
}

func buildLifestyleReport(expenses []models.Expense, cards []models.CardProfile, selectedCard string) models.LifestyleReport {
	byCategory := make(map[string]float64)
	months := make(map[string]struct{})
	total := 0.0
	for _, e := range expenses {
		category := strings.ToLower(strings.TrimSpace(e.Category))
		if category == "" {
			category = engine.DefaultCategory
		}
		byCategory[category] += e.Amount
		months[e.SpentAt.UTC().Format("2006-01")] = struct{}{}
		total += e.Amount
	}

	topCategory := ""
	topSpend := 0.0
	for category, spend := range byCategory {
		if spend > topSpend || (spend == topSpend && category < topCategory) {
			topCategory, topSpend = category, spend
		}
	}

	recommended := ""
	bestRate := -1.0
	for _, card := range cards {
		rate, _, _ := engine.ResolveRate(card, models.TransactionContext{
			Merchant: "-",
			Category: topCategory,
			Amount:   topSpend,
		})
		if rate > bestRate || (rate == bestRate && card.CardID < recommended) {
			bestRate, recommended = rate, card.CardID
		}
	}

	avgMonthly := 0.0
	if len(months) > 0 {
		avgMonthly = engine.Round2(total / float64(len(months)))
	}

	return models.LifestyleReport{
		ExpensePattern: models.ExpensePattern{
			TotalSpend:      engine.Round2(total),
			ByCategory:      byCategory,
			TopCategory:     topCategory,
			ExpenseCount:    len(expenses),
			MonthsObserved:  len(months),
			AvgMonthlySpend: avgMonthly,
		},
		RecommendedCard:   recommended,
		SelectedCardGuide: selectedCardGuide(selectedCard, topCategory, recommended),
		GeneratedAt:       time.Now().UTC(),
	}
}

func selectedCardGuide(selectedCard, topCategory, recommended string) string {
	selectedCard = strings.TrimSpace(selectedCard)
	if selectedCard == "" {
		return "No card selected; pick one to get a usage guide."
	}
	guide := fmt.Sprintf("You selected %q. Your heaviest spend category is %q", selectedCard, topCategory)
	if recommended != "" {
		guide += fmt.Sprintf("; %s earns the best rate there", recommended)
	}
	return guide + ". Route that category through the best-rate card and keep an eye on its monthly reward cap."
}
