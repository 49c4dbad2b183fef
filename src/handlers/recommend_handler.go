package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"rewardmax-server/src/engine"
	"rewardmax-server/src/insight"
	"rewardmax-server/src/models"
)

// InsightScanner collects community chatter about a merchant.
type InsightScanner interface {
	Scan(ctx context.Context, merchant string) insight.Result
}

// ResponseRefiner turns a ranked result into a short natural-language answer.
type ResponseRefiner interface {
	Refine(ctx context.Context, rc insight.RefineContext) string
}

type recommendRequest struct {
	Merchant    string  `json:"merchant"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Channel     string  `json:"channel"`
	MerchantURL string  `json:"merchant_url"`
	Split       bool    `json:"split"`
}

type insightsPayload struct {
	Summary string           `json:"summary"`
	Sources []insight.Source `json:"sources"`
	Items   []insight.Item   `json:"items"`
}

type recommendResponse struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Allocation      models.Allocation       `json:"allocation,omitempty"`
	Insights        insightsPayload         `json:"insights"`
	RefinedResponse string                  `json:"refined_response"`
}

// Recommend ranks the wallet for a transaction, optionally splits the
// amount, and decorates the result with community insight and an LLM-refined
// summary. Nothing here mutates usage counters.
func Recommend(e *engine.Engine, scanner InsightScanner, refiner ResponseRefiner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recommendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode recommend request: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		txn := models.TransactionContext{
			Merchant:    req.Merchant,
			Amount:      req.Amount,
			Category:    req.Category,
			Channel:     req.Channel,
			MerchantURL: req.MerchantURL,
		}
		result, err := e.Recommend(r.Context(), txn, req.Split)
		if err != nil {
			writeEngineError(w, "recommend", err)
			return
		}

		social := scanner.Scan(r.Context(), req.Merchant)
		refined := refiner.Refine(r.Context(), insight.RefineContext{
			Merchant:        req.Merchant,
			Amount:          req.Amount,
			Channel:         req.Channel,
			Split:           req.Split,
			Recommendations: result.Recommendations,
			CommunityItems:  social.Items,
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(recommendResponse{
			Recommendations: result.Recommendations,
			Allocation:      result.Allocation,
			Insights: insightsPayload{
				Summary: social.Summary,
				Sources: social.Sources,
				Items:   social.Items,
			},
			RefinedResponse: refined,
		})
	}
}

func writeEngineError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, engine.ErrCardNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, engine.ErrNoCards):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "no cards in wallet, upload cards first",
			"code":  "NO_CARDS",
		})
	default:
		log.Printf("ERROR: %s failed: %v", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
