package util

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"rewardmax-server/src/models"
)

// ParseCardsPayload decodes an uploaded card file. JSON is an array of card
// profiles; CSV needs a header row and covers the flat fields only
// (multiplier maps are JSON-upload territory).
func ParseCardsPayload(filename string, raw []byte) ([]models.CardProfile, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return parseCardsCSV(raw)
	}

	var cards []models.CardProfile
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("invalid cards JSON: %w", err)
	}
	return cards, validateCards(cards)
}

func parseCardsCSV(raw []byte) ([]models.CardProfile, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid cards CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("cards CSV needs a header row and at least one card")
	}

	headers := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		headers[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"card_id", "bank", "network", "base_reward_rate"} {
		if _, ok := headers[required]; !ok {
			return nil, fmt.Errorf("cards CSV is missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := headers[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	number := func(row []string, name string) (float64, error) {
		s := field(row, name)
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}

	var cards []models.CardProfile
	for n, row := range records[1:] {
		card := models.CardProfile{
			CardID:  field(row, "card_id"),
			Bank:    field(row, "bank"),
			Network: field(row, "network"),
		}
		var err error
		if card.BaseRewardRate, err = number(row, "base_reward_rate"); err != nil {
			return nil, fmt.Errorf("cards CSV row %d: bad base_reward_rate: %w", n+2, err)
		}
		if card.MonthlyRewardCap, err = number(row, "monthly_reward_cap"); err != nil {
			return nil, fmt.Errorf("cards CSV row %d: bad monthly_reward_cap: %w", n+2, err)
		}
		if card.AnnualFee, err = number(row, "annual_fee"); err != nil {
			return nil, fmt.Errorf("cards CSV row %d: bad annual_fee: %w", n+2, err)
		}
		if card.MilestoneSpend, err = number(row, "milestone_spend"); err != nil {
			return nil, fmt.Errorf("cards CSV row %d: bad milestone_spend: %w", n+2, err)
		}
		if card.MilestoneBonus, err = number(row, "milestone_bonus"); err != nil {
			return nil, fmt.Errorf("cards CSV row %d: bad milestone_bonus: %w", n+2, err)
		}
		cards = append(cards, card)
	}
	return cards, validateCards(cards)
}

// ValidateCard rejects profiles the engine could not price: blank identity
// fields or negative rates/caps.
func ValidateCard(card models.CardProfile) error {
	if strings.TrimSpace(card.CardID) == "" {
		return fmt.Errorf("card_id is required")
	}
	if strings.TrimSpace(card.Bank) == "" {
		return fmt.Errorf("card %s: bank is required", card.CardID)
	}
	if strings.TrimSpace(card.Network) == "" {
		return fmt.Errorf("card %s: network is required", card.CardID)
	}
	if card.BaseRewardRate < 0 {
		return fmt.Errorf("card %s: base_reward_rate must be non-negative", card.CardID)
	}
	if card.MonthlyRewardCap < 0 || card.AnnualFee < 0 || card.MilestoneSpend < 0 || card.MilestoneBonus < 0 {
		return fmt.Errorf("card %s: amounts must be non-negative", card.CardID)
	}
	for _, multipliers := range []map[string]float64{card.CategoryMultipliers, card.ChannelMultipliers, card.MerchantMultipliers} {
		for key, m := range multipliers {
			if m < 0 {
				return fmt.Errorf("card %s: multiplier %q must be non-negative", card.CardID, key)
			}
		}
	}
	return nil
}

func validateCards(cards []models.CardProfile) error {
	for _, card := range cards {
		if err := ValidateCard(card); err != nil {
			return err
		}
	}
	return nil
}
