package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewardmax-server/src/models"
)

func TestParseCardsPayload_JSON(t *testing.T) {
	payload := `[{
		"card_id": "hdfc-millennia",
		"bank": "HDFC",
		"network": "Visa",
		"base_reward_rate": 0.05,
		"monthly_reward_cap": 1200,
		"merchant_multipliers": {"Zomato": 2}
	}]`

	cards, err := ParseCardsPayload("cards.json", []byte(payload))

	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "hdfc-millennia", cards[0].CardID)
	assert.Equal(t, 1200.0, cards[0].MonthlyRewardCap)
}

func TestParseCardsPayload_CSV(t *testing.T) {
	payload := "card_id,bank,network,base_reward_rate,monthly_reward_cap,annual_fee\n" +
		"icici-amazon,ICICI,Visa,0.03,1000,500\n" +
		"axis-ace,Axis,Visa,0.02,,\n"

	cards, err := ParseCardsPayload("cards.csv", []byte(payload))

	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, 0.03, cards[0].BaseRewardRate)
	assert.Equal(t, 500.0, cards[0].AnnualFee)
	// Blank numeric cells default to zero.
	assert.Equal(t, 0.0, cards[1].MonthlyRewardCap)
}

func TestParseCardsPayload_CSVMissingColumn(t *testing.T) {
	payload := "card_id,bank,network\nx,B,Visa\n"

	_, err := ParseCardsPayload("cards.csv", []byte(payload))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_reward_rate")
}

func TestParseCardsPayload_RejectsInvalidCards(t *testing.T) {
	payload := `[{"card_id": "", "bank": "HDFC", "network": "Visa", "base_reward_rate": 0.01}]`

	_, err := ParseCardsPayload("cards.json", []byte(payload))

	assert.Error(t, err)
}

func TestValidateCard_NegativeMultiplier(t *testing.T) {
	err := ValidateCard(models.CardProfile{
		CardID:              "x",
		Bank:                "B",
		Network:             "Visa",
		BaseRewardRate:      0.01,
		CategoryMultipliers: map[string]float64{"dining": -1},
	})

	assert.Error(t, err)
}
