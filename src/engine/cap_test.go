package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rewardmax-server/src/models"
)

func TestClipToCap_UncappedPassesThrough(t *testing.T) {
	card := models.CardProfile{MonthlyRewardCap: 0}

	usable, reward := ClipToCap(card, models.MonthlyUsage{RewardEarned: 9999}, 2000, 0.1)

	assert.Equal(t, 2000.0, usable)
	assert.InDelta(t, 200.0, reward, 1e-9)
}

func TestClipToCap_ClipsToRemainingBudget(t *testing.T) {
	card := models.CardProfile{MonthlyRewardCap: 1000}
	usage := models.MonthlyUsage{RewardEarned: 950}

	usable, reward := ClipToCap(card, usage, 2000, 0.1)

	assert.InDelta(t, 50.0, reward, 1e-9)
	assert.InDelta(t, 500.0, usable, 1e-9)
}

func TestClipToCap_WithinBudgetUnchanged(t *testing.T) {
	card := models.CardProfile{MonthlyRewardCap: 1000}

	usable, reward := ClipToCap(card, models.MonthlyUsage{RewardEarned: 100}, 500, 0.05)

	assert.Equal(t, 500.0, usable)
	assert.InDelta(t, 25.0, reward, 1e-9)
}

func TestClipToCap_ExhaustedCapEarnsNothing(t *testing.T) {
	card := models.CardProfile{MonthlyRewardCap: 500}

	usable, reward := ClipToCap(card, models.MonthlyUsage{RewardEarned: 500}, 1000, 0.02)

	assert.Equal(t, 0.0, usable)
	assert.Equal(t, 0.0, reward)
}

func TestClipToCap_OverEarnedTreatedAsZeroRemaining(t *testing.T) {
	card := models.CardProfile{MonthlyRewardCap: 500}

	usable, reward := ClipToCap(card, models.MonthlyUsage{RewardEarned: 600}, 1000, 0.02)

	assert.Equal(t, 0.0, usable)
	assert.Equal(t, 0.0, reward)
}

func TestClipToCap_ZeroRateNoUsableAmount(t *testing.T) {
	card := models.CardProfile{MonthlyRewardCap: 500}

	usable, reward := ClipToCap(card, models.MonthlyUsage{}, 1e9, 0)

	assert.Equal(t, 0.0, usable)
	assert.Equal(t, 0.0, reward)
}
