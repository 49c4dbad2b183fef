package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rewardmax-server/src/models"
)

func TestMilestoneCredit_FullBonusOnCrossingTransaction(t *testing.T) {
	card := models.CardProfile{MilestoneSpend: 50000, MilestoneBonus: 2000}
	usage := models.MonthlyUsage{Spend: 49000}

	assert.Equal(t, 2000.0, MilestoneCredit(card, usage, 2000))
}

func TestMilestoneCredit_NothingBeforeThreshold(t *testing.T) {
	card := models.CardProfile{MilestoneSpend: 50000, MilestoneBonus: 2000}
	usage := models.MonthlyUsage{Spend: 10000}

	assert.Equal(t, 0.0, MilestoneCredit(card, usage, 500))
}

func TestMilestoneCredit_OnlyOncePerCycle(t *testing.T) {
	card := models.CardProfile{MilestoneSpend: 50000, MilestoneBonus: 2000}
	usage := models.MonthlyUsage{Spend: 51000, MilestoneCredited: true}

	assert.Equal(t, 0.0, MilestoneCredit(card, usage, 2000))
}

func TestMilestoneCredit_NoMilestoneConfigured(t *testing.T) {
	assert.Equal(t, 0.0, MilestoneCredit(models.CardProfile{}, models.MonthlyUsage{Spend: 1e9}, 1e9))
}

func TestMilestoneCredit_ExactThresholdCounts(t *testing.T) {
	card := models.CardProfile{MilestoneSpend: 1000, MilestoneBonus: 100}
	usage := models.MonthlyUsage{Spend: 400}

	assert.Equal(t, 100.0, MilestoneCredit(card, usage, 600))
}
