package aggregate

import (
	"github.com/lbun/nft-dashboard/internal/join"
	"github.com/lbun/nft-dashboard/internal/models"
)

type Totals struct {
	Wins        int     `json:"total_wins"`
	Rewards     float64 `json:"total_rewards"`
	RewardsText string  `json:"total_rewards_text"`
}

// ComputeTotals 同一 virtual_block 只计一次胜场和一次奖励
func ComputeTotals(wins []models.Win) Totals {
	unique := join.DedupeByBlock(wins)

	var sum float64
	for _, w := range unique {
		sum += w.RewardBase
	}

	return Totals{
		Wins:        len(unique),
		Rewards:     sum,
		RewardsText: FormatRewards(sum),
	}
}
