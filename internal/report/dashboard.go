package report

import (
	"github.com/lbun/nft-dashboard/internal/aggregate"
	"github.com/lbun/nft-dashboard/internal/filter"
	"github.com/lbun/nft-dashboard/internal/models"
)

// NftRow 表格展示列
type NftRow struct {
	TokenID    string `json:"token_id"`
	Market     string `json:"market"`
	Equipment  string `json:"equipment"`
	Boost      string `json:"boost"`
	ShortOwner string `json:"short_owner"`
	Minted     string `json:"minted"`
	LifeLeft   string `json:"life_left"`
}

type Dashboard struct {
	Selection          filter.Selection       `json:"selection"`
	Caption            string                 `json:"caption"`
	Nfts               []NftRow               `json:"nfts"`
	Totals             aggregate.Totals       `json:"totals"`
	TotalsText         string                 `json:"totals_text"`
	RewardDistribution aggregate.Distribution `json:"reward_distribution"`
	Ownership          aggregate.Distribution `json:"ownership"`
}

func caption(sel filter.Selection) string {
	if sel.OwnerSelected() {
		return "NFTs owned by " + sel.Owner + ":"
	}
	return "All NFTs:"
}

func buildDashboard(sel filter.Selection, nfts []models.NftRecord, wins []models.Win, th aggregate.Thresholds) *Dashboard {
	equipment := ""
	if sel.EquipmentSelected() {
		equipment = sel.Equipment
	}

	rows := make([]NftRow, 0, len(nfts))
	for _, n := range nfts {
		rows = append(rows, NftRow{
			TokenID:    n.TokenID,
			Market:     n.Market,
			Equipment:  n.Equipment,
			Boost:      n.Boost,
			ShortOwner: n.ShortOwner,
			Minted:     n.Minted,
			LifeLeft:   n.LifeLeft,
		})
	}

	totals := aggregate.ComputeTotals(wins)
	return &Dashboard{
		Selection:          sel,
		Caption:            caption(sel),
		Nfts:               rows,
		Totals:             totals,
		TotalsText:         "Total Rewards Earned: " + totals.RewardsText + " BASE",
		RewardDistribution: aggregate.RewardDistribution(wins, equipment, th),
		Ownership:          aggregate.Ownership(nfts, equipment, th.Ownership),
	}
}
