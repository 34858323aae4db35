package models

import "time"

// NftSource 读入的原始 NFT 行；Owner 保留原始类型（缺失时为 nil）
type NftSource struct {
	TokenID   string
	Market    string
	Equipment string
	Boost     string
	Owner     any
	Minted    string
}

// NftRecord 富化后的 NFT
type NftRecord struct {
	UniqueID     int       `json:"unique_id"`
	TokenID      string    `json:"token_id"`
	Market       string    `json:"market"`
	Equipment    string    `json:"equipment"`
	Boost        string    `json:"boost"`
	Owner        string    `json:"owner"`
	ShortOwner   string    `json:"short_owner"`
	Minted       string    `json:"minted"`
	MintedDate   time.Time `json:"minted_date"`
	LifeLeftDays int       `json:"-"`
	LifeLeft     string    `json:"life_left"` // "0".."365" 或 "Expired"
}

// WinnerRecord 一次挖矿中奖；WinnerRow 指向 NftRecord.UniqueID
type WinnerRecord struct {
	WinnerRow    string  `json:"winner_row"`
	VirtualBlock string  `json:"virtual_block"`
	RewardBase   float64 `json:"reward_base"`
}

// Win 关联到 NFT 的中奖记录
type Win struct {
	WinnerRecord
	UniqueID   int    `json:"unique_id"`
	Owner      string `json:"owner"`
	ShortOwner string `json:"short_owner"`
	Equipment  string `json:"equipment"`
	Boost      string `json:"boost"`
}
