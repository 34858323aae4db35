package models

// WinnerEntry winner_list 表，一行一次挖矿中奖记录
type WinnerEntry struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	WinnerRow    string  `gorm:"column:winner_row;type:varchar(16);not null;index;comment:对应 nft 的 unique_id" json:"winner_row"`
	VirtualBlock string  `gorm:"column:virtual_block;type:varchar(32);not null;index" json:"virtual_block"`
	RewardBase   float64 `gorm:"column:reward_base;type:decimal(28,12);not null;default:0" json:"reward_base"`
}

// TableName 指定表名
func (WinnerEntry) TableName() string {
	return "winner_list"
}
