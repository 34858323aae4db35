package models

// NftDetail nft_details 表，与 CSV 列一一对应；行顺序（ID）决定 unique_id
type NftDetail struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TokenID   string  `gorm:"column:token_id;type:varchar(78);not null" json:"token_id"`
	Market    string  `gorm:"column:market;type:varchar(64)" json:"market"`
	Equipment string  `gorm:"column:equipment;type:varchar(64);index" json:"equipment"`
	Boost     string  `gorm:"column:boost;type:varchar(32)" json:"boost"`
	Owner     *string `gorm:"column:owner;type:varchar(128);index" json:"owner"` // 可能为空
	Minted    string  `gorm:"column:minted;type:varchar(16);not null;comment:铸造日期 mm/dd/yyyy" json:"minted"`
}

// TableName 指定表名
func (NftDetail) TableName() string {
	return "nft_details"
}
