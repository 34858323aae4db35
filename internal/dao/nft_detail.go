package dao

import (
	"gorm.io/gorm"

	"github.com/lbun/nft-dashboard/internal/models"
)

type NftDetailDAO struct {
	db *gorm.DB
}

// ListAll 按插入顺序返回全部 NFT，顺序即 unique_id 顺序
func (d *NftDetailDAO) ListAll() ([]*models.NftDetail, error) {
	var rows []*models.NftDetail
	err := d.db.Model(&models.NftDetail{}).Order("id ASC").Find(&rows).Error
	return rows, err
}
