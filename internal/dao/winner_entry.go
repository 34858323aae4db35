package dao

import (
	"gorm.io/gorm"

	"github.com/lbun/nft-dashboard/internal/models"
)

type WinnerEntryDAO struct {
	db *gorm.DB
}

// ListAll 按插入顺序返回全部中奖记录
func (d *WinnerEntryDAO) ListAll() ([]*models.WinnerEntry, error) {
	var rows []*models.WinnerEntry
	err := d.db.Model(&models.WinnerEntry{}).Order("id ASC").Find(&rows).Error
	return rows, err
}
