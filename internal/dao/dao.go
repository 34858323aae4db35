package dao

import (
	"sync"

	"gorm.io/gorm"
)

var (
	_nftDetail   *NftDetailDAO
	_winnerEntry *WinnerEntryDAO
	_initMu      sync.Mutex
)

// InitDAO 绑定数据源（应用启动时调用，测试可重复调用）
func InitDAO(db *gorm.DB) {
	_initMu.Lock()
	defer _initMu.Unlock()
	_nftDetail = &NftDetailDAO{db: db}
	_winnerEntry = &WinnerEntryDAO{db: db}
}

func NftDetail() *NftDetailDAO {
	return _nftDetail
}

func WinnerEntry() *WinnerEntryDAO {
	return _winnerEntry
}
