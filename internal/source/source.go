package source

import (
	"errors"
	"strings"

	"github.com/lbun/nft-dashboard/internal/models"
)

// 输入列名，视为稳定
const (
	ColTokenID   = "token_id"
	ColMarket    = "market"
	ColEquipment = "equipment"
	ColBoost     = "boost"
	ColOwner     = "owner"
	ColMinted    = "minted"

	ColWinnerRow    = "Winner (Row)"
	ColVirtualBlock = "Virtual Block"
	ColRewardBase   = "Reward (BASE)"
)

var (
	NftColumns    = []string{ColTokenID, ColMarket, ColEquipment, ColBoost, ColOwner, ColMinted}
	WinnerColumns = []string{ColWinnerRow, ColVirtualBlock, ColRewardBase}

	ErrMissingColumn = errors.New("missing column")
	ErrMalformedRow  = errors.New("malformed row")
)

// naValues 与表格读取默认识别的缺失值写法一致，按空单元格处理
var naValues = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

// IsNA 空白或缺失值写法
func IsNA(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	_, ok := naValues[v]
	return ok
}

// Tables 一次加载得到的两张源表，加载后只读
type Tables struct {
	Nfts    []models.NftSource
	Winners []models.WinnerRecord
}

// Source 源表读取方
type Source interface {
	Name() string
	Load() (*Tables, error)
}
