package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/spf13/cast"

	"github.com/lbun/nft-dashboard/internal/models"
)

// CSVSource 从两个 CSV 文件读取
type CSVSource struct {
	NftFile    string
	WinnerFile string
}

func NewCSVSource(nftFile, winnerFile string) *CSVSource {
	return &CSVSource{NftFile: nftFile, WinnerFile: winnerFile}
}

func (s *CSVSource) Name() string {
	return "csv:" + s.NftFile + "|" + s.WinnerFile
}

func (s *CSVSource) Load() (*Tables, error) {
	nfts, err := readFile(s.NftFile, ReadNfts)
	if err != nil {
		return nil, err
	}
	winners, err := readFile(s.WinnerFile, ReadWinners)
	if err != nil {
		return nil, err
	}
	return &Tables{Nfts: nfts, Winners: winners}, nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// table 带表头索引的 CSV 内容
type table struct {
	index   map[string]int
	records [][]string
}

func readTable(r io.Reader, required []string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		// Excel 导出的文件可能带 BOM
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		index[name] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return &table{index: index, records: records}, nil
}

// cell 缺失、空白或 NA 写法的单元格返回 nil
func (t *table) cell(record []string, col string) any {
	i := t.index[col]
	if i >= len(record) {
		return nil
	}
	v := strings.TrimSpace(record[i])
	if IsNA(v) {
		return nil
	}
	return v
}

// ReadNfts 解析 NFT 表
func ReadNfts(r io.Reader) ([]models.NftSource, error) {
	t, err := readTable(r, NftColumns)
	if err != nil {
		return nil, err
	}

	nfts := make([]models.NftSource, 0, len(t.records))
	for _, record := range t.records {
		nfts = append(nfts, models.NftSource{
			TokenID:   cast.ToString(t.cell(record, ColTokenID)),
			Market:    cast.ToString(t.cell(record, ColMarket)),
			Equipment: cast.ToString(t.cell(record, ColEquipment)),
			Boost:     cast.ToString(t.cell(record, ColBoost)),
			Owner:     t.cell(record, ColOwner),
			Minted:    cast.ToString(t.cell(record, ColMinted)),
		})
	}
	return nfts, nil
}

// ReadWinners 解析中奖表，奖励无法解析为数字时报错
func ReadWinners(r io.Reader) ([]models.WinnerRecord, error) {
	t, err := readTable(r, WinnerColumns)
	if err != nil {
		return nil, err
	}

	winners := make([]models.WinnerRecord, 0, len(t.records))
	for i, record := range t.records {
		w, err := parseWinner(
			t.cell(record, ColWinnerRow),
			t.cell(record, ColVirtualBlock),
			t.cell(record, ColRewardBase),
		)
		if err != nil {
			// +2: 表头占一行，行号从 1 开始
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		winners = append(winners, w)
	}
	return winners, nil
}

func parseWinner(row, block, reward any) (models.WinnerRecord, error) {
	if cast.ToString(row) == "" || cast.ToString(block) == "" {
		return models.WinnerRecord{}, fmt.Errorf("%w: empty winner row or virtual block", ErrMalformedRow)
	}

	// 缺失奖励按 0 计入
	amount := 0.0
	if text := cast.ToString(reward); reward != nil && !IsNA(text) {
		v, err := cast.ToFloat64E(strings.ReplaceAll(text, ",", ""))
		if err != nil {
			return models.WinnerRecord{}, fmt.Errorf("%w: reward %v: %v", ErrMalformedRow, reward, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.WinnerRecord{}, fmt.Errorf("%w: reward %v is not finite", ErrMalformedRow, reward)
		}
		amount = v
	}

	return models.WinnerRecord{
		WinnerRow:    cast.ToString(row),
		VirtualBlock: cast.ToString(block),
		RewardBase:   amount,
	}, nil
}
