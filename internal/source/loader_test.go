package source

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbun/nft-dashboard/internal/models"
)

type countingSource struct {
	loads int
	err   error
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) Load() (*Tables, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return &Tables{Nfts: []models.NftSource{{TokenID: "1"}}}, nil
}

func TestLoader_ReadThrough(t *testing.T) {
	src := &countingSource{}
	l := NewLoader(src)

	first, err := l.Tables()
	require.NoError(t, err)
	second, err := l.Tables()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, src.loads)
}

func TestLoader_ErrorNotCached(t *testing.T) {
	boom := errors.New("boom")
	src := &countingSource{err: boom}
	l := NewLoader(src)

	_, err := l.Tables()
	assert.ErrorIs(t, err, boom)

	src.err = nil
	tables, err := l.Tables()
	require.NoError(t, err)
	assert.Len(t, tables.Nfts, 1)
	assert.Equal(t, 2, src.loads)
}
