package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_CreatesLevelFiles(t *testing.T) {
	tmpDir := t.TempDir()
	infoFile := filepath.Join(tmpDir, "info.log")

	err := NewBuilder().
		AddLevelFile(INFO, infoFile).
		SetLevel(DEBUG).
		Build()
	require.NoError(t, err)
	defer Close()

	Info().Int("nfts", 3).Msg("tables loaded")

	_, err = os.Stat(infoFile)
	assert.NoError(t, err)
}

func TestLevelRouting(t *testing.T) {
	tmpDir := t.TempDir()
	infoFile := filepath.Join(tmpDir, "info.log")
	errorFile := filepath.Join(tmpDir, "error.log")

	err := NewBuilder().
		AddLevelFile(INFO, infoFile).
		AddLevelFile(ERROR, errorFile).
		SetLevel(DEBUG).
		Build()
	require.NoError(t, err)

	Warn().Msg("unmatched winner rows")
	Err(errors.New("boom")).Msg("load failed")
	Close()

	info, err := os.ReadFile(infoFile)
	require.NoError(t, err)
	errs, err := os.ReadFile(errorFile)
	require.NoError(t, err)

	// warn 没有单独配置，落到 info 文件
	assert.True(t, strings.Contains(string(info), "unmatched winner rows"))
	assert.False(t, strings.Contains(string(info), "load failed"))
	assert.True(t, strings.Contains(string(errs), "load failed"))
}

func TestCompatMethods(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "test.log")

	err := NewBuilder().AddLevelFile(INFO, logFile).SetLevel(DEBUG).Build()
	require.NoError(t, err)

	Infof("loaded %d rows", 12)
	Warnf("no format args")
	Close()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "loaded 12 rows")
	assert.Contains(t, string(content), "no format args")
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.True(t, config.LevelFiles.HasLevel(ERROR))
	assert.True(t, config.LevelFiles.HasLevel(INFO))
	assert.False(t, config.LevelFiles.HasLevel(WARN))

	path, ok := config.LevelFiles.GetPath(ERROR)
	assert.True(t, ok)
	assert.Equal(t, "logs/err.log", path)
	assert.Equal(t, INFO, config.Level)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "info", parseLevel("").String())
	assert.Equal(t, "info", parseLevel("nonsense").String())
	assert.Equal(t, uint8(0), levelBit(parseLevel("trace")))
}
