package logger

import "github.com/rs/zerolog"

var (
	DEBUG = "debug"
	INFO  = "info"
	WARN  = "warn"
	ERROR = "error"
	FATAL = "fatal"
)

// parseLevel 解析等级名称，未知名称回落到 info
func parseLevel(levelName string) zerolog.Level {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil || levelName == "" {
		return zerolog.InfoLevel
	}
	return level
}

// LevelFileEntry 单个日志级别对应的文件
type LevelFileEntry struct {
	Level string
	Path  string
}

// LevelFiles 分级文件配置
type LevelFiles []LevelFileEntry

func (lf LevelFiles) IsEmpty() bool {
	return len(lf) == 0
}

// GetPath 获取指定级别的文件路径
func (lf LevelFiles) GetPath(level string) (string, bool) {
	for _, entry := range lf {
		if entry.Level == level {
			return entry.Path, true
		}
	}
	return "", false
}

// HasLevel 判断是否配置了指定级别
func (lf LevelFiles) HasLevel(level string) bool {
	_, ok := lf.GetPath(level)
	return ok
}

type Config struct {
	LevelFiles LevelFiles // 为空时只写 logs/info.log
	MaxSize    int        // 单文件最大 MB
	MaxBackups int
	MaxAge     int // 天
	Level      string
	Compress   bool
	Console    bool
}

// DefaultConfig 默认写 err.log + info.log
func DefaultConfig() Config {
	return Config{
		LevelFiles: LevelFiles{
			{Level: ERROR, Path: "logs/err.log"},
			{Level: INFO, Path: "logs/info.log"},
		},
		MaxSize:    10,
		MaxBackups: 30,
		MaxAge:     7,
		Level:      INFO,
	}
}

type Builder struct {
	config Config
	custom bool
}

func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig()}
}

func (b *Builder) SetMaxSize(size int) *Builder {
	b.config.MaxSize = size
	return b
}

func (b *Builder) SetMaxBackups(backups int) *Builder {
	b.config.MaxBackups = backups
	return b
}

func (b *Builder) SetMaxAge(days int) *Builder {
	b.config.MaxAge = days
	return b
}

func (b *Builder) SetLevel(level string) *Builder {
	b.config.Level = level
	return b
}

func (b *Builder) EnableCompression(enable bool) *Builder {
	b.config.Compress = enable
	return b
}

func (b *Builder) EnableConsoleOutput(enable bool) *Builder {
	b.config.Console = enable
	return b
}

// SetLevelFiles 覆盖默认的分级文件
func (b *Builder) SetLevelFiles(files LevelFiles) *Builder {
	b.config.LevelFiles = files
	return b
}

// AddLevelFile 追加一个分级文件；首次调用会清掉默认配置
func (b *Builder) AddLevelFile(level, path string) *Builder {
	if !b.custom {
		b.config.LevelFiles = nil
		b.custom = true
	}
	b.config.LevelFiles = append(b.config.LevelFiles, LevelFileEntry{Level: level, Path: path})
	return b
}

func (b *Builder) Build() error {
	return initLogger(b.config)
}
