// 包 config 负责加载与校验应用配置（settings.yaml），
// 对外提供结构体 Config 及默认值/合法性校验。
// 配置文件不存在时直接使用默认值，保证零参数即可运行。
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config 集中保存原本散落的常量（缩略图尺寸/质量、扩展名集合、抓取超时等），
// 逐个传入各组件，避免环境隐式依赖。
type Config struct {
	InputDir     string   `yaml:"INPUT_DIR"`   // 解压目标，同时是元数据与媒体文件来源
	OutputDir    string   `yaml:"OUTPUT_DIR"`  // 站点输出目录
	SiteTitle    string   `yaml:"SITE_TITLE"`
	SiteSubtitle string   `yaml:"SITE_SUBTITLE"`
	ThumbSize    int      `yaml:"THUMB_SIZE"`    // 正方形缩略图边长（像素）
	ThumbQuality int      `yaml:"THUMB_QUALITY"` // JPEG 编码质量 1-100
	ImageExts    []string `yaml:"IMAGE_EXTENSIONS"`
	VideoExts    []string `yaml:"VIDEO_EXTENSIONS"`

	FetchTimeoutSec int  `yaml:"FETCH_TIMEOUT_SEC"` // 海报帧下载超时
	ProgressEvery   int  `yaml:"PROGRESS_EVERY"`    // 每处理多少条记录打印一次进度
	FeedNum         int  `yaml:"FEED_NUM"`          // feed.xml 条目数上限
	BuildReport     bool `yaml:"BUILD_REPORT"`      // 是否把逐条处理结果写入数据库

	Database    Database    `yaml:"DATABASE"`
	Concurrency Concurrency `yaml:"CONCURRENCY"`
	Proxy       Proxy       `yaml:"PROXY"`

	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"` // text|json|pretty
	LogLocale string `yaml:"LOG_LOCALE"` // zh-CN|en
	LogColor  string `yaml:"LOG_COLOR"`  // auto|always|never
}

type Database struct {
	Type string `yaml:"type"` // sqlite (default)
	DSN  string `yaml:"dsn"`
}

type Concurrency struct {
	// Process：媒体阶段工作协程数。输出路径按 ID 天然互斥，
	// 默认 1 以保持与参考实现一致的日志顺序。
	Process int `yaml:"process"`
	Retry   int `yaml:"retry"` // 海报帧抓取重试次数，默认 0（失败即跳过）
}

type Proxy struct {
	HTTP  string `yaml:"http"`
	HTTPS string `yaml:"https"`
}

// Load 从文件读取 YAML 并反序列化为 Config；文件不存在返回默认配置。
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c := &Config{}
			if err := c.Validate(); err != nil {
				return nil, fmt.Errorf("validate default config: %w", err)
			}
			return c, nil
		}
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Validate 负责合法性检查与默认值设置，避免在业务层分散判空逻辑。
func (c *Config) Validate() error {
	if c.InputDir == "" {
		c.InputDir = "_extracted"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public_html"
	}
	if c.SiteTitle == "" {
		c.SiteTitle = "Photo Archive"
	}
	if c.ThumbSize < 0 || c.ThumbQuality < 0 {
		return errors.New("THUMB_SIZE and THUMB_QUALITY must be >= 0")
	}
	if c.ThumbSize == 0 {
		c.ThumbSize = 320
	}
	if c.ThumbQuality == 0 {
		c.ThumbQuality = 80
	}
	if c.ThumbQuality > 100 {
		return fmt.Errorf("THUMB_QUALITY must be <= 100, got %d", c.ThumbQuality)
	}
	if len(c.ImageExts) == 0 {
		c.ImageExts = []string{".jpg", ".jpeg", ".png", ".gif"}
	}
	if len(c.VideoExts) == 0 {
		c.VideoExts = []string{".3gp", ".avi", ".mp4", ".mov"}
	}
	c.ImageExts = normalizeExts(c.ImageExts)
	c.VideoExts = normalizeExts(c.VideoExts)
	if c.FetchTimeoutSec <= 0 {
		c.FetchTimeoutSec = 30
	}
	if c.ProgressEvery <= 0 {
		c.ProgressEvery = 100
	}
	if c.FeedNum <= 0 {
		c.FeedNum = 50
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}
	if c.Database.Type != "sqlite" {
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}
	if c.Database.DSN == "" {
		c.Database.DSN = "./build-report.db"
	}
	if c.Concurrency.Process <= 0 {
		c.Concurrency.Process = 1
	}
	if c.Concurrency.Retry < 0 {
		return errors.New("CONCURRENCY.retry must be >= 0")
	}
	if c.LogFormat == "" {
		c.LogFormat = "pretty"
	}
	if c.LogLocale == "" {
		c.LogLocale = "zh-CN"
	}
	if c.LogColor == "" {
		c.LogColor = "auto"
	}
	return nil
}

// IsImage 判断（已折叠小写的）扩展名是否属于图片集合。
func (c *Config) IsImage(ext string) bool { return containsFold(c.ImageExts, ext) }

// IsVideo 判断扩展名是否属于视频集合。
func (c *Config) IsVideo(ext string) bool { return containsFold(c.VideoExts, ext) }

func containsFold(set []string, ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range set {
		if e == ext {
			return true
		}
	}
	return false
}

// normalizeExts 统一为带点的小写形式，配置里写 "jpg" 或 ".JPG" 均可。
func normalizeExts(in []string) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
