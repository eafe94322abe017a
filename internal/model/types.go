// 包 model 定义照片档案的数据模型（照片记录/评论/统计/导出结构）。
package model

import "html/template"

// Tag 为照片上的一个标签。
type Tag struct {
	Tag string `json:"tag"`
}

// Comment 为照片下的一条评论。
// Text 在加载阶段完成实体反转义后才视为可信 HTML，渲染时原样嵌入；
// User/URL 等其余字段始终按不可信文本处理，由模板负责转义。
type Comment struct {
	ID   string        `json:"id"`
	Date string        `json:"date"`
	User string        `json:"user"`
	Text template.HTML `json:"comment"`
	URL  string        `json:"url"`
}

// Note 为照片上的策展批注。
type Note struct {
	Text string `json:"text"`
}

// Geo 为定点整数微度表示的经纬度（度 × 1e6）。
type Geo struct {
	Latitude  int64 `json:"latitude"`
	Longitude int64 `json:"longitude"`
}

// PhotoRecord 为一张照片/视频合并后的完整记录。
// ID 是贯穿元数据/媒体文件/输出路径的唯一关联键。
// 计数字段在来源导出中以字符串存储，保持原样透传。
type PhotoRecord struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description template.HTML `json:"description"`
	DateTaken   string        `json:"date_taken"`
	Tags        []Tag         `json:"tags"`
	Comments    []Comment     `json:"comments"`
	Notes       []Note        `json:"notes"`
	Geo         []Geo         `json:"geo"`
	CountViews  string        `json:"count_views"`
	CountFaves  string        `json:"count_faves"`
	License     string        `json:"license"`
	PhotoPage   string        `json:"photopage"`
	Original    string        `json:"original"` // 视频的海报帧 URL

	// 以下为流水线回填字段，不来自导出 JSON。
	HasFile bool   `json:"-"` // 未匹配到媒体文件的记录不渲染任何页面
	SrcPath string `json:"-"`
	Ext     string `json:"-"` // 已折叠为小写
	IsImage bool   `json:"-"`
	IsVideo bool   `json:"-"`
}

// SiteStats 为站点全局统计，仅基于可见（已匹配文件）记录计算。
type SiteStats struct {
	PhotoCount     int    `json:"photo_count"`
	YearMin        string `json:"year_min"`
	YearMax        string `json:"year_max"`
	TagCount       int    `json:"tag_count"`
	TaggedCount    int    `json:"tagged_count"`
	CommentCount   int    `json:"comment_count"`
	CommentedCount int    `json:"commented_count"`
	GeoCount       int    `json:"geo_count"`
}

// ExportPhoto 为 data.json 清单中的单条照片摘要。
type ExportPhoto struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	DateTaken string   `json:"date_taken"`
	Tags      []string `json:"tags,omitempty"`
	Comments  int      `json:"comments"`
	Views     string   `json:"views"`
	Faves     string   `json:"faves"`
	IsVideo   bool     `json:"is_video,omitempty"`
	Page      string   `json:"page"`
	Thumb     string   `json:"thumb"`
}

// Export 为 data.json 的顶层结构。
type Export struct {
	Stats  SiteStats     `json:"stats"`
	Photos []ExportPhoto `json:"photos"`
}
