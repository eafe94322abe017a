// 包 site 负责站点组装：
// - 过滤可见记录并计算全局统计
// - 按年份分组、建立 标签 → 照片 倒排索引
// - 渲染索引页/逐照片页/标签页，写出共享静态资源与 Atom feed
// 除描述与评论正文（加载阶段已显式反转义并标记可信）外，
// 其余字段一律由 html/template 在渲染时转义。
package site

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-photo-archive/internal/config"
	"go-photo-archive/internal/logx"
	"go-photo-archive/internal/model"
)

// 索引页搜索数据里描述的最大字符数（按 rune 截断，不加省略号）。
const searchDescLimit = 200

// Assembler 持有配置并负责整棵站点树的写出。
type Assembler struct {
	cfg *config.Config
}

// New 创建 Assembler。
func New(cfg *config.Config) *Assembler {
	return &Assembler{cfg: cfg}
}

// gridItem 为网格里的单个条目及其客户端搜索数据。
type gridItem struct {
	ID      string
	Name    string
	Tags    string // 逗号连接的标签名
	Desc    string // 去除 HTML 标签并截断后的纯文本描述
	Date    string
	IsVideo bool
}

// yearSection 为索引页上的一个年份分组，组内保持全局排序。
type yearSection struct {
	Year   string
	Photos []gridItem
}

// tagGroup 为一个标签及其成员照片（保持全局排序）。
type tagGroup struct {
	Name    string
	Records []*model.PhotoRecord
}

// Render 写出完整站点树并返回全局统计。
// 统计与所有页面仅基于可见（已匹配媒体文件）记录。
func (a *Assembler) Render(records []*model.PhotoRecord) (*model.SiteStats, error) {
	visible := make([]*model.PhotoRecord, 0, len(records))
	for _, r := range records {
		if r.HasFile {
			visible = append(visible, r)
		}
	}

	if err := a.writeAssets(); err != nil {
		return nil, err
	}

	stats := computeStats(visible)
	years := groupByYear(visible)
	tags := groupByTag(visible)

	if err := a.writeIndex(visible, years, stats); err != nil {
		return nil, err
	}
	if err := a.writePhotoPages(visible); err != nil {
		return nil, err
	}
	if err := a.writeTagPages(tags, stats); err != nil {
		return nil, err
	}
	if err := a.writeFeed(visible); err != nil {
		return nil, err
	}
	return stats, nil
}

// computeStats 计算全局统计；无任何带时间的记录时年份区间显示 "?"。
func computeStats(visible []*model.PhotoRecord) *model.SiteStats {
	st := &model.SiteStats{PhotoCount: len(visible), YearMin: "?", YearMax: "?"}
	tagSet := map[string]struct{}{}
	for _, p := range visible {
		if p.DateTaken != "" {
			y := yearOf(p.DateTaken)
			if st.YearMin == "?" || y < st.YearMin {
				st.YearMin = y
			}
			if st.YearMax == "?" || y > st.YearMax {
				st.YearMax = y
			}
		}
		if len(p.Tags) > 0 {
			st.TaggedCount++
			for _, t := range p.Tags {
				tagSet[t.Tag] = struct{}{}
			}
		}
		if len(p.Comments) > 0 {
			st.CommentedCount++
			st.CommentCount += len(p.Comments)
		}
		if len(p.Geo) > 0 {
			st.GeoCount++
		}
	}
	st.TagCount = len(tagSet)
	return st
}

// yearOf 取时间串前 4 个字符作为年份，空串归入 "unknown"。
func yearOf(date string) string {
	if date == "" {
		return "unknown"
	}
	if len(date) < 4 {
		return date
	}
	return date[:4]
}

// groupByYear 按年份分组；分组顺序与组内顺序都沿用输入的全局排序
// （输入已是最新在前，因此年份自然按最近优先出现）。
func groupByYear(visible []*model.PhotoRecord) []yearSection {
	var out []yearSection
	at := map[string]int{}
	for _, p := range visible {
		y := yearOf(p.DateTaken)
		i, ok := at[y]
		if !ok {
			i = len(out)
			at[y] = i
			out = append(out, yearSection{Year: y})
		}
		out[i].Photos = append(out[i].Photos, toGridItem(p))
	}
	return out
}

// groupByTag 建立插入序的倒排索引，再按成员数降序稳定排序
// （同数标签保持首次出现顺序）。
func groupByTag(visible []*model.PhotoRecord) []tagGroup {
	var out []tagGroup
	at := map[string]int{}
	for _, p := range visible {
		for _, t := range p.Tags {
			i, ok := at[t.Tag]
			if !ok {
				i = len(out)
				at[t.Tag] = i
				out = append(out, tagGroup{Name: t.Tag})
			}
			out[i].Records = append(out[i].Records, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].Records) > len(out[j].Records) })
	return out
}

// toGridItem 生成网格条目与随身的客户端搜索数据。
func toGridItem(p *model.PhotoRecord) gridItem {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Tag)
	}
	return gridItem{
		ID:      p.ID,
		Name:    p.Name,
		Tags:    strings.Join(names, ","),
		Desc:    truncate(stripTags(string(p.Description)), searchDescLimit),
		Date:    p.DateTaken,
		IsVideo: p.IsVideo,
	}
}

// stripTags 去除描述里的 HTML 标签得到纯文本；解析失败时原样返回。
func stripTags(s string) string {
	if s == "" || !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// truncate 按 rune 截断到 limit，不追加省略号。
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// writeAssets 每轮都重写共享静态资源（体积小且内容固定，不做存在性跳过）。
func (a *Assembler) writeAssets() error {
	dir := filepath.Join(a.cfg.OutputDir, "assets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "style.css"), []byte(sharedCSS), 0o644); err != nil {
		return fmt.Errorf("write style.css: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "search.js"), []byte(searchJS), 0o644); err != nil {
		return fmt.Errorf("write search.js: %w", err)
	}
	logx.Infof("已写出 assets/style.css 与 assets/search.js")
	return nil
}

func (a *Assembler) writeIndex(visible []*model.PhotoRecord, years []yearSection, stats *model.SiteStats) error {
	data := struct {
		Title    string
		Subtitle string
		Years    []yearSection
		Stats    *model.SiteStats
	}{a.cfg.SiteTitle, a.cfg.SiteSubtitle, years, stats}
	if err := writePage(filepath.Join(a.cfg.OutputDir, "index.html"), indexTmpl, data); err != nil {
		return err
	}
	logx.Infof("已写出 index.html（%d 张照片）", len(visible))
	return nil
}

// writePhotoPages 为每条可见记录写一页，并带上排序序列里紧邻前后的导航链接。
func (a *Assembler) writePhotoPages(visible []*model.PhotoRecord) error {
	for i, p := range visible {
		var prevID, nextID string
		if i > 0 {
			prevID = visible[i-1].ID
		}
		if i < len(visible)-1 {
			nextID = visible[i+1].ID
		}
		var lat, lon string
		if len(p.Geo) > 0 {
			// 定点微度 → 十进制度，保留 4 位小数
			lat = fmt.Sprintf("%.4f", float64(p.Geo[0].Latitude)/1e6)
			lon = fmt.Sprintf("%.4f", float64(p.Geo[0].Longitude)/1e6)
		}
		data := struct {
			Title  string
			P      *model.PhotoRecord
			PrevID string
			NextID string
			Lat    string
			Lon    string
		}{a.cfg.SiteTitle, p, prevID, nextID, lat, lon}
		dir := filepath.Join(a.cfg.OutputDir, "photos", p.ID)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
		if err := writePage(filepath.Join(dir, "index.html"), photoTmpl, data); err != nil {
			return err
		}
	}
	logx.Infof("已写出 %d 个照片页面", len(visible))
	return nil
}

func (a *Assembler) writeTagPages(tags []tagGroup, stats *model.SiteStats) error {
	tagsDir := filepath.Join(a.cfg.OutputDir, "tags")
	if err := os.MkdirAll(tagsDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", tagsDir, err)
	}

	type tagCount struct {
		Name  string
		Count int
	}
	counts := make([]tagCount, 0, len(tags))
	for _, g := range tags {
		counts = append(counts, tagCount{Name: g.Name, Count: len(g.Records)})
	}
	indexData := struct {
		Title       string
		Tags        []tagCount
		TaggedCount int
	}{a.cfg.SiteTitle, counts, stats.TaggedCount}
	if err := writePage(filepath.Join(tagsDir, "index.html"), tagIndexTmpl, indexData); err != nil {
		return err
	}
	logx.Infof("已写出 tags/index.html（%d 个标签）", len(tags))

	for _, g := range tags {
		items := make([]gridItem, 0, len(g.Records))
		for _, p := range g.Records {
			items = append(items, toGridItem(p))
		}
		data := struct {
			Title  string
			Tag    string
			Photos []gridItem
		}{a.cfg.SiteTitle, g.Name, items}
		dir := filepath.Join(tagsDir, g.Name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
		if err := writePage(filepath.Join(dir, "index.html"), tagPageTmpl, data); err != nil {
			return err
		}
	}
	logx.Infof("已写出 %d 个标签页面", len(tags))
	return nil
}

// writePage 渲染模板并写文件。
func writePage(path string, tmpl *template.Template, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
