// 包 photos 负责加载逐张照片的 JSON 元数据并合并为统一记录：
// - 合并行内评论与聚合评论文件（按评论文本精确去重）
// - 反转义描述与评论里的 HTML 实体，并标记为可信嵌入
// - 将评论者 ID 映射为展示名
// - 按拍摄时间倒序排序（空时间排最后）
package photos

import (
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"os"
	"path/filepath"
	"sort"

	"go-photo-archive/internal/logx"
	"go-photo-archive/internal/model"
)

// 聚合评论文件里的单条评论，结构与行内评论不同。
type aggComment struct {
	PhotoID    string `json:"photo_id"`
	PhotoURL   string `json:"photo_url"`
	Comment    string `json:"comment"`
	CommentURL string `json:"comment_url"`
	Created    string `json:"created"`
}

// Load 读取目录下全部 photo_*.json 并返回按拍摄时间倒序的记录序列。
// 任一必需文档损坏立即返回错误（致命）；可选文档缺失按空处理。
func Load(dir string) ([]*model.PhotoRecord, error) {
	names, err := loadNameMap(filepath.Join(dir, "nsid_names.json"))
	if err != nil {
		return nil, err
	}
	if len(names) > 0 {
		logx.Infof("已加载 %d 条评论者名称映射", len(names))
	}

	agg, total, err := loadAggComments(filepath.Join(dir, "photos_comments_part001.json"))
	if err != nil {
		return nil, err
	}
	if total > 0 {
		logx.Infof("已加载 %d 条聚合评论", total)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "photo_*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob photo json: %w", err)
	}
	sort.Strings(matches)

	out := make([]*model.PhotoRecord, 0, len(matches))
	for _, path := range matches {
		rec, err := loadOne(path)
		if err != nil {
			return nil, err
		}
		// 来源文档里的隐私/可见性标记不参与过滤，记录一律保留。
		mergeComments(rec, agg[rec.ID])
		normalize(rec, names)
		out = append(out, rec)
	}

	// 倒序字符串比较即可满足 ISO 风格时间串；空串天然沉底（“未知”最后）。
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateTaken > out[j].DateTaken })
	logx.Infof("已加载 %d 条照片记录", len(out))
	return out, nil
}

func loadOne(path string) (*model.PhotoRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rec model.PhotoRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &rec, nil
}

// loadNameMap 加载评论者 ID → 展示名 映射；文件不存在返回空映射。
func loadNameMap(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return m, nil
}

// loadAggComments 加载聚合评论文件并按 photo_id 建多值索引；文件不存在返回空索引。
func loadAggComments(path string) (map[string][]aggComment, int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]aggComment{}, 0, nil
		}
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	var doc struct {
		Comments []aggComment `json:"comments"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, 0, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	index := make(map[string][]aggComment)
	for _, c := range doc.Comments {
		index[c.PhotoID] = append(index[c.PhotoID], c)
	}
	return index, len(doc.Comments), nil
}

// mergeComments 把聚合评论中文本尚未出现的条目追加到行内评论之后。
// 去重在反转义前按原始文本比较；追加顺序为行内在前、聚合在后（插入序）。
// 聚合条目缺少行内结构字段，这里补齐：空 ID、通用作者名，时间与链接沿用聚合值。
func mergeComments(rec *model.PhotoRecord, extra []aggComment) {
	if len(extra) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(rec.Comments))
	for _, c := range rec.Comments {
		seen[string(c.Text)] = struct{}{}
	}
	for _, ac := range extra {
		if _, ok := seen[ac.Comment]; ok {
			continue
		}
		seen[ac.Comment] = struct{}{}
		rec.Comments = append(rec.Comments, model.Comment{
			ID:   "",
			Date: ac.Created,
			User: "commenter",
			Text: template.HTML(ac.Comment),
			URL:  ac.CommentURL,
		})
	}
}

// normalize 反转义 HTML 实体并映射评论者名称。
// 来源服务以原始 HTML 存储描述与评论（含 &quot; 等实体），反转义后的结果
// 之所以可以标记为可信，仅仅因为后续由自动转义的渲染器嵌入，且只有这两个
// 字段被信任；其余字段仍走默认转义。
func normalize(rec *model.PhotoRecord, names map[string]string) {
	if rec.Description != "" {
		rec.Description = template.HTML(html.UnescapeString(string(rec.Description)))
	}
	for i := range rec.Comments {
		c := &rec.Comments[i]
		if c.Text != "" {
			c.Text = template.HTML(html.UnescapeString(string(c.Text)))
		}
		if c.User != "" {
			if name, ok := names[c.User]; ok {
				c.User = name
			}
		}
	}
}
