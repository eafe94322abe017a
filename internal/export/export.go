// 包 export 负责把构建结果写为机器可读的 data.json 清单
// （全局统计 + 逐张可见照片的摘要），供站点之外的工具消费。
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"go-photo-archive/internal/model"
)

// ToJSON 把统计与可见记录摘要写入 path（带缩进格式）。
func ToJSON(stats *model.SiteStats, records []*model.PhotoRecord, path string) error {
	out := model.Export{Stats: *stats}
	for _, p := range records {
		if !p.HasFile {
			continue
		}
		var tags []string
		for _, t := range p.Tags {
			tags = append(tags, t.Tag)
		}
		out.Photos = append(out.Photos, model.ExportPhoto{
			ID:        p.ID,
			Name:      p.Name,
			DateTaken: p.DateTaken,
			Tags:      tags,
			Comments:  len(p.Comments),
			Views:     p.CountViews,
			Faves:     p.CountFaves,
			IsVideo:   p.IsVideo,
			Page:      "photos/" + p.ID + "/",
			Thumb:     "photos/" + p.ID + "/thumb.jpg",
		})
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json to %s: %w", path, err)
	}
	return nil
}
