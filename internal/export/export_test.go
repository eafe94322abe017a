package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go-photo-archive/internal/model"
)

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	stats := &model.SiteStats{PhotoCount: 1, YearMin: "2020", YearMax: "2021", TagCount: 2}
	recs := []*model.PhotoRecord{
		{
			ID: "7", Name: "visible", DateTaken: "2021-05-01 08:00:00",
			Tags:       []model.Tag{{Tag: "sunset"}, {Tag: "beach"}},
			Comments:   []model.Comment{{User: "a"}, {User: "b"}},
			CountViews: "1234", CountFaves: "5",
			HasFile: true, IsVideo: true,
		},
		{ID: "8", Name: "hidden"},
	}
	if err := ToJSON(stats, recs, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got model.Export
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Stats.PhotoCount != 1 || got.Stats.YearMax != "2021" {
		t.Fatalf("stats=%+v", got.Stats)
	}
	if len(got.Photos) != 1 {
		t.Fatalf("hidden record leaked into manifest: %+v", got.Photos)
	}
	p := got.Photos[0]
	if p.ID != "7" || p.Comments != 2 || !p.IsVideo || p.Views != "1234" {
		t.Fatalf("photo=%+v", p)
	}
	if p.Page != "photos/7/" || p.Thumb != "photos/7/thumb.jpg" {
		t.Fatalf("paths wrong: %+v", p)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "sunset" {
		t.Fatalf("tags wrong: %+v", p.Tags)
	}
}
