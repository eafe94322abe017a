package site

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-photo-archive/internal/logx"
	"go-photo-archive/internal/model"
)

// Atom feed 序列化结构，只包含最小必需字段。
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Xmlns   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string   `xml:"title"`
	ID      string   `xml:"id"`
	Updated string   `xml:"updated"`
	Link    atomLink `xml:"link"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
}

// writeFeed 写出最新可见照片的 Atom feed（feed.xml）。
// 记录序列已是最新在前，直接取前 FEED_NUM 条。
func (a *Assembler) writeFeed(visible []*model.PhotoRecord) error {
	now := time.Now().UTC().Format(time.RFC3339)
	feed := atomFeed{
		Xmlns:   "http://www.w3.org/2005/Atom",
		Title:   a.cfg.SiteTitle,
		ID:      "urn:photo-archive:feed",
		Updated: now,
	}
	n := a.cfg.FeedNum
	if n > len(visible) {
		n = len(visible)
	}
	for _, p := range visible[:n] {
		feed.Entries = append(feed.Entries, atomEntry{
			Title:   p.Name,
			ID:      "urn:photo-archive:" + p.ID,
			Updated: entryTime(p.DateTaken, now),
			Link:    atomLink{Href: "photos/" + p.ID + "/"},
		})
	}
	b, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal feed: %w", err)
	}
	path := filepath.Join(a.cfg.OutputDir, "feed.xml")
	if err := os.WriteFile(path, append([]byte(xml.Header), b...), 0o644); err != nil {
		return fmt.Errorf("write feed.xml: %w", err)
	}
	logx.Infof("已写出 feed.xml（%d 条）", len(feed.Entries))
	return nil
}

// entryTime 把导出的拍摄时间（"2006-01-02 15:04:05"）转成 RFC3339；
// 无法解析时退回构建时间。
func entryTime(date, fallback string) string {
	if t, err := time.Parse("2006-01-02 15:04:05", date); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return fallback
}
