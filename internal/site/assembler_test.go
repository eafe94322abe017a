package site

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"

	"go-photo-archive/internal/config"
	"go-photo-archive/internal/model"
)

func siteCfg(t *testing.T, out string) *config.Config {
	t.Helper()
	c := &config.Config{OutputDir: out, SiteTitle: "Test Archive"}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	return c
}

func rec(id, name, date string, tags ...string) *model.PhotoRecord {
	p := &model.PhotoRecord{ID: id, Name: name, DateTaken: date, HasFile: true, Ext: ".jpg", IsImage: true}
	for _, tg := range tags {
		p.Tags = append(p.Tags, model.Tag{Tag: tg})
	}
	return p
}

func readPage(t *testing.T, parts ...string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(parts...))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	return string(b)
}

func TestRender_FiltersUnavailableRecords(t *testing.T) {
	out := t.TempDir()
	a := New(siteCfg(t, out))
	hidden := rec("9", "no file", "2020-01-01 00:00:00")
	hidden.HasFile = false
	stats, err := a.Render([]*model.PhotoRecord{rec("1", "ok", "2020-06-01 12:00:00"), hidden})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if stats.PhotoCount != 1 {
		t.Fatalf("PhotoCount=%d want 1", stats.PhotoCount)
	}
	if _, err := os.Stat(filepath.Join(out, "photos", "9", "index.html")); err == nil {
		t.Fatalf("page rendered for record without a file")
	}
	index := readPage(t, out, "index.html")
	if strings.Contains(index, "photos/9/") {
		t.Fatalf("grid links an unavailable record")
	}
}

func TestRender_YearSections(t *testing.T) {
	out := t.TempDir()
	a := New(siteCfg(t, out))
	recs := []*model.PhotoRecord{
		rec("a", "newest", "2021-08-01 10:00:00"),
		rec("b", "same year", "2021-02-01 10:00:00"),
		rec("c", "older", "2019-05-01 10:00:00"),
		rec("d", "undated", ""),
	}
	if _, err := a.Render(recs); err != nil {
		t.Fatalf("render: %v", err)
	}
	index := readPage(t, out, "index.html")
	i21 := strings.Index(index, `id="y2021"`)
	i19 := strings.Index(index, `id="y2019"`)
	iUnk := strings.Index(index, `id="yunknown"`)
	if i21 < 0 || i19 < 0 || iUnk < 0 {
		t.Fatalf("missing year anchors: 2021=%d 2019=%d unknown=%d", i21, i19, iUnk)
	}
	if !(i21 < i19 && i19 < iUnk) {
		t.Fatalf("year sections out of order: 2021=%d 2019=%d unknown=%d", i21, i19, iUnk)
	}
	if !strings.Contains(index, "4 photos, 2019&ndash;2021") {
		t.Fatalf("header stats missing, got:\n%s", index[:400])
	}
}

func TestRender_PhotoNavigation(t *testing.T) {
	out := t.TempDir()
	a := New(siteCfg(t, out))
	recs := []*model.PhotoRecord{
		rec("a", "first", "2021-03-01 10:00:00"),
		rec("b", "middle", "2021-02-01 10:00:00"),
		rec("c", "last", "2021-01-01 10:00:00"),
	}
	if _, err := a.Render(recs); err != nil {
		t.Fatalf("render: %v", err)
	}
	first := readPage(t, out, "photos", "a", "index.html")
	if strings.Contains(first, "prev") {
		t.Fatalf("first page must not link prev")
	}
	if !strings.Contains(first, `href="../b/"`) {
		t.Fatalf("first page missing next link")
	}
	mid := readPage(t, out, "photos", "b", "index.html")
	if !strings.Contains(mid, `href="../a/"`) || !strings.Contains(mid, `href="../c/"`) {
		t.Fatalf("middle page missing nav links")
	}
	last := readPage(t, out, "photos", "c", "index.html")
	if strings.Contains(last, "next &rarr;") {
		t.Fatalf("last page must not link next")
	}
}

func TestRender_TagPagesByCount(t *testing.T) {
	out := t.TempDir()
	a := New(siteCfg(t, out))
	recs := []*model.PhotoRecord{
		rec("a", "one", "2021-03-01 10:00:00", "rare", "common"),
		rec("b", "two", "2021-02-01 10:00:00", "common"),
		rec("c", "three", "2021-01-01 10:00:00", "common"),
	}
	if _, err := a.Render(recs); err != nil {
		t.Fatalf("render: %v", err)
	}
	tagIndex := readPage(t, out, "tags", "index.html")
	iCommon := strings.Index(tagIndex, `href="common/"`)
	iRare := strings.Index(tagIndex, `href="rare/"`)
	if iCommon < 0 || iRare < 0 || iCommon > iRare {
		t.Fatalf("tags not ordered by count: common=%d rare=%d", iCommon, iRare)
	}
	if !strings.Contains(tagIndex, "(3)") {
		t.Fatalf("tag count missing")
	}
	common := readPage(t, out, "tags", "common", "index.html")
	if !strings.Contains(common, "3 photos") {
		t.Fatalf("tag page member count wrong")
	}
	if !strings.Contains(common, `href="../../photos/a/"`) {
		t.Fatalf("tag page missing member link")
	}
}

func TestRender_Escaping(t *testing.T) {
	out := t.TempDir()
	a := New(siteCfg(t, out))
	p := rec("a", `<i>name`, "2021-03-01 10:00:00", "<b>bold")
	p.Description = `trusted <b>markup</b>`
	p.Comments = []model.Comment{{User: "<u>ser", Date: "2021-03-02 00:00:00", Text: `nice <em>shot</em>`}}
	if _, err := a.Render([]*model.PhotoRecord{p}); err != nil {
		t.Fatalf("render: %v", err)
	}
	page := readPage(t, out, "photos", "a", "index.html")
	if !strings.Contains(page, "trusted <b>markup</b>") {
		t.Fatalf("description markup was escaped")
	}
	if !strings.Contains(page, "nice <em>shot</em>") {
		t.Fatalf("comment markup was escaped")
	}
	if !strings.Contains(page, "&lt;i&gt;name") {
		t.Fatalf("name not escaped")
	}
	if !strings.Contains(page, "&lt;u&gt;ser") {
		t.Fatalf("comment author not escaped")
	}
	tagIndex := readPage(t, out, "tags", "index.html")
	if !strings.Contains(tagIndex, "&lt;b&gt;bold") {
		t.Fatalf("tag name not escaped")
	}
}

func TestRender_SearchData(t *testing.T) {
	out := t.TempDir()
	a := New(siteCfg(t, out))
	p := rec("a", "pic", "2021-03-01 10:00:00", "sunset", "beach")
	p.Description = template.HTML(`<a href="https://example.com">link</a> plus ` + strings.Repeat("x", 300))
	if _, err := a.Render([]*model.PhotoRecord{p}); err != nil {
		t.Fatalf("render: %v", err)
	}
	index := readPage(t, out, "index.html")
	if !strings.Contains(index, `data-tags="sunset,beach"`) {
		t.Fatalf("data-tags missing")
	}
	start := strings.Index(index, `data-desc="`)
	if start < 0 {
		t.Fatalf("data-desc missing")
	}
	start += len(`data-desc="`)
	desc := index[start : start+strings.Index(index[start:], `"`)]
	if strings.Contains(desc, "<a") || strings.Contains(desc, "href") {
		t.Fatalf("markup leaked into search text: %q", desc)
	}
	if len([]rune(desc)) != searchDescLimit {
		t.Fatalf("search text len=%d want %d", len([]rune(desc)), searchDescLimit)
	}
	if _, err := os.Stat(filepath.Join(out, "assets", "search.js")); err != nil {
		t.Fatalf("search.js not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "assets", "style.css")); err != nil {
		t.Fatalf("style.css not written: %v", err)
	}
}

func TestRender_Feed(t *testing.T) {
	out := t.TempDir()
	cfg := siteCfg(t, out)
	cfg.FeedNum = 2
	a := New(cfg)
	recs := []*model.PhotoRecord{
		rec("a", "newest", "2021-03-01 10:00:00"),
		rec("b", "middle", "2021-02-01 10:00:00"),
		rec("c", "oldest", "2021-01-01 10:00:00"),
	}
	if _, err := a.Render(recs); err != nil {
		t.Fatalf("render: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(out, "feed.xml"))
	if err != nil {
		t.Fatalf("read feed: %v", err)
	}
	feed, err := gofeed.NewParser().ParseString(string(b))
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	if feed.Title != "Test Archive" {
		t.Fatalf("feed title=%q", feed.Title)
	}
	if len(feed.Items) != 2 {
		t.Fatalf("feed items=%d want FeedNum cap 2", len(feed.Items))
	}
	if feed.Items[0].Title != "newest" {
		t.Fatalf("first item=%q", feed.Items[0].Title)
	}
	if feed.Items[0].UpdatedParsed == nil || feed.Items[0].UpdatedParsed.Year() != 2021 {
		t.Fatalf("item updated not parsed from capture time: %+v", feed.Items[0].Updated)
	}
	if feed.Items[0].Link != "photos/a/" {
		t.Fatalf("item link=%q", feed.Items[0].Link)
	}
}

func TestYearOf(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2021-03-01 10:00:00", "2021"},
		{"", "unknown"},
		{"99", "99"},
	}
	for _, c := range cases {
		if got := yearOf(c.in); got != c.want {
			t.Fatalf("yearOf(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestGeoRendering(t *testing.T) {
	out := t.TempDir()
	a := New(siteCfg(t, out))
	p := rec("a", "located", "2021-03-01 10:00:00")
	p.Geo = []model.Geo{{Latitude: 51507400, Longitude: -127600}}
	if _, err := a.Render([]*model.PhotoRecord{p}); err != nil {
		t.Fatalf("render: %v", err)
	}
	page := readPage(t, out, "photos", "a", "index.html")
	if !strings.Contains(page, "lat 51.5074") || !strings.Contains(page, "lon -0.1276") {
		t.Fatalf("geo coordinates not converted to decimal degrees")
	}
}
