// 包 media 负责媒体物化阶段：
// - 按文件索引回填记录的可用性/媒体类型/输出路径字段
// - 复制“原件”，生成固定尺寸的正方形缩略图
// - 视频先抓取远端海报帧再按同一流程出缩略图
// 逐条失败只告警不中断；输出路径按 ID 互斥，可安全并发。
package media

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/nfnt/resize"

	"go-photo-archive/internal/config"
	"go-photo-archive/internal/fetch"
	"go-photo-archive/internal/logx"
	"go-photo-archive/internal/model"
	"go-photo-archive/internal/store"
)

// Processor 持有配置/HTTP 客户端/可选的构建报告存储。
type Processor struct {
	cfg   *config.Config
	fetch *fetch.Client
	store *store.SQLite // 可为 nil：不记录构建报告
}

// Summary 为媒体阶段的汇总结果。
type Summary struct {
	Total       int
	Visible     int
	Missing     int
	ThumbFailed int
}

// New 创建 Processor。
func New(cfg *config.Config, cl *fetch.Client, st *store.SQLite) *Processor {
	return &Processor{cfg: cfg, fetch: cl, store: st}
}

// tally 汇总进度与计数；媒体阶段并发时由互斥锁保护。
type tally struct {
	mu          sync.Mutex
	done        int
	missing     int
	visible     int
	thumbFailed int
}

func (t *tally) miss() {
	t.mu.Lock()
	t.missing++
	t.mu.Unlock()
}

func (t *tally) see() {
	t.mu.Lock()
	t.visible++
	t.mu.Unlock()
}

func (t *tally) thumbFail() {
	t.mu.Lock()
	t.thumbFailed++
	t.mu.Unlock()
}

// finish 记一次完成并返回是否该打印进度。
func (t *tally) finish(every, total int) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done++
	return t.done, t.done%every == 0 || t.done == total
}

// Process 对每条记录执行匹配/复制/缩略图流程，返回汇总。
// 并发度由 CONCURRENCY.process 控制，默认 1 即与参考行为完全一致。
func (p *Processor) Process(ctx context.Context, records []*model.PhotoRecord, index map[string]string) Summary {
	total := len(records)
	t := &tally{}
	sem := make(chan struct{}, p.cfg.Concurrency.Process)
	var wg sync.WaitGroup
	for i, rec := range records {
		i, rec := i, rec
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			p.processOne(ctx, i, total, rec, index[rec.ID], t)
			if done, report := t.finish(p.cfg.ProgressEvery, total); report {
				logx.Infof("[%d/%d] 已处理", done, total)
			}
		}()
	}
	wg.Wait()
	return Summary{Total: total, Visible: t.visible, Missing: t.missing, ThumbFailed: t.thumbFailed}
}

// processOne 处理单条记录；src 为空表示索引无匹配。
func (p *Processor) processOne(ctx context.Context, i, total int, rec *model.PhotoRecord, src string, t *tally) {
	if src == "" {
		rec.HasFile = false
		t.miss()
		logx.Warnf("[%d/%d] 缺少媒体文件：id=%s 名称=%q", i+1, total, rec.ID, rec.Name)
		p.report(ctx, rec, "none")
		return
	}

	rec.HasFile = true
	rec.SrcPath = src
	rec.Ext = strings.ToLower(filepath.Ext(src))
	rec.IsImage = p.cfg.IsImage(rec.Ext)
	rec.IsVideo = p.cfg.IsVideo(rec.Ext)
	t.see()

	outDir := filepath.Join(p.cfg.OutputDir, "photos", rec.ID)
	// MkdirAll 对并发创建同样幂等，无需先探测存在性
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.thumbFail()
		logx.Warnf("[%d/%d] 创建输出目录失败：id=%s 错误=%v", i+1, total, rec.ID, err)
		p.report(ctx, rec, "fail")
		return
	}

	originalDst := filepath.Join(outDir, "original"+rec.Ext)
	if !exists(originalDst) {
		if err := copyFile(rec.SrcPath, originalDst); err != nil {
			t.thumbFail()
			logx.Warnf("[%d/%d] 复制原件失败：id=%s 错误=%v", i+1, total, rec.ID, err)
			p.report(ctx, rec, "fail")
			return
		}
	}

	thumbDst := filepath.Join(outDir, "thumb.jpg")
	status := "skip"
	switch {
	case rec.IsImage && !exists(thumbDst):
		if err := p.makeThumbnail(rec.SrcPath, thumbDst); err != nil {
			t.thumbFail()
			status = "fail"
			logx.Warnf("[%d/%d] 缩略图生成失败：id=%s 错误=%v", i+1, total, rec.ID, err)
		} else {
			status = "ok"
		}
	case rec.IsVideo && !exists(thumbDst):
		if err := p.videoThumbnail(ctx, i, total, rec, outDir, thumbDst); err != nil {
			t.thumbFail()
			status = "fail"
			logx.Warnf("[%d/%d] 视频海报处理失败：id=%s 错误=%v", i+1, total, rec.ID, err)
		} else {
			status = "ok"
		}
	}
	p.report(ctx, rec, status)
}

// videoThumbnail 先把海报帧原样落盘一次（poster.jpg），再走统一的裁剪/缩放流程。
// 海报 URL 缺失按无事发生处理：原件照常保留，只是没有缩略图。
func (p *Processor) videoThumbnail(ctx context.Context, i, total int, rec *model.PhotoRecord, outDir, thumbDst string) error {
	if rec.Original == "" {
		return nil
	}
	posterDst := filepath.Join(outDir, "poster.jpg")
	if !exists(posterDst) {
		logx.Infof("[%d/%d] 下载视频海报：id=%s", i+1, total, rec.ID)
		b, err := p.fetch.Download(ctx, rec.Original, 0)
		if err != nil {
			return fmt.Errorf("fetch poster: %w", err)
		}
		if err := os.WriteFile(posterDst, b, 0o644); err != nil {
			return fmt.Errorf("write poster: %w", err)
		}
	}
	if err := p.makeThumbnail(posterDst, thumbDst); err != nil {
		return fmt.Errorf("thumbnail poster: %w", err)
	}
	return nil
}

// makeThumbnail 解码 → 统一到 RGBA → 取最大中心正方形 → Lanczos 缩放 → JPEG 编码。
// 裁剪先于缩放、重采样滤波器与编码质量均需与既有产物保持一致。
func (p *Processor) makeThumbnail(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}

	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	square := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(square, square.Bounds(), img, image.Pt(x0, y0), draw.Src)

	size := uint(p.cfg.ThumbSize)
	thumb := resize.Resize(size, size, square, resize.Lanczos3)

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()
	if err := jpeg.Encode(out, thumb, &jpeg.Options{Quality: p.cfg.ThumbQuality}); err != nil {
		return fmt.Errorf("encode %s: %w", dst, err)
	}
	return nil
}

// report 在启用构建报告时记录单条处理结果；失败只告警。
func (p *Processor) report(ctx context.Context, rec *model.PhotoRecord, thumb string) {
	if p.store == nil {
		return
	}
	row := store.RecordRow{
		ID:        rec.ID,
		Name:      rec.Name,
		Ext:       rec.Ext,
		Media:     mediaKind(rec),
		HasFile:   rec.HasFile,
		Thumb:     thumb,
		UpdatedAt: time.Now(),
	}
	if err := p.store.UpsertRecord(ctx, row); err != nil {
		logx.Warnf("写入构建报告失败：id=%s 错误=%v", rec.ID, err)
	}
}

func mediaKind(rec *model.PhotoRecord) string {
	switch {
	case rec.IsImage:
		return "image"
	case rec.IsVideo:
		return "video"
	default:
		return "other"
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return nil
}
