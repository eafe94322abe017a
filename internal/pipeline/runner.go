// 包 pipeline 负责主流程编排：严格按
// 解压 → 文件索引 → 元数据加载 → 媒体物化 → 站点组装
// 的顺序执行，每一阶段消费上一阶段的完整输出（无流式衔接）。
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go-photo-archive/internal/config"
	"go-photo-archive/internal/extract"
	"go-photo-archive/internal/fetch"
	"go-photo-archive/internal/files"
	"go-photo-archive/internal/logx"
	"go-photo-archive/internal/media"
	"go-photo-archive/internal/model"
	"go-photo-archive/internal/photos"
	"go-photo-archive/internal/site"
	"go-photo-archive/internal/store"
)

// Runner 构建执行器，持有配置/可选存储/HTTP 客户端。
type Runner struct {
	cfg   *config.Config
	store *store.SQLite
	fetch *fetch.Client

	stats   *model.SiteStats
	records []*model.PhotoRecord
}

// New 创建 Runner；st 为 nil 时不写构建报告。
func New(cfg *config.Config, st *store.SQLite, cl *fetch.Client) *Runner {
	return &Runner{cfg: cfg, store: st, fetch: cl}
}

// Run 执行一轮完整构建；任何致命错误向上返回，由入口统一退出。
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()

	logx.Infof("第 1 步：解压导出包...")
	if err := extract.Run(r.cfg.InputDir); err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	logx.Infof("第 2 步：加载元数据...")
	records, err := photos.Load(r.cfg.InputDir)
	if err != nil {
		return fmt.Errorf("load photos: %w", err)
	}

	logx.Infof("第 3 步：建立媒体文件索引...")
	index, err := files.Build(r.cfg.InputDir)
	if err != nil {
		return fmt.Errorf("build file index: %w", err)
	}
	logx.Infof("已索引 %d 个媒体文件", len(index))

	logx.Infof("第 4 步：物化媒体（原件 + 缩略图）...")
	proc := media.New(r.cfg, r.fetch, r.store)
	sum := proc.Process(ctx, records, index)
	if sum.Missing > 0 {
		logx.Warnf("共有 %d 条记录未匹配到媒体文件", sum.Missing)
	}

	logx.Infof("第 5 步：生成站点...")
	stats, err := site.New(r.cfg).Render(records)
	if err != nil {
		return fmt.Errorf("render site: %w", err)
	}
	r.stats = stats
	r.records = records

	if r.store != nil {
		run := store.RunRow{
			StartedAt:  start,
			FinishedAt: time.Now(),
			Total:      sum.Total,
			Visible:    sum.Visible,
			Missing:    sum.Missing,
			ThumbFail:  sum.ThumbFailed,
		}
		if err := r.store.AddRun(ctx, run); err != nil {
			logx.Warnf("写入运行汇总失败：%v", err)
		}
	}
	return nil
}

// SiteData 返回本轮构建的统计与记录（含不可见记录），供入口侧导出清单。
func (r *Runner) SiteData() (*model.SiteStats, []*model.PhotoRecord) {
	if r == nil {
		return nil, nil
	}
	return r.stats, r.records
}
