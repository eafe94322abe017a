// 命令行入口：
// - 解析 flags 与 settings.yaml（缺省即默认值，零参数可运行）
// - 初始化日志、HTTP 客户端、可选的构建报告数据库
// - 支持仅索引元数据的调试模式（-dry）与 data.json 清单导出（-export）
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go-photo-archive/internal/config"
	"go-photo-archive/internal/export"
	"go-photo-archive/internal/fetch"
	"go-photo-archive/internal/files"
	"go-photo-archive/internal/logx"
	"go-photo-archive/internal/photos"
	"go-photo-archive/internal/pipeline"
	"go-photo-archive/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "settings.yaml", "path to settings.yaml (optional)")
		exportPath = flag.String("export", "", "also write a data.json manifest to this path")
		dry        = flag.Bool("dry", false, "load metadata and file index, print match stats and exit")
	)
	flag.Parse()

	// 1) 加载配置（文件不存在时使用默认值）
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 2) 初始化日志：级别/格式/语言/颜色
	logx.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogLocale, cfg.LogColor)

	// 3) 初始化 HTTP 客户端（海报帧下载用，含代理与可选重试）
	cl, err := fetch.New(fetch.Options{
		ProxyHTTP:  cfg.Proxy.HTTP,
		ProxyHTTPS: cfg.Proxy.HTTPS,
		Timeout:    time.Duration(cfg.FetchTimeoutSec) * time.Second,
		Retry:      cfg.Concurrency.Retry,
	})
	if err != nil {
		log.Fatalf("http client: %v", err)
	}

	ctx := context.Background()
	if *dry {
		// 4) 调试：只建索引、只读元数据，打印匹配情况后退出
		index, err := files.Build(cfg.InputDir)
		if err != nil {
			log.Fatalf("build file index: %v", err)
		}
		records, err := photos.Load(cfg.InputDir)
		if err != nil {
			log.Fatalf("load photos: %v", err)
		}
		matched := 0
		for _, rec := range records {
			if _, ok := index[rec.ID]; ok {
				matched++
			} else {
				logx.Warnf("无媒体文件：id=%s 名称=%q", rec.ID, rec.Name)
			}
		}
		logx.Infof("记录 %d 条，媒体文件 %d 个，匹配 %d 条", len(records), len(index), matched)
		return
	}

	// 5) 可选的构建报告数据库
	var st *store.SQLite
	if cfg.BuildReport {
		st, err = store.OpenSQLite(cfg.Database.DSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer st.Close()
	}

	// 6) 运行完整构建
	run := pipeline.New(cfg, st, cl)
	if err := run.Run(ctx); err != nil {
		logx.Errorf("构建失败：%v", err)
		os.Exit(1)
	}

	// 7) 可选导出 data.json 清单
	if *exportPath != "" {
		stats, records := run.SiteData()
		if err := export.ToJSON(stats, records, *exportPath); err != nil {
			log.Fatalf("export json: %v", err)
		}
		logx.Infof("已导出 %s", *exportPath)
	}

	logx.Infof("完成！站点已写入 %s/", cfg.OutputDir)
}
