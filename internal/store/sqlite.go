// 包 store 提供可选的构建报告存储（SQLite）：逐条媒体处理结果与每轮运行汇总。
// 站点本身不依赖任何持久化状态，每轮全量重建；报告仅用于排查大规模构建。
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite 封装 *sql.DB，基于 modernc.org/sqlite（纯 Go 实现）。
type SQLite struct {
	db *sql.DB
}

// RecordRow 为单条记录的处理结果。
// Thumb 取值：ok（本轮生成）/skip（已存在或无需生成）/fail/none（无媒体文件）。
type RecordRow struct {
	ID        string
	Name      string
	Ext       string
	Media     string // image|video|other
	HasFile   bool
	Thumb     string
	UpdatedAt time.Time
}

// RunRow 为一轮构建的汇总。
type RunRow struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Visible    int
	Missing    int
	ThumbFail  int
}

// Summary 为跨轮查询出的当前报告状态。
type Summary struct {
	Records int
	Missing int
	Runs    int
}

// OpenSQLite 打开数据库并执行自动迁移。
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// migrate 执行建表语句，保持幂等。
func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
            id TEXT UNIQUE,
            name TEXT,
            ext TEXT,
            media TEXT,
            has_file INTEGER,
            thumb TEXT,
            updated_at TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS runs (
            started_at TIMESTAMP,
            finished_at TIMESTAMP,
            total INTEGER,
            visible INTEGER,
            missing INTEGER,
            thumb_fail INTEGER
        );`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("exec migrate: %w", err)
		}
	}
	return nil
}

// Reset 清空报告数据表（不删除数据库文件）。
func (s *SQLite) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("delete runs: %w", err)
	}
	return nil
}

// UpsertRecord 插入或更新单条记录的处理结果（id 唯一约束）。
func (s *SQLite) UpsertRecord(ctx context.Context, r RecordRow) error {
	if r.ID == "" {
		return errors.New("record.id required")
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO records(id, name, ext, media, has_file, thumb, updated_at)
        VALUES(?,?,?,?,?,?,?)
        ON CONFLICT(id) DO UPDATE SET name=excluded.name, ext=excluded.ext, media=excluded.media,
            has_file=excluded.has_file, thumb=excluded.thumb, updated_at=excluded.updated_at`,
		r.ID, r.Name, r.Ext, r.Media, boolInt(r.HasFile), r.Thumb, nowOr(r.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", r.ID, err)
	}
	return nil
}

// AddRun 追加一轮构建汇总。
func (s *SQLite) AddRun(ctx context.Context, r RunRow) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO runs(started_at, finished_at, total, visible, missing, thumb_fail)
        VALUES(?,?,?,?,?,?)`,
		nowOr(r.StartedAt), nowOr(r.FinishedAt), r.Total, r.Visible, r.Missing, r.ThumbFail)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRecords 返回全部记录结果，缺文件的排前便于排查。
func (s *SQLite) ListRecords(ctx context.Context) ([]RecordRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, ext, media, has_file, thumb, updated_at
        FROM records ORDER BY has_file ASC, id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()
	var out []RecordRow
	for rows.Next() {
		var r RecordRow
		var hasFile int
		var updated sql.NullTime
		if err := rows.Scan(&r.ID, &r.Name, &r.Ext, &r.Media, &hasFile, &r.Thumb, &updated); err != nil {
			return nil, fmt.Errorf("scan records: %w", err)
		}
		r.HasFile = hasFile != 0
		if updated.Valid {
			r.UpdatedAt = updated.Time
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// Stats 统计当前报告规模。
func (s *SQLite) Stats(ctx context.Context) (Summary, error) {
	var sm Summary
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM records`).Scan(&sm.Records); err != nil {
		return sm, fmt.Errorf("count records: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM records WHERE has_file = 0`).Scan(&sm.Missing); err != nil {
		return sm, fmt.Errorf("count missing: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM runs`).Scan(&sm.Runs); err != nil {
		return sm, fmt.Errorf("count runs: %w", err)
	}
	return sm, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
