package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sngm3741/restaurant-directory/api/internal/ingest/domain"
)

const dataFileExt = ".json"

// FileStatus summarises what happened to one directory entry.
type FileStatus string

const (
	StatusLoaded      FileStatus = "loaded"
	StatusPartial     FileStatus = "partial"
	StatusSkipped     FileStatus = "skipped"
	StatusParseError  FileStatus = "parse_error"
	StatusNoRecords   FileStatus = "no_records"
	StatusAllExisting FileStatus = "all_existing"
	StatusInsertError FileStatus = "insert_error"
	StatusDryRun      FileStatus = "dry_run"
)

// FileResult is the per-file outcome of an ingestion run.
type FileResult struct {
	File         string
	Status       FileStatus
	Shape        domain.EnvelopeShape
	Extracted    int
	Normalized   int
	SyntheticIDs int
	Duplicates   int
	Existing     int
	New          int
	Inserted     int
	Failed       int
	Failures     []InsertFailure
	Err          error
}

// Report collects every FileResult of a run in directory order.
type Report struct {
	Files []FileResult
}

// Totals aggregates counters over all files.
func (r Report) Totals() FileResult {
	var total FileResult
	for _, f := range r.Files {
		total.Extracted += f.Extracted
		total.Normalized += f.Normalized
		total.SyntheticIDs += f.SyntheticIDs
		total.Duplicates += f.Duplicates
		total.Existing += f.Existing
		total.New += f.New
		total.Inserted += f.Inserted
		total.Failed += f.Failed
	}
	return total
}

// Count returns how many files ended with the given status.
func (r Report) Count(status FileStatus) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// LoaderConfig defines dependencies required by Loader.
type LoaderConfig struct {
	Store   RestaurantStore
	Logger  *log.Logger
	// Timeout bounds each store call. Zero leaves calls bounded only by the run context.
	Timeout time.Duration
	DryRun  bool
}

// Loader runs the directory → normalize → dedupe → reconcile → write pipeline, one file at a time.
type Loader struct {
	store   RestaurantStore
	logger  *log.Logger
	timeout time.Duration
	dryRun  bool
}

// NewLoader constructs a Loader.
func NewLoader(cfg LoaderConfig) *Loader {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[restaurant-loader] ", log.LstdFlags)
	}
	return &Loader{
		store:   cfg.Store,
		logger:  logger,
		timeout: cfg.Timeout,
		dryRun:  cfg.DryRun,
	}
}

// Run processes every data file in dir sequentially.
// 返すエラーは実行全体を中断すべきもの (ディレクトリ読み込み失敗・ストア接続断) のみ。
// ファイル単位・レコード単位の失敗は Report に記録して次へ進む。
func (l *Loader) Run(ctx context.Context, dir string) (Report, error) {
	var report Report

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("データディレクトリ %s の読み込みに失敗: %w", dir, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		name := entry.Name()
		if entry.IsDir() || !isDataFile(name) {
			l.logger.Printf("スキップ: %s (JSON ファイルではありません)", name)
			report.Files = append(report.Files, FileResult{File: name, Status: StatusSkipped})
			continue
		}

		result, err := l.LoadFile(ctx, filepath.Join(dir, name))
		report.Files = append(report.Files, result)
		if err != nil {
			return report, err
		}
	}

	l.logSummary(report)
	return report, nil
}

// LoadFile pushes one file through the whole pipeline.
func (l *Loader) LoadFile(ctx context.Context, path string) (FileResult, error) {
	name := filepath.Base(path)
	result := FileResult{File: name}
	l.logger.Printf("ファイル読み込み開始: %s", name)

	doc, err := readDocument(path)
	if err != nil {
		result.Status = StatusParseError
		result.Err = err
		l.logger.Printf("%s の JSON 解析に失敗しました: %v", name, err)
		return result, nil
	}

	ext := domain.ExtractRecords(doc)
	result.Shape = ext.Shape
	result.Extracted = len(ext.Records)
	if ext.Skipped > 0 {
		l.logger.Printf("%s: restaurant を持たないエントリ %d 件を無視しました", name, ext.Skipped)
	}
	if diag := ext.Diagnostic(); diag != "" {
		result.Status = StatusNoRecords
		l.logger.Printf("警告: %s をスキップします (%s)", name, diag)
		return result, nil
	}

	records := make([]domain.Restaurant, 0, len(ext.Records))
	for _, raw := range ext.Records {
		r := domain.Normalize(raw)
		if domain.IsSynthetic(r.RestaurantID) {
			result.SyntheticIDs++
		}
		records = append(records, r)
	}
	result.Normalized = len(records)
	if result.SyntheticIDs > 0 {
		l.logger.Printf("%s: id を持たないレコード %d 件に内容由来の id を付与しました", name, result.SyntheticIDs)
	}

	unique, dropped := Dedupe(records)
	result.Duplicates = dropped

	reconcileCtx, cancel := l.operationContext(ctx)
	fresh, existing, err := Reconcile(reconcileCtx, l.store, unique)
	cancel()
	if err != nil {
		return result, fmt.Errorf("%s の既存レコード照合に失敗: %w", name, err)
	}
	result.Existing = existing
	result.New = len(fresh)

	if len(fresh) == 0 {
		result.Status = StatusAllExisting
		l.logger.Printf("%s: 全 %d 件が登録済みのためスキップします", name, len(unique))
		return result, nil
	}
	if l.dryRun {
		result.Status = StatusDryRun
		l.logger.Printf("%s: dry-run のため %d 件の挿入を省略しました", name, len(fresh))
		return result, nil
	}

	writeCtx, cancel := l.operationContext(ctx)
	inserted, err := Write(writeCtx, l.store, fresh)
	cancel()
	if err != nil {
		result.Err = err
		if errors.Is(err, ErrStoreUnavailable) {
			result.Status = StatusInsertError
			result.Inserted = len(inserted.Inserted)
			result.Failed = len(inserted.Failed)
			result.Failures = inserted.Failed
			return result, fmt.Errorf("%s の挿入中にストアへ接続できませんでした: %w", name, err)
		}
		l.logger.Printf("%s の挿入に失敗しました: %v", name, err)
		inserted = l.settle(ctx, name, inserted)
	}
	result.Inserted = len(inserted.Inserted)
	result.Failed = len(inserted.Failed)
	result.Failures = inserted.Failed

	if inserted.WriteConcern != "" {
		l.logger.Printf("%s: 書き込み確認 (write concern) でエラーが返されました: %s", name, inserted.WriteConcern)
	}
	for _, failure := range inserted.Failed {
		l.logger.Printf("%s: restaurant_id=%q の挿入に失敗: %s", name, failure.RestaurantID, failure.Reason)
	}

	switch {
	case result.Failed == 0:
		result.Status = StatusLoaded
	case result.Inserted == 0:
		result.Status = StatusInsertError
	default:
		result.Status = StatusPartial
	}
	l.logger.Printf("%s: 新規 %d 件を挿入しました (失敗 %d 件)", name, result.Inserted, result.Failed)
	return result, nil
}

// operationContext は Timeout が設定されている場合のみストア操作に期限を付ける。
func (l *Loader) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, l.timeout)
}

// settle re-checks the failed ids after an interrupted unordered insert, since part of the batch may have been committed.
func (l *Loader) settle(ctx context.Context, name string, inserted InsertResult) InsertResult {
	if len(inserted.Failed) == 0 {
		return inserted
	}
	ids := make([]string, 0, len(inserted.Failed))
	for _, failure := range inserted.Failed {
		ids = append(ids, failure.RestaurantID)
	}

	checkCtx, cancel := l.operationContext(ctx)
	stored, err := l.store.ExistingRestaurantIDs(checkCtx, ids)
	cancel()
	if err != nil {
		l.logger.Printf("%s: 挿入結果の再確認に失敗しました: %v", name, err)
		return inserted
	}

	settled := InsertResult{Inserted: append([]string(nil), inserted.Inserted...)}
	for _, failure := range inserted.Failed {
		if _, ok := stored[failure.RestaurantID]; ok {
			settled.Inserted = append(settled.Inserted, failure.RestaurantID)
			continue
		}
		settled.Failed = append(settled.Failed, failure)
	}
	return settled
}

func (l *Loader) logSummary(report Report) {
	total := report.Totals()
	l.logger.Printf(
		"全ファイルの処理が完了しました: files=%d loaded=%d partial=%d parseErrors=%d noRecords=%d inserted=%d existing=%d duplicates=%d failed=%d",
		len(report.Files),
		report.Count(StatusLoaded),
		report.Count(StatusPartial),
		report.Count(StatusParseError),
		report.Count(StatusNoRecords),
		total.Inserted,
		total.Existing,
		total.Duplicates,
		total.Failed,
	)
}

func isDataFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), dataFileExt)
}

func readDocument(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return domain.DecodeDocument(f)
}
