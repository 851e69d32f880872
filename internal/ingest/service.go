// Package ingest runs a spreadsheet export through the extractor and
// persists the result together with an upload history entry.
package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/ggorockee/happyhours/internal/extractor"
	"github.com/ggorockee/happyhours/internal/logger"
	"github.com/ggorockee/happyhours/internal/telemetry"
	"github.com/ggorockee/happyhours/internal/verified"
	"github.com/ggorockee/happyhours/pkg/models"
)

// Options 업로드 옵션
type Options struct {
	// Replace 기존 레코드 집합을 덮어씀
	// false면 id 또는 (이름, 주소)가 같은 레코드를 교체하고 나머지는 추가
	Replace bool
}

// Service 업로드 처리 서비스
type Service struct {
	extractor *extractor.Extractor
	repo      *verified.Repository
	telemetry *telemetry.Telemetry
	now       func() time.Time
	log       *zap.SugaredLogger
}

// NewService 새로운 Service 생성 (tel은 nil 가능)
func NewService(ex *extractor.Extractor, repo *verified.Repository, tel *telemetry.Telemetry) *Service {
	return &Service{
		extractor: ex,
		repo:      repo,
		telemetry: tel,
		now:       time.Now,
		log:       logger.GetLogger("ingest"),
	}
}

// Import extracts records from r and stores them. Row problems end up in
// the returned result; only persistence failures are returned as errors.
func (s *Service) Import(ctx context.Context, r io.Reader, opts Options) (extractor.Result, error) {
	start := time.Now()
	region := s.extractor.Region().Name

	ctx, span := s.telemetry.StartSpan(ctx, "ingest.import")
	defer span.End()
	span.SetAttributes(
		attribute.String("region", region),
		attribute.Bool("replace", opts.Replace),
	)

	data, err := io.ReadAll(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return s.extractor.Extract(failedReader{err}), fmt.Errorf("failed to read upload: %w", err)
	}

	result := s.extractor.ExtractText(string(data))
	span.SetAttributes(
		attribute.Int("rows.total", result.Summary.Total),
		attribute.Int("rows.processed", result.Summary.Processed),
		attribute.Int("rows.errors", result.Summary.Errors),
	)

	var persistErr error
	if len(result.Records) > 0 {
		if opts.Replace {
			persistErr = s.repo.SaveAll(ctx, result.Records)
		} else {
			persistErr = s.repo.Merge(ctx, result.Records...)
		}
	}

	// 저장 실패 여부와 관계없이 이력은 남김
	historyErr := s.repo.AppendHistory(ctx, historyEntry(result, s.now()))
	if historyErr != nil {
		s.log.Errorf("업로드 이력 저장 실패: %v", historyErr)
	}

	if persistErr != nil {
		span.RecordError(persistErr)
		span.SetStatus(codes.Error, "persist failed")
		s.log.Errorf("레코드 저장 실패: %v", persistErr)
		return result, fmt.Errorf("failed to persist records: %w", persistErr)
	}
	if historyErr != nil {
		span.RecordError(historyErr)
		span.SetStatus(codes.Error, "history failed")
		return result, historyErr
	}

	s.telemetry.RecordIngest(ctx, region, result.Summary, time.Since(start))
	s.log.Infow("Import finished",
		"region", region,
		"replace", opts.Replace,
		"total", result.Summary.Total,
		"processed", result.Summary.Processed,
		"errors", result.Summary.Errors,
	)

	return result, nil
}

func historyEntry(result extractor.Result, at time.Time) models.UploadHistoryEntry {
	refs := make([]models.BusinessRef, 0, len(result.Records))
	for _, rec := range result.Records {
		refs = append(refs, models.BusinessRef{ID: rec.ID, Name: rec.Name})
	}

	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}

	return models.UploadHistoryEntry{
		Timestamp:     at,
		TotalRows:     result.Summary.Total,
		ProcessedRows: result.Summary.Processed,
		Errors:        result.Summary.Errors,
		ErrorMessages: errs,
		Businesses:    refs,
	}
}

// failedReader 읽기 실패를 extractor 결과 형식으로 전달
type failedReader struct{ err error }

func (f failedReader) Read([]byte) (int, error) { return 0, f.err }
