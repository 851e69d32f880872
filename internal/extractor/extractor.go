// Package extractor turns spreadsheet exports (CSV or TSV) into verified
// business records. Rows are mapped onto a fixed 12-column layout and run
// through a prioritized list of validity and repair rules.
package extractor

import (
	"fmt"
	"io"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ggorockee/happyhours/internal/category"
	"github.com/ggorockee/happyhours/internal/logger"
	"github.com/ggorockee/happyhours/pkg/models"
)

const (
	// SourceSpreadsheet verificationData.source 값
	SourceSpreadsheet = "spreadsheet"
	// VerifiedByAdmin verificationData.verifiedBy 값
	VerifiedByAdmin = "admin"

	minVerifiedRating = 4.2
	ratingSpread      = 0.8
)

// ErrNoData 입력에 행이 하나도 없을 때의 에러 메시지
const ErrNoData = "No data found"

var slugPattern = regexp.MustCompile(`[^a-z0-9]`)

// Result 추출 결과
type Result struct {
	Records []models.BusinessRecord `json:"businesses"`
	Errors  []string                `json:"errors"`
	Summary models.UploadSummary    `json:"summary"`
}

// Extractor 스프레드시트 텍스트 → 검증 레코드 변환기
type Extractor struct {
	region Region
	mu     sync.Mutex // rng 보호
	rng    *rand.Rand
	now    func() time.Time
	log    *zap.SugaredLogger
}

// Option Extractor 설정
type Option func(*Extractor)

// WithRand 좌표/평점 생성용 난수원 지정 (테스트용)
func WithRand(rng *rand.Rand) Option {
	return func(e *Extractor) { e.rng = rng }
}

// WithClock 현재 시각 함수 지정 (테스트용)
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// New 새로운 Extractor 생성
func New(region Region, opts ...Option) *Extractor {
	e := &Extractor{
		region: region,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
		log:    logger.GetLogger("extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Region 설정된 지역
func (e *Extractor) Region() Region {
	return e.region
}

// Extract reads the whole input and extracts records. A read failure
// aborts the batch with a single top-level error.
func (e *Extractor) Extract(r io.Reader) Result {
	data, err := io.ReadAll(r)
	if err != nil {
		e.log.Errorf("입력 읽기 실패: %v", err)
		return Result{
			Errors:  []string{fmt.Sprintf("Failed to read input: %v", err)},
			Summary: models.UploadSummary{Errors: 1},
		}
	}
	return e.ExtractText(string(data))
}

// ExtractText 원본 텍스트에서 레코드 추출
func (e *Extractor) ExtractText(text string) Result {
	lines := splitLines(text)
	if len(lines) == 0 {
		return Result{
			Errors:  []string{ErrNoData},
			Summary: models.UploadSummary{Errors: 1},
		}
	}

	headerWidth := 0
	if cells, _, err := splitCells(lines[0]); err == nil {
		headerWidth = len(cells)
	}
	dataLines := lines[1:]

	result := Result{
		Records: []models.BusinessRecord{},
		Errors:  []string{},
	}
	batchTime := e.now()

	for i, line := range dataLines {
		rowNumber := i + 2 // 헤더가 1행

		row, err := parseRow(line, headerWidth)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNumber, err))
			continue
		}

		if row.IsEmpty() {
			continue
		}

		id, skip := resolveIdentity(row, e.region)
		if skip {
			e.log.Debugf("Row %d: 이름/주소 모두 없음, 건너뜀", rowNumber)
			continue
		}

		if !id.acceptable() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Row %d: Unable to extract valid name and address", rowNumber))
			continue
		}

		result.Records = append(result.Records, e.buildRecord(row, id, i, batchTime))
	}

	result.Summary = models.UploadSummary{
		Total:     len(dataLines),
		Processed: len(result.Records),
		Errors:    len(result.Errors),
	}

	e.log.Infof("추출 완료: 전체 %d행, 성공 %d, 에러 %d",
		result.Summary.Total, result.Summary.Processed, result.Summary.Errors)

	return result
}

// buildRecord 보정된 행 → BusinessRecord
func (e *Extractor) buildRecord(row models.RawRow, id identity, index int, at time.Time) models.BusinessRecord {
	cat := category.Infer(id.Name, id.Description)
	recordID := fmt.Sprintf("verified_%s_%d_%d",
		slugPattern.ReplaceAllString(strings.ToLower(id.Name), "_"), at.UnixMilli(), index)

	image := row.Picture
	if image == "" {
		image = category.DefaultImage(cat)
	}

	b := e.region.Bounds
	lat := b.South + e.float()*(b.North-b.South)
	lng := b.West + e.float()*(b.East-b.West)

	return models.BusinessRecord{
		ID:          recordID,
		Name:        id.Name,
		Description: id.Description,
		Image:       image,
		Location: models.Location{
			Latitude:  lat,
			Longitude: lng,
			Address:   id.Address,
		},
		Category:        cat,
		Rating:          minVerifiedRating + e.float()*ratingSpread,
		CurrentDiscount: e.buildDiscount(recordID, id, row, at),
		IsActive:        true,
		IsVerified:      true,
		VerificationData: &models.VerificationData{
			Source:       SourceSpreadsheet,
			VerifiedAt:   at,
			VerifiedBy:   VerifiedByAdmin,
			OriginalData: row,
			GoogleMarker: row.GoogleMarker,
			Logo:         row.Logo,
			Telephone:    row.Telephone,
			Website:      row.GoogleMarker,
			Remarks:      row.Remark,
			LastUpdate:   row.Update,
		},
	}
}

func (e *Extractor) float() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()
}

// buildDiscount 해피아워 시간 + 설명/이름 기반 할인 생성
func (e *Extractor) buildDiscount(businessID string, id identity, row models.RawRow, at time.Time) *models.DiscountOffer {
	from, to := NormalizeWindow(row.HappyHourStart, row.HappyHourEnd)
	offer := chooseOffer(id.Name, id.Description)

	return &models.DiscountOffer{
		ID:          fmt.Sprintf("discount_%d_%s", at.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:9]),
		BusinessID:  businessID,
		Title:       offer.Title,
		Description: offer.Description,
		Percentage:  offer.Percentage,
		ValidFrom:   from,
		ValidTo:     to,
		IsActive:    true,
	}
}
