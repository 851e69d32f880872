// Package aggregator merges verified records with live provider results
// into a single ranked list of nearby places.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/ggorockee/happyhours/internal/category"
	"github.com/ggorockee/happyhours/internal/geo"
	"github.com/ggorockee/happyhours/internal/googleplaces"
	"github.com/ggorockee/happyhours/internal/logger"
	"github.com/ggorockee/happyhours/internal/telemetry"
	"github.com/ggorockee/happyhours/pkg/models"
)

const (
	DefaultRadius = 50000 // meters
	MaxResults    = 30

	defaultProviderRating = 4.0
	// dedupeDelta 같은 장소로 보는 좌표 차이 (도)
	dedupeDelta = 0.001
)

// ErrSearchUnavailable is the caller-facing error for any unrecoverable
// search failure.
var ErrSearchUnavailable = errors.New("Unable to search for places. Please check your internet connection.")

// Query 검색 조건
type Query struct {
	Latitude  float64
	Longitude float64
	Radius    int             // meters, 0이면 DefaultRadius
	Category  models.Category // 비어 있거나 All이면 전체
	Text      string
}

// RecordLister 검증 레코드 조회
type RecordLister interface {
	List(ctx context.Context) ([]models.BusinessRecord, error)
}

// PlaceSearcher 외부 장소 검색
type PlaceSearcher interface {
	NearbySearch(ctx context.Context, req googleplaces.NearbyRequest) ([]googleplaces.Place, error)
}

// Aggregator 검증 레코드 + 외부 검색 결과 병합
type Aggregator struct {
	records   RecordLister
	places    PlaceSearcher // nil이면 외부 검색 생략
	telemetry *telemetry.Telemetry
	log       *zap.SugaredLogger
}

// New 새로운 Aggregator 생성 (places, tel은 nil 가능)
func New(records RecordLister, places PlaceSearcher, tel *telemetry.Telemetry) *Aggregator {
	return &Aggregator{
		records:   records,
		places:    places,
		telemetry: tel,
		log:       logger.GetLogger("aggregator"),
	}
}

// Search runs the local filter, optional provider augmentation, dedupe,
// cap and ranking steps.
func (a *Aggregator) Search(ctx context.Context, q Query) ([]models.BusinessRecord, error) {
	start := time.Now()
	if q.Radius <= 0 {
		q.Radius = DefaultRadius
	}

	ctx, span := a.telemetry.StartSpan(ctx, "aggregator.search")
	defer span.End()
	span.SetAttributes(
		attribute.Float64("query.lat", q.Latitude),
		attribute.Float64("query.lng", q.Longitude),
		attribute.Int("query.radius", q.Radius),
		attribute.String("query.category", string(q.Category)),
	)

	stored, err := a.records.List(ctx)
	if err != nil {
		a.log.Errorf("검증 레코드 조회 실패: %v", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "record read failed")
		a.telemetry.RecordSearch(ctx, 0, time.Since(start), err)
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}

	local := filterLocal(stored, q)
	external := a.augment(ctx, q)

	results := dedupe(append(local, external...))
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	rank(results, q.Latitude, q.Longitude)

	span.SetAttributes(
		attribute.Int("results.local", len(local)),
		attribute.Int("results.external", len(external)),
		attribute.Int("results.total", len(results)),
	)
	a.telemetry.RecordSearch(ctx, len(results), time.Since(start), nil)
	a.log.Debugf("검색 완료: local=%d external=%d total=%d", len(local), len(external), len(results))

	return results, nil
}

func matchesCategory(want, got models.Category) bool {
	return want == "" || want == models.CategoryAll || want == got
}

func matchesText(text string, r models.BusinessRecord) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	return strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.Description), needle)
}

// filterLocal 반경/카테고리/검색어/활성 여부로 필터
func filterLocal(records []models.BusinessRecord, q Query) []models.BusinessRecord {
	radiusKm := float64(q.Radius) / 1000
	out := make([]models.BusinessRecord, 0, len(records))
	for _, r := range records {
		d := geo.HaversineKm(q.Latitude, q.Longitude, r.Location.Latitude, r.Location.Longitude)
		if d <= radiusKm && matchesCategory(q.Category, r.Category) && matchesText(q.Text, r) && r.IsActive {
			out = append(out, r)
		}
	}
	return out
}

// augment 외부 검색 (실패 시 빈 목록)
func (a *Aggregator) augment(ctx context.Context, q Query) []models.BusinessRecord {
	if a.places == nil {
		return nil
	}

	req := googleplaces.NearbyRequest{
		Latitude:  q.Latitude,
		Longitude: q.Longitude,
		Radius:    q.Radius,
		Keyword:   q.Text,
	}
	if q.Category != "" && q.Category != models.CategoryAll {
		req.Type = category.PlaceType(q.Category)
	}

	places, err := a.places.NearbySearch(ctx, req)
	if err != nil {
		a.log.Warnf("Google Places 검색 실패: %v", err)
		a.telemetry.IncrementProviderCalls(ctx, "error")
		return nil
	}
	a.telemetry.IncrementProviderCalls(ctx, "ok")

	out := make([]models.BusinessRecord, 0, len(places))
	for _, p := range places {
		out = append(out, FromPlace(p))
	}
	return out
}

// FromPlace converts a provider place into an unverified record.
func FromPlace(p googleplaces.Place) models.BusinessRecord {
	cat := category.Infer(append([]string{p.Name}, p.Types...)...)

	address := p.Vicinity
	if address == "" {
		address = p.FormattedAddress
	}

	rating := defaultProviderRating
	if p.Rating != nil {
		rating = *p.Rating
	}

	return models.BusinessRecord{
		ID:          p.PlaceID,
		Name:        p.Name,
		Description: fmt.Sprintf("%s - %s in the area", p.Name, cat),
		Image:       category.DefaultImage(cat),
		Location: models.Location{
			Latitude:  p.Geometry.Location.Lat,
			Longitude: p.Geometry.Location.Lng,
			Address:   address,
		},
		Category:   cat,
		Rating:     rating,
		IsActive:   p.BusinessStatus == "OPERATIONAL",
		IsVerified: false,
	}
}

func isDuplicate(a, b models.BusinessRecord) bool {
	return strings.EqualFold(a.Name, b.Name) &&
		math.Abs(a.Location.Latitude-b.Location.Latitude) < dedupeDelta &&
		math.Abs(a.Location.Longitude-b.Location.Longitude) < dedupeDelta
}

// dedupe 목록 전체에서 처음으로 같다고 판정된 레코드가 자기 자신일 때만 유지
// 판정이 추이적이지 않으므로 (A~B, B~C) 이미 버려진 B와 같은 C도 버림
func dedupe(records []models.BusinessRecord) []models.BusinessRecord {
	out := make([]models.BusinessRecord, 0, len(records))
	for i, r := range records {
		first := i
		for j := 0; j < i; j++ {
			if isDuplicate(records[j], r) {
				first = j
				break
			}
		}
		if first == i {
			out = append(out, r)
		}
	}
	return out
}

// rank 검증 레코드 우선, 그 다음 거리순 (stable)
func rank(records []models.BusinessRecord, lat, lng float64) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.IsVerified != b.IsVerified {
			return a.IsVerified
		}
		da := geo.HaversineKm(lat, lng, a.Location.Latitude, a.Location.Longitude)
		db := geo.HaversineKm(lat, lng, b.Location.Latitude, b.Location.Longitude)
		return da < db
	})
}
