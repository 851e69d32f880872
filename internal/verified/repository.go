// Package verified stores the verified business record set and the upload
// history as JSON documents in a key/value store.
package verified

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ggorockee/happyhours/internal/kvstore"
	"github.com/ggorockee/happyhours/internal/logger"
	"github.com/ggorockee/happyhours/pkg/models"
)

const (
	BusinessesKey = "happyhours:verified_businesses"
	HistoryKey    = "happyhours:upload_history"

	// MaxHistory 보관할 업로드 이력 개수
	MaxHistory = 10
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("verified business not found")

// Repository 검증 레코드/업로드 이력 저장소
type Repository struct {
	store kvstore.Store
	log   *zap.SugaredLogger
}

// NewRepository 새로운 Repository 생성
func NewRepository(store kvstore.Store) *Repository {
	return &Repository{
		store: store,
		log:   logger.GetLogger("verified"),
	}
}

// List returns every stored record. A missing key is an empty set; read
// and decode failures are returned.
func (r *Repository) List(ctx context.Context) ([]models.BusinessRecord, error) {
	records := []models.BusinessRecord{}

	raw, ok, err := r.store.Get(ctx, BusinessesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read verified businesses: %w", err)
	}
	if !ok || raw == "" {
		return records, nil
	}

	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("failed to decode verified businesses: %w", err)
	}
	return records, nil
}

// Get 단건 조회
func (r *Repository) Get(ctx context.Context, id string) (*models.BusinessRecord, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, ErrNotFound
}

// SaveAll 전체 레코드 집합 교체
func (r *Repository) SaveAll(ctx context.Context, records []models.BusinessRecord) error {
	if records == nil {
		records = []models.BusinessRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode verified businesses: %w", err)
	}
	if err := r.store.Set(ctx, BusinessesKey, string(data)); err != nil {
		return fmt.Errorf("failed to save verified businesses: %w", err)
	}
	return nil
}

// Upsert id가 같으면 교체, 없으면 추가
func (r *Repository) Upsert(ctx context.Context, records ...models.BusinessRecord) error {
	existing, err := r.List(ctx)
	if err != nil {
		return err
	}

	index := make(map[string]int, len(existing))
	for i, rec := range existing {
		index[rec.ID] = i
	}

	for _, rec := range records {
		if i, ok := index[rec.ID]; ok {
			existing[i] = rec
			continue
		}
		index[rec.ID] = len(existing)
		existing = append(existing, rec)
	}

	return r.SaveAll(ctx, existing)
}

// Merge id 또는 (이름, 주소)가 같은 레코드는 교체, 나머지는 추가
// 업로드마다 id가 새로 생성되므로 같은 시트를 다시 올려도 중복되지 않음
func (r *Repository) Merge(ctx context.Context, records ...models.BusinessRecord) error {
	existing, err := r.List(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]int, len(existing))
	byKey := make(map[string]int, len(existing))
	for i, rec := range existing {
		byID[rec.ID] = i
		byKey[naturalKey(rec)] = i
	}

	for _, rec := range records {
		i, ok := byID[rec.ID]
		if !ok {
			i, ok = byKey[naturalKey(rec)]
		}
		if !ok {
			i = len(existing)
			existing = append(existing, rec)
		} else {
			existing[i] = rec
		}
		byID[rec.ID] = i
		byKey[naturalKey(rec)] = i
	}

	return r.SaveAll(ctx, existing)
}

func naturalKey(rec models.BusinessRecord) string {
	return strings.ToLower(strings.TrimSpace(rec.Name)) + "\x00" + strings.ToLower(strings.TrimSpace(rec.Location.Address))
}

// Remove id로 삭제 (없으면 ErrNotFound)
func (r *Repository) Remove(ctx context.Context, id string) error {
	existing, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.BusinessRecord, 0, len(existing))
	for _, rec := range existing {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(existing) {
		return ErrNotFound
	}

	return r.SaveAll(ctx, kept)
}

// ClearAll 레코드와 업로드 이력 모두 삭제
func (r *Repository) ClearAll(ctx context.Context) error {
	for _, key := range []string{BusinessesKey, HistoryKey} {
		if err := r.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	r.log.Info("All verified data cleared")
	return nil
}

// History returns the upload log, newest first. Storage failures are
// logged and yield an empty log.
func (r *Repository) History(ctx context.Context) []models.UploadHistoryEntry {
	history := []models.UploadHistoryEntry{}

	raw, ok, err := r.store.Get(ctx, HistoryKey)
	if err != nil {
		r.log.Errorf("업로드 이력 조회 실패: %v", err)
		return history
	}
	if !ok || raw == "" {
		return history
	}

	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		r.log.Errorf("업로드 이력 파싱 실패: %v", err)
		return []models.UploadHistoryEntry{}
	}
	return history
}

// AppendHistory 최신 이력을 맨 앞에 추가하고 MaxHistory개로 자름
func (r *Repository) AppendHistory(ctx context.Context, entry models.UploadHistoryEntry) error {
	history := append([]models.UploadHistoryEntry{entry}, r.History(ctx)...)
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}

	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode upload history: %w", err)
	}
	if err := r.store.Set(ctx, HistoryKey, string(data)); err != nil {
		return fmt.Errorf("failed to save upload history: %w", err)
	}
	return nil
}
