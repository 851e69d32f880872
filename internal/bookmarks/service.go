package bookmarks

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ggorockee/happyhours/internal/kvstore"
	"github.com/ggorockee/happyhours/internal/logger"
)

const (
	BookmarksKey   = "happyhours:bookmarks"
	PreferencesKey = "happyhours:preferences"
)

// Preferences 사용자 설정
type Preferences struct {
	SelectedLocationID string   `json:"selectedLocationId,omitempty"`
	FavoriteCategories []string `json:"favoriteCategories"`
}

// Service 북마크/설정 서비스
type Service struct {
	store kvstore.Store
	log   *zap.SugaredLogger
}

func NewService(store kvstore.Store) *Service {
	return &Service{
		store: store,
		log:   logger.GetLogger("bookmarks"),
	}
}

// List returns bookmarked place ids. Read failures yield an empty list.
func (s *Service) List(ctx context.Context) []string {
	ids := []string{}

	raw, ok, err := s.store.Get(ctx, BookmarksKey)
	if err != nil {
		s.log.Errorf("북마크 조회 실패: %v", err)
		return ids
	}
	if !ok || raw == "" {
		return ids
	}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Errorf("북마크 파싱 실패: %v", err)
		return []string{}
	}
	return ids
}

func (s *Service) save(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, BookmarksKey, string(data)); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}

// Add 이미 있으면 아무것도 하지 않음
func (s *Service) Add(ctx context.Context, placeID string) error {
	ids := s.List(ctx)
	for _, id := range ids {
		if id == placeID {
			return nil
		}
	}
	return s.save(ctx, append(ids, placeID))
}

func (s *Service) Remove(ctx context.Context, placeID string) error {
	ids := s.List(ctx)
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != placeID {
			kept = append(kept, id)
		}
	}
	return s.save(ctx, kept)
}

func (s *Service) IsBookmarked(ctx context.Context, placeID string) bool {
	for _, id := range s.List(ctx) {
		if id == placeID {
			return true
		}
	}
	return false
}

// Toggle flips the bookmark and returns the new state.
func (s *Service) Toggle(ctx context.Context, placeID string) (bool, error) {
	if s.IsBookmarked(ctx, placeID) {
		return false, s.Remove(ctx, placeID)
	}
	return true, s.Add(ctx, placeID)
}

// Preferences 저장된 설정 (읽기 실패 시 기본값)
func (s *Service) Preferences(ctx context.Context) Preferences {
	prefs := Preferences{FavoriteCategories: []string{}}

	raw, ok, err := s.store.Get(ctx, PreferencesKey)
	if err != nil {
		s.log.Errorf("설정 조회 실패: %v", err)
		return prefs
	}
	if !ok || raw == "" {
		return prefs
	}
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.log.Errorf("설정 파싱 실패: %v", err)
		return Preferences{FavoriteCategories: []string{}}
	}
	if prefs.FavoriteCategories == nil {
		prefs.FavoriteCategories = []string{}
	}
	return prefs
}

func (s *Service) SavePreferences(ctx context.Context, prefs Preferences) error {
	if prefs.FavoriteCategories == nil {
		prefs.FavoriteCategories = []string{}
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, PreferencesKey, string(data)); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// SaveSelectedLocation 선택 도시만 갱신
func (s *Service) SaveSelectedLocation(ctx context.Context, locationID string) error {
	prefs := s.Preferences(ctx)
	prefs.SelectedLocationID = locationID
	return s.SavePreferences(ctx, prefs)
}

// ClearAll 북마크와 설정 삭제
func (s *Service) ClearAll(ctx context.Context) error {
	for _, key := range []string{BookmarksKey, PreferencesKey} {
		if err := s.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return nil
}
