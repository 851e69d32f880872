// Package kvstore provides the opaque key/value persistence used for the
// verified record set, the upload history and bookmarks. The backend is
// chosen once at startup and injected into every consumer.
package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/ggorockee/happyhours/internal/config"
	"github.com/ggorockee/happyhours/internal/logger"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown store backend")

// Store 문자열 key/value 저장소
type Store interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Closer is implemented by backends that hold connections.
type Closer interface {
	Close()
}

// Open 설정된 백엔드로 저장소 생성
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	log := logger.GetLogger("kvstore")

	switch cfg.Store.Backend {
	case "memory", "":
		log.Info("Using in-memory key/value store")
		return NewMemory(), nil
	case "postgres":
		s, err := NewPostgres(ctx, cfg.DB.URL(), cfg.Store.TableName)
		if err != nil {
			return nil, err
		}
		log.Infof("Using postgres key/value store (table=%s)", cfg.Store.TableName)
		return s, nil
	case "dynamodb":
		s, err := NewDynamoDBFromConfig(ctx, &cfg.AWS, cfg.Store.DynamoTable)
		if err != nil {
			return nil, err
		}
		log.Infof("Using dynamodb key/value store (table=%s)", cfg.Store.DynamoTable)
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Store.Backend)
	}
}

// Close 연결을 가진 백엔드라면 종료
func Close(s Store) {
	if c, ok := s.(Closer); ok {
		c.Close()
	}
}
