package borehole

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Loader reads borehole files, going through the cache when one is set
type Loader struct {
	Cache *Cache // optional
	Log   *zap.Logger
}

// Load returns the record for path. Cache failures are logged and the file is
// parsed directly.
func (l *Loader) Load(ctx context.Context, path string) (*Record, error) {
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	key := Key(data)
	if l.Cache != nil {
		rec, ok, err := l.Cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn("cache read failed", zap.String("path", path), zap.Error(err))
		case ok:
			log.Debug("cache hit", zap.String("path", path), zap.String("key", key))
			return rec, nil
		}
	}

	rec, err := Parse(bytes.NewReader(data), log.With(zap.String("path", path)))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if l.Cache != nil {
		if err := l.Cache.Put(ctx, key, path, rec); err != nil {
			log.Warn("cache write failed", zap.String("path", path), zap.Error(err))
		}
	}
	return rec, nil
}
