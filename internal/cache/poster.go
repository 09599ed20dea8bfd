package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-portal/internal/decode"
	"github.com/magabrotheeeer/subscription-portal/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-portal/internal/stickyio"
)

// Poster отправляет запрос во внешнюю систему.
type Poster interface {
	Post(ctx context.Context, path string, body any) (decode.Document, error)
}

// Store описывает хранилище, в котором кешируются ответы.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// CachedPoster кеширует успешные ответы для выбранных эндпоинтов.
// Ошибки хранилища не прерывают запрос: они логируются, а ответ берётся из next.
// Записи, которые не разбираются или не содержат успешного ответа, удаляются.
type CachedPoster struct {
	next  Poster
	store Store
	ttl   time.Duration
	paths map[string]struct{}
	log   *slog.Logger
}

// NewCachedPoster создаёт CachedPoster, кеширующий ответы эндпоинтов paths на ttl.
func NewCachedPoster(next Poster, store Store, ttl time.Duration, log *slog.Logger, paths ...string) *CachedPoster {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return &CachedPoster{
		next:  next,
		store: store,
		ttl:   ttl,
		paths: set,
		log:   log,
	}
}

// Post возвращает ответ из кеша или запрашивает его у next.
func (p *CachedPoster) Post(ctx context.Context, path string, body any) (decode.Document, error) {
	if _, ok := p.paths[path]; !ok {
		return p.next.Post(ctx, path, body)
	}

	log := p.log.With(slog.String("op", "cache.CachedPoster.Post"), slog.String("path", path))

	key, err := Key(path, body)
	if err != nil {
		log.Warn("failed to build cache key", sl.Err(err))
		return p.next.Post(ctx, path, body)
	}

	var cached decode.Document
	found, err := p.store.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	switch {
	case errors.Is(err, ErrCorruptEntry):
		p.evict(ctx, log, key)
	case found && cached.ResponseCode() == stickyio.SuccessCode:
		log.Debug("cache hit", slog.String("key", key))
		return cached, nil
	case found:
		p.evict(ctx, log, key)
	}

	doc, err := p.next.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	if doc.ResponseCode() != stickyio.SuccessCode {
		return doc, nil
	}
	if err := p.store.Set(ctx, key, doc, p.ttl); err != nil {
		log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
	return doc, nil
}

func (p *CachedPoster) evict(ctx context.Context, log *slog.Logger, key string) {
	if err := p.store.Invalidate(ctx, key); err != nil {
		log.Warn("failed to evict cache entry", slog.String("key", key), sl.Err(err))
		return
	}
	log.Debug("cache entry evicted", slog.String("key", key))
}

// Key строит ключ кеша из эндпоинта и JSON-представления тела запроса.
func Key(path string, body any) (string, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return "stickyio:" + path + ":" + hex.EncodeToString(sum[:]), nil
}
