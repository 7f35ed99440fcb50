// Package memory provides a process-local URL store for running the service
// without a database.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rrgdev/url-shortener/internal/entity"
)

type URLRepository struct {
	mu        sync.RWMutex
	nextID    int64
	byShortID map[string]*entity.URL
	byFullURL map[string][]string
	now       func() time.Time
}

func NewURLRepository() *URLRepository {
	return &URLRepository{
		byShortID: make(map[string]*entity.URL),
		byFullURL: make(map[string][]string),
		now:       time.Now,
	}
}

func (r *URLRepository) Save(ctx context.Context, shortURLID, fullURL string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.Save"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byShortID[shortURLID]; ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrShortURLIDExists)
	}

	r.nextID++
	now := r.now()

	rec := &entity.URL{
		ID:         r.nextID,
		ShortURLID: shortURLID,
		FullURL:    fullURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	r.byShortID[shortURLID] = rec
	r.byFullURL[fullURL] = append(r.byFullURL[fullURL], shortURLID)

	return copyURL(rec), nil
}

func (r *URLRepository) RetrieveByShortURLID(ctx context.Context, shortURLID string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.RetrieveByShortURLID"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byShortID[shortURLID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	return copyURL(rec), nil
}

func (r *URLRepository) RetrieveAllByFullURL(ctx context.Context, fullURL string) ([]*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.RetrieveAllByFullURL"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byFullURL[fullURL]
	recs := make([]*entity.URL, 0, len(ids))

	for _, id := range ids {
		recs = append(recs, copyURL(r.byShortID[id]))
	}

	return recs, nil
}

func (r *URLRepository) IncrementVisits(ctx context.Context, shortURLID string) (*entity.URL, error) {
	const op = "adapter.repository.memory.URLRepository.IncrementVisits"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byShortID[shortURLID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	rec.Visits++
	rec.UpdatedAt = r.now()

	return copyURL(rec), nil
}

// copyURL keeps callers from mutating stored records.
func copyURL(rec *entity.URL) *entity.URL {
	c := *rec
	return &c
}
