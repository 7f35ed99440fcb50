// Package usecase implements the URL shortening core: short URL ID generation
// with a bounded uniqueness retry, lookups and redirection with visit counting.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/rrgdev/url-shortener/internal/entity"
	"github.com/rrgdev/url-shortener/internal/urlutil"
)

// DefaultAttemptLimit is used when a non-positive attempt limit is configured.
const DefaultAttemptLimit = 5

type idGenerator interface {
	Generate() (string, error)
}

type urlRepository interface {
	Save(ctx context.Context, shortURLID, fullURL string) (*entity.URL, error)
	RetrieveByShortURLID(ctx context.Context, shortURLID string) (*entity.URL, error)
	RetrieveAllByFullURL(ctx context.Context, fullURL string) ([]*entity.URL, error)
	IncrementVisits(ctx context.Context, shortURLID string) (*entity.URL, error)
}

type URLUseCase struct {
	attemptLimit int
	idGen        idGenerator
	urlRepo      urlRepository
	logger       *slog.Logger
}

func New(attemptLimit int, idGen idGenerator, urlRepo urlRepository, logger *slog.Logger) *URLUseCase {
	if attemptLimit <= 0 {
		attemptLimit = DefaultAttemptLimit
	}

	return &URLUseCase{
		attemptLimit: attemptLimit,
		idGen:        idGen,
		urlRepo:      urlRepo,
		logger:       logger,
	}
}

// CreateShortURL validates fullURL, assigns it a short URL ID not used by any
// other URL and stores it. Candidates are tried one after another, at most
// attemptLimit times; a candidate counts as a collision when it is already
// stored or when the store rejects it as a duplicate on insert.
func (uc *URLUseCase) CreateShortURL(ctx context.Context, fullURL string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.CreateShortURL"

	if isBlank(fullURL) {
		return nil, fmt.Errorf("%s: url isn't provided: %w", op, entity.ErrMissingField)
	}

	if !urlutil.IsValid(fullURL) {
		return nil, fmt.Errorf("%s: %q: %w", op, fullURL, entity.ErrInvalidFormat)
	}

	for attempt := 1; attempt <= uc.attemptLimit; attempt++ {
		shortURLID, err := uc.idGen.Generate()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short url id: %w", op, err)
		}

		_, err = uc.urlRepo.RetrieveByShortURLID(ctx, shortURLID)
		switch {
		case err == nil:
			uc.logCollision(ctx, shortURLID, attempt)
			continue
		case !errors.Is(err, entity.ErrURLNotFound):
			return nil, fmt.Errorf("%s: failed to check short url id: %w", op, err)
		}

		rec, err := uc.saveURL(ctx, fullURL, shortURLID)
		if err != nil {
			if errors.Is(err, entity.ErrShortURLIDExists) {
				uc.logCollision(ctx, shortURLID, attempt)
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return rec, nil
	}

	return nil, fmt.Errorf("%s: %d attempts: %w", op, uc.attemptLimit, entity.ErrIDGenerationExhausted)
}

// ProcessRedirection resolves shortURLID to the location the caller should
// redirect to and counts the visit.
func (uc *URLUseCase) ProcessRedirection(ctx context.Context, shortURLID string) (*url.URL, error) {
	const op = "usecase.URLUseCase.ProcessRedirection"

	rec, err := uc.GetURLByShortURLID(ctx, shortURLID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	location, err := urlutil.ParseLocation(rec.FullURL)
	if err != nil {
		uc.logger.ErrorContext(ctx, "url is persisted but isn't a valid url",
			slog.String("op", op),
			slog.String("short_url_id", rec.ShortURLID),
			slog.String("full_url", rec.FullURL),
			slog.Any("err", err),
		)

		return nil, fmt.Errorf("%s: %q: %w", op, rec.FullURL, entity.ErrPersistedDataInvalid)
	}

	if err := uc.incrementVisits(ctx, rec); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return location, nil
}

// GetURLByShortURLID returns the URL stored under shortURLID without changing it.
func (uc *URLUseCase) GetURLByShortURLID(ctx context.Context, shortURLID string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.GetURLByShortURLID"

	if isBlank(shortURLID) {
		return nil, fmt.Errorf("%s: short url id isn't provided: %w", op, entity.ErrMissingField)
	}

	rec, err := uc.urlRepo.RetrieveByShortURLID(ctx, shortURLID)
	if err != nil {
		return nil, fmt.Errorf("%s: no resource found for %q: %w", op, shortURLID, err)
	}

	return rec, nil
}

// GetURLsByFullURL returns every URL shortened from fullURL once sanitised.
// The result is empty, not nil, when there are none.
func (uc *URLUseCase) GetURLsByFullURL(ctx context.Context, fullURL string) ([]*entity.URL, error) {
	const op = "usecase.URLUseCase.GetURLsByFullURL"

	if isBlank(fullURL) {
		return nil, fmt.Errorf("%s: full url isn't provided: %w", op, entity.ErrMissingField)
	}

	fullURL = urlutil.Sanitise(fullURL)
	if !urlutil.IsValid(fullURL) {
		return nil, fmt.Errorf("%s: %q: %w", op, fullURL, entity.ErrInvalidFormat)
	}

	recs, err := uc.urlRepo.RetrieveAllByFullURL(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get urls: %w", op, err)
	}

	if recs == nil {
		recs = []*entity.URL{}
	}

	return recs, nil
}

// saveURL stores the sanitised fullURL under shortURLID with no visits.
func (uc *URLUseCase) saveURL(ctx context.Context, fullURL, shortURLID string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.saveURL"

	rec, err := uc.urlRepo.Save(ctx, shortURLID, urlutil.Sanitise(fullURL))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rec, nil
}

// incrementVisits counts one visit of rec in the store and copies the stored
// counter back onto rec.
func (uc *URLUseCase) incrementVisits(ctx context.Context, rec *entity.URL) error {
	const op = "usecase.URLUseCase.incrementVisits"

	updated, err := uc.urlRepo.IncrementVisits(ctx, rec.ShortURLID)
	if err != nil {
		return fmt.Errorf("%s: failed to increment visits: %w", op, err)
	}

	rec.Visits = updated.Visits
	rec.UpdatedAt = updated.UpdatedAt

	return nil
}

func (uc *URLUseCase) logCollision(ctx context.Context, shortURLID string, attempt int) {
	uc.logger.DebugContext(ctx, "short url id is taken, retrying",
		slog.String("short_url_id", shortURLID),
		slog.Int("attempt", attempt),
		slog.Int("attempt_limit", uc.attemptLimit),
	)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
