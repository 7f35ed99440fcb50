package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/rrgdev/url-shortener/internal/entity"
)

const uniqueViolationErrCode = "23505"

func isUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationErrCode
}

type urlDB struct {
	ID         int64     `db:"id"`
	ShortURLID string    `db:"short_url_id"`
	FullURL    string    `db:"full_url"`
	Visits     int64     `db:"visits"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (u *urlDB) toEntity() *entity.URL {
	return &entity.URL{
		ID:         u.ID,
		ShortURLID: u.ShortURLID,
		FullURL:    u.FullURL,
		Visits:     u.Visits,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{db: db}
}

func (r *URLRepository) Save(ctx context.Context, shortURLID, fullURL string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.Save"
	const query = `INSERT INTO urls(short_url_id, full_url) VALUES ($1, $2) RETURNING *`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, shortURLID, fullURL); err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrShortURLIDExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into urls table: %w", op, err)
	}

	return url.toEntity(), nil
}

func (r *URLRepository) RetrieveByShortURLID(ctx context.Context, shortURLID string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveByShortURLID"
	const query = `SELECT * FROM urls WHERE short_url_id = $1`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, shortURLID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from urls table: %w", op, err)
	}

	return url.toEntity(), nil
}

func (r *URLRepository) RetrieveAllByFullURL(ctx context.Context, fullURL string) ([]*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveAllByFullURL"
	const query = `SELECT * FROM urls WHERE full_url = $1 ORDER BY id`

	var rows []urlDB

	if err := r.db.SelectContext(ctx, &rows, query, fullURL); err != nil {
		return nil, fmt.Errorf("%s: failed to select rows from urls table: %w", op, err)
	}

	urls := make([]*entity.URL, 0, len(rows))
	for i := range rows {
		urls = append(urls, rows[i].toEntity())
	}

	return urls, nil
}

func (r *URLRepository) IncrementVisits(ctx context.Context, shortURLID string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.IncrementVisits"
	const query = `UPDATE urls SET visits = visits + 1, updated_at = NOW() WHERE short_url_id = $1 RETURNING *`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, shortURLID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update urls table row: %w", op, err)
	}

	return url.toEntity(), nil
}
