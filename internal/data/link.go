package data

import (
	"context"
	"database/sql"
	"errors"

	"echourl/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

// pq unique_violation
const pqUniqueViolation = "23505"

type linkRepo struct {
	data *Data
	log  *log.Helper
}

func NewLinkRepo(data *Data, logger log.Logger) biz.LinkRepo {
	return &linkRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *linkRepo) Create(ctx context.Context, originalURL, shortCode string) (*biz.Link, error) {
	link := &biz.Link{
		OriginalURL: originalURL,
		ShortCode:   shortCode,
	}

	err := r.data.db.QueryRowContext(ctx,
		`INSERT INTO urls (original_url, short_code) VALUES ($1, $2)
		 RETURNING id, click_count, created_at`,
		originalURL, shortCode,
	).Scan(&link.ID, &link.ClickCount, &link.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, biz.ErrCodeCollision.WithCause(err)
		}
		return nil, biz.ErrStore.WithCause(err)
	}

	return link, nil
}

func (r *linkRepo) FindByShortCode(ctx context.Context, shortCode string) (*biz.Link, error) {
	link := &biz.Link{}

	err := r.data.db.QueryRowContext(ctx,
		`SELECT id, original_url, short_code, click_count, created_at
		 FROM urls WHERE short_code = $1`,
		shortCode,
	).Scan(&link.ID, &link.OriginalURL, &link.ShortCode, &link.ClickCount, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, biz.ErrStore.WithCause(err)
	}

	return link, nil
}

func (r *linkRepo) DeleteByOriginalURL(ctx context.Context, originalURL string) ([]string, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`DELETE FROM urls WHERE original_url = $1 RETURNING short_code`,
		originalURL,
	)
	if err != nil {
		return nil, biz.ErrStore.WithCause(err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, biz.ErrStore.WithCause(err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, biz.ErrStore.WithCause(err)
	}

	return codes, nil
}

func (r *linkRepo) IncrementClickCount(ctx context.Context, shortCode string) error {
	_, err := r.data.db.ExecContext(ctx,
		`UPDATE urls SET click_count = click_count + 1 WHERE short_code = $1`,
		shortCode,
	)
	if err != nil {
		return biz.ErrStore.WithCause(err)
	}
	return nil
}

func (r *linkRepo) List(ctx context.Context, page, pageSize int) ([]*biz.Link, int, error) {
	offset := (page - 1) * pageSize

	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, original_url, short_code, click_count, created_at
		 FROM urls ORDER BY created_at DESC OFFSET $1 LIMIT $2`,
		offset, pageSize,
	)
	if err != nil {
		return nil, 0, biz.ErrStore.WithCause(err)
	}
	defer rows.Close()

	var links []biz.Link
	for rows.Next() {
		var l biz.Link
		if err := rows.Scan(&l.ID, &l.OriginalURL, &l.ShortCode, &l.ClickCount, &l.CreatedAt); err != nil {
			return nil, 0, biz.ErrStore.WithCause(err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, biz.ErrStore.WithCause(err)
	}

	var total int
	if err := r.data.db.QueryRowContext(ctx, `SELECT count(*) FROM urls`).Scan(&total); err != nil {
		return nil, 0, biz.ErrStore.WithCause(err)
	}

	result := lo.Map(links, func(l biz.Link, _ int) *biz.Link {
		return &l
	})

	return result, total, nil
}
