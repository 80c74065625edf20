package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/batch26/keepsake/internal/model"
)

type mediaRepository struct {
	db *sqlx.DB
}

func NewMediaRepository(db *sqlx.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) All(ctx context.Context) ([]*model.VaultItem, error) {
	items := []*model.VaultItem{}
	err := r.db.SelectContext(ctx, &items, `SELECT * FROM vault_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mediaRepository) Create(ctx context.Context, item *model.VaultItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	// Stored as text by sqlite; a single zone keeps ORDER BY chronological.
	item.CreatedAt = item.CreatedAt.UTC()

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO vault_items (id, type, src, alt, date, caption, tags, aspect, created_at)
		VALUES (:id, :type, :src, :alt, :date, :caption, :tags, :aspect, :created_at)
	`, item)

	return err
}
