package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/batch26/keepsake/internal/model"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) All(ctx context.Context) ([]*model.WallMessage, error) {
	messages := []*model.WallMessage{}
	err := r.db.SelectContext(ctx, &messages, `SELECT * FROM wall_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Create(ctx context.Context, message *model.WallMessage) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	// Stored as text by sqlite; a single zone keeps ORDER BY chronological.
	message.CreatedAt = message.CreatedAt.UTC()

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO wall_messages (id, text, author, major, date, style, rotation, tape_rotation, image, tags, created_at)
		VALUES (:id, :text, :author, :major, :date, :style, :rotation, :tape_rotation, :image, :tags, :created_at)
	`, message)

	return err
}
