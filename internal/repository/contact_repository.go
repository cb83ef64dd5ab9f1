package repository

import (
	"context"
	"time"

	"jobsync/internal/database"

	"github.com/google/uuid"
)

type ContactMessage struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Subject   string
	Body      string
	CreatedAt time.Time
}

type ContactRepository interface {
	Create(ctx context.Context, m ContactMessage) error
}

type PostgresContactRepository struct {
	db database.DB
}

func NewPostgresContactRepository(db database.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) Create(ctx context.Context, m ContactMessage) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO contact_messages (id, name, email, subject, body)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Name, m.Email, m.Subject, m.Body,
	)
	return err
}
