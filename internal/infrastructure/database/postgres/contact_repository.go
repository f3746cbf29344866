package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/umeshkhanal/rumooz/internal/domain/lead"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/database/postgres/models"
)

// ContactRepository implements lead.ContactRepository
type ContactRepository struct {
	db *DB
}

func NewContactRepository(db *DB) lead.ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, m *lead.ContactMessage) error {
	m.CreatedAt = time.Now()

	dbModel := &models.ContactMessageModel{
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		WhatsApp:  m.WhatsApp,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	m.ID = dbModel.ID
	return nil
}

func (r *ContactRepository) List(ctx context.Context) ([]*lead.ContactMessage, error) {
	var dbModels []models.ContactMessageModel
	if err := r.db.DB.WithContext(ctx).Order("id DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}

	messages := make([]*lead.ContactMessage, len(dbModels))
	for i, m := range dbModels {
		messages[i] = &lead.ContactMessage{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Phone:     m.Phone,
			WhatsApp:  m.WhatsApp,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
		}
	}

	return messages, nil
}
