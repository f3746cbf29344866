package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/umeshkhanal/rumooz/internal/domain/lead"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/database/postgres/models"
)

// RequestRepository implements lead.RequestRepository
type RequestRepository struct {
	db *DB
}

func NewRequestRepository(db *DB) lead.RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, q *lead.QuotationRequest) error {
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now

	dbModel := toQuotationRequestModel(q)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	q.ID = dbModel.ID
	return nil
}

func (r *RequestRepository) List(ctx context.Context) ([]*lead.QuotationRequest, error) {
	var dbModels []models.QuotationRequestModel
	if err := r.db.DB.WithContext(ctx).Order("id DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	requests := make([]*lead.QuotationRequest, len(dbModels))
	for i := range dbModels {
		requests[i] = toQuotationRequestEntity(&dbModels[i])
	}

	return requests, nil
}

func toQuotationRequestModel(q *lead.QuotationRequest) *models.QuotationRequestModel {
	return &models.QuotationRequestModel{
		ID:        q.ID,
		Name:      q.Name,
		Email:     q.Email,
		Country:   q.Country,
		City:      q.City,
		Service:   q.Service,
		Phone:     q.Phone,
		Message:   q.Message,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

func toQuotationRequestEntity(m *models.QuotationRequestModel) *lead.QuotationRequest {
	return &lead.QuotationRequest{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Country:   m.Country,
		City:      m.City,
		Service:   m.Service,
		Phone:     m.Phone,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
