package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/umeshkhanal/rumooz/internal/domain/team"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

// TeamRepository implements team.Repository on the "Clients" table
type TeamRepository struct {
	db *DB
}

func NewTeamRepository(db *DB) team.Repository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, m *team.Member) error {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	dbModel := toClientModel(m)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create team member: %w", err)
	}

	m.ID = dbModel.ID
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uint) (*team.Member, error) {
	var dbModel models.ClientModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, team.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}

	return toMemberEntity(&dbModel), nil
}

func (r *TeamRepository) List(ctx context.Context) ([]*team.Member, error) {
	var dbModels []models.ClientModel
	if err := r.db.DB.WithContext(ctx).Order("id ASC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	members := make([]*team.Member, len(dbModels))
	for i := range dbModels {
		members[i] = toMemberEntity(&dbModels[i])
	}

	return members, nil
}

func (r *TeamRepository) Update(ctx context.Context, m *team.Member) error {
	m.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.ClientModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"name":      m.Name,
			"business":  m.Business,
			"location":  m.Location,
			"photo":     m.Photo,
			"updatedAt": m.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update team member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return team.ErrMemberNotFound
	}

	return nil
}

func toClientModel(m *team.Member) *models.ClientModel {
	return &models.ClientModel{
		ID:        m.ID,
		Name:      m.Name,
		Business:  m.Business,
		Location:  m.Location,
		Photo:     m.Photo,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toMemberEntity(m *models.ClientModel) *team.Member {
	return &team.Member{
		ID:        m.ID,
		Name:      m.Name,
		Business:  m.Business,
		Location:  m.Location,
		Photo:     m.Photo,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
