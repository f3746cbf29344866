package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/umeshkhanal/rumooz/internal/domain/admin"
	"github.com/umeshkhanal/rumooz/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

// AdminRepository implements admin.Repository
type AdminRepository struct {
	db *DB
}

func NewAdminRepository(db *DB) admin.Repository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, a *admin.Account) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	dbModel := toAdminModel(a)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return admin.ErrAccountAlreadyExists
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	a.ID = dbModel.ID
	return nil
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.DB.WithContext(ctx).Model(&models.AdminModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

func (r *AdminRepository) First(ctx context.Context) (*admin.Account, error) {
	var dbModel models.AdminModel
	err := r.db.DB.WithContext(ctx).Order("id ASC").First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, admin.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return toAdminEntity(&dbModel), nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uint) (*admin.Account, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*admin.Account, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*admin.Account, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *AdminRepository) first(ctx context.Context, query string, arg interface{}) (*admin.Account, error) {
	var dbModel models.AdminModel
	err := r.db.DB.WithContext(ctx).Where(query, arg).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, admin.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return toAdminEntity(&dbModel), nil
}

func (r *AdminRepository) Update(ctx context.Context, a *admin.Account) error {
	a.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.AdminModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"username":             a.Username,
			"email":                a.Email,
			"password":             a.PasswordHashed,
			"contact_mail":         a.ContactMail,
			"verificationCode":     a.VerificationCode,
			"verificationExpires":  a.VerificationExpires,
			"verificationAttempts": a.VerificationAttempts,
			"tokenGeneration":      a.TokenGeneration,
			"updatedAt":            a.UpdatedAt,
		})

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return admin.ErrEmailTaken
		}
		return fmt.Errorf("failed to update admin: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return admin.ErrAccountNotFound
	}

	return nil
}

func (r *AdminRepository) RecordFailedAttempt(ctx context.Context, id uint, code string, maxAttempts int) error {
	// SET expressions read the pre-update row, so the CASEs see the old attempt count.
	exhausted := `"verificationAttempts" + 1 >= ?`
	result := r.db.DB.WithContext(ctx).Model(&models.AdminModel{}).
		Where(`id = ? AND "verificationCode" = ?`, id, code).
		Updates(map[string]interface{}{
			"verificationAttempts": gorm.Expr(`CASE WHEN `+exhausted+` THEN 0 ELSE "verificationAttempts" + 1 END`, maxAttempts),
			"verificationCode":     gorm.Expr(`CASE WHEN `+exhausted+` THEN NULL ELSE "verificationCode" END`, maxAttempts),
			"verificationExpires":  gorm.Expr(`CASE WHEN `+exhausted+` THEN NULL ELSE "verificationExpires" END`, maxAttempts),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to record verification attempt: %w", result.Error)
	}
	return nil
}

func (r *AdminRepository) ClearExpiredCodes(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).Model(&models.AdminModel{}).
		Where(`"verificationExpires" IS NOT NULL AND "verificationExpires" < ?`, before).
		Updates(map[string]interface{}{
			"verificationCode":     nil,
			"verificationExpires":  nil,
			"verificationAttempts": 0,
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear expired codes: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func toAdminModel(a *admin.Account) *models.AdminModel {
	return &models.AdminModel{
		ID:                   a.ID,
		Username:             a.Username,
		Email:                a.Email,
		Password:             a.PasswordHashed,
		ContactMail:          a.ContactMail,
		VerificationCode:     a.VerificationCode,
		VerificationExpires:  a.VerificationExpires,
		VerificationAttempts: a.VerificationAttempts,
		TokenGeneration:      a.TokenGeneration,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

func toAdminEntity(m *models.AdminModel) *admin.Account {
	return &admin.Account{
		ID:                   m.ID,
		Username:             m.Username,
		Email:                m.Email,
		PasswordHashed:       m.Password,
		ContactMail:          m.ContactMail,
		VerificationCode:     m.VerificationCode,
		VerificationExpires:  m.VerificationExpires,
		VerificationAttempts: m.VerificationAttempts,
		TokenGeneration:      m.TokenGeneration,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
