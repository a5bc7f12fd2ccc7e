package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vsm34/FlowRisk/internal/domain/errs"
	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/infrastructure/persistence/models"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

type gormProfileRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormProfileRepository creates a new GORM-based ProfileRepository implementation
func NewGormProfileRepository(db *gorm.DB, logger logger.Logger) (profiles.ProfileRepository, error) {
	return &gormProfileRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormProfileRepository) GetByUserID(ctx context.Context, userID int64) (*profiles.FinancialProfile, error) {
	var model models.FinancialProfileModel
	err := r.db.WithContext(ctx).
		Preload("Debts", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ?", userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile of user %d: %w", userID, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormProfileRepository) GetByID(ctx context.Context, profileID int64) (*profiles.FinancialProfile, error) {
	var model models.FinancialProfileModel
	if err := r.db.WithContext(ctx).Where("id = ?", profileID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile with ID %d: %w", profileID, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormProfileRepository) Save(ctx context.Context, profile *profiles.FinancialProfile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.FinancialProfileModel{}
	model.FromDomain(profile)

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	profile.ID = model.ID
	profile.CreatedAt = model.CreatedAt
	profile.UpdatedAt = model.UpdatedAt

	r.logger.Info("Saved financial profile", "profile_id", profile.ID, "user_id", profile.UserID)
	return nil
}

func (r *gormProfileRepository) GetDebtByID(ctx context.Context, debtID int64) (*profiles.Debt, error) {
	var model models.DebtModel
	if err := r.db.WithContext(ctx).Where("id = ?", debtID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("debt with ID %d: %w", debtID, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch debt: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormProfileRepository) CreateDebt(ctx context.Context, debt *profiles.Debt) error {
	if err := debt.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.DebtModel{}
	model.FromDomain(debt)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}

	*debt = *model.ToDomain()
	r.logger.Info("Created debt", "debt_id", debt.ID, "profile_id", debt.ProfileID)
	return nil
}

func (r *gormProfileRepository) DeleteDebtByID(ctx context.Context, debtID int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", debtID).Delete(&models.DebtModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete debt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("debt with ID %d: %w", debtID, errs.ErrNotFound)
	}

	r.logger.Info("Deleted debt", "debt_id", debtID)
	return nil
}
