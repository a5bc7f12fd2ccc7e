package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vsm34/FlowRisk/internal/domain/errs"
	"github.com/vsm34/FlowRisk/internal/domain/users"
	"github.com/vsm34/FlowRisk/internal/infrastructure/persistence/models"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserRepository creates a new GORM-based UserRepository implementation
func NewGormUserRepository(db *gorm.DB, logger logger.Logger) (users.UserRepository, error) {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserRepository) GetByFirebaseUID(ctx context.Context, firebaseUID string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with firebase uid %s: %w", firebaseUID, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *users.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	*user = *model.ToDomain()
	r.logger.Info("Created user", "user_id", user.ID)
	return nil
}
