package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vsm34/FlowRisk/internal/domain/errs"
	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

// Messages returned by the profile service
const (
	MsgProfileNotFound            = "Profile not found"
	MsgProfileNotFoundCreateFirst = "Profile not found. Create a profile first."
	MsgDebtNotFound               = "Debt not found"
	MsgForbidden                  = "Forbidden"
)

// profileService implements the ProfileService interface
type profileService struct {
	profileRepo profiles.ProfileRepository
	logger      logger.Logger
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(profileRepo profiles.ProfileRepository, logger logger.Logger) (profiles.ProfileService, error) {
	return &profileService{
		profileRepo: profileRepo,
		logger:      logger,
	}, nil
}

func (s *profileService) Get(ctx context.Context, userID int64) (*profiles.FinancialProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.NotFound(MsgProfileNotFound)
		}
		return nil, err
	}
	return profile, nil
}

// Upsert creates the caller's profile or overwrites every field of the existing one
func (s *profileService) Upsert(ctx context.Context, userID int64, input *profiles.ProfileInput) (*profiles.FinancialProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		profile = &profiles.FinancialProfile{UserID: userID}
	}

	input.ApplyTo(profile)
	if err := profile.Validate(); err != nil {
		return nil, errs.InvalidInput(err.Error(), err)
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) AddDebt(ctx context.Context, userID int64, input *profiles.DebtInput) (*profiles.Debt, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.NotFound(MsgProfileNotFoundCreateFirst)
		}
		return nil, err
	}

	debt := &profiles.Debt{
		ProfileID:  profile.ID,
		Name:       input.Name,
		Balance:    input.Balance,
		APR:        input.APR,
		MinPayment: input.MinPayment,
	}
	if err := debt.Validate(); err != nil {
		return nil, errs.InvalidInput(err.Error(), err)
	}

	if err := s.profileRepo.CreateDebt(ctx, debt); err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}
	return debt, nil
}

// DeleteDebt removes a debt of the caller's profile
func (s *profileService) DeleteDebt(ctx context.Context, userID, debtID int64) error {
	debt, err := s.profileRepo.GetDebtByID(ctx, debtID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NotFound(MsgDebtNotFound)
		}
		return err
	}

	profile, err := s.profileRepo.GetByID(ctx, debt.ProfileID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	if profile == nil || profile.UserID != userID {
		s.logger.Warn("Debt deletion denied", "debt_id", debtID, "user_id", userID)
		return errs.Forbidden(MsgForbidden)
	}

	if err := s.profileRepo.DeleteDebtByID(ctx, debtID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NotFound(MsgDebtNotFound)
		}
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	return nil
}
