package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vsm34/FlowRisk/internal/domain/errs"
	"github.com/vsm34/FlowRisk/internal/domain/users"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

// Messages returned to callers that fail authentication
const (
	MsgMissingBearer   = "Missing Authorization Bearer token"
	MsgInvalidToken    = "Invalid or expired token"
	MsgMissingUIDClaim = "Token missing uid claim"
)

// authService implements the AuthService interface for resolving request callers
type authService struct {
	verifier  users.TokenVerifier
	userRepo  users.UserRepository
	devBypass bool
	logger    logger.Logger
}

// NewAuthService creates a new instance of AuthService. devBypass must already account for the environment.
func NewAuthService(verifier users.TokenVerifier, userRepo users.UserRepository, devBypass bool, logger logger.Logger) (users.AuthService, error) {
	if !devBypass && verifier == nil {
		return nil, fmt.Errorf("a token verifier is required when the dev auth bypass is off")
	}
	return &authService{
		verifier:  verifier,
		userRepo:  userRepo,
		devBypass: devBypass,
		logger:    logger,
	}, nil
}

func (s *authService) DevBypassActive() bool {
	return s.devBypass
}

// Authenticate resolves the user behind an Authorization header value, provisioning it on first sight
func (s *authService) Authenticate(ctx context.Context, authorization string) (*users.User, error) {
	if s.devBypass {
		s.logger.Warn("DEV BYPASS AUTH ACTIVE: token verification skipped", "firebase_uid", users.DevBypassUID)
		return s.findOrCreate(ctx, users.DevBypassUID)
	}

	token, ok := bearerToken(authorization)
	if !ok {
		return nil, errs.Unauthorized(MsgMissingBearer)
	}

	identity, err := s.verifier.Verify(ctx, token)
	if err != nil {
		s.logger.Info("Token verification failed", "error", err)
		return nil, errs.Unauthorized(MsgInvalidToken)
	}
	if identity == nil || identity.UID == "" {
		return nil, errs.Unauthorized(MsgMissingUIDClaim)
	}

	return s.findOrCreate(ctx, identity.UID)
}

func (s *authService) findOrCreate(ctx context.Context, firebaseUID string) (*users.User, error) {
	user, err := s.userRepo.GetByFirebaseUID(ctx, firebaseUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user = &users.User{FirebaseUID: firebaseUID}
	if createErr := s.userRepo.Create(ctx, user); createErr != nil {
		// A concurrent first request may have provisioned the same uid.
		existing, getErr := s.userRepo.GetByFirebaseUID(ctx, firebaseUID)
		if getErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to provision user: %w", createErr)
	}

	s.logger.Info("Provisioned user", "user_id", user.ID, "firebase_uid", firebaseUID)
	return user, nil
}

// bearerToken extracts the token of a "Bearer <token>" header value
func bearerToken(authorization string) (string, bool) {
	parts := strings.Fields(authorization)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
