package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/sony/gobreaker"

	"github.com/vsm34/FlowRisk/internal/domain/users"
	"github.com/vsm34/FlowRisk/internal/pkg/config"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

// ErrTokenRejected marks tokens the identity provider refused as malformed, expired or revoked
var ErrTokenRejected = errors.New("id token rejected")

// idTokenClient is the subset of *auth.Client used for verification
type idTokenClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier verifies Firebase ID tokens. The Firebase app is created on first use
// with application default credentials; a failed initialization is retried on the next call.
type FirebaseVerifier struct {
	projectID string
	logger    logger.Logger
	breaker   *gobreaker.CircuitBreaker

	mu     sync.Mutex
	client idTokenClient
	newApp func(ctx context.Context) (idTokenClient, error)
}

// NewFirebaseVerifier creates a TokenVerifier backed by the Firebase Admin SDK
func NewFirebaseVerifier(settings config.AuthSettings, logger logger.Logger) *FirebaseVerifier {
	v := &FirebaseVerifier{
		projectID: settings.FirebaseProjectID,
		logger:    logger,
		breaker:   newBreaker(logger),
	}
	v.newApp = v.newFirebaseClient
	return v
}

var _ users.TokenVerifier = (*FirebaseVerifier)(nil)

func newBreaker(log logger.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "FirebaseAuth",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		// A rejected token is a caller error, not a provider outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrTokenRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

func (v *FirebaseVerifier) newFirebaseClient(ctx context.Context) (idTokenClient, error) {
	var cfg *firebase.Config
	if v.projectID != "" {
		cfg = &firebase.Config{ProjectID: v.projectID}
	}

	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return client, nil
}

func (v *FirebaseVerifier) authClient(ctx context.Context) (idTokenClient, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.client != nil {
		return v.client, nil
	}

	// The client outlives the request that happens to create it
	client, err := v.newApp(context.WithoutCancel(ctx))
	if err != nil {
		v.logger.Error("Firebase initialization failed", "error", err)
		return nil, err
	}

	v.client = client
	v.logger.Info("Firebase auth client initialized", "project_id", v.projectID)
	return client, nil
}

// Verify checks idToken with Firebase and returns the uid and email it carries
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*users.Identity, error) {
	client, err := v.authClient(ctx)
	if err != nil {
		return nil, err
	}

	out, err := v.breaker.Execute(func() (interface{}, error) {
		token, err := client.VerifyIDToken(ctx, idToken)
		if err != nil {
			if isRejection(err) {
				return nil, fmt.Errorf("%w: %v", ErrTokenRejected, err)
			}
			return nil, err
		}
		return token, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify id token: %w", err)
	}

	token := out.(*auth.Token)
	identity := &users.Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	return identity, nil
}

func isRejection(err error) bool {
	return auth.IsIDTokenInvalid(err) || auth.IsIDTokenExpired(err) || auth.IsIDTokenRevoked(err)
}
