package users

import (
	"time"

	"github.com/vsm34/FlowRisk/internal/pkg/validators"
)

// DevBypassUID is the Firebase uid of the user served while the development auth bypass is active.
const DevBypassUID = "dev-bypass"

// User entity, provisioned on first authenticated request
type User struct {
	ID          int64
	FirebaseUID string `validate:"required,max=128"`
	CreatedAt   time.Time
}

// Validate for validating User struct
func (u *User) Validate() error {
	validate, err := validators.New()
	if err != nil {
		return err
	}
	return validators.FormatErrors(validate.Struct(u))
}

// Identity is what a verified ID token says about its bearer
type Identity struct {
	UID   string
	Email string
}
