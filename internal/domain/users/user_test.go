//go:build unit
// +build unit

package users

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		user    *User
		wantErr bool
	}{
		{"valid user", &User{FirebaseUID: "abc123"}, false},
		{"dev bypass user", &User{FirebaseUID: DevBypassUID}, false},
		{"missing uid", &User{}, true},
		{"uid too long", &User{FirebaseUID: strings.Repeat("u", 129)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
