package models

import (
	"time"

	"github.com/vsm34/FlowRisk/internal/domain/users"
)

// UserModel is the GORM database model for users
type UserModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	FirebaseUID string    `gorm:"type:varchar(128);not null;uniqueIndex:ix_users_firebase_uid"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:          m.ID,
		FirebaseUID: m.FirebaseUID,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.FirebaseUID = u.FirebaseUID
	m.CreatedAt = u.CreatedAt
}
