package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	AvatarURL    string
	AvatarKey    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUser(name, email, passwordHash string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *User) SetAvatar(url, key string) {
	u.AvatarURL = url
	u.AvatarKey = key
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) ClearAvatar() {
	u.AvatarURL = ""
	u.AvatarKey = ""
	u.UpdatedAt = time.Now().UTC()
}
