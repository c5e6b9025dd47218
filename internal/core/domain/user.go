package domain

import (
	"time"

	"github.com/google/uuid"
)

const MinPasswordLength = 6

type User struct {
	ID                int       `db:"id"`
	UUID              uuid.UUID `db:"uuid"`
	Name              string    `db:"name"`
	Email             string    `db:"email"`
	EncryptedPassword string    `db:"encrypted_password"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (u *User) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"uuid":               u.UUID.String(),
		"name":               u.Name,
		"email":              u.Email,
		"encrypted_password": u.EncryptedPassword,
		"created_at":         u.CreatedAt,
		"updated_at":         u.UpdatedAt,
	}
}
