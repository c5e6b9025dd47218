package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/util"
)

const DefaultPassword = "12345678"

// NewUser builds a user with a random identity. The password is DefaultPassword
// unless EncryptedPassword is overridden.
func NewUser(customData ...map[string]any) domain.User {
	instance := fab.New(domain.User{})
	now := time.Now().UTC()

	defaults := map[string]any{
		"ID":        0,
		"UUID":      uuid.New(),
		"Email":     uuid.NewString() + "@example.com",
		"CreatedAt": now,
		"UpdatedAt": now,
	}

	encryptedPassword, _ := util.GenerateEncrypt(DefaultPassword)
	defaults["EncryptedPassword"] = encryptedPassword

	return instance.Build(merge(defaults, customData))
}
