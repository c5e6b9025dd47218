package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"tasknotes/internal/core/util"
)

func TestPassword(t *testing.T) {
	util.PasswordCost = bcrypt.MinCost

	t.Run("should verify the original secret", func(t *testing.T) {
		digest, err := util.GenerateEncrypt("password123")

		assert.NoError(t, err)
		assert.NotEqual(t, "password123", digest)
		assert.NoError(t, util.ComparePassword("password123", digest))
	})

	t.Run("should reject a different secret", func(t *testing.T) {
		digest, _ := util.GenerateEncrypt("password123")

		assert.Error(t, util.ComparePassword("password124", digest))
	})

	t.Run("should salt every digest", func(t *testing.T) {
		first, _ := util.GenerateEncrypt("same")
		second, _ := util.GenerateEncrypt("same")

		assert.NotEqual(t, first, second)
	})
}
