package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"tasknotes/internal/core/domain"
)

func TestJWT_RoundTrip(t *testing.T) {
	j := New("secret", time.Hour)

	token, err := j.CreateToken(42)
	assert.NoError(t, err)

	claims, err := j.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "tasknotes", claims.Issuer)

	id, err := j.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestJWT_RejectsForeignSecret(t *testing.T) {
	token, _ := New("secret", time.Hour).Issue(1)

	_, err := New("other", time.Hour).Parse(token)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	j := New("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	j.now = func() time.Time { return issued }

	token, err := j.CreateToken(1)
	assert.NoError(t, err)

	j.now = time.Now
	_, err = j.VerifyToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_RejectsOtherSigningMethods(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = New("secret", time.Hour).Parse(signed)

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestJWT_RejectsMissingUser(t *testing.T) {
	_, err := New("secret", time.Hour).CreateToken(0)
	assert.Error(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := token.SignedString([]byte("secret"))

	_, err = New("secret", time.Hour).Parse(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestJWT_RejectsGarbage(t *testing.T) {
	_, err := New("secret", time.Hour).Parse("not-a-token")

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
