package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tasknotes/internal/core/domain"
)

const DefaultTTL = 3 * time.Hour

var ErrInvalidToken = errors.New("invalid access token")

type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

type JWT struct {
	Secret string
	TTL    time.Duration
	Issuer string

	now func() time.Time
}

func New(secret string, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &JWT{Secret: secret, TTL: ttl, Issuer: "tasknotes", now: time.Now}
}

func (j *JWT) clock() time.Time {
	if j.now == nil {
		return time.Now()
	}

	return j.now()
}

func (j *JWT) CreateToken(userID int) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("create token: %w", ErrInvalidToken)
	}

	ttl := j.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	issuedAt := j.clock()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	})

	return token.SignedString([]byte(j.Secret))
}

func (j *JWT) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(j.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.clock),
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (j *JWT) Issue(userID int) (string, error) {
	return j.CreateToken(userID)
}

// Parse returns the user id carried by the token or an error matching domain.ErrUnauthenticated.
func (j *JWT) Parse(token string) (int, error) {
	claims, err := j.VerifyToken(token)

	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	return claims.UserID, nil
}
