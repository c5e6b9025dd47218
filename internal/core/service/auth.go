package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/model/request"
	"tasknotes/internal/core/model/response"
	"tasknotes/internal/core/port"
	tel "tasknotes/internal/core/telemetry"
	"tasknotes/internal/core/util"
)

const authService = "auth"

var (
	decoyOnce   sync.Once
	decoyDigest string
)

// decoy is compared against when the email is unknown so a miss costs the same as a wrong password.
func decoy() string {
	decoyOnce.Do(func() {
		decoyDigest, _ = util.GenerateEncrypt(uuid.NewString())
	})

	return decoyDigest
}

type AuthService struct {
	repo      port.UserRepository
	tokens    port.TokenIssuer
	telemetry port.Telemetry
}

func NewAuthService(repo port.UserRepository, tokens port.TokenIssuer, telemetry port.Telemetry) *AuthService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &AuthService{repo: repo, tokens: tokens, telemetry: telemetry}
}

func (as *AuthService) Register(ctx context.Context, req request.RegisterRequest) (response.AuthResult, error) {
	ctx, done := tel.TrackService(ctx, as.telemetry, authService, "Register", 0)

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	switch {
	case name == "":
		return response.AuthResult{}, done(domain.NewValidationError("name", "name is required"))
	case email == "":
		return response.AuthResult{}, done(domain.NewValidationError("email", "email is required"))
	case strings.TrimSpace(req.Password) == "":
		return response.AuthResult{}, done(domain.NewValidationError("password", "password is required"))
	}

	_, err := as.repo.GetByEmail(ctx, email)

	if err == nil {
		return response.AuthResult{}, done(fmt.Errorf("email %w", domain.ErrConflict))
	}

	if !errors.Is(err, domain.ErrNotFound) {
		return response.AuthResult{}, done(err)
	}

	encrypted, err := encryptPassword("password", req.Password)

	if err != nil {
		return response.AuthResult{}, done(err)
	}

	now := time.Now().UTC()
	user, err := as.repo.Create(ctx, domain.User{
		UUID:              uuid.New(),
		Name:              name,
		Email:             email,
		EncryptedPassword: encrypted,
		CreatedAt:         now,
		UpdatedAt:         now,
	})

	if err != nil {
		return response.AuthResult{}, done(err)
	}

	result, err := as.issue(user)

	if err != nil {
		return response.AuthResult{}, done(err)
	}

	as.telemetry.RecordBusinessEvent(ctx, "registered", "user", user.UUID.String(), user.ID, nil)

	return result, done(nil)
}

func (as *AuthService) Login(ctx context.Context, req request.LoginRequest) (response.AuthResult, error) {
	ctx, done := tel.TrackService(ctx, as.telemetry, authService, "Login", 0)

	user, err := as.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))

	if errors.Is(err, domain.ErrNotFound) {
		_ = util.ComparePassword(req.Password, decoy())
		return response.AuthResult{}, done(domain.ErrInvalidCredentials)
	}

	if err != nil {
		return response.AuthResult{}, done(err)
	}

	if err := util.ComparePassword(req.Password, user.EncryptedPassword); err != nil {
		return response.AuthResult{}, done(domain.ErrInvalidCredentials)
	}

	result, err := as.issue(user)

	if err != nil {
		return response.AuthResult{}, done(err)
	}

	as.telemetry.RecordBusinessEvent(ctx, "logged_in", "user", user.UUID.String(), user.ID, nil)

	return result, done(nil)
}

func (as *AuthService) GetCurrentUser(ctx context.Context, callerID int) (domain.User, error) {
	ctx, done := tel.TrackService(ctx, as.telemetry, authService, "GetCurrentUser", callerID)

	user, err := as.repo.GetByID(ctx, callerID)

	return user, done(err)
}

func (as *AuthService) UpdatePassword(ctx context.Context, callerID int, req request.UpdatePasswordRequest) error {
	ctx, done := tel.TrackService(ctx, as.telemetry, authService, "UpdatePassword", callerID)

	user, err := as.repo.GetByID(ctx, callerID)

	if err != nil {
		return done(err)
	}

	if err := util.ComparePassword(req.OldPassword, user.EncryptedPassword); err != nil {
		return done(domain.ErrInvalidCredentials)
	}

	if utf8.RuneCountInString(req.NewPassword) < domain.MinPasswordLength {
		return done(domain.NewValidationError("newPassword",
			fmt.Sprintf("password must be at least %d characters", domain.MinPasswordLength)))
	}

	encrypted, err := encryptPassword("newPassword", req.NewPassword)

	if err != nil {
		return done(err)
	}

	if err := as.repo.UpdatePassword(ctx, user.ID, encrypted); err != nil {
		return done(err)
	}

	as.telemetry.RecordBusinessEvent(ctx, "password_updated", "user", user.UUID.String(), user.ID, nil)

	return done(nil)
}

func encryptPassword(field, password string) (string, error) {
	encrypted, err := util.GenerateEncrypt(password)

	if errors.Is(err, util.ErrPasswordTooLong) {
		return "", domain.NewValidationError(field,
			fmt.Sprintf("password must be at most %d bytes", util.MaxPasswordBytes))
	}

	if err != nil {
		return "", fmt.Errorf("error creating encrypted password: %w", err)
	}

	return encrypted, nil
}

func (as *AuthService) issue(user domain.User) (response.AuthResult, error) {
	token, err := as.tokens.Issue(user.ID)

	if err != nil {
		return response.AuthResult{}, fmt.Errorf("error signing token: %w", err)
	}

	return response.AuthResult{
		Token: token,
		User: response.UserResponse{
			ID:    user.ID,
			UUID:  user.UUID.String(),
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}
