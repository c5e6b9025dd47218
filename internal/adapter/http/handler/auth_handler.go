package handler

import (
	"net/http"

	. "tasknotes/internal/adapter/http/helper"
	"tasknotes/internal/adapter/http/middleware"
	. "tasknotes/internal/adapter/http/validation"
	"tasknotes/internal/core/model/request"
	"tasknotes/internal/core/model/response"
	"tasknotes/internal/core/port"
	"tasknotes/internal/core/util"
	"tasknotes/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	svc    port.AuthService
	Logger *logger.Logger
}

func NewAuthHandler(svc port.AuthService, log *logger.Logger) *AuthHandler {
	if log == nil {
		log = logger.NewNop()
	}

	return &AuthHandler{
		svc:    svc,
		Logger: log,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.RegisterRequest](c)

	if err != nil {
		SendValidationError(c, err)
		return
	}

	if err := Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := a.svc.Register(ctx, params)

	if err != nil {
		a.Logger.Ctx(ctx).Warn("Registration failed", zap.Error(err))
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, result)
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		SendValidationError(c, err)
		return
	}

	if err := Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	result, err := a.svc.Login(ctx, params)

	if err != nil {
		a.Logger.Ctx(ctx).Info("Login rejected", zap.Error(err))
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, result)
}

func (a *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := middleware.CurrentUserID(c)

	user, err := a.svc.GetCurrentUser(ctx, userID)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.UserResponse{
		Name:  user.Name,
		Email: user.Email,
	})
}

func (a *AuthHandler) UpdatePassword(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := middleware.CurrentUserID(c)

	params, err := util.ParamsToMap[request.UpdatePasswordRequest](c)

	if err != nil {
		SendValidationError(c, err)
		return
	}

	if err := Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	if err := a.svc.UpdatePassword(ctx, userID, params); err != nil {
		a.Logger.Ctx(ctx).Info("Password update rejected", zap.Int("user_id", userID), zap.Error(err))
		SendDomainError(c, err)
		return
	}

	SendMessage(c, http.StatusOK, "password updated")
}
