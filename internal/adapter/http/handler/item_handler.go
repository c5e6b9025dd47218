package handler

import (
	"net/http"

	. "tasknotes/internal/adapter/http/helper"
	"tasknotes/internal/adapter/http/middleware"
	. "tasknotes/internal/adapter/http/validation"
	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/model/response"
	"tasknotes/internal/core/port"
	"tasknotes/internal/core/util"
	"tasknotes/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ItemCodec converts between the wire DTOs of one item kind and its domain types.
// C is the create body, U the partial update body, R the response shape.
type ItemCodec[T domain.Item[T], P domain.Patch[T], C any, U any, R any] struct {
	FromCreate func(C) T
	FromPatch  func(U) P
	Render     func(T) R
}

type ItemHandler[T domain.Item[T], P domain.Patch[T], C any, U any, R any] struct {
	svc    port.ItemService[T, P]
	codec  ItemCodec[T, P, C, U, R]
	Logger *logger.Logger
}

func NewItemHandler[T domain.Item[T], P domain.Patch[T], C any, U any, R any](
	svc port.ItemService[T, P],
	codec ItemCodec[T, P, C, U, R],
	log *logger.Logger,
) *ItemHandler[T, P, C, U, R] {
	if log == nil {
		log = logger.NewNop()
	}

	return &ItemHandler[T, P, C, U, R]{
		svc:    svc,
		codec:  codec,
		Logger: log,
	}
}

func (h *ItemHandler[T, P, C, U, R]) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := middleware.CurrentUserID(c)

	items, err := h.svc.List(ctx, userID)

	if err != nil {
		h.Logger.Ctx(ctx).Error("Failed to list items", zap.Error(err), zap.Int("user_id", userID))
		SendDomainError(c, err)
		return
	}

	data := make([]R, 0, len(items))
	for _, item := range items {
		data = append(data, h.codec.Render(item))
	}

	c.JSON(http.StatusOK, response.ListResponse[R]{
		Size: len(data),
		Data: data,
	})
}

func (h *ItemHandler[T, P, C, U, R]) Create(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := middleware.CurrentUserID(c)

	params, err := util.ParamsToMap[C](c)

	if err != nil {
		SendValidationError(c, err)
		return
	}

	if err := Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	item, err := h.svc.Create(ctx, userID, h.codec.FromCreate(params))

	if err != nil {
		h.Logger.Ctx(ctx).Warn("Failed to create item", zap.Error(err), zap.Int("user_id", userID))
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusCreated, h.codec.Render(item))
}

func (h *ItemHandler[T, P, C, U, R]) Update(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := middleware.CurrentUserID(c)

	params, err := util.ParamsToMap[U](c)

	if err != nil {
		SendValidationError(c, err)
		return
	}

	if err := Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	item, err := h.svc.Update(ctx, userID, c.Param("id"), h.codec.FromPatch(params))

	if err != nil {
		h.Logger.Ctx(ctx).Info("Failed to update item", zap.Error(err), zap.String("id", c.Param("id")))
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, h.codec.Render(item))
}

func (h *ItemHandler[T, P, C, U, R]) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := middleware.CurrentUserID(c)

	if err := h.svc.Delete(ctx, userID, c.Param("id")); err != nil {
		h.Logger.Ctx(ctx).Info("Failed to delete item", zap.Error(err), zap.String("id", c.Param("id")))
		SendDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
