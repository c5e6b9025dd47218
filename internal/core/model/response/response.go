package response

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID    int    `json:"id,omitempty"`
	UUID  string `json:"uuid,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type TaskResponse struct {
	UUID      uuid.UUID `json:"uuid"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	OwnerID   int       `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NoteResponse struct {
	UUID      uuid.UUID `json:"uuid"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   int       `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListResponse[T any] struct {
	Size int `json:"size"`
	Data []T `json:"data"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse[T any] struct {
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
