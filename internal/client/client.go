package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tasknotes/internal/core/model/request"
	"tasknotes/internal/core/model/response"
)

var ErrUnreachable = errors.New("server unreachable")

// APIError is a non-2xx answer decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Field   string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Code)
}

// Friendly is the short text shown to a person for this error.
func (e *APIError) Friendly() string {
	switch e.Code {
	case "UNAUTHENTICATED":
		return "Your session has expired. Please log in again."
	case "INVALID_CREDENTIALS":
		return "Invalid email or password."
	case "CONFLICT":
		return "That email is already registered."
	case "NOT_FOUND":
		return "That item no longer exists."
	case "VALIDATION_ERROR":
		if e.Message != "" {
			return "Please check your input: " + e.Message + "."
		}
		return "Please check your input."
	default:
		return "Something went wrong. Please try again."
	}
}

// IsUnauthenticated reports whether the stored session should be dropped.
func IsUnauthenticated(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == "UNAUTHENTICATED"
}

// Friendly renders any error returned by APIClient for a person.
func Friendly(err error) string {
	var apiErr *APIError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return apiErr.Friendly()
	case errors.Is(err, ErrUnreachable):
		return "Could not reach the server. Is it running?"
	default:
		return "Something went wrong. Please try again."
	}
}

type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

func New(baseURL, token string) *APIClient {
	return &APIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Token:      token,
	}
}

func (c *APIClient) do(ctx context.Context, method, path string, body any, out any) error {
	var payload io.Reader

	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeError(res)
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func decodeError(res *http.Response) error {
	apiErr := &APIError{Status: res.StatusCode, Code: http.StatusText(res.StatusCode)}

	var envelope response.ErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil || envelope.Error.Code == "" {
		return apiErr
	}

	apiErr.Code = envelope.Error.Code
	if len(envelope.Error.Errors) > 0 {
		apiErr.Field = envelope.Error.Errors[0].Field
		apiErr.Message = envelope.Error.Errors[0].Message
	}

	return apiErr
}

func (c *APIClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Register creates the account and keeps the returned token on the client.
func (c *APIClient) Register(ctx context.Context, name, email, password string) (response.AuthResult, error) {
	var out response.SuccessResponse[response.AuthResult]

	err := c.do(ctx, http.MethodPost, "/api/auth/register", request.RegisterRequest{
		Name: name, Email: email, Password: password,
	}, &out)
	if err != nil {
		return response.AuthResult{}, err
	}

	c.Token = out.Data.Token
	return out.Data, nil
}

func (c *APIClient) Login(ctx context.Context, email, password string) (response.AuthResult, error) {
	var out response.SuccessResponse[response.AuthResult]

	err := c.do(ctx, http.MethodPost, "/api/auth/login", request.LoginRequest{
		Email: email, Password: password,
	}, &out)
	if err != nil {
		return response.AuthResult{}, err
	}

	c.Token = out.Data.Token
	return out.Data, nil
}

func (c *APIClient) Me(ctx context.Context) (response.UserResponse, error) {
	var out response.SuccessResponse[response.UserResponse]

	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return response.UserResponse{}, err
	}

	return out.Data, nil
}

func (c *APIClient) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.do(ctx, http.MethodPut, "/api/auth/update-password", request.UpdatePasswordRequest{
		OldPassword: oldPassword, NewPassword: newPassword,
	}, nil)
}

func (c *APIClient) ListTasks(ctx context.Context) ([]response.TaskResponse, error) {
	var out response.ListResponse[response.TaskResponse]

	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

func (c *APIClient) CreateTask(ctx context.Context, task request.TaskRequest) (response.TaskResponse, error) {
	var out response.SuccessResponse[response.TaskResponse]

	if err := c.do(ctx, http.MethodPost, "/api/tasks", task, &out); err != nil {
		return response.TaskResponse{}, err
	}

	return out.Data, nil
}

func (c *APIClient) UpdateTask(ctx context.Context, id string, patch request.TaskPatchRequest) (response.TaskResponse, error) {
	var out response.SuccessResponse[response.TaskResponse]

	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), patch, &out); err != nil {
		return response.TaskResponse{}, err
	}

	return out.Data, nil
}

func (c *APIClient) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *APIClient) ListNotes(ctx context.Context) ([]response.NoteResponse, error) {
	var out response.ListResponse[response.NoteResponse]

	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &out); err != nil {
		return nil, err
	}

	return out.Data, nil
}

func (c *APIClient) CreateNote(ctx context.Context, note request.NoteRequest) (response.NoteResponse, error) {
	var out response.SuccessResponse[response.NoteResponse]

	if err := c.do(ctx, http.MethodPost, "/api/notes", note, &out); err != nil {
		return response.NoteResponse{}, err
	}

	return out.Data, nil
}

func (c *APIClient) UpdateNote(ctx context.Context, id string, patch request.NotePatchRequest) (response.NoteResponse, error) {
	var out response.SuccessResponse[response.NoteResponse]

	if err := c.do(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(id), patch, &out); err != nil {
		return response.NoteResponse{}, err
	}

	return out.Data, nil
}

func (c *APIClient) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, nil)
}
