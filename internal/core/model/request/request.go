package request

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=100"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required,max=100"`
	NewPassword string `json:"newPassword" validate:"max=72"`
}

type TaskRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	Completed bool   `json:"completed"`
}

type TaskPatchRequest struct {
	Title     *string `json:"title" validate:"omitempty,max=255"`
	Completed *bool   `json:"completed"`
}

type NoteRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required,max=10000"`
}

type NotePatchRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Content *string `json:"content" validate:"omitempty,max=10000"`
}
