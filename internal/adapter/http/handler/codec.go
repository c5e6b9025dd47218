package handler

import (
	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/model/request"
	"tasknotes/internal/core/model/response"
	"tasknotes/internal/core/port"
	"tasknotes/pkg/logger"
)

type (
	TaskHandler = ItemHandler[domain.Task, domain.TaskPatch, request.TaskRequest, request.TaskPatchRequest, response.TaskResponse]
	NoteHandler = ItemHandler[domain.Note, domain.NotePatch, request.NoteRequest, request.NotePatchRequest, response.NoteResponse]
)

var TaskCodec = ItemCodec[domain.Task, domain.TaskPatch, request.TaskRequest, request.TaskPatchRequest, response.TaskResponse]{
	FromCreate: func(r request.TaskRequest) domain.Task {
		return domain.Task{Title: r.Title, Completed: r.Completed}
	},
	FromPatch: func(r request.TaskPatchRequest) domain.TaskPatch {
		return domain.TaskPatch{Title: r.Title, Completed: r.Completed}
	},
	Render: func(t domain.Task) response.TaskResponse {
		return response.TaskResponse{
			UUID:      t.UUID,
			Title:     t.Title,
			Completed: t.Completed,
			OwnerID:   t.OwnerID,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		}
	},
}

var NoteCodec = ItemCodec[domain.Note, domain.NotePatch, request.NoteRequest, request.NotePatchRequest, response.NoteResponse]{
	FromCreate: func(r request.NoteRequest) domain.Note {
		return domain.Note{Title: r.Title, Content: r.Content}
	},
	FromPatch: func(r request.NotePatchRequest) domain.NotePatch {
		return domain.NotePatch{Title: r.Title, Content: r.Content}
	},
	Render: func(n domain.Note) response.NoteResponse {
		return response.NoteResponse{
			UUID:      n.UUID,
			Title:     n.Title,
			Content:   n.Content,
			OwnerID:   n.OwnerID,
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		}
	},
}

func NewTaskHandler(svc port.ItemService[domain.Task, domain.TaskPatch], log *logger.Logger) *TaskHandler {
	return NewItemHandler(svc, TaskCodec, log)
}

func NewNoteHandler(svc port.ItemService[domain.Note, domain.NotePatch], log *logger.Logger) *NoteHandler {
	return NewItemHandler(svc, NoteCodec, log)
}
