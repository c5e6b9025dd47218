package client

import (
	"context"
	"errors"
	"strings"

	"tasknotes/internal/core/model/request"
	"tasknotes/internal/core/model/response"
)

var ErrNoEditor = errors.New("no item is being edited")

type EditorKind int

const (
	EditorClosed EditorKind = iota
	EditorTask
	EditorNote
)

// Dashboard holds what the signed-in user sees: their profile, tasks and notes,
// the current search filter and at most one open editor.
type Dashboard struct {
	api *APIClient

	User  response.UserResponse
	Tasks []response.TaskResponse
	Notes []response.NoteResponse

	filter string

	editor      EditorKind
	editingTask response.TaskResponse
	editingNote response.NoteResponse
}

func NewDashboard(api *APIClient) *Dashboard {
	return &Dashboard{api: api}
}

// Load fetches the profile and both item lists.
func (d *Dashboard) Load(ctx context.Context) error {
	user, err := d.api.Me(ctx)
	if err != nil {
		return err
	}

	tasks, err := d.api.ListTasks(ctx)
	if err != nil {
		return err
	}

	notes, err := d.api.ListNotes(ctx)
	if err != nil {
		return err
	}

	d.User, d.Tasks, d.Notes = user, tasks, notes

	return nil
}

// Filter sets a case-insensitive substring filter. An empty term clears it.
func (d *Dashboard) Filter(term string) {
	d.filter = strings.ToLower(strings.TrimSpace(term))
}

func (d *Dashboard) matches(fields ...string) bool {
	if d.filter == "" {
		return true
	}

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), d.filter) {
			return true
		}
	}

	return false
}

func (d *Dashboard) VisibleTasks() []response.TaskResponse {
	visible := make([]response.TaskResponse, 0, len(d.Tasks))

	for _, task := range d.Tasks {
		if d.matches(task.Title) {
			visible = append(visible, task)
		}
	}

	return visible
}

func (d *Dashboard) VisibleNotes() []response.NoteResponse {
	visible := make([]response.NoteResponse, 0, len(d.Notes))

	for _, note := range d.Notes {
		if d.matches(note.Title, note.Content) {
			visible = append(visible, note)
		}
	}

	return visible
}

func (d *Dashboard) AddTask(ctx context.Context, title string) (response.TaskResponse, error) {
	task, err := d.api.CreateTask(ctx, request.TaskRequest{Title: title})
	if err != nil {
		return response.TaskResponse{}, err
	}

	d.Tasks = append([]response.TaskResponse{task}, d.Tasks...)

	return task, nil
}

func (d *Dashboard) AddNote(ctx context.Context, title, content string) (response.NoteResponse, error) {
	note, err := d.api.CreateNote(ctx, request.NoteRequest{Title: title, Content: content})
	if err != nil {
		return response.NoteResponse{}, err
	}

	d.Notes = append([]response.NoteResponse{note}, d.Notes...)

	return note, nil
}

func (d *Dashboard) SetTaskCompleted(ctx context.Context, id string, completed bool) (response.TaskResponse, error) {
	task, err := d.api.UpdateTask(ctx, id, request.TaskPatchRequest{Completed: &completed})
	if err != nil {
		return response.TaskResponse{}, err
	}

	d.replaceTask(task)

	return task, nil
}

func (d *Dashboard) RemoveTask(ctx context.Context, id string) error {
	if err := d.api.DeleteTask(ctx, id); err != nil {
		return err
	}

	d.Tasks = without(d.Tasks, func(t response.TaskResponse) bool { return t.UUID.String() == id })

	return nil
}

func (d *Dashboard) RemoveNote(ctx context.Context, id string) error {
	if err := d.api.DeleteNote(ctx, id); err != nil {
		return err
	}

	d.Notes = without(d.Notes, func(n response.NoteResponse) bool { return n.UUID.String() == id })

	return nil
}

func (d *Dashboard) Editor() EditorKind {
	return d.editor
}

// OpenTaskEditor starts editing a copy of the task. Any open editor is replaced.
func (d *Dashboard) OpenTaskEditor(task response.TaskResponse) {
	d.CloseEditor()
	d.editor = EditorTask
	d.editingTask = task
}

func (d *Dashboard) OpenNoteEditor(note response.NoteResponse) {
	d.CloseEditor()
	d.editor = EditorNote
	d.editingNote = note
}

// CloseEditor discards unsaved edits.
func (d *Dashboard) CloseEditor() {
	d.editor = EditorClosed
	d.editingTask = response.TaskResponse{}
	d.editingNote = response.NoteResponse{}
}

func (d *Dashboard) EditingTask() (response.TaskResponse, bool) {
	return d.editingTask, d.editor == EditorTask
}

func (d *Dashboard) EditingNote() (response.NoteResponse, bool) {
	return d.editingNote, d.editor == EditorNote
}

// SaveTask sends the new title for the task in the editor and closes it on success.
func (d *Dashboard) SaveTask(ctx context.Context, title string) (response.TaskResponse, error) {
	if d.editor != EditorTask {
		return response.TaskResponse{}, ErrNoEditor
	}

	task, err := d.api.UpdateTask(ctx, d.editingTask.UUID.String(), request.TaskPatchRequest{Title: &title})
	if err != nil {
		return response.TaskResponse{}, err
	}

	d.replaceTask(task)
	d.CloseEditor()

	return task, nil
}

// SaveNote sends the edited fields. Empty arguments leave that field unchanged.
func (d *Dashboard) SaveNote(ctx context.Context, title, content string) (response.NoteResponse, error) {
	if d.editor != EditorNote {
		return response.NoteResponse{}, ErrNoEditor
	}

	var patch request.NotePatchRequest
	if title != "" {
		patch.Title = &title
	}
	if content != "" {
		patch.Content = &content
	}

	note, err := d.api.UpdateNote(ctx, d.editingNote.UUID.String(), patch)
	if err != nil {
		return response.NoteResponse{}, err
	}

	for i := range d.Notes {
		if d.Notes[i].UUID == note.UUID {
			d.Notes[i] = note
		}
	}
	d.CloseEditor()

	return note, nil
}

func (d *Dashboard) replaceTask(task response.TaskResponse) {
	for i := range d.Tasks {
		if d.Tasks[i].UUID == task.UUID {
			d.Tasks[i] = task
		}
	}
}

// Initials returns the upper-case first letters of each word of name.
func Initials(name string) string {
	var b strings.Builder

	for _, word := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(string([]rune(word)[:1])))
	}

	return b.String()
}

func without[T any](items []T, drop func(T) bool) []T {
	kept := items[:0]

	for _, item := range items {
		if !drop(item) {
			kept = append(kept, item)
		}
	}

	return kept
}
