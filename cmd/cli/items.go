package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tasknotes/internal/client"
)

var (
	contentFlag string
	titleFlag   string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List and manage tasks",
	RunE:  runTasksList,
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks, newest first",
	RunE:  runTasksList,
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTasksAdd,
}

var tasksDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksDone,
}

var tasksRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Change a task title",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTasksRename,
}

var tasksRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksRm,
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List and manage notes",
	RunE:  runNotesList,
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notes, newest first",
	RunE:  runNotesList,
}

var notesAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a note",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNotesAdd,
}

var notesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a note title or content",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesEdit,
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesRm,
}

func init() {
	for _, cmd := range []*cobra.Command{tasksCmd, notesCmd} {
		cmd.PersistentFlags().StringVar(&filterTerm, "filter", "", "only show items containing this text")
	}

	tasksCmd.AddCommand(tasksListCmd, tasksAddCmd, tasksDoneCmd, tasksRenameCmd, tasksRmCmd)

	notesAddCmd.Flags().StringVar(&contentFlag, "content", "", "note body")
	_ = notesAddCmd.MarkFlagRequired("content")
	notesEditCmd.Flags().StringVar(&titleFlag, "title", "", "new title")
	notesEditCmd.Flags().StringVar(&contentFlag, "content", "", "new content")
	notesCmd.AddCommand(notesListCmd, notesAddCmd, notesEditCmd, notesRmCmd)
}

func dashboard(cmd *cobra.Command) (client.Session, *client.Dashboard, error) {
	session, api, err := signedIn()
	if err != nil {
		return session, nil, err
	}

	board := client.NewDashboard(api)
	if err := board.Load(cmd.Context()); err != nil {
		return session, nil, handleAPIError(session, err)
	}

	board.Filter(filterTerm)

	return session, board, nil
}

func runTasksList(cmd *cobra.Command, args []string) error {
	_, board, err := dashboard(cmd)
	if err != nil {
		return err
	}

	printTasks(cmd.OutOrStdout(), board)
	return nil
}

func printTasks(w io.Writer, board *client.Dashboard) {
	tasks := board.VisibleTasks()
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}

	for _, task := range tasks {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] %s  %s\n", mark, task.UUID, task.Title)
	}
}

func runTasksAdd(cmd *cobra.Command, args []string) error {
	session, api, err := signedIn()
	if err != nil {
		return err
	}

	task, err := client.NewDashboard(api).AddTask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return handleAPIError(session, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Task created: %s\n", task.UUID)
	return nil
}

func runTasksDone(cmd *cobra.Command, args []string) error {
	session, api, err := signedIn()
	if err != nil {
		return err
	}

	if _, err := client.NewDashboard(api).SetTaskCompleted(cmd.Context(), args[0], true); err != nil {
		return handleAPIError(session, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Task completed.")
	return nil
}

func runTasksRename(cmd *cobra.Command, args []string) error {
	session, board, err := dashboard(cmd)
	if err != nil {
		return err
	}

	for _, task := range board.Tasks {
		if task.UUID.String() != args[0] {
			continue
		}

		board.OpenTaskEditor(task)
		if _, err := board.SaveTask(cmd.Context(), strings.Join(args[1:], " ")); err != nil {
			return handleAPIError(session, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Task updated.")
		return nil
	}

	return &client.APIError{Code: "NOT_FOUND"}
}

func runTasksRm(cmd *cobra.Command, args []string) error {
	session, api, err := signedIn()
	if err != nil {
		return err
	}

	if err := client.NewDashboard(api).RemoveTask(cmd.Context(), args[0]); err != nil {
		return handleAPIError(session, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Task deleted.")
	return nil
}

func runNotesList(cmd *cobra.Command, args []string) error {
	_, board, err := dashboard(cmd)
	if err != nil {
		return err
	}

	notes := board.VisibleNotes()
	if len(notes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No notes.")
		return nil
	}

	for _, note := range notes {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n    %s\n", note.UUID, note.Title, note.Content)
	}

	return nil
}

func runNotesAdd(cmd *cobra.Command, args []string) error {
	session, api, err := signedIn()
	if err != nil {
		return err
	}

	note, err := client.NewDashboard(api).AddNote(cmd.Context(), strings.Join(args, " "), contentFlag)
	if err != nil {
		return handleAPIError(session, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Note created: %s\n", note.UUID)
	return nil
}

func runNotesEdit(cmd *cobra.Command, args []string) error {
	if titleFlag == "" && contentFlag == "" {
		return fmt.Errorf("nothing to change, pass --title or --content")
	}

	session, board, err := dashboard(cmd)
	if err != nil {
		return err
	}

	for _, note := range board.Notes {
		if note.UUID.String() != args[0] {
			continue
		}

		board.OpenNoteEditor(note)
		if _, err := board.SaveNote(cmd.Context(), titleFlag, contentFlag); err != nil {
			return handleAPIError(session, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Note updated.")
		return nil
	}

	return &client.APIError{Code: "NOT_FOUND"}
}

func runNotesRm(cmd *cobra.Command, args []string) error {
	session, api, err := signedIn()
	if err != nil {
		return err
	}

	if err := client.NewDashboard(api).RemoveNote(cmd.Context(), args[0]); err != nil {
		return handleAPIError(session, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Note deleted.")
	return nil
}
