package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tasknotes/internal/client"
)

var (
	sessionPath string
	serverURL   string
	filterTerm  string
)

var rootCmd = &cobra.Command{
	Use:           "tasknotes",
	Short:         "Manage your tasks and notes from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", client.DefaultSessionPath(), "session file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "API base URL (overrides the saved server)")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, meCmd, passwordCmd, tasksCmd, notesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		stop()
		os.Exit(1)
	}
}

// describe prefers the friendly text for server errors and keeps local
// errors (bad flags, missing session) as they are.
func describe(err error) string {
	var apiErr *client.APIError

	if errors.As(err, &apiErr) || errors.Is(err, client.ErrUnreachable) {
		return client.Friendly(err)
	}

	return err.Error()
}

func loadSession() (client.Session, error) {
	session, err := client.LoadSession(sessionPath)
	if err != nil {
		return session, err
	}

	if serverURL != "" {
		session.Server = serverURL
	}

	return session, nil
}

// signedIn loads the session and fails early when there is no token. An
// expired token found later is dropped from the session file.
func signedIn() (client.Session, *client.APIClient, error) {
	session, err := loadSession()
	if err != nil {
		return session, nil, err
	}

	if !session.SignedIn() {
		return session, nil, fmt.Errorf("not logged in, run `tasknotes login` first")
	}

	return session, session.Client(), nil
}

func handleAPIError(session client.Session, err error) error {
	if client.IsUnauthenticated(err) {
		session.Token = ""
		_ = session.Save(sessionPath)
	}

	return err
}
