package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	api "tasknotes/internal/adapter/http"
	"tasknotes/internal/adapter/http/routes"
	"tasknotes/internal/client"
	"tasknotes/pkg/config"
	"tasknotes/pkg/logger"
	_ "tasknotes/pkg/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	filterTerm, titleFlag, contentFlag = "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestCLI_EndToEnd(t *testing.T) {
	container, err := api.NewContainer(context.Background(), config.GetDefaultConfig(), logger.NewNop(), nil)
	require.NoError(t, err)
	defer container.Close()

	server := httptest.NewServer(routes.SetupRouterForTests(container.Handlers()))
	defer server.Close()

	session := filepath.Join(t.TempDir(), client.SessionFileName)
	common := []string{"--session", session, "--server", server.URL}

	_, err = run(t, append([]string{"tasks"}, common...)...)
	assert.ErrorContains(t, err, "not logged in")

	out, err := run(t, append([]string{"register", "--name", "Ana", "--email", "ana@example.com", "--password", "secret1"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Ana!")

	saved, err := client.LoadSession(session)
	require.NoError(t, err)
	assert.True(t, saved.SignedIn())

	_, err = run(t, append([]string{"tasks", "add", "Buy", "milk"}, common...)...)
	require.NoError(t, err)
	_, err = run(t, append([]string{"tasks", "add", "Walk", "the", "dog"}, common...)...)
	require.NoError(t, err)

	out, err = run(t, append([]string{"tasks", "list", "--filter", "MILK"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.NotContains(t, out, "Walk the dog")

	out, err = run(t, append([]string{"me"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Ana <ana@example.com>")

	_, err = run(t, append([]string{"password", "--old", "secret1", "--new", "abc"}, common...)...)
	assert.ErrorContains(t, err, "at least 6")

	out, err = run(t, append([]string{"logout"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	saved, err = client.LoadSession(session)
	require.NoError(t, err)
	assert.False(t, saved.SignedIn())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Invalid email or password.", describe(&client.APIError{Code: "INVALID_CREDENTIALS"}))
	assert.Equal(t, "not logged in", describe(assertError("not logged in")))
}

type assertError string

func (e assertError) Error() string { return string(e) }
