package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with the given arguments against srv.
func runCommand(t *testing.T, srvURL, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "none.yml"),
		"--env-file", filepath.Join(dir, "none.env"),
		"--server", srvURL,
	}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// TestClientCommands ensures one-shot commands drive the catalog.
func TestClientCommands(t *testing.T) {
	srv := newTestServer(t, testMovies...)

	out, err := runCommand(t, srv.URL, "", "list", "--search", "mann")
	require.NoError(t, err)
	assert.Contains(t, out, "Heat")
	assert.NotContains(t, out, "Dune")

	out, err = runCommand(t, srv.URL, "", "add", "--title", "Alien", "--director", "Ridley Scott", "--year", "1979")
	require.NoError(t, err)
	assert.Contains(t, out, "Movie added successfully!")
	assert.Contains(t, out, "Alien")

	out, err = runCommand(t, srv.URL, "", "add", "--title", "Aliens")
	assert.Error(t, err)
	assert.Contains(t, out, "Fill in all the fields correctly.")

	out, err = runCommand(t, srv.URL, "", "rent", "m-0")
	require.NoError(t, err)
	assert.Contains(t, out, "Movie rented successfully!")

	out, err = runCommand(t, srv.URL, "", "rent", "m-0")
	assert.Error(t, err)
	assert.Contains(t, out, "Failed to rent movie.")

	out, err = runCommand(t, srv.URL, "", "return", "m-0")
	require.NoError(t, err)
	assert.Contains(t, out, "Movie returned successfully!")

	out, err = runCommand(t, srv.URL, "", "edit", "m-2", "--title", "Heat (1995)")
	require.NoError(t, err)
	assert.Contains(t, out, "Heat (1995)")

	out, err = runCommand(t, srv.URL, "n\n", "delete", "m-2")
	require.NoError(t, err)
	assert.NotContains(t, out, "Movie deleted successfully!")

	out, err = runCommand(t, srv.URL, "", "delete", "m-2", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Movie deleted successfully!")
	assert.NotContains(t, out, "Heat")

	_, err = runCommand(t, srv.URL, "", "rent")
	assert.Error(t, err)
}
