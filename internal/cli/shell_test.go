package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chessctl-dev/chessctl/internal/cli/auth"
	"github.com/chessctl-dev/chessctl/internal/cli/commands"
	"github.com/chessctl-dev/chessctl/internal/cli/config"
	"github.com/chessctl-dev/chessctl/internal/cli/userconfig"
	"github.com/chessctl-dev/chessctl/internal/stubserver"
)

func newShellSession(t *testing.T, out *bytes.Buffer) *commands.Env {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	srv := stubserver.New(zerolog.Nop(), stubserver.WithBcryptCost(bcrypt.MinCost))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &commands.Env{
		Flags:       &commands.GlobalFlags{},
		Out:         out,
		Server:      &config.Server{URL: ts.URL, Alias: "test"},
		Tokens:      auth.NewMemoryStore(),
		Interactive: true,
	}
}

func TestShell_SessionCarriesAcrossLines(t *testing.T) {
	var out bytes.Buffer
	session := newShellSession(t, &out)

	input := strings.Join([]string{
		"ls",
		"register --username alice --password pw --email a@example.com",
		`create "friday night"`,
		"join 1 white",
		"ls",
		"join 1 white",
		"observe 1",
		"logout",
		"exit",
	}, "\n") + "\n"

	require.NoError(t, runShell(context.Background(), session, strings.NewReader(input), &out))

	got := out.String()

	// Logged out until register succeeds, then the prompt names the user
	assert.True(t, strings.HasPrefix(got, "[LOGGED_OUT] >>> "))
	assert.Contains(t, got, "Error: failed to list games: Error: unauthorized (status 401)")
	assert.Contains(t, got, "[alice] >>> ")
	assert.Contains(t, got, "Created game 'friday night' (ID 1)")
	assert.Contains(t, got, "Error: invalid game number 1. Use 'ls' to see available games")
	assert.Contains(t, got, "Joined game 'friday night' (ID 1) as WHITE")
	assert.Contains(t, got, "Observing game 'friday night' (ID 1)")
	assert.Contains(t, got, "1  R N B Q K B N R  1\n")
	assert.True(t, strings.HasSuffix(got, "Logged out\n[LOGGED_OUT] >>> "))
}

func TestShell_FlagsDoNotLeakBetweenLines(t *testing.T) {
	var out bytes.Buffer
	session := newShellSession(t, &out)

	input := "register --username alice --password pw --email a@example.com\nls --token bogus\nls\nexit\n"
	require.NoError(t, runShell(context.Background(), session, strings.NewReader(input), &out))

	assert.Equal(t, 1, strings.Count(out.String(), "Status: 401"))
	assert.Empty(t, session.Flags.Token)
}

// lineOutputs splits shell output into what each input line printed
func lineOutputs(out string) []string {
	parts := strings.Split(out, ">>> ")
	return parts[1:]
}

func TestShell_OutputFlagAppliesPerLine(t *testing.T) {
	var out bytes.Buffer
	session := newShellSession(t, &out)

	input := strings.Join([]string{
		"register --username alice --password pw --email a@example.com",
		"create chess1",
		"ls -o yaml",
		"ls",
		"exit",
	}, "\n") + "\n"
	require.NoError(t, runShell(context.Background(), session, strings.NewReader(input), &out))

	got := lineOutputs(out.String())
	require.Len(t, got, 5)

	assert.Contains(t, got[0], `"username": "alice"`)

	assert.Contains(t, got[2], "Status: 200\ngames:\n")
	assert.Contains(t, got[2], "gameName: chess1\n")
	assert.NotContains(t, got[2], `"gameName"`)

	assert.Contains(t, got[3], `"gameName": "chess1"`)
	assert.Empty(t, session.Flags.Output)
}

func TestShell_ServerFlagAppliesPerLine(t *testing.T) {
	var out bytes.Buffer
	t.Setenv("HOME", t.TempDir())

	urls := make([]string, 2)
	for i := range urls {
		srv := stubserver.New(zerolog.Nop(), stubserver.WithBcryptCost(bcrypt.MinCost))
		ts := httptest.NewServer(srv.Handler())
		t.Cleanup(ts.Close)
		urls[i] = ts.URL
	}

	dir := t.TempDir()
	t.Chdir(dir)
	cfg := fmt.Sprintf(`{"servers":[{"url":%q,"alias":"one"},{"url":%q,"alias":"two"}]}`, urls[0], urls[1])
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(cfg), 0o644))
	require.NoError(t, userconfig.SetSelectedServer(urls[0]))

	session := &commands.Env{
		Flags:       &commands.GlobalFlags{},
		Out:         &out,
		Tokens:      auth.NewMemoryStore(),
		Interactive: true,
	}

	input := "register --username alice --password pw --email a@example.com\nls --server two\nls\nexit\n"
	require.NoError(t, runShell(context.Background(), session, strings.NewReader(input), &out))

	got := lineOutputs(out.String())
	require.Len(t, got, 4)

	// Alice only exists on the selected server
	assert.Contains(t, got[1], "Status: 401")
	assert.Contains(t, got[2], "Status: 200")
	require.NotNil(t, session.Server)
	assert.Equal(t, "one", session.Server.Alias)
}

func TestShell_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	session := newShellSession(t, &out)

	require.NoError(t, runShell(context.Background(), session, strings.NewReader("move e2 e4\nexit\n"), &out))

	assert.Contains(t, out.String(), `Error: unknown command "move"`)
}

func TestRootCmd_Version(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCmd(&commands.Env{Out: &out})
	root.SetArgs([]string{"version"})
	root.SetOut(&out)

	require.NoError(t, root.Execute())
	assert.Equal(t, "chessctl version dev\n", out.String())
}

func TestRootCmd_HasAllCommands(t *testing.T) {
	root := NewRootCmd(&commands.Env{})

	for _, name := range []string{"init", "select-server", "set-output", "register", "login", "logout", "ls", "list", "create", "join", "observe", "clear-db", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.NotEqual(t, root, cmd, name)
	}

	for _, flag := range []string{"server", "token", "output"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}
