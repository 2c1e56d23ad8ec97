package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessctl-dev/chessctl/internal/cli/client"
	"github.com/chessctl-dev/chessctl/internal/cli/config"
	"github.com/chessctl-dev/chessctl/internal/cli/userconfig"
)

func TestInitCommand_NewConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	var out bytes.Buffer
	require.NoError(t, runInit(&out, "localhost:8080"))

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 1)
	assert.Equal(t, config.Server{URL: "localhost:8080", Alias: "local"}, cfg.Servers[0])
	assert.Contains(t, out.String(), "Created ./chessctl.json with server localhost:8080 (local)")
}

func TestInitCommand_MultipleServers(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	servers := []struct {
		url           string
		expectedAlias string
	}{
		{"localhost:8080", "local"},
		{"https://chess.example.com", "server-2"},
		{"10.0.0.5:9000", "server-3"},
	}

	for _, srv := range servers {
		require.NoError(t, runInit(&bytes.Buffer{}, srv.url))
	}

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	require.Len(t, cfg.Servers, len(servers))
	for i, expected := range servers {
		assert.Equal(t, expected.url, cfg.Servers[i].URL)
		assert.Equal(t, expected.expectedAlias, cfg.Servers[i].Alias)
	}
}

func TestInitCommand_DuplicateServer(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, runInit(&bytes.Buffer{}, "localhost:8080"))

	var out bytes.Buffer
	require.NoError(t, runInit(&out, "localhost:8080"))
	assert.Contains(t, out.String(), "already exists")

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Len(t, cfg.Servers, 1)
}

func TestInitCommand_InvalidURL(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.Error(t, runInit(&bytes.Buffer{}, "not a url"))

	_, err := os.Stat(filepath.Join(dir, config.ConfigFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestInitCommand_ConfigFileFormat(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, runInit(&bytes.Buffer{}, "localhost:8080"))

	data, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)

	var parsed map[string][]map[string]string
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "localhost:8080", parsed["servers"][0]["url"])
}

func TestInitCommand_MissingArgument(t *testing.T) {
	cmd := NewInitCmd(&Env{Out: &bytes.Buffer{}})
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}

func TestSelectServer_ByAliasAndURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, runInit(&bytes.Buffer{}, "localhost:8080"))
	require.NoError(t, runInit(&bytes.Buffer{}, "https://chess.example.com"))

	var out bytes.Buffer
	require.NoError(t, runSelectServer(&out, "server-2"))
	assert.Equal(t, "Selected server: server-2 (https://chess.example.com)\n", out.String())

	selected, err := userconfig.GetSelectedServer()
	require.NoError(t, err)
	assert.Equal(t, "https://chess.example.com", selected)

	require.NoError(t, runSelectServer(&bytes.Buffer{}, "localhost:8080"))
	selected, err = userconfig.GetSelectedServer()
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", selected)

	assert.Error(t, runSelectServer(&bytes.Buffer{}, "staging"))
}

func TestSelectServer_NoConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	err := runSelectServer(&bytes.Buffer{}, "local")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestSelectedServer_UsesServerFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, runInit(&bytes.Buffer{}, "localhost:8080"))
	require.NoError(t, runInit(&bytes.Buffer{}, "https://chess.example.com"))

	env := &Env{Flags: &GlobalFlags{Server: "server-2"}}
	server, err := env.selectedServer()
	require.NoError(t, err)
	assert.Equal(t, "https://chess.example.com", server.URL)
}

func TestSelectedServer_FlagDoesNotReplaceSessionServer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, runInit(&bytes.Buffer{}, "localhost:8080"))
	require.NoError(t, runInit(&bytes.Buffer{}, "https://chess.example.com"))
	require.NoError(t, userconfig.SetSelectedServer("localhost:8080"))

	env := &Env{Flags: &GlobalFlags{}}
	server, err := env.selectedServer()
	require.NoError(t, err)
	assert.Equal(t, "local", server.Alias)

	env.Flags.Server = "server-2"
	server, err = env.selectedServer()
	require.NoError(t, err)
	assert.Equal(t, "server-2", server.Alias)
	assert.Equal(t, "local", env.Server.Alias)

	env.Flags.Server = ""
	server, err = env.selectedServer()
	require.NoError(t, err)
	assert.Equal(t, "local", server.Alias)
}

func TestSelectServerCmd_ResetsSessionServer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, runInit(&bytes.Buffer{}, "localhost:8080"))
	require.NoError(t, runInit(&bytes.Buffer{}, "https://chess.example.com"))

	env := &Env{
		Flags:  &GlobalFlags{},
		Out:    &bytes.Buffer{},
		Server: &config.Server{URL: "localhost:8080", Alias: "local"},
		Games:  []client.Game{{GameID: 1}},
	}

	cmd := NewSelectServerCmd(env)
	cmd.SetArgs([]string{"server-2"})
	require.NoError(t, cmd.Execute())

	assert.Nil(t, env.Games)
	server, err := env.selectedServer()
	require.NoError(t, err)
	assert.Equal(t, "https://chess.example.com", server.URL)
}
