package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		server  Server
		wantErr bool
	}{
		{"host and port", Server{URL: "localhost:8080", Alias: "local"}, false},
		{"ip and port", Server{URL: "127.0.0.1:54321", Alias: "test"}, false},
		{"http url", Server{URL: "http://localhost:8080", Alias: "local"}, false},
		{"https url", Server{URL: "https://chess.example.com", Alias: "prod"}, false},
		{"empty url", Server{URL: "", Alias: "local"}, true},
		{"garbage url", Server{URL: "not a url", Alias: "local"}, true},
		{"missing alias", Server{URL: "localhost:8080"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.server.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServer_ValidateEmptyURLMessage(t *testing.T) {
	err := (&Server{Alias: "local"}).Validate()
	require.Error(t, err)
	assert.Equal(t, "server URL is empty. Please edit chessctl.json and add a valid server URL", err.Error())
}

func TestConfig_ValidateUniqueness(t *testing.T) {
	dupAlias := &Config{Servers: []Server{
		{URL: "localhost:8080", Alias: "local"},
		{URL: "localhost:9090", Alias: "local"},
	}}
	assert.Error(t, dupAlias.Validate())

	dupURL := &Config{Servers: []Server{
		{URL: "localhost:8080", Alias: "a"},
		{URL: "localhost:8080", Alias: "b"},
	}}
	assert.Error(t, dupURL.Validate())

	ok := &Config{Servers: []Server{
		{URL: "localhost:8080", Alias: "a"},
		{URL: "localhost:9090", Alias: "b"},
	}}
	assert.NoError(t, ok.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := &Config{}
	server, added := cfg.AddServer("localhost:8080")
	require.True(t, added)
	assert.Equal(t, "local", server.Alias)

	server, added = cfg.AddServer("https://chess.example.com")
	require.True(t, added)
	assert.Equal(t, "server-2", server.Alias)

	_, added = cfg.AddServer("localhost:8080")
	assert.False(t, added)

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_RejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	err := Save(path, &Config{Servers: []Server{{URL: "", Alias: "x"}}})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromCurrentDir_SearchesParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg := &Config{Servers: []Server{{URL: "localhost:8080", Alias: "local"}}}
	require.NoError(t, Save(filepath.Join(root, ConfigFileName), cfg))

	t.Chdir(nested)

	loaded, err := LoadFromCurrentDir()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetServer(t *testing.T) {
	cfg := &Config{Servers: []Server{
		{URL: "localhost:8080", Alias: "local"},
		{URL: "https://chess.example.com", Alias: "prod"},
	}}

	s, err := cfg.GetServerByAlias("prod")
	require.NoError(t, err)
	assert.Equal(t, "https://chess.example.com", s.URL)

	s, err = cfg.GetServerByURL("localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "local", s.Alias)

	s, err = cfg.GetDefaultServer()
	require.NoError(t, err)
	assert.Equal(t, "local", s.Alias)

	_, err = cfg.GetServerByAlias("staging")
	assert.EqualError(t, err, "server with alias 'staging' not found")

	_, err = (&Config{}).GetDefaultServer()
	assert.EqualError(t, err, "no servers configured in chessctl.json")
}
