package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/chessctl-dev/chessctl/internal/cli/auth"
	"github.com/chessctl-dev/chessctl/internal/cli/client"
	"github.com/chessctl-dev/chessctl/internal/cli/config"
	"github.com/chessctl-dev/chessctl/internal/cli/output"
	"github.com/chessctl-dev/chessctl/internal/cli/serverselect"
	"github.com/chessctl-dev/chessctl/internal/cli/transport"
	"github.com/chessctl-dev/chessctl/internal/cli/userconfig"
	appconfig "github.com/chessctl-dev/chessctl/internal/config"
	"github.com/chessctl-dev/chessctl/internal/logger"
)

// APIClient is the subset of client.Client the commands use
type APIClient interface {
	Register(ctx context.Context, req client.RegisterRequest) (client.Reply[client.AuthData], error)
	Login(ctx context.Context, req client.LoginRequest) (client.Reply[client.AuthData], error)
	Logout(ctx context.Context, token string) (client.Reply[client.Empty], error)
	ListGames(ctx context.Context, token string) (client.Reply[client.GameList], error)
	CreateGame(ctx context.Context, token, gameName string) (client.Reply[client.CreateGameResult], error)
	JoinGame(ctx context.Context, token string, body client.JoinGameRequest) (client.Reply[client.Empty], error)
	ObserveGame(ctx context.Context, token string, gameID int) (client.Reply[client.Empty], error)
	ClearDatabase(ctx context.Context) (client.Reply[client.Empty], error)
}

// GlobalFlags are the persistent flags shared by every command
type GlobalFlags struct {
	Server string
	Token  string
	Output string
}

// Env carries what a command needs to talk to a server. Fields left nil are
// resolved on first use from chessctl.json, the user config and the
// environment; the shell and tests preset them.
type Env struct {
	Flags  *GlobalFlags
	Out    io.Writer
	API    APIClient
	Server *config.Server
	Tokens auth.TokenStore

	// Username is the user of the current session, if known
	Username string

	// Interactive makes join and observe take a position in Games instead
	// of a server game ID
	Interactive bool

	// Games is the last successful listing
	Games []client.Game

	// builtFor names the server URL and format the cached API client was
	// built with; empty when API was preset
	builtFor string
}

// NewEnv creates an Env writing to stdout
func NewEnv(flags *GlobalFlags) *Env {
	return &Env{Flags: flags, Out: os.Stdout}
}

func (e *Env) flags() *GlobalFlags {
	if e.Flags == nil {
		e.Flags = &GlobalFlags{}
	}
	return e.Flags
}

func (e *Env) out() io.Writer {
	if e.Out == nil {
		e.Out = os.Stdout
	}
	return e.Out
}

// token returns the explicit --token value, "" means use the stored session
func (e *Env) token() string {
	return e.flags().Token
}

// apiClient returns the preset client, or builds one for the selected server
// and output format. A built client is rebuilt when either changes, so
// per-line flags in the shell take effect while the token store is kept.
func (e *Env) apiClient() (APIClient, error) {
	if e.API != nil && e.builtFor == "" {
		return e.API, nil
	}

	server, err := e.selectedServer()
	if err != nil {
		return nil, err
	}

	format, err := e.outputFormat()
	if err != nil {
		return nil, err
	}

	key := server.URL + " " + string(format)
	if e.API != nil && e.builtFor == key {
		return e.API, nil
	}

	appCfg, err := appconfig.Load()
	if err != nil {
		return nil, err
	}

	if e.Tokens == nil {
		switch appCfg.Client.TokenStore {
		case appconfig.TokenStoreMemory:
			e.Tokens = auth.NewMemoryStore()
		default:
			e.Tokens = auth.NewKeyringStore()
		}
	}

	log := logger.GetLogger()
	printer := output.NewPrinter(e.out(), output.NewFormatter(format), log)

	tr := transport.New(server.URL,
		transport.WithHTTPClient(&http.Client{Timeout: appCfg.Client.HTTPTimeout}),
		transport.WithLogger(log),
		transport.WithObserver(printer),
	)

	e.API = client.New(tr, e.Tokens, tr.BaseURL(), client.WithLogger(log))
	e.builtFor = key
	return e.API, nil
}

// outputFormat prefers -o, then the user config, then JSON
func (e *Env) outputFormat() (output.Format, error) {
	if name := e.flags().Output; name != "" {
		return output.ParseFormat(name)
	}
	format, err := userconfig.GetOutputFormat()
	if err != nil {
		return "", err
	}
	if format == "" {
		return output.FormatJSON, nil
	}
	return format, nil
}

// selectedServer loads the config and returns the selected server.
// This is common logic used by most commands. A --server alias applies to
// this invocation only; without one the resolved server is kept on e.
func (e *Env) selectedServer() (*config.Server, error) {
	alias := e.flags().Server
	if e.Server != nil && (alias == "" || alias == e.Server.Alias) {
		return e.Server, nil
	}

	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'chessctl init <server-url>' to create a configuration file", err)
	}

	server, err := serverselect.ResolveServer(cfg, alias)
	if err != nil {
		return nil, err
	}

	if err := server.Validate(); err != nil {
		return nil, err
	}

	if alias == "" {
		e.Server = server
	}
	return server, nil
}
