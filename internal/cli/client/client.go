package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/chessctl-dev/chessctl/internal/cli/auth"
	"github.com/chessctl-dev/chessctl/internal/cli/transport"
)

const authHeader = "authorization"

// Sender performs one request/response exchange
type Sender interface {
	Send(ctx context.Context, req transport.Request) transport.Result
}

// Client represents the chess server API with session handling.
// Register and Login store the issued token; authenticated calls fall back
// to it when no explicit token is given.
type Client struct {
	sender Sender
	tokens auth.TokenStore
	server string
	logger zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the client logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new API client. server is the key under which the session
// token is stored.
func New(sender Sender, tokens auth.TokenStore, server string, opts ...Option) *Client {
	c := &Client{
		sender: sender,
		tokens: tokens,
		server: server,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the stored session token, or "" when logged out
func (c *Client) Token() string {
	return c.resolveToken("")
}

// Register creates a user and stores the issued token
func (c *Client) Register(ctx context.Context, req RegisterRequest) (Reply[AuthData], error) {
	reply, err := send[AuthData](ctx, c, transport.NewRequest(http.MethodPost, "/user", req, nil), "register")
	if err != nil {
		return reply, err
	}
	return reply, c.captureToken(reply)
}

// Login authenticates the user and stores the issued token
func (c *Client) Login(ctx context.Context, req LoginRequest) (Reply[AuthData], error) {
	reply, err := send[AuthData](ctx, c, transport.NewRequest(http.MethodPost, "/session", req, nil), "login")
	if err != nil {
		return reply, err
	}
	return reply, c.captureToken(reply)
}

// Logout ends the session. The stored token is cleared whatever the outcome.
func (c *Client) Logout(ctx context.Context, token string) (Reply[Empty], error) {
	req := transport.NewRequest(http.MethodDelete, "/session", nil, c.authHeaders(token))
	reply, err := send[Empty](ctx, c, req, "logout")

	if delErr := c.tokens.DeleteToken(c.server); delErr != nil {
		err = errors.Join(err, fmt.Errorf("failed to clear session token: %w", delErr))
	}
	return reply, err
}

// ListGames returns all games
func (c *Client) ListGames(ctx context.Context, token string) (Reply[GameList], error) {
	req := transport.NewRequest(http.MethodGet, "/game", nil, c.authHeaders(token))
	return send[GameList](ctx, c, req, "list games")
}

// CreateGame creates a game with the given name
func (c *Client) CreateGame(ctx context.Context, token, gameName string) (Reply[CreateGameResult], error) {
	body := CreateGameRequest{GameName: gameName}
	req := transport.NewRequest(http.MethodPost, "/game", body, c.authHeaders(token))
	return send[CreateGameResult](ctx, c, req, "create game")
}

// JoinGame joins a game as the given color
func (c *Client) JoinGame(ctx context.Context, token string, body JoinGameRequest) (Reply[Empty], error) {
	req := transport.NewRequest(http.MethodPut, "/game", body, c.authHeaders(token))
	return send[Empty](ctx, c, req, "join game")
}

// ObserveGame joins a game without taking a color
func (c *Client) ObserveGame(ctx context.Context, token string, gameID int) (Reply[Empty], error) {
	req := transport.NewRequest(http.MethodPut, "/game", observeGameRequest{GameID: gameID}, c.authHeaders(token))
	return send[Empty](ctx, c, req, "observe game")
}

// ClearDatabase wipes all server data. It never sends a token.
func (c *Client) ClearDatabase(ctx context.Context) (Reply[Empty], error) {
	return send[Empty](ctx, c, transport.NewRequest(http.MethodDelete, "/db", nil, nil), "clear database")
}

func send[T any](ctx context.Context, c *Client, req transport.Request, op string) (Reply[T], error) {
	res := c.sender.Send(ctx, req)
	if res.Failed() {
		return Reply[T]{}, fmt.Errorf("failed to %s: %w", op, res.Err)
	}

	reply := Reply[T]{Status: res.Status, Raw: res.Data}
	if !reply.OK() {
		return reply, nil
	}

	if err := json.Unmarshal(res.Data, &reply.Body); err != nil {
		return reply, fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return reply, nil
}

func (c *Client) captureToken(reply Reply[AuthData]) error {
	if reply.Status != http.StatusOK || reply.Body.AuthToken == "" {
		return nil
	}
	if err := c.tokens.SaveToken(c.server, reply.Body.AuthToken); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	return nil
}

func (c *Client) authHeaders(explicit string) map[string]string {
	return map[string]string{authHeader: c.resolveToken(explicit)}
}

// resolveToken prefers the explicit token, then the stored one, then "".
func (c *Client) resolveToken(explicit string) string {
	if explicit != "" {
		return explicit
	}
	token, err := c.tokens.LoadToken(c.server)
	if err != nil {
		if !errors.Is(err, auth.ErrNotAuthenticated) {
			c.logger.Warn().Err(err).Str("server", c.server).Msg("Failed to load session token")
		}
		return ""
	}
	return token
}
