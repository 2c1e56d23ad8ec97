package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Player colors accepted by JoinGame
const (
	ColorWhite = "WHITE"
	ColorBlack = "BLACK"
)

// ErrInvalidGameID is returned by ParseGameID for non-numeric input
var ErrInvalidGameID = errors.New("invalid game ID")

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthData is returned by register and login
type AuthData struct {
	Username  string `json:"username"`
	AuthToken string `json:"authToken"`
}

// CreateGameRequest represents the game creation request body
type CreateGameRequest struct {
	GameName string `json:"gameName"`
}

// CreateGameResult is returned by create game
type CreateGameResult struct {
	GameID int `json:"gameID"`
}

// JoinGameRequest represents the join game request body
type JoinGameRequest struct {
	PlayerColor string `json:"playerColor"`
	GameID      int    `json:"gameID"`
}

// observeGameRequest joins a game without claiming a color
type observeGameRequest struct {
	GameID int `json:"gameID"`
}

// Game represents one entry of the game list
type Game struct {
	GameID        int             `json:"gameID"`
	WhiteUsername string          `json:"whiteUsername,omitempty"`
	BlackUsername string          `json:"blackUsername,omitempty"`
	GameName      string          `json:"gameName"`
	Game          json.RawMessage `json:"game,omitempty"`
}

// GameList is returned by list games
type GameList struct {
	Games []Game `json:"games"`
}

// Empty is the schema of endpoints that return no fields
type Empty struct{}

// Reply is a completed HTTP exchange. Body is decoded only for 2xx statuses;
// for anything else inspect Status or call Err.
type Reply[T any] struct {
	Status int
	Body   T
	Raw    json.RawMessage
}

// OK reports whether the server answered with a 2xx status
func (r Reply[T]) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Err returns an *APIError for non-2xx replies and nil otherwise
func (r Reply[T]) Err() error {
	if r.OK() {
		return nil
	}
	return newAPIError(r.Status, r.Raw)
}

// APIError is a non-2xx answer from the server
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func newAPIError(status int, raw json.RawMessage) *APIError {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}

// ParseGameID converts user input to a game ID
func ParseGameID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w '%s': must be a number", ErrInvalidGameID, s)
	}
	return id, nil
}
