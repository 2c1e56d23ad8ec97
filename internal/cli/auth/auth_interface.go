package auth

import "errors"

// ErrNotAuthenticated is returned by LoadToken when no token is stored for a server
var ErrNotAuthenticated = errors.New("not authenticated. Please run 'chessctl login' first")

// TokenStore holds the session token issued by each server.
// This allows the client to run against the OS keyring or an in-memory
// session, and lets tests swap in their own.
type TokenStore interface {
	SaveToken(server, token string) error
	LoadToken(server string) (string, error)
	DeleteToken(server string) error
}
