package stubserver

import (
	"errors"
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAlreadyTaken = errors.New("already taken")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
)

type user struct {
	username     string
	email        string
	passwordHash []byte
}

// Game is the listing form of a game
type Game struct {
	GameID        int        `json:"gameID"`
	WhiteUsername string     `json:"whiteUsername,omitempty"`
	BlackUsername string     `json:"blackUsername,omitempty"`
	GameName      string     `json:"gameName"`
	Game          *GameState `json:"game"`
}

type piece struct {
	PieceColor string `json:"pieceColor"`
	Type       string `json:"type"`
}

// GameState is the board and the side to move. Games are never played on
// the stub, so the state stays at the initial position.
type GameState struct {
	CurrentTeam string `json:"currentTeam"`
	GameBoard   struct {
		Board [8][8]*piece `json:"board"`
	} `json:"gameBoard"`
}

// newGameState returns the initial position, indexed [row-1][col-1]
func newGameState() *GameState {
	back := [8]string{"ROOK", "KNIGHT", "BISHOP", "QUEEN", "KING", "BISHOP", "KNIGHT", "ROOK"}
	st := &GameState{CurrentTeam: "WHITE"}
	b := &st.GameBoard.Board
	for c, typ := range back {
		b[0][c] = &piece{PieceColor: "WHITE", Type: typ}
		b[1][c] = &piece{PieceColor: "WHITE", Type: "PAWN"}
		b[6][c] = &piece{PieceColor: "BLACK", Type: "PAWN"}
		b[7][c] = &piece{PieceColor: "BLACK", Type: typ}
	}
	return st
}

// memoryStore holds users, sessions and games for the lifetime of the process
type memoryStore struct {
	mu         sync.Mutex
	bcryptCost int
	users      map[string]*user
	sessions   map[string]string // token -> username
	games      map[int]*Game
	nextGameID int
}

func newMemoryStore(bcryptCost int) *memoryStore {
	s := &memoryStore{bcryptCost: bcryptCost}
	s.clear()
	return s
}

func (s *memoryStore) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*user)
	s.sessions = make(map[string]string)
	s.games = make(map[int]*Game)
	s.nextGameID = 1
}

func (s *memoryStore) createUser(username, password, email string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return "", ErrAlreadyTaken
	}
	s.users[username] = &user{username: username, email: email, passwordHash: hash}
	return s.newSessionLocked(username), nil
}

func (s *memoryStore) login(username, password string) (string, error) {
	s.mu.Lock()
	u, ok := s.users[username]
	s.mu.Unlock()
	if !ok {
		return "", ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newSessionLocked(username), nil
}

func (s *memoryStore) newSessionLocked(username string) string {
	token := ulid.Make().String()
	s.sessions[token] = username
	return token
}

func (s *memoryStore) authenticate(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.sessions[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return username, nil
}

func (s *memoryStore) logout(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return ErrUnauthorized
	}
	delete(s.sessions, token)
	return nil
}

func (s *memoryStore) createGame(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextGameID
	s.nextGameID++
	s.games[id] = &Game{GameID: id, GameName: name, Game: newGameState()}
	return id
}

func (s *memoryStore) listGames() []Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	games := make([]Game, 0, len(s.games))
	for id := 1; id < s.nextGameID; id++ {
		if g, ok := s.games[id]; ok {
			games = append(games, *g)
		}
	}
	return games
}

// joinGame claims color for username. An empty color joins as an observer.
func (s *memoryStore) joinGame(username, color string, gameID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return ErrBadRequest
	}

	switch color {
	case "":
		return nil
	case "WHITE":
		if g.WhiteUsername != "" {
			return ErrAlreadyTaken
		}
		g.WhiteUsername = username
	case "BLACK":
		if g.BlackUsername != "" {
			return ErrAlreadyTaken
		}
		g.BlackUsername = username
	default:
		return ErrBadRequest
	}
	return nil
}
