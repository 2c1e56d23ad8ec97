package stubserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Username  string `json:"username"`
	AuthToken string `json:"authToken"`
}

// CreateGameRequest represents a game creation request
type CreateGameRequest struct {
	GameName string `json:"gameName" binding:"required"`
}

// JoinGameRequest represents a join request; no color means observe
type JoinGameRequest struct {
	PlayerColor string `json:"playerColor" binding:"omitempty,oneof=WHITE BLACK"`
	GameID      int    `json:"gameID" binding:"required,gt=0"`
}

func (s *Server) clear(c *gin.Context) {
	s.store.clear()
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, http.StatusBadRequest, ErrBadRequest)
		return
	}

	token, err := s.store.createUser(req.Username, req.Password, req.Email)
	if err != nil {
		s.respondWithError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Username: req.Username, AuthToken: token})
}

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, http.StatusBadRequest, ErrBadRequest)
		return
	}

	token, err := s.store.login(req.Username, req.Password)
	if err != nil {
		s.respondWithError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Username: req.Username, AuthToken: token})
}

func (s *Server) logout(c *gin.Context) {
	if err := s.store.logout(c.GetHeader("Authorization")); err != nil {
		s.respondWithError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) listGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": s.store.listGames()})
}

func (s *Server) createGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, http.StatusBadRequest, ErrBadRequest)
		return
	}

	c.JSON(http.StatusOK, gin.H{"gameID": s.store.createGame(req.GameName)})
}

func (s *Server) joinGame(c *gin.Context) {
	var req JoinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondWithError(c, http.StatusBadRequest, ErrBadRequest)
		return
	}

	if err := s.store.joinGame(c.GetString(usernameKey), req.PlayerColor, req.GameID); err != nil {
		s.respondWithError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}
