package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/chessctl-dev/chessctl/internal/cli/client"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldLabels = map[string]string{
	"GameID":      "game ID",
	"PlayerColor": "player color",
}

// registerInput is the user-supplied part of a registration
type registerInput struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required"`
	Email    string `validate:"required,email"`
}

type loginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type colorInput struct {
	PlayerColor string `validate:"oneof=WHITE BLACK"`
}

type gameIDInput struct {
	GameID int `validate:"gt=0"`
}

// ErrInvalidGameNumber is returned when a shell game number does not name a
// game of the last listing
var ErrInvalidGameNumber = errors.New("invalid game number")

// validateInput reports the first invalid field in user terms
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field, ok := fieldLabels[fe.Field()]
	if !ok {
		field = strings.ToLower(fe.Field())
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "email":
		return fmt.Errorf("invalid email '%v'", fe.Value())
	case "oneof":
		return fmt.Errorf("invalid %s '%v', must be one of: %s", field, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Errorf("invalid %s '%v', must be greater than %s", field, fe.Value(), fe.Param())
	default:
		return fmt.Errorf("invalid %s '%v'", field, fe.Value())
	}
}

// parseGameID validates a server game ID before anything is sent
func parseGameID(raw string) (int, error) {
	id, err := client.ParseGameID(raw)
	if err != nil {
		return 0, err
	}
	if err := validateInput(gameIDInput{GameID: id}); err != nil {
		return 0, err
	}
	return id, nil
}

// parsePlayerColor accepts WHITE or BLACK in any case
func parsePlayerColor(raw string) (string, error) {
	in := colorInput{PlayerColor: strings.ToUpper(strings.TrimSpace(raw))}
	if err := validateInput(in); err != nil {
		return "", err
	}
	return in.PlayerColor, nil
}

// resolveGame turns the <game> argument into a game. The shell reads it as
// a 1-based position in the last listing; otherwise it is a server game ID.
func (e *Env) resolveGame(raw string) (client.Game, error) {
	if !e.Interactive {
		id, err := parseGameID(raw)
		if err != nil {
			return client.Game{}, err
		}
		return client.Game{GameID: id}, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return client.Game{}, fmt.Errorf("%w '%s': must be a number", ErrInvalidGameNumber, raw)
	}
	if n < 1 || n > len(e.Games) {
		return client.Game{}, fmt.Errorf("%w %d. Use 'ls' to see available games", ErrInvalidGameNumber, n)
	}
	return e.Games[n-1], nil
}

// promptPassword reads a password without echo. It fails when stdin is not
// a terminal so scripts get an error instead of a hang.
func promptPassword(out io.Writer, envVar string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("password is required in non-interactive mode (use --password flag or %s env var)", envVar)
	}

	fmt.Fprint(out, "Password: ")
	bytePassword, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}
