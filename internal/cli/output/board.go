package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const boardSize = 8

// Piece is a chess piece as the server serializes it
type Piece struct {
	Color string `json:"pieceColor"`
	Type  string `json:"type"`
}

// Board holds squares as [row-1][col-1]; row 1 is white's back rank and a
// nil square is empty
type Board [boardSize][boardSize]*Piece

var pieceLetters = map[string]string{
	"KING":   "K",
	"QUEEN":  "Q",
	"BISHOP": "B",
	"KNIGHT": "N",
	"ROOK":   "R",
	"PAWN":   "P",
}

// DecodeBoard reads the board out of a game's state from the game listing
func DecodeBoard(game json.RawMessage) (*Board, error) {
	var state struct {
		GameBoard struct {
			Board [][]*Piece `json:"board"`
		} `json:"gameBoard"`
	}
	if err := json.Unmarshal(game, &state); err != nil {
		return nil, fmt.Errorf("failed to decode game: %w", err)
	}

	rows := state.GameBoard.Board
	if len(rows) != boardSize {
		return nil, fmt.Errorf("invalid board: expected %d rows, got %d", boardSize, len(rows))
	}

	var b Board
	for r, row := range rows {
		if len(row) != boardSize {
			return nil, fmt.Errorf("invalid board: row %d has %d squares", r+1, len(row))
		}
		copy(b[r][:], row)
	}
	return &b, nil
}

// symbol is the piece letter, upper case for white and lower case for black
func (p *Piece) symbol() string {
	if p == nil {
		return "."
	}
	s, ok := pieceLetters[p.Type]
	if !ok {
		s = "?"
	}
	if p.Color == "BLACK" {
		s = strings.ToLower(s)
	}
	return s
}

// Render draws the board as text from one player's side: white's when
// whiteOnBottom is set, black's otherwise
func (b *Board) Render(w io.Writer, whiteOnBottom bool) error {
	rows := make([]int, boardSize)
	cols := make([]int, boardSize)
	for i := range boardSize {
		if whiteOnBottom {
			rows[i] = boardSize - i
			cols[i] = i + 1
		} else {
			rows[i] = i + 1
			cols[i] = boardSize - i
		}
	}

	var sb strings.Builder
	labels := func() {
		sb.WriteString("  ")
		for _, c := range cols {
			sb.WriteString(" " + string(rune('a'+c-1)))
		}
		sb.WriteString("\n")
	}

	labels()
	for _, r := range rows {
		fmt.Fprintf(&sb, "%d ", r)
		for _, c := range cols {
			sb.WriteString(" " + b[r-1][c-1].symbol())
		}
		fmt.Fprintf(&sb, "  %d\n", r)
	}
	labels()

	_, err := io.WriteString(w, sb.String())
	return err
}
