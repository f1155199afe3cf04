// Package fen contains utilities for reading and writing positions in FEN notation.
package fen

import (
	"github.com/blackwingchess/corvid/pkg/board"
)

// Initial is the FEN of the standard chess starting position.
const Initial = board.InitialFEN

// Decode returns a new position from a FEN description.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(text string) (*board.Position, error) {
	return board.FromFEN(text)
}

// Encode returns the FEN description of pos.
func Encode(pos *board.Position) string {
	return pos.ToFEN()
}
