// Package eval contains static position evaluation logic and utilities.
package eval

import (
	"context"

	"github.com/blackwingchess/corvid/pkg/board"
)

// Evaluator is a static position evaluator. Implementations must be side-symmetric:
// Evaluate(flip(pos)) == -Evaluate(pos) for any color-mirrored position.
type Evaluator interface {
	// Evaluate returns a White-relative centipawn score for the position: positive
	// favors White, negative favors Black. Search converts to a side-to-move-relative
	// score with Unit.
	Evaluate(ctx context.Context, pos *board.Position) Score
}

// Material is the nominal material balance for White, plus a small penalty for each
// absolutely pinned non-king piece (a pinned piece's mobility is a rook/bishop/queen
// attack set intersected with the line to its own king, which is a reasonable proxy for
// "this piece is worth less than its face value right now" without a full mobility
// evaluator).
type Material struct{}

func (Material) Evaluate(ctx context.Context, pos *board.Position) Score {
	var s Score
	for p := board.Pawn; p <= board.King; p++ {
		white := pos.PieceBB(board.White, p).PopCount()
		black := pos.PieceBB(board.Black, p).PopCount()
		s += Score(white-black) * NominalValue(p)
	}

	s -= pinPenalty(pos, board.White)
	s += pinPenalty(pos, board.Black)

	return s
}

// pinPenalty returns a small centipawn penalty proportional to the number of side's
// pieces pinned to its own king.
func pinPenalty(pos *board.Position, side board.Color) Score {
	pinned := pos.Blockers(side) & pos.ColorBB(side) &^ pos.PieceBB(side, board.King)
	return Score(pinned.PopCount()) * 10
}

// NominalValue is the absolute nominal value in centipawns of a piece type. The King
// has an arbitrary large value so that king safety never nets out against material in
// naive summations that iterate over all piece types.
func NominalValue(p board.PieceType) Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 10000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of making move m in pos, used by move
// ordering (MVV-LVA) and quiescence search's delta pruning. It must be computed before
// the move is made.
func NominalValueGain(pos *board.Position, m board.Move) Score {
	var gain Score
	switch m.Kind() {
	case board.EnPassant:
		gain = NominalValue(board.Pawn)
	case board.Promotion:
		gain = NominalValue(m.Promotion()) - NominalValue(board.Pawn)
		if captured := pos.PieceAt(m.To()); captured != board.NoPiece {
			gain += NominalValue(captured.Type())
		}
	default:
		if captured := pos.PieceAt(m.To()); captured != board.NoPiece {
			gain = NominalValue(captured.Type())
		}
	}
	return gain
}
