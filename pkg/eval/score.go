package eval

import (
	"fmt"

	"github.com/blackwingchess/corvid/pkg/board"
)

// Score is a signed position or move score in centipawns, positive favoring White. It
// is a 16-bit type so it fits directly into a transposition table entry (§4.7): the
// full material balance of a pawns-all-promote-to-queens endgame is at most a few
// thousand centipawns, and mate scores are encoded far below the 16-bit ceiling, so
// there is no risk of wraparound in ordinary search arithmetic.
type Score int16

const (
	// Inf is strictly greater than any real evaluation or mate score, used as the
	// initial alpha/beta bound at the root of a search.
	Inf Score = 30000
	// NegInf is strictly less than any real evaluation or mate score.
	NegInf Score = -Inf

	// MateScore is the score assigned to "checkmate delivered right now"; search
	// subtracts one per ply from the root as it unwinds, so a mate found deeper in the
	// tree scores strictly lower in magnitude than one found shallower.
	MateScore Score = 29000

	// MinScore and MaxScore bound every score Evaluate or search can return, leaving
	// headroom between MateScore and Inf for ply-adjusted mate scores.
	MinScore Score = -MateScore
	MaxScore Score = MateScore

	// Draw is the score of a known-drawn position.
	Draw Score = 0
)

func (s Score) String() string {
	return fmt.Sprintf("%.2f", float64(s)/100)
}

// Unit returns the signed unit for the color: 1 for White and -1 for Black. Multiplying
// a centipawn value by Unit(c) converts a White-relative score into a c-relative one.
func Unit(c board.Color) Score {
	if c == board.White {
		return 1
	}
	return -1
}

// Crop clamps a Score into [MinScore;MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

// Max returns the largest of the given scores.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smallest of the given scores.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

// IsMateScore reports whether s is close enough to +/-MateScore to represent a forced
// mate rather than an ordinary material/positional evaluation. Search encodes "mate in
// n plies" as MateScore-n (or -(MateScore-n) for the side getting mated), and n is
// bounded by board.MaxPly.
func IsMateScore(s Score) bool {
	return s >= MateScore-Score(board.MaxPly) || s <= -(MateScore-Score(board.MaxPly))
}
