package board

// Result summarizes a finished game. It is a convenience classification built from
// IsCheckmate/IsStalemate/IsDraw; the core search only needs those three predicates.
type Result uint8

const (
	Undecided Result = iota
	WhiteWins
	BlackWins
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// IsCheckmate reports whether the side to move has no legal moves and is in check.
func (p *Position) IsCheckmate() bool {
	return p.IsInCheck(p.Turn()) && len(p.LegalMoves()) == 0
}

// IsStalemate reports whether the side to move has no legal moves and is not in check.
func (p *Position) IsStalemate() bool {
	return !p.IsInCheck(p.Turn()) && len(p.LegalMoves()) == 0
}

// IsFiftyMoveRule reports whether the halfmove clock has reached 100 (50 full moves
// without a pawn move or capture by either side).
func (p *Position) IsFiftyMoveRule() bool {
	return p.cur().halfmove >= 100
}

// IsRepetition reports whether the current position's hash has occurred at least
// count times in total (including the current one), walking the snapshot history
// backward in same-side-to-move steps of 2 plies until the halfmove clock would have
// been reset (§9: draw detection is O(halfmove_clock)).
func (p *Position) IsRepetition(count int) bool {
	s := p.cur()
	reps := 1
	for i := 2; i <= s.halfmove && p.ply-i >= 0; i += 2 {
		if p.hist[p.ply-i].hash == s.hash {
			reps++
			if reps >= count {
				return true
			}
		}
	}
	return false
}

// IsThreefoldRepetition is the standard draw-by-repetition rule: the same position
// (by hash) has occurred three times.
func (p *Position) IsThreefoldRepetition() bool {
	return p.IsRepetition(3)
}

// IsDraw reports whether the position is drawn by the fifty-move rule or threefold
// repetition. It does not check for stalemate or insufficient material separately:
// stalemate is reported via IsStalemate, and this engine does not special-case
// insufficient material (a king-and-pawns search converges to the same score through
// ordinary evaluation).
func (p *Position) IsDraw() bool {
	return p.IsFiftyMoveRule() || p.IsThreefoldRepetition()
}

// Outcome classifies the position as a finished game result, or Undecided if play
// continues.
func (p *Position) Outcome() Result {
	if len(p.LegalMoves()) == 0 {
		if !p.IsInCheck(p.Turn()) {
			return Draw
		}
		if p.Turn() == White {
			return BlackWins
		}
		return WhiteWins
	}
	if p.IsDraw() {
		return Draw
	}
	return Undecided
}
