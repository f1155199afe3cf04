package eval

import "github.com/blackwingchess/corvid/pkg/board"

// Pin represents a pinned piece: Pinned cannot move off the Attacker-Target line without
// exposing Target to Attacker.
type Pin struct {
	Attacker, Pinned, Target board.Square
}

// FindPins returns every pin where side's own pieces shield an occupant of targetSq from
// an opposing slider. Typically targetSq is the king square, but any target square works
// (e.g. a queen being relatively pinned behind a rook).
func FindPins(pos *board.Position, side board.Color, targetSq board.Square) []Pin {
	var ret []Pin

	occ := pos.Occupied()
	opp := side.Opponent()

	rookRay := board.RookAttackboard(occ, targetSq)
	pins := rookRay & pos.ColorBB(side)
	attackers := pos.PieceBB(opp, board.Queen) | pos.PieceBB(opp, board.Rook)
	ret = append(ret, findPinsAlong(occ, pins, targetSq, rookRay, attackers, board.RookAttackboard)...)

	bishopRay := board.BishopAttackboard(occ, targetSq)
	pins = bishopRay & pos.ColorBB(side)
	attackers = pos.PieceBB(opp, board.Queen) | pos.PieceBB(opp, board.Bishop)
	ret = append(ret, findPinsAlong(occ, pins, targetSq, bishopRay, attackers, board.BishopAttackboard)...)

	return ret
}

func findPinsAlong(occ, candidates board.Bitboard, target board.Square, nearRay board.Bitboard, attackers board.Bitboard, rayFunc func(board.Bitboard, board.Square) board.Bitboard) []Pin {
	var ret []Pin
	for candidates != 0 {
		var pinned board.Square
		pinned, candidates = candidates.PopLSB()

		xray := rayFunc(occ&^board.BitMask(pinned), target) &^ nearRay
		if hit := xray & attackers; hit != 0 {
			attacker, _ := hit.PopLSB()
			ret = append(ret, Pin{Attacker: attacker, Pinned: pinned, Target: target})
		}
	}
	return ret
}
