package eval

import (
	"sort"

	"github.com/blackwingchess/corvid/pkg/board"
)

// FindAttackers returns the placements of side's pieces that directly attack sq in pos.
func FindAttackers(pos *board.Position, side board.Color, sq board.Square) []board.Placement {
	var ret []board.Placement

	occ := pos.Occupied()
	for _, pt := range board.KingQueenRookBishopKnight {
		var attacks board.Bitboard
		switch pt {
		case board.King:
			attacks = board.KingAttackboard(sq)
		case board.Queen:
			attacks = board.RookAttackboard(occ, sq) | board.BishopAttackboard(occ, sq)
		case board.Rook:
			attacks = board.RookAttackboard(occ, sq)
		case board.Bishop:
			attacks = board.BishopAttackboard(occ, sq)
		case board.Knight:
			attacks = board.KnightAttackboard(sq)
		}

		bb := attacks & pos.PieceBB(side, pt)
		for bb != 0 {
			var from board.Square
			from, bb = bb.PopLSB()
			ret = append(ret, board.Placement{Square: from, Color: side, Type: pt})
		}
	}

	bb := board.PawnAttackboard(side.Opponent(), board.BitMask(sq)) & pos.PieceBB(side, board.Pawn)
	for bb != 0 {
		var from board.Square
		from, bb = bb.PopLSB()
		ret = append(ret, board.Placement{Square: from, Color: side, Type: board.Pawn})
	}

	return ret
}

// SortByNominalValue orders placements by nominal material value, low to high: the
// standard MVV-LVA tiebreak of preferring the least valuable attacker first.
func SortByNominalValue(placements []board.Placement) []board.Placement {
	sort.SliceStable(placements, func(i, j int) bool {
		return NominalValue(placements[i].Type) < NominalValue(placements[j].Type)
	})
	return placements
}
