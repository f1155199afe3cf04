package board

import "strings"

// CastlingRights represents the set of castling rights still available. 4 bits.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

const (
	NoCastlingRights   CastlingRights = 0
	FullCastlingRights                = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	NumCastlingRights                 = 16 // 4-bit mask: the number of distinct CastlingRights values
)

// CastlingType identifies one of the four castling moves: (color, side).
type CastlingType uint8

const (
	WhiteOO CastlingType = iota
	WhiteOOO
	BlackOO
	BlackOOO
)

const NumCastlingTypes CastlingType = 4

// Right returns the single-bit CastlingRights mask for this castling type.
func (t CastlingType) Right() CastlingRights {
	return 1 << t
}

// KingSquares returns the (from, to) king squares for this castling type.
func (t CastlingType) KingSquares() (from, to Square) {
	switch t {
	case WhiteOO:
		return E1, G1
	case WhiteOOO:
		return E1, C1
	case BlackOO:
		return E8, G8
	default: // BlackOOO
		return E8, C8
	}
}

// RookSquares returns the (from, to) rook squares for this castling type.
func (t CastlingType) RookSquares() (from, to Square) {
	switch t {
	case WhiteOO:
		return H1, F1
	case WhiteOOO:
		return A1, D1
	case BlackOO:
		return H8, F8
	default: // BlackOOO
		return A8, D8
	}
}

// Color returns the color this castling type belongs to.
func (t CastlingType) Color() Color {
	if t == WhiteOO || t == WhiteOOO {
		return White
	}
	return Black
}

// IsAllowed returns true iff all the given rights are allowed.
func (c CastlingRights) IsAllowed(right CastlingRights) bool {
	return c&right == right
}

func (c CastlingRights) String() string {
	if c == 0 {
		return "-"
	}

	var sb strings.Builder
	if c.IsAllowed(WhiteKingSide) {
		sb.WriteString("K")
	}
	if c.IsAllowed(WhiteQueenSide) {
		sb.WriteString("Q")
	}
	if c.IsAllowed(BlackKingSide) {
		sb.WriteString("k")
	}
	if c.IsAllowed(BlackQueenSide) {
		sb.WriteString("q")
	}
	return sb.String()
}

// lostRightsAt maps a touched square (king or rook origin, on either side) to the
// castling rights it permanently revokes. Any move whose from- or to-square appears
// here clears the corresponding bit(s), per §4.4 step 4 of the make contract.
var lostRightsAt = buildLostRightsTable()

func buildLostRightsTable() [NumSquares]CastlingRights {
	var t [NumSquares]CastlingRights
	t[E1] = WhiteKingSide | WhiteQueenSide
	t[H1] = WhiteKingSide
	t[A1] = WhiteQueenSide
	t[E8] = BlackKingSide | BlackQueenSide
	t[H8] = BlackKingSide
	t[A8] = BlackQueenSide
	return t
}

// RightsLostBy returns the castling rights revoked by a move touching the given
// from/to squares (king moves, rook moves, or captures landing on a rook's home square).
func RightsLostBy(from, to Square) CastlingRights {
	return lostRightsAt[from] | lostRightsAt[to]
}
