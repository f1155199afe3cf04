package board

import (
	"fmt"
	"strings"
)

// MoveKind distinguishes the four move shapes that need special make/undo handling.
type MoveKind uint8

const (
	Normal MoveKind = iota
	Promotion
	EnPassant
	Castling
)

// Move is a 16-bit word: bits 0..5 = to-square, bits 6..11 = from-square,
// bits 12..13 = promotion-piece index (relative to Knight) or CastlingType index,
// bits 14..15 = MoveKind. See §3 of the design for the bit layout rationale: packing
// into one machine word keeps move lists and killer/history tables cheap to store
// and compare.
type Move uint16

const (
	// NoMove is the zero value: "no move". Used as a sentinel for "no best move yet"
	// and reported to a host as the bestmove for a position with no legal moves.
	NoMove Move = 0
)

const (
	toMask   = 0x3f
	fromShift = 6
	fromMask  = 0x3f
	auxShift  = 12
	auxMask   = 0x3
	kindShift = 14
)

// NewMove packs a from/to pair with MoveKind Normal.
func NewMove(from, to Square) Move {
	return Move(to&toMask) | Move(from&fromMask)<<fromShift
}

// NewPromotion packs a promotion move; promo must be one of Knight, Bishop, Rook, Queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	idx := Move(promo - Knight)
	return NewMove(from, to) | idx<<auxShift | Move(Promotion)<<kindShift
}

// NewEnPassant packs an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return NewMove(from, to) | Move(EnPassant)<<kindShift
}

// NewCastling packs a castling move; ct identifies which of the four castling types.
func NewCastling(ct CastlingType) Move {
	from, to := ct.KingSquares()
	return NewMove(from, to) | Move(ct)<<auxShift | Move(Castling)<<kindShift
}

func (m Move) To() Square {
	return Square(m & toMask)
}

func (m Move) From() Square {
	return Square((m >> fromShift) & fromMask)
}

func (m Move) Kind() MoveKind {
	return MoveKind(m >> kindShift)
}

// aux returns the raw 2-bit auxiliary field (promotion index or castling type index).
func (m Move) aux() Move {
	return (m >> auxShift) & auxMask
}

// Promotion returns the promotion piece type. Only meaningful when Kind() == Promotion.
func (m Move) Promotion() PieceType {
	return Knight + PieceType(m.aux())
}

// CastlingType returns the castling type. Only meaningful when Kind() == Castling.
func (m Move) CastlingType() CastlingType {
	return CastlingType(m.aux())
}

// IsOK returns true iff the move is not a degenerate from==to encoding. NoMove, and the
// transient "null move" used by search's null-move pruning, both fail this check.
func (m Move) IsOK() bool {
	return m.From() != m.To()
}

// SameCoordinates reports whether two moves share the same from/to/promotion, ignoring
// Kind (Normal vs EnPassant vs Castling). Used to match a UCI-notation candidate, which
// carries no game-state context, against a generated move, which does.
func (m Move) SameCoordinates(o Move) bool {
	if m.From() != o.From() || m.To() != o.To() {
		return false
	}
	if m.Kind() == Promotion || o.Kind() == Promotion {
		return m.Kind() == Promotion && o.Kind() == Promotion && m.Promotion() == o.Promotion()
	}
	return true
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4" or
// "a7a8q". The parsed move carries no game-state context (castling/en passant tags):
// match it against a generated legal move with SameCoordinates to recover that context.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return NoMove, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return NoMove, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return NoMove, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePieceType(runes[4])
		if !ok || promo == Pawn || promo == King {
			return NoMove, fmt.Errorf("invalid promotion: '%v'", str)
		}
		return NewPromotion(from, to, promo), nil
	}

	return NewMove(from, to), nil
}

func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	if m.Kind() == Promotion {
		return fmt.Sprintf("%v%v%v", m.From(), m.To(), m.Promotion())
	}
	return fmt.Sprintf("%v%v", m.From(), m.To())
}

// FormatMoves renders a principal variation as a space-separated UCI move list.
func FormatMoves(moves []Move) string {
	var sb strings.Builder
	for i, m := range moves {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}
