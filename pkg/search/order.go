package search

import (
	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/blackwingchess/corvid/pkg/eval"
)

// Priority ranks moves for exploration order at a search node: higher searches first.
type Priority int32

const (
	ttMovePriority      Priority = 1_000_000
	captureBasePriority Priority = 100_000
	killerPriority      Priority = 90_000
)

// MoveOrder holds the killer-move table, history heuristic and continuation history
// accumulated over the lifetime of one search. Each Launch creates a fresh MoveOrder,
// shared by every depth of its iterative deepening loop; nothing carries over from one
// search to the next.
//
// Killers are indexed by ply, two slots each: a move that caused a beta cutoff at a
// given ply is tried first the next time that ply is reached by a different path.
// History and continuation history are indexed by (color, piece, to-square) and
// (color, previous piece/to-square, piece, to-square) respectively, where the previous
// move is the position's LastMove, one ply back. Both persist across plies:
// a quiet move that repeatedly cuts off search anywhere in the tree is worth trying
// early everywhere.
type MoveOrder struct {
	killers [board.MaxPly][2]board.Move
	history [2][6][64]int32
	contHist [2][6][64][6][64]int32
}

// NewMoveOrder returns an empty move ordering state.
func NewMoveOrder() *MoveOrder {
	return &MoveOrder{}
}

// RecordCutoff updates the killer and history tables after m causes a beta cutoff for
// the side to move, at the given ply and remaining depth. Only quiet (non-capture,
// non-promotion) moves are recorded: captures are already ordered by MVV-LVA.
func (o *MoveOrder) RecordCutoff(pos *board.Position, ply, depth int, m board.Move) {
	if o == nil || isTactical(pos, m) {
		return
	}

	if ply >= 0 && ply < board.MaxPly {
		if o.killers[ply][0] != m {
			o.killers[ply][1] = o.killers[ply][0]
			o.killers[ply][0] = m
		}
	}

	turn := pos.Turn()
	piece := pos.PieceAt(m.From())
	bonus := int32(depth * depth)
	o.history[turn][piece.Type()-1][m.To()] += bonus

	if prev := pos.LastMove(); prev != board.NoMove && pos.Ply() >= 1 {
		prevPiece := pos.PieceAt(prev.To())
		if prevPiece != board.NoPiece {
			o.contHist[turn][prevPiece.Type()-1][prev.To()][piece.Type()-1][m.To()] += bonus
		}
	}
}

// Priority returns the move-ordering priority of m in pos at the given ply: the
// transposition table's suggested move first, then all captures and promotions by MVV-LVA,
// then killers, then the continuation-history and history heuristics for quiet moves.
func (o *MoveOrder) Priority(pos *board.Position, ply int, ttMove, m board.Move) Priority {
	if ttMove != board.NoMove && m.SameCoordinates(ttMove) {
		return ttMovePriority
	}

	if isTactical(pos, m) {
		return captureBasePriority + Priority(mvvlva(pos, m))
	}

	if ply >= 0 && ply < board.MaxPly {
		if m == o.killers[ply][0] {
			return killerPriority + 1
		}
		if m == o.killers[ply][1] {
			return killerPriority
		}
	}

	turn := pos.Turn()
	piece := pos.PieceAt(m.From())
	p := Priority(o.history[turn][piece.Type()-1][m.To()])

	if prev := pos.LastMove(); prev != board.NoMove {
		if prevPiece := pos.PieceAt(prev.To()); prevPiece != board.NoPiece {
			p += Priority(o.contHist[turn][prevPiece.Type()-1][prev.To()][piece.Type()-1][m.To()])
		}
	}
	return p
}

// isTactical reports whether m is a capture, en passant or promotion: these are always
// ordered by MVV-LVA, never by the history heuristic.
func isTactical(pos *board.Position, m board.Move) bool {
	return m.Kind() == board.EnPassant || m.Kind() == board.Promotion || pos.PieceAt(m.To()) != board.NoPiece
}

// mvvlva is the most-valuable-victim/least-valuable-attacker priority of a tactical
// move: favors capturing the most valuable piece with the least valuable one.
func mvvlva(pos *board.Position, m board.Move) Priority {
	gain := eval.NominalValueGain(pos, m)
	attacker := pos.PieceAt(m.From())
	return 100*Priority(gain) - Priority(eval.NominalValue(attacker.Type()))
}

// orderMoves returns list's moves sorted by descending priority, highest first.
func orderMoves(pos *board.Position, ply int, order *MoveOrder, ttMove board.Move, list *board.MoveList) []board.Move {
	moves := list.Slice()
	priorities := make([]Priority, len(moves))
	for i, m := range moves {
		if order != nil {
			priorities[i] = order.Priority(pos, ply, ttMove, m)
		} else if isTactical(pos, m) {
			priorities[i] = captureBasePriority + Priority(mvvlva(pos, m))
		}
	}

	for i := 1; i < len(moves); i++ {
		for j := i; j > 0 && priorities[j] > priorities[j-1]; j-- {
			priorities[j], priorities[j-1] = priorities[j-1], priorities[j]
			moves[j], moves[j-1] = moves[j-1], moves[j]
		}
	}
	return moves
}
