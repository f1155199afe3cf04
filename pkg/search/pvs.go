package search

import (
	"context"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/blackwingchess/corvid/pkg/eval"
)

// PVS implements principal variation search with a transposition table, null-move
// pruning, a check extension and the MoveOrder heuristics (killers, history,
// continuation history). Pseudo-code, ignoring the TT and pruning:
//
// function pvs(node, depth, α, β) is
//
//	if depth = 0 then return quiescence(node, α, β)
//	for each child of node do
//	    if child is first child then
//	        score := −pvs(child, depth − 1, −β, −α)
//	    else
//	        score := −pvs(child, depth − 1, −α − 1, −α) (* null window *)
//	        if α < score < β then
//	            score := −pvs(child, depth − 1, −β, −α) (* re-search *)
//	    α := max(α, score)
//	    if α ≥ β then break (* beta cutoff *)
//	return α
//
// See: https://en.wikipedia.org/wiki/Principal_variation_search.
type PVS struct {
	Eval    QuietSearch
	Options Options
}

func (p PVS) Search(ctx context.Context, sctx *Context, pos *board.Position, depth int) (uint64, eval.Score, []board.Move, error) {
	opt := p.Options
	if opt.NullMoveMinDepth == 0 && opt.NullMoveReduction == 0 {
		opt = DefaultOptions
	}

	run := &runPVS{eval: p.Eval, opt: opt, tt: sctx.TT, order: sctx.Order, pos: pos}

	alpha, beta := sctx.Alpha, sctx.Beta
	score, moves := run.search(ctx, depth, 0, alpha, beta, true)
	if IsClosed(ctx) {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, eval.Unit(pos.Turn()) * score, moves, nil
}

type runPVS struct {
	eval  QuietSearch
	opt   Options
	tt    TranspositionTable
	order *MoveOrder
	pos   *board.Position
	nodes uint64
}

// search returns the score from the perspective of the side to move at pos, and the
// principal variation from this node down.
func (m *runPVS) search(ctx context.Context, depth, ply int, alpha, beta eval.Score, allowNull bool) (eval.Score, []board.Move) {
	if IsClosed(ctx) {
		return 0, nil
	}
	if m.pos.IsDraw() {
		return eval.Draw, nil
	}

	turn := m.pos.Turn()
	inCheck := m.pos.IsInCheck(turn)
	if inCheck {
		depth++ // check extension: never let a forcing line hit the horizon mid-check
	}

	var ttMove board.Move
	if entry, ok := m.tt.Read(m.pos.Hash()); ok {
		ttMove = entry.Move
		if entry.Depth >= depth {
			switch entry.Bound {
			case ExactBound:
				return entry.Score, nil
			case LowerBound:
				if entry.Score >= beta {
					return entry.Score, nil
				}
			case UpperBound:
				if entry.Score <= alpha {
					return entry.Score, nil
				}
			}
		}
	}

	if depth <= 0 {
		sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Order: m.order}
		nodes, score := m.eval.QuietSearch(ctx, sctx, m.pos)
		m.nodes += nodes
		m.tt.Write(m.pos.Hash(), Entry{Bound: ExactBound, Depth: 0, Score: score})
		return score, nil
	}

	m.nodes++

	// Null-move pruning: if passing the move still leaves the opponent unable to
	// improve past beta, the position is so good that a real move will too. Never
	// tried in check (the null move would be illegal) or against a position with only
	// king and pawns left (zugzwang risk outweighs the savings).
	if allowNull && !inCheck && depth >= m.opt.NullMoveMinDepth && hasNonPawnMaterial(m.pos, turn) {
		m.pos.MakeNull()
		score, _ := m.search(ctx, depth-1-m.opt.NullMoveReduction, ply+1, -beta, -beta+1, false)
		m.pos.Unmake()
		score = IncrementMateDistance(-score)
		if score >= beta {
			return score, nil
		}
	}

	orig := alpha
	bound := UpperBound
	var best board.Move
	var pv []board.Move
	hasLegalMove := false

	var list board.MoveList
	m.pos.Generate(&list)
	moves := orderMoves(m.pos, ply, m.order, ttMove, &list)

	for _, move := range moves {
		if !m.pos.IsLegal(move) {
			continue
		}

		m.pos.Make(move)

		var score eval.Score
		var rem []board.Move
		if !hasLegalMove {
			score, rem = m.search(ctx, depth-1, ply+1, -beta, -alpha, true)
			score = IncrementMateDistance(-score)
		} else {
			// Null-window search first: if it doesn't beat alpha, move is no better
			// than what's already found and the full-window re-search is skipped.
			score, rem = m.search(ctx, depth-1, ply+1, -alpha-1, -alpha, true)
			score = IncrementMateDistance(-score)
			if score > alpha && score < beta {
				score, rem = m.search(ctx, depth-1, ply+1, -beta, -alpha, true)
				score = IncrementMateDistance(-score)
			}
		}

		m.pos.Unmake()
		hasLegalMove = true

		if score > alpha {
			alpha = score
			best = move
			pv = append([]board.Move{move}, rem...)
			bound = ExactBound
		}
		if alpha >= beta {
			bound = LowerBound
			m.order.RecordCutoff(m.pos, ply, depth, move)
			break
		}
	}

	if !hasLegalMove {
		if inCheck {
			return -eval.MateScore, nil // checkmate: adjusted per ply as the stack unwinds
		}
		return eval.Draw, nil
	}

	if alpha <= orig {
		bound = UpperBound
	}
	m.tt.Write(m.pos.Hash(), Entry{Bound: bound, Depth: depth, Score: alpha, Move: best})
	return alpha, pv
}

// hasNonPawnMaterial reports whether side has any piece besides pawns and king, used to
// veto null-move pruning in likely zugzwang positions.
func hasNonPawnMaterial(pos *board.Position, side board.Color) bool {
	return pos.ColorBB(side)&^(pos.PieceBB(side, board.Pawn)|pos.PieceBB(side, board.King)) != 0
}
