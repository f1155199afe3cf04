package search

import (
	"context"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/blackwingchess/corvid/pkg/eval"
)

// Minimax implements naive, unpruned minimax search. It visits every node in the game
// tree to the given depth and is far too slow for real play; it exists to validate
// PVS's pruning against ground truth on small positions. Pseudo-code:
//
// function minimax(node, depth) is
//
//	if depth = 0 or node is terminal then return evaluate(node)
//	value := −∞
//	for each child of node do
//	    value := max(value, −minimax(child, depth − 1))
//	return value
//
// See: https://en.wikipedia.org/wiki/Minimax.
type Minimax struct {
	Eval eval.Evaluator
}

func (m Minimax) Search(ctx context.Context, sctx *Context, pos *board.Position, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runMinimax{eval: m.Eval, pos: pos}
	score, moves := run.search(ctx, depth)
	if IsClosed(ctx) {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, eval.Unit(pos.Turn()) * score, moves, nil
}

type runMinimax struct {
	eval  eval.Evaluator
	pos   *board.Position
	nodes uint64
}

func (m *runMinimax) search(ctx context.Context, depth int) (eval.Score, []board.Move) {
	m.nodes++

	if IsClosed(ctx) {
		return eval.Draw, nil
	}
	if m.pos.IsDraw() {
		return eval.Draw, nil
	}
	if depth == 0 {
		return eval.Unit(m.pos.Turn()) * m.eval.Evaluate(ctx, m.pos), nil
	}

	var list board.MoveList
	m.pos.Generate(&list)

	hasLegalMove := false
	score := eval.NegInf
	var pv []board.Move

	for _, move := range list.Slice() {
		if !m.pos.IsLegal(move) {
			continue
		}

		m.pos.Make(move)
		s, rem := m.search(ctx, depth-1)
		m.pos.Unmake()

		hasLegalMove = true
		s = IncrementMateDistance(-s)
		if s > score {
			score = s
			pv = append([]board.Move{move}, rem...)
		}
	}

	if !hasLegalMove {
		if m.pos.IsInCheck(m.pos.Turn()) {
			return -eval.MateScore, nil
		}
		return eval.Draw, nil
	}
	return score, pv
}
