package search

import (
	"context"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/blackwingchess/corvid/pkg/eval"
)

// Quiescence resolves captures and promotions at the horizon of a fixed-depth search,
// so the static evaluation is never taken mid-exchange. Pseudo-code:
//
// function quiescence(node, α, β) is
//
//	standPat := evaluate(node)
//	if standPat ≥ β then return β
//	α := max(α, standPat)
//	for each tactical child of node do
//	    score := −quiescence(child, −β, −α)
//	    α := max(α, score)
//	    if α ≥ β then break
//	return α
type Quiescence struct {
	Eval eval.Evaluator
}

func (q Quiescence) QuietSearch(ctx context.Context, sctx *Context, pos *board.Position) (uint64, eval.Score) {
	run := &runQuiescence{eval: q.Eval, noise: sctx.Noise, pos: pos}
	score := run.search(ctx, sctx.Alpha, sctx.Beta)
	return run.nodes, score
}

type runQuiescence struct {
	eval  eval.Evaluator
	noise eval.Random
	pos   *board.Position
	nodes uint64
}

// search returns the score from the perspective of the side to move.
func (r *runQuiescence) search(ctx context.Context, alpha, beta eval.Score) eval.Score {
	if IsClosed(ctx) {
		return eval.Draw
	}
	if r.pos.IsDraw() {
		return eval.Draw
	}

	r.nodes++

	turn := r.pos.Turn()
	inCheck := r.pos.IsInCheck(turn)

	var standPat eval.Score
	if !inCheck {
		standPat = eval.Unit(turn)*r.eval.Evaluate(ctx, r.pos) + r.noise.Evaluate(ctx, r.pos)
		if standPat >= beta {
			return beta
		}
		alpha = eval.Max(alpha, standPat)
	}

	var list board.MoveList
	if inCheck {
		r.pos.Generate(&list) // in check: every reply must be considered, not just captures
	} else {
		r.pos.GenerateTactical(&list)
	}
	moves := orderMoves(r.pos, 0, nil, board.NoMove, &list)

	hasLegalMove := false
	for _, move := range moves {
		if !r.pos.IsLegal(move) {
			continue
		}

		// Delta pruning: a capture that cannot possibly recover enough material to
		// reach alpha, even with a generous safety margin, is not worth examining.
		if !inCheck && standPat+eval.NominalValueGain(r.pos, move)+200 < alpha {
			hasLegalMove = true
			continue
		}

		r.pos.Make(move)
		score := IncrementMateDistance(-r.search(ctx, -beta, -alpha))
		r.pos.Unmake()

		hasLegalMove = true
		alpha = eval.Max(alpha, score)
		if alpha >= beta {
			break
		}
	}

	if inCheck && !hasLegalMove {
		return -eval.MateScore
	}
	return alpha
}
