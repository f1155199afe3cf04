// Package search implements fixed- and iterative-depth game tree search over a
// board.Position, with a pluggable evaluator and transposition table.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/blackwingchess/corvid/pkg/eval"
)

// ErrHalted indicates a search was cancelled via its context before completing depth.
var ErrHalted = errors.New("search halted")

// PV is the principal variation found by a (possibly partial) search at some depth.
type PV struct {
	Depth int           // depth of search, in plies
	Moves []board.Move  // principal variation, best move first
	Score eval.Score    // White-relative score at the root
	Nodes uint64        // interior and leaf nodes visited
	Time  time.Duration // wall time taken
	Hash  float64        // transposition table utilization in [0;1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v", p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), board.FormatMoves(p.Moves))
}

// Context carries per-search-tree state threaded through every recursive call: the
// search window, the shared transposition table, move-ordering heuristics and leaf
// evaluation noise.
type Context struct {
	Alpha, Beta eval.Score
	TT          TranspositionTable
	Noise       eval.Random
	Order       *MoveOrder
}

// Options holds search tuning knobs, independent of engine-level time/depth limits
// (those live in searchctl.Options). NullMoveReduction and AspirationDelta are UCI
// setoption-overridable; NullMoveMinDepth has no UCI option.
type Options struct {
	// NullMoveMinDepth is the shallowest remaining depth at which null-move pruning is
	// attempted. Below it, the verification sub-search would cost more than it saves.
	NullMoveMinDepth int
	// NullMoveReduction (R) is how much shallower the null-move verification search
	// runs than the full search it stands in for.
	NullMoveReduction int
	// AspirationDelta is the centipawn half-width of the window iterative deepening
	// opens around the previous iteration's score, before falling back to a full
	// re-search on fail-high or fail-low.
	AspirationDelta eval.Score
}

// DefaultOptions are the tuning values used when an engine does not override them.
var DefaultOptions = Options{
	NullMoveMinDepth:  3,
	NullMoveReduction: 2,
	AspirationDelta:   25,
}

// Search performs a fixed-depth search of pos, from the perspective of the side to
// move, returning nodes visited, the White-relative score, the principal variation and
// an error (ErrHalted if ctx was cancelled mid-search).
type Search interface {
	Search(ctx context.Context, sctx *Context, pos *board.Position, depth int) (uint64, eval.Score, []board.Move, error)
}

// QuietSearch performs quiescence search from the horizon of a fixed-depth search,
// resolving captures and promotions (and every reply while in check) until a quiet
// position is reached. The returned score is relative to the side to move.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, pos *board.Position) (uint64, eval.Score)
}

// IsClosed reports whether ctx has been cancelled.
func IsClosed(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// IncrementMateDistance adjusts a mate score one ply further from the root, so that a
// shallower mate always scores strictly higher in magnitude than a deeper one.
func IncrementMateDistance(s eval.Score) eval.Score {
	switch {
	case s >= eval.MateScore-eval.Score(board.MaxPly):
		return s - 1
	case s <= -(eval.MateScore - eval.Score(board.MaxPly)):
		return s + 1
	default:
		return s
	}
}
