package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/blackwingchess/corvid/pkg/eval"
	"github.com/blackwingchess/corvid/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Iterative is a Launcher that repeatedly deepens Root by one ply at a time, reporting
// a PV after every completed iteration, until it is halted or a stopping condition
// (depth limit, soft time limit, or a found forced mate) is reached.
type Iterative struct {
	Root    search.Search
	Options search.Options
}

func (i *Iterative) Launch(ctx context.Context, pos *board.Position, tt search.TranspositionTable, noise eval.Random, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, i.Root, i.Options, pos.Clone(), tt, noise, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root search.Search, sopt search.Options, pos *board.Position, tt search.TranspositionTable, noise eval.Random, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	order := search.NewMoveOrder()
	tt.NewGeneration()

	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, pos.Turn())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	delta := sopt.AspirationDelta
	if delta == 0 {
		delta = search.DefaultOptions.AspirationDelta
	}

	// loWhite/hiWhite bound the aspiration window in White-relative terms, matching
	// search.PV.Score's convention; they are converted to the side-to-move-relative
	// negamax convention search.Context expects just before each call.
	loWhite, hiWhite := eval.NegInf, eval.Inf

	depth := 1
	for !h.quit.IsClosed() {
		start := time.Now()

		alpha, beta := toSideRelative(loWhite, hiWhite, pos.Turn())
		sctx := &search.Context{Alpha: alpha, Beta: beta, TT: tt, Order: order, Noise: noise}
		nodes, score, moves, err := root.Search(wctx, sctx, pos, depth)
		if err != nil {
			if err == search.ErrHalted {
				return // Halt was called.
			}
			logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", pos, depth, err)
			return
		}

		// Aspiration window: a score outside (loWhite;hiWhite) only bounds the true
		// value. Re-search the same depth with a full window before trusting it.
		if loWhite != eval.NegInf && (score <= loWhite || score >= hiWhite) {
			loWhite, hiWhite = eval.NegInf, eval.Inf
			continue
		}

		pv := search.PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(start),
			Hash:  tt.Used(),
		}

		logw.Debugf(ctx, "Searched %v: %v", pos, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()

		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return // halt: reached max depth
		}
		if eval.IsMateScore(score) {
			return // halt: forced mate found within full-width search. Exact result.
		}
		if useSoft && soft < time.Since(start) {
			return // halt: exceeded soft time limit. Do not start new search.
		}

		loWhite, hiWhite = pv.Score-delta, pv.Score+delta
		depth++
	}
}

// toSideRelative converts a White-relative [lo;hi] window into the side-to-move-
// relative (alpha, beta) pair the negamax convention expects, flipping sign and order
// for Black.
func toSideRelative(lo, hi eval.Score, turn board.Color) (eval.Score, eval.Score) {
	if turn == board.White {
		return lo, hi
	}
	return -hi, -lo
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
