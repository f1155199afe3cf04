// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
// See: https://en.wikipedia.org/wiki/Universal_Chess_Interface
package uci

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/blackwingchess/corvid/pkg/board/fen"
	"github.com/blackwingchess/corvid/pkg/engine"
	"github.com/blackwingchess/corvid/pkg/eval"
	"github.com/blackwingchess/corvid/pkg/search"
	"github.com/blackwingchess/corvid/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

const ProtocolName = "uci"

const (
	maxHashMB  = 4096
	maxThreads = 1 // single-threaded search; declared for GUI compatibility only.
)

// Option is an UCI driver option.
type Option func(*options)

type options struct {
	useBook bool
	book    engine.Book
	rand    *rand.Rand
}

// UseBook instructs the driver to use the given opening book.
func UseBook(book engine.Book, seed int64) Option {
	return func(opt *options) {
		opt.useBook = true
		opt.book = book
		opt.rand = rand.New(rand.NewSource(seed))
	}
}

// Driver implements a UCI driver for an engine. It is activated if sent "uci".
type Driver struct {
	e   *engine.Engine
	opt options

	out chan<- string

	active       atomic.Bool    // user is waiting for engine to move
	ponder       chan search.PV // chan for intermediate search information
	lastPosition string         // last position line (empty if no last position)

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string, opts ...Option) (*Driver, <-chan string) {
	var opt options
	for _, fn := range opts {
		fn(&opt)
	}

	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		opt:    opt,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())

	d.out <- fmt.Sprintf("option name Hash type spin default %v min 0 max %v", d.e.Options().Hash, maxHashMB)
	d.out <- "option name Clear Hash type button"
	d.out <- fmt.Sprintf("option name Threads type spin default %v min 1 max %v", maxThreads, maxThreads)
	d.out <- fmt.Sprintf("option name NullMoveReduction type spin default %v min 0 max 4", search.DefaultOptions.NullMoveReduction)
	d.out <- fmt.Sprintf("option name AspirationDelta type spin default %v min 0 max 200", search.DefaultOptions.AspirationDelta)
	if d.opt.book != nil {
		d.out <- fmt.Sprintf("option name OwnBook type check default %v", d.opt.useBook)
	}

	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "isready":
				d.out <- "readyok"

			case "debug":
				// Not implemented: no extra "info string" diagnostics are emitted.

			case "setoption":
				d.handleSetOption(ctx, args)

			case "register":
				// No registration scheme.

			case "ucinewgame":
				d.ensureInactive(ctx)
				d.lastPosition = ""
				d.e.ClearHash()

			case "position":
				d.handlePosition(ctx, line, args)

			case "go":
				d.handleGo(ctx, args)

			case "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "ponderhit":
				// Pondering not implemented: the engine never starts a search before
				// being asked to, so there is nothing to convert to a normal search.

			case "quit":
				return

			default:
				logw.Warningf(ctx, "Unknown command '%v': %v", cmd, args)
			}

		case pv := <-d.ponder:
			if d.active.Load() {
				d.out <- printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) handleSetOption(ctx context.Context, args []string) {
	var name, value string
	if len(args) > 1 {
		name = args[1]
	}
	if len(args) > 3 {
		value = args[3]
	}

	switch name {
	case "OwnBook":
		d.opt.useBook, _ = strconv.ParseBool(value)
	case "Hash":
		n, err := strconv.Atoi(value)
		if err != nil {
			logw.Errorf(ctx, "Invalid Hash value %q: %v", value, err)
			return
		}
		d.e.SetHash(uint(n))
	case "Clear":
		if len(args) > 2 && args[2] == "Hash" {
			d.e.ClearHash()
		}
	case "NullMoveReduction":
		n, err := strconv.Atoi(value)
		if err != nil {
			logw.Errorf(ctx, "Invalid NullMoveReduction value %q: %v", value, err)
			return
		}
		opt := d.e.SearchOptions()
		opt.NullMoveReduction = n
		d.e.SetSearchOptions(opt)
	case "AspirationDelta":
		n, err := strconv.Atoi(value)
		if err != nil {
			logw.Errorf(ctx, "Invalid AspirationDelta value %q: %v", value, err)
			return
		}
		opt := d.e.SearchOptions()
		opt.AspirationDelta = eval.Score(n)
		d.e.SetSearchOptions(opt)
	}
}

func (d *Driver) handlePosition(ctx context.Context, line string, args []string) {
	d.ensureInactive(ctx)

	if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
		// Continuation of game.

		moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
		for _, arg := range strings.Split(moves, " ") {
			if arg == "" || arg == "moves" {
				continue
			}

			if err := d.e.Move(ctx, arg); err != nil {
				logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
				return
			}
		}

		d.lastPosition = line
		return
	}

	// New position.

	position := fen.Initial
	if len(args) >= 7 && args[0] == "fen" {
		position = strings.Join(args[1:7], " ")
	}

	if err := d.e.Reset(ctx, position); err != nil {
		logw.Errorf(ctx, "Invalid position: %v", line)
		return
	}

	move := false
	for _, arg := range args {
		if arg == "moves" {
			move = true
			continue
		}
		if !move {
			continue
		}

		if err := d.e.Move(ctx, arg); err != nil {
			logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
			return
		}
	}
	d.lastPosition = line
}

func (d *Driver) handleGo(ctx context.Context, args []string) {
	d.ensureInactive(ctx)

	var opt searchctl.Options
	var tc searchctl.TimeControl
	var hasTC bool
	infinite := false
	timeout := time.Duration(0)

	for i := 0; i < len(args); i++ {
		cmd := args[i]
		switch cmd {
		case "wtime", "btime", "movestogo", "depth", "movetime":
			i++
			if i == len(args) {
				logw.Errorf(ctx, "No argument for %v", cmd)
				return
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				logw.Errorf(ctx, "Invalid argument for %v: %v", cmd, err)
				return
			}

			switch cmd {
			case "depth":
				opt.DepthLimit = lang.Some(uint(n))
			case "wtime":
				tc.White = time.Millisecond * time.Duration(n)
				hasTC = true
			case "btime":
				tc.Black = time.Millisecond * time.Duration(n)
				hasTC = true
			case "movestogo":
				tc.Moves = n
				hasTC = true
			case "movetime":
				timeout = time.Millisecond * time.Duration(n)
			}

		case "infinite":
			infinite = true

		default:
			// Silently ignore anything not handled (ponder, searchmoves, mate, nodes).
		}
	}
	if hasTC {
		opt.TimeControl = lang.Some(tc)
	}

	if d.opt.useBook && d.opt.book != nil {
		moves, err := d.opt.book.Find(ctx, d.e.FEN())
		if err != nil {
			logw.Errorf(ctx, "Failed to find book move for %v: %v", d.e.FEN(), err)
			return
		}

		if len(moves) > 0 {
			winner := moves[d.opt.rand.Intn(len(moves))]
			pv := search.PV{Moves: []board.Move{winner}}

			d.active.Store(true)
			d.searchCompleted(ctx, pv)
			return
		} // else: no book move
	}

	out, err := d.e.Analyze(ctx, opt)
	if err != nil {
		logw.Errorf(ctx, "Analyze failed: %v", err)
		return
	}
	d.active.Store(true)

	// Forward ponder info. Complete search if it ends, unless infinite.

	go func() {
		var last search.PV
		for pv := range out {
			last = pv
			d.ponder <- pv
		}
		if !infinite {
			d.searchCompleted(ctx, last)
		}
	}()

	if timeout > 0 {
		time.AfterFunc(timeout, func() {
			_, _ = d.e.Halt(ctx)
		})
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CAS(true, false) {
		if len(pv.Moves) > 0 {
			d.out <- printPV(pv)
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		} else {
			// No PV. Position is checkmate or stalemate. Send null move.
			d.out <- "bestmove 0000"
		}
	} // else: stale or duplicate result
}

func printPV(pv search.PV) string {
	// "info depth 2 score cp 214 nodes 2124 time 1242 nps 1710 pv e2e4 e7e5 g1f3"

	parts := []string{"info"}
	parts = append(parts, fmt.Sprintf("depth %v", pv.Depth))
	if eval.IsMateScore(pv.Score) {
		parts = append(parts, fmt.Sprintf("score mate %v", movesToMate(pv.Score)))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", int(pv.Score)))
	}
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	}
	if pv.Nodes > 0 && pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", uint64(time.Second)*pv.Nodes/uint64(pv.Time)))
	}
	if len(pv.Moves) > 0 {
		parts = append(parts, "pv")
		parts = append(parts, board.FormatMoves(pv.Moves))
	}

	return strings.Join(parts, " ")
}

// movesToMate converts a mate-distance score (in plies from the root) into full moves,
// signed from White's perspective like search.PV.Score: positive if White delivers mate.
func movesToMate(s eval.Score) int {
	plies := int(eval.MateScore) - abs(int(s))
	moves := (plies + 1) / 2
	if s < 0 {
		moves = -moves
	}
	return moves
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
