package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/blackwingchess/corvid/pkg/board/fen"
	"github.com/blackwingchess/corvid/pkg/eval"
	"github.com/blackwingchess/corvid/pkg/search"
	"github.com/blackwingchess/corvid/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit. If zero, there is no limit. Overridden by search
	// options if provided.
	Depth uint
	// Hash is the transposition table size in MB. If zero, the engine will not use
	// a transposition table.
	Hash uint
	// Noise adds some millipawn randomness to the leaf evaluations.
	Noise uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v}", o.Depth, o.Hash, o.Noise)
}

// Engine encapsulates game-playing logic, search and evaluation.
type Engine struct {
	name, author string

	root       search.Search
	searchOpts search.Options
	factory    search.TranspositionTableFactory
	seed       int64
	opts       Options

	pos    *board.Position
	tt     search.TranspositionTable
	noise  eval.Random
	active searchctl.Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithTable configures the engine to use the given transposition table factory.
func WithTable(factory search.TranspositionTableFactory) Option {
	return func(e *Engine) {
		e.factory = factory
	}
}

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithSearchOptions sets the default null-move and aspiration-window tunables passed to
// the root searcher on every launch.
func WithSearchOptions(opts search.Options) Option {
	return func(e *Engine) {
		e.searchOpts = opts
	}
}

// WithNoiseSeed configures the engine to seed its evaluation noise generator
// deterministically, instead of the default seed of zero. Useful for reproducible test
// games; it has no effect on move generation or hashing, which use a fixed Zobrist table.
func WithNoiseSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

func New(ctx context.Context, name, author string, root search.Search, opts ...Option) *Engine {
	e := &Engine{
		name:       name,
		author:     author,
		root:       root,
		searchOpts: search.DefaultOptions,
		factory:    search.NewTranspositionTable,
	}
	for _, fn := range opts {
		fn(e)
	}

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// SearchOptions returns the search tunables (null-move thresholds, aspiration delta)
// applied to every subsequent search launch.
func (e *Engine) SearchOptions() search.Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.searchOpts
}

// SetSearchOptions updates the search tunables applied to every subsequent search
// launch. Does not affect a search already in progress.
func (e *Engine) SetSearchOptions(opts search.Options) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.searchOpts = opts
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(size uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = size
}

func (e *Engine) SetNoise(millipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = millipawns
}

// ClearHash wipes every transposition table entry without reallocating the table.
func (e *Engine) ClearHash() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tt.Reset()
}

// Position returns an independent copy of the current position, safe to mutate.
func (e *Engine) Position() *board.Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos.Clone()
}

// FEN returns the current position in FEN format. Convenience function.
func (e *Engine) FEN() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.pos)
}

// Reset resets the engine to a new starting position in FEN format.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, TT=%vMB, noise=%vcp", position, e.opts.Depth, e.opts.Hash, e.opts.Noise/10)

	_, _ = e.haltSearchIfActive(ctx)

	pos, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.pos = pos

	e.tt = search.NoTranspositionTable{}
	if e.opts.Hash > 0 {
		e.tt = e.factory(ctx, uint64(e.opts.Hash)<<20)
	}
	e.noise = eval.Random{}
	if e.opts.Noise > 0 {
		e.noise = eval.NewRandom(int(e.opts.Noise)/10, e.seed) // millipawns to centipawns
	}

	logw.Infof(ctx, "New position: %v", e.pos)
	return nil
}

// Move selects the given move, usually an opponent move.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %v", err)
	}

	_, _ = e.haltSearchIfActive(ctx)

	var list board.MoveList
	e.pos.Generate(&list)
	for _, m := range list.Slice() {
		if !candidate.SameCoordinates(m) {
			continue
		}
		if !e.pos.IsLegal(m) {
			return fmt.Errorf("illegal move: %v", m)
		}

		e.pos.Make(m)
		logw.Infof(ctx, "Move %v: %v", m, e.pos)
		return nil
	}
	return fmt.Errorf("invalid move: %v", candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	if e.pos.Ply() == 0 {
		return fmt.Errorf("no move to take back")
	}

	m := e.pos.LastMove()
	e.pos.Unmake()

	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// Analyze analyzes the current position.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.pos, opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	root := e.root
	if pvs, ok := root.(search.PVS); ok {
		pvs.Options = e.searchOpts
		root = pvs
	}
	launcher := &searchctl.Iterative{Root: root, Options: e.searchOpts}
	handle, out := launcher.Launch(ctx, e.pos.Clone(), e.tt, e.noise, opt)
	e.active = handle
	return out, nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search %v halted: %v", e.pos, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
