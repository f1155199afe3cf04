// Package searchctl launches and controls iterative deepening searches: depth limits,
// time controls and the stop/ponder lifecycle the UCI protocol expects.
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/blackwingchess/corvid/pkg/eval"
	"github.com/blackwingchess/corvid/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold dynamic search limits. The engine may change these for each "go" command.
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, limits the search to the given time parameters.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher manages searches against a position on behalf of the engine.
type Launcher interface {
	// Launch starts a new search from pos, which the caller must not mutate until the
	// returned Handle is halted. Successively deeper PVs are sent on the channel, which
	// is closed once the search stops for any reason.
	Launch(ctx context.Context, pos *board.Position, tt search.TranspositionTable, noise eval.Random, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the engine stop a running search and retrieve its best result so far.
type Handle interface {
	// Halt stops the search, if running, and returns the last PV found. Idempotent.
	Halt() search.PV
}
