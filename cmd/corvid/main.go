package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/blackwingchess/corvid/pkg/engine"
	"github.com/blackwingchess/corvid/pkg/engine/uci"
	"github.com/blackwingchess/corvid/pkg/eval"
	"github.com/blackwingchess/corvid/pkg/search"
	"github.com/seekerror/logw"
)

var (
	depth = flag.Uint("depth", 0, "Search depth limit (zero for no limit)")
	hash  = flag.Uint("hash", 64, "Transposition table size in MB (zero to disable)")
	noise = flag.Uint("noise", 10, "Evaluation noise in millipawns (zero if deterministic)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options]

corvid is a simple UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	root := search.PVS{
		Eval: search.Quiescence{
			Eval: eval.Material{},
		},
	}
	e := engine.New(ctx, "corvid", "blackwingchess", root, engine.WithOptions(engine.Options{
		Depth: *depth,
		Hash:  *hash,
		Noise: *noise,
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
