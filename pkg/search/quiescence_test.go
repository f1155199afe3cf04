package search_test

import (
	"context"
	"testing"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/blackwingchess/corvid/pkg/eval"
	"github.com/blackwingchess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuiescenceResolvesHangingCapture(t *testing.T) {
	// White rook attacks a hanging Black queen; quiescence must find the capture and
	// report the resulting material swing rather than stopping at the stand-pat score.
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.D4, Color: board.White, Type: board.Rook},
		{Square: board.A8, Color: board.Black, Type: board.King},
		{Square: board.D7, Color: board.Black, Type: board.Queen},
	}, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	q := search.Quiescence{Eval: eval.Material{}}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf}
	_, score := q.QuietSearch(context.Background(), sctx, pos)

	assert.True(t, score >= eval.Score(500), "expected to find the queen capture, got %v", score)
}

func TestQuiescenceQuietPositionReturnsStandPat(t *testing.T) {
	pos := board.NewPosition()

	q := search.Quiescence{Eval: eval.Material{}}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf}
	_, score := q.QuietSearch(context.Background(), sctx, pos)

	assert.Equal(t, eval.Score(0), score)
}

func TestQuiescenceDoesNotMutatePosition(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.D4, Color: board.White, Type: board.Rook},
		{Square: board.A8, Color: board.Black, Type: board.King},
		{Square: board.D7, Color: board.Black, Type: board.Queen},
	}, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	before := pos.Hash()

	q := search.Quiescence{Eval: eval.Material{}}
	sctx := &search.Context{Alpha: eval.NegInf, Beta: eval.Inf}
	q.QuietSearch(context.Background(), sctx, pos)

	assert.Equal(t, before, pos.Hash(), "quiescence must leave the position exactly as it found it")
}
