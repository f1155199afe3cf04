package search_test

import (
	"testing"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/blackwingchess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveOrderPrioritizesTTMoveOverEverything(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.A8, Color: board.Black, Type: board.King},
		{Square: board.D4, Color: board.White, Type: board.Rook},
		{Square: board.D7, Color: board.Black, Type: board.Queen},
	}, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	order := search.NewMoveOrder()

	quiet := board.NewMove(board.E1, board.F1)
	capture := board.NewMove(board.D4, board.D7)

	assert.True(t, order.Priority(pos, 0, quiet, quiet) > order.Priority(pos, 0, board.NoMove, capture),
		"the TT move must outrank even a winning capture")
}

func TestMoveOrderRanksCapturesAboveQuietMoves(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.A8, Color: board.Black, Type: board.King},
		{Square: board.D4, Color: board.White, Type: board.Rook},
		{Square: board.D7, Color: board.Black, Type: board.Queen},
	}, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	order := search.NewMoveOrder()

	quiet := board.NewMove(board.E1, board.F1)
	capture := board.NewMove(board.D4, board.D7)

	assert.True(t, order.Priority(pos, 0, board.NoMove, capture) > order.Priority(pos, 0, board.NoMove, quiet))
}

func TestMoveOrderRecordsKillerAboveOtherQuietMoves(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.A8, Color: board.Black, Type: board.King},
		{Square: board.D4, Color: board.White, Type: board.Rook},
	}, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	order := search.NewMoveOrder()

	killer := board.NewMove(board.D4, board.D5)
	other := board.NewMove(board.D4, board.D6)

	order.RecordCutoff(pos, 2, 4, killer)

	assert.True(t, order.Priority(pos, 2, board.NoMove, killer) > order.Priority(pos, 2, board.NoMove, other))
	assert.True(t, order.Priority(pos, 5, board.NoMove, killer) < order.Priority(pos, 2, board.NoMove, killer),
		"killers are ply-scoped, not global")
}

func TestMoveOrderHistoryAccumulatesAcrossCutoffs(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.A8, Color: board.Black, Type: board.King},
		{Square: board.D4, Color: board.White, Type: board.Rook},
	}, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	order := search.NewMoveOrder()
	rewarded := board.NewMove(board.D4, board.D5)
	other := board.NewMove(board.D4, board.D6)

	before := order.Priority(pos, 10, board.NoMove, rewarded)
	order.RecordCutoff(pos, 3, 4, rewarded)
	order.RecordCutoff(pos, 7, 6, rewarded)
	after := order.Priority(pos, 10, board.NoMove, rewarded)

	assert.True(t, after > before)
	assert.True(t, after > order.Priority(pos, 10, board.NoMove, other))
}
