package board_test

import (
	"testing"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// D1: from startpos, four NULL moves (side to move flips back and forth) yield
// IsDraw()==true on the fourth but not earlier.
func TestDrawRepetitionViaNullMoves(t *testing.T) {
	pos := board.NewPosition()

	pos.MakeNull()
	assert.False(t, pos.IsDraw())
	pos.MakeNull()
	assert.False(t, pos.IsDraw())
	pos.MakeNull()
	assert.False(t, pos.IsDraw())
	pos.MakeNull()
	assert.True(t, pos.IsDraw())
}

// D2: a knight-shuffle cycle that returns to the starting position three times
// triggers threefold repetition.
func TestDrawRepetitionViaKnightShuffle(t *testing.T) {
	pos := board.NewPosition()

	moves := []string{
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
	}
	for i, ms := range moves {
		m := findLegal(t, pos, ms)
		pos.Make(m)
		if i < len(moves)-1 {
			assert.False(t, pos.IsDraw(), "after move %d (%v)", i, ms)
		}
	}
	assert.True(t, pos.IsDraw())
}

// D3: a sequence that never resets the halfmove clock (no pawn moves, no captures)
// reaches the fifty-move rule exactly when the clock hits 100. The rook cycles through
// three squares and the king through two, so positions do recur along the way; the
// test checks only the fifty-move rule, not repetition.
func TestDrawFiftyMoveRule(t *testing.T) {
	placements := []board.Placement{
		{Square: board.A1, Color: board.White, Type: board.King},
		{Square: board.H8, Color: board.Black, Type: board.King},
		{Square: board.A2, Color: board.White, Type: board.Rook},
	}
	pos, err := board.FromPlacements(board.White, placements, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	rookSquares := []board.Square{board.A2, board.A3, board.A4}
	kingSquares := []board.Square{board.H8, board.G8}

	for i := 0; i < 100; i++ {
		assert.False(t, pos.IsFiftyMoveRule(), "halfmove %d", pos.HalfmoveClock())

		var m board.Move
		if i%2 == 0 {
			from := rookSquares[(i/2)%len(rookSquares)]
			to := rookSquares[(i/2+1)%len(rookSquares)]
			m = findLegal(t, pos, from.String()+to.String())
		} else {
			from := kingSquares[(i/2)%2]
			to := kingSquares[(i/2+1)%2]
			m = findLegal(t, pos, from.String()+to.String())
		}
		pos.Make(m)
	}

	assert.Equal(t, 100, pos.HalfmoveClock())
	assert.True(t, pos.IsFiftyMoveRule())
}

// D4: a pawn move resetting the halfmove clock during such a sequence prevents the
// fifty-move draw from firing at the point it otherwise would have.
func TestDrawFiftyMoveResetByPawnMove(t *testing.T) {
	placements := []board.Placement{
		{Square: board.A1, Color: board.White, Type: board.King},
		{Square: board.H8, Color: board.Black, Type: board.King},
		{Square: board.A4, Color: board.White, Type: board.Rook},
		{Square: board.B3, Color: board.White, Type: board.Pawn},
	}
	pos, err := board.FromPlacements(board.White, placements, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	rookSquares := []board.Square{board.A4, board.A5, board.A6}
	kingSquares := []board.Square{board.H8, board.G8}

	for i := 0; i < 98; i++ {
		var m board.Move
		if i%2 == 0 {
			from := rookSquares[(i/2)%len(rookSquares)]
			to := rookSquares[(i/2+1)%len(rookSquares)]
			m = findLegal(t, pos, from.String()+to.String())
		} else {
			from := kingSquares[(i/2)%2]
			to := kingSquares[(i/2+1)%2]
			m = findLegal(t, pos, from.String()+to.String())
		}
		pos.Make(m)
	}
	assert.Equal(t, 98, pos.HalfmoveClock())

	pawn := findLegal(t, pos, "b3b4")
	pos.Make(pawn)

	assert.Equal(t, 0, pos.HalfmoveClock())
	assert.False(t, pos.IsFiftyMoveRule())
}
