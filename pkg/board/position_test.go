package board_test

import (
	"testing"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPositionIsStartingPosition(t *testing.T) {
	pos := board.NewPosition()

	assert.Equal(t, board.White, pos.Turn())
	assert.Equal(t, board.FullCastlingRights, pos.Castling())
	assert.Equal(t, board.NoSquare, pos.EnPassant())
	assert.Equal(t, 0, pos.HalfmoveClock())
	assert.Equal(t, 1, pos.FullmoveNumber())
	assert.Equal(t, board.E1, pos.KingSquare(board.White))
	assert.Equal(t, board.E8, pos.KingSquare(board.Black))
	assert.Equal(t, board.InitialFEN, pos.ToFEN())
}

func TestFromPlacements(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.A3, Color: board.White, Type: board.King},
		{Square: board.B3, Color: board.Black, Type: board.Rook},
		{Square: board.A2, Color: board.Black, Type: board.Bishop},
		{Square: board.H8, Color: board.Black, Type: board.King},
	}, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	assert.Equal(t, board.NewPiece(board.White, board.King), pos.PieceAt(board.A3))
	assert.Equal(t, board.NoPiece, pos.PieceAt(board.E4))
	assert.True(t, pos.IsInCheck(board.White))
}

func TestFromPlacementsRejectsMissingKing(t *testing.T) {
	_, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.A3, Color: board.White, Type: board.King},
	}, board.NoCastlingRights, board.NoSquare)
	assert.Error(t, err)
}

func TestMakeUnmakeRestoresState(t *testing.T) {
	pos := board.NewPosition()
	before := snapshotOf(pos)

	m := findLegal(t, pos, "e2e4")
	pos.Make(m)
	assert.NotEqual(t, before, snapshotOf(pos))
	assert.Equal(t, board.Black, pos.Turn())
	assert.Equal(t, board.NoSquare, pos.EnPassant())

	pos.Unmake()
	assert.Equal(t, before, snapshotOf(pos))
}

func TestMakeCaptureUpdatesLastCaptured(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.A8, Color: board.Black, Type: board.King},
		{Square: board.D4, Color: board.White, Type: board.Rook},
		{Square: board.D7, Color: board.Black, Type: board.Pawn},
	}, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	m := findLegal(t, pos, "d4d7")
	pos.Make(m)

	assert.Equal(t, board.NewPiece(board.Black, board.Pawn), pos.LastCaptured())
	assert.Equal(t, 0, pos.HalfmoveClock())
}

func TestEnPassantCapture(t *testing.T) {
	pos, err := board.FromPlacements(board.Black, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.A8, Color: board.Black, Type: board.King},
		{Square: board.E4, Color: board.White, Type: board.Pawn},
		{Square: board.D4, Color: board.Black, Type: board.Pawn},
	}, board.NoCastlingRights, board.E3)
	require.NoError(t, err)

	m := findLegal(t, pos, "d4e3")
	assert.Equal(t, board.EnPassant, m.Kind())

	pos.Make(m)
	assert.Equal(t, board.NoPiece, pos.PieceAt(board.E4))
	assert.Equal(t, board.NewPiece(board.Black, board.Pawn), pos.PieceAt(board.E3))
}

func TestCastlingMovesRookToo(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.H1, Color: board.White, Type: board.Rook},
		{Square: board.A1, Color: board.White, Type: board.Rook},
		{Square: board.E8, Color: board.Black, Type: board.King},
	}, board.FullCastlingRights, board.NoSquare)
	require.NoError(t, err)

	m := board.NewCastling(board.WhiteOO)
	require.True(t, pos.IsLegal(m))

	pos.Make(m)
	assert.Equal(t, board.NewPiece(board.White, board.King), pos.PieceAt(board.G1))
	assert.Equal(t, board.NewPiece(board.White, board.Rook), pos.PieceAt(board.F1))
	assert.Equal(t, board.NoPiece, pos.PieceAt(board.E1))
	assert.Equal(t, board.NoPiece, pos.PieceAt(board.H1))
	assert.False(t, pos.Castling().IsAllowed(board.WhiteKingSide))
	assert.False(t, pos.Castling().IsAllowed(board.WhiteQueenSide))
}

func TestCastlingRightsLostByRookMove(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.A1, Color: board.White, Type: board.Rook},
		{Square: board.E8, Color: board.Black, Type: board.King},
	}, board.WhiteQueenSide, board.NoSquare)
	require.NoError(t, err)

	m := findLegal(t, pos, "a1a4")
	pos.Make(m)
	assert.False(t, pos.Castling().IsAllowed(board.WhiteQueenSide))
}

func TestCastlingThroughCheckIsIllegal(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.H1, Color: board.White, Type: board.Rook},
		{Square: board.E8, Color: board.Black, Type: board.King},
		{Square: board.F8, Color: board.Black, Type: board.Rook},
	}, board.WhiteKingSide, board.NoSquare)
	require.NoError(t, err)

	assert.False(t, pos.IsLegal(board.NewCastling(board.WhiteOO)))
}

func TestPinnedPieceCannotMoveOffLine(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.E4, Color: board.White, Type: board.Rook},
		{Square: board.E8, Color: board.Black, Type: board.Rook},
		{Square: board.A8, Color: board.Black, Type: board.King},
	}, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	m := board.NewMove(board.E4, board.D4)
	assert.False(t, pos.IsLegal(m))

	alongLine := board.NewMove(board.E4, board.E5)
	assert.True(t, pos.IsLegal(alongLine))
}

func TestDoubleCheckRestrictsToKingMoves(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.E8, Color: board.Black, Type: board.Rook},
		{Square: board.A8, Color: board.Black, Type: board.King},
		{Square: board.D2, Color: board.Black, Type: board.Bishop},
	}, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	for _, m := range pos.LegalMoves() {
		assert.Equal(t, board.King, pieceTypeOf(pos, m))
	}
}

func TestHalfmoveClockIncrementsOnQuietRookMove(t *testing.T) {
	pos, err := board.FromPlacements(board.White, []board.Placement{
		{Square: board.E1, Color: board.White, Type: board.King},
		{Square: board.A8, Color: board.Black, Type: board.King},
		{Square: board.A1, Color: board.White, Type: board.Rook},
	}, board.NoCastlingRights, board.NoSquare)
	require.NoError(t, err)

	m := findLegal(t, pos, "a1a5")
	pos.Make(m)
	assert.Equal(t, 1, pos.HalfmoveClock())
}

func TestMakeNullIncrementsHalfmoveAndFlipsTurn(t *testing.T) {
	pos := board.NewPosition()
	pos.MakeNull()

	assert.Equal(t, board.Black, pos.Turn())
	assert.Equal(t, 1, pos.HalfmoveClock())
	assert.Equal(t, board.NoSquare, pos.EnPassant())
}

func snapshotOf(p *board.Position) string {
	return p.ToFEN()
}

func pieceTypeOf(p *board.Position, m board.Move) board.PieceType {
	return p.PieceAt(m.From()).Type()
}

func findLegal(t *testing.T, pos *board.Position, uci string) board.Move {
	t.Helper()
	want, err := board.ParseMove(uci)
	require.NoError(t, err)

	var list board.MoveList
	pos.Generate(&list)
	for _, cand := range list.Slice() {
		if cand.SameCoordinates(want) && pos.IsLegal(cand) {
			return cand
		}
	}
	t.Fatalf("no legal move matching %v in %v", uci, pos.ToFEN())
	return board.NoMove
}
