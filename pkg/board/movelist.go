package board

import "fmt"

// MaxMoves bounds the number of pseudo-legal moves any single chess position can
// produce. The generator never exceeds it, so MoveList storage is fixed-size and
// resource exhaustion (§7) is impossible by construction.
const MaxMoves = 256

// MoveList is a fixed-capacity, stack-allocatable list of moves, used by the
// generator so that a search ply never allocates on the heap for ordinary move
// generation.
type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

// Add appends a move. Panics if the generator ever produces more than MaxMoves
// moves for one position, which would indicate a generator bug, not a valid position.
func (l *MoveList) Add(m Move) {
	if l.n >= MaxMoves {
		panic("move list overflow: more than MaxMoves pseudo-legal moves generated")
	}
	l.moves[l.n] = m
	l.n++
}

func (l *MoveList) Len() int {
	return l.n
}

func (l *MoveList) At(i int) Move {
	return l.moves[i]
}

// Slice returns the moves as a plain slice backed by the list's own array.
func (l *MoveList) Slice() []Move {
	return l.moves[:l.n]
}

// Remove deletes the move at index i by swapping in the last element, which is
// cheap and order-irrelevant for a pseudo-legal list about to be legality-filtered.
func (l *MoveList) Remove(i int) {
	l.n--
	l.moves[i] = l.moves[l.n]
}

func (l *MoveList) String() string {
	return fmt.Sprintf("moves%v", l.Slice())
}
