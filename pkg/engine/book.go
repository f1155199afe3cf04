package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/blackwingchess/corvid/pkg/board"
	"github.com/blackwingchess/corvid/pkg/board/fen"
)

// Book represents an opening book.
type Book interface {
	// Find returns a list -- potentially empty -- of moves given a position. Once an empty
	// list is returned, the book should not be consulted again for the game.
	Find(ctx context.Context, fen string) ([]board.Move, error)
}

// Line represents an opening line: e2e4 d7d5.
type Line []string

func (l Line) String() string {
	return strings.Join(l, " ")
}

// NoBook is an empty opening book.
var NoBook = &book{moves: map[string][]board.Move{}}

// NewBook creates an opening book from a set of opening lines.
func NewBook(lines []Line) (Book, error) {
	seen := map[string]map[board.Move]bool{}
	for _, line := range lines {
		key := fen.Initial
		for _, str := range line {
			candidate, err := board.ParseMove(str)
			if err != nil {
				return nil, fmt.Errorf("invalid line '%v': %v", line, err)
			}

			pos, err := fen.Decode(key)
			if err != nil {
				return nil, fmt.Errorf("invalid line '%v': %v", line, err)
			}

			var list board.MoveList
			pos.Generate(&list)

			var matched board.Move
			found := false
			for _, m := range list.Slice() {
				if !m.SameCoordinates(candidate) || !pos.IsLegal(m) {
					continue
				}
				matched, found = m, true
				break
			}
			if !found {
				return nil, fmt.Errorf("invalid line '%v': move %v not found", line, candidate)
			}

			if seen[fenKey(key)] == nil {
				seen[fenKey(key)] = map[board.Move]bool{}
			}
			seen[fenKey(key)][matched] = true

			pos.Make(matched)
			key = fen.Encode(pos)
		}
	}

	dedup := map[string][]board.Move{}
	for k, v := range seen {
		var list []board.Move
		for move := range v {
			list = append(list, move)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].String() < list[j].String() })
		dedup[k] = list
	}
	return &book{moves: dedup}, nil
}

type book struct {
	moves map[string][]board.Move // cropped fen -> []move
}

func (b *book) Find(ctx context.Context, fen string) ([]board.Move, error) {
	return b.moves[fenKey(fen)], nil
}

func fenKey(pos string) string {
	parts := strings.Split(pos, " ")
	return strings.Join(parts[:4], " ")
}
