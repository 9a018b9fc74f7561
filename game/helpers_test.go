package game

import "testing"

func revealed(key int, r Rank, s Side) *Piece {
	p := NewPiece(key, r, s)
	p.Reveal()
	return p
}

// setup builds a state from a hand-placed board where player 0 is Red and moves first.
func setup(t *testing.T, pieces map[int]*Piece, opts ...Option) *State {
	t.Helper()
	b := NewEmptyBoard()
	for cell, p := range pieces {
		b.Place(cell, p)
	}
	base := []Option{WithBoard(b), WithFirstMover(0), WithSeed(1)}
	s := NewState(append(base, opts...)...)
	s.AssignColors(Red)
	s.UpdateStatus()
	return s
}
