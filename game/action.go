package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the closed set of action kinds.
type Kind byte

const (
	Move Kind = iota
	Eat
	Reveal
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "MOVE"
	case Eat:
		return "EAT"
	case Reveal:
		return "REVEAL"
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

const (
	// ActionStride is the number of action indices owned by each origin cell:
	// 32 MOVE destinations, 32 EAT destinations and one REVEAL.
	ActionStride = 2*NumCells + 1
	// ActionSpace is the size of the dense action index space.
	ActionSpace = NumCells * ActionStride

	eatOffset    = NumCells
	revealOffset = 2 * NumCells
)

// ErrActionOutOfRange is returned when decoding an index outside [0, ActionSpace).
var ErrActionOutOfRange = errors.New("action index out of range")

// Action is a single move: a piece at From either moves to To, eats the piece at To,
// or, for Reveal, is turned face-up (From == To).
type Action struct {
	From int
	Kind Kind
	To   int
}

// NewReveal returns the reveal action for cell.
func NewReveal(cell int) Action { return Action{From: cell, Kind: Reveal, To: cell} }

// Index returns the dense neural network index of the action.
func (a Action) Index() int {
	base := a.From * ActionStride
	switch a.Kind {
	case Move:
		return base + a.To
	case Eat:
		return base + eatOffset + a.To
	case Reveal:
		return base + revealOffset
	}
	panic(fmt.Sprintf("unknown action kind %d", a.Kind))
}

// Decode is the inverse of Action.Index.
func Decode(idx int) (Action, error) {
	if idx < 0 || idx >= ActionSpace {
		return Action{}, errors.Wrapf(ErrActionOutOfRange, "index %d not in [0, %d)", idx, ActionSpace)
	}
	from, offset := idx/ActionStride, idx%ActionStride
	switch {
	case offset < eatOffset:
		return Action{From: from, Kind: Move, To: offset}, nil
	case offset < revealOffset:
		return Action{From: from, Kind: Eat, To: offset - eatOffset}, nil
	}
	return NewReveal(from), nil
}

// MustDecode is Decode for indices known to be in range.
func MustDecode(idx int) Action {
	a, err := Decode(idx)
	if err != nil {
		panic(err)
	}
	return a
}

// Key is the textual identity of an action, used for set membership.
func (a Action) Key() string {
	fr, fc := Coordinates(a.From)
	tr, tc := Coordinates(a.To)
	return fmt.Sprintf("(%d,%d)-%v-(%d,%d)", fr, fc, a.Kind, tr, tc)
}

func (a Action) String() string { return a.Key() }
