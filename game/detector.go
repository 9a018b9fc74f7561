package game

import "github.com/pkg/errors"

// Intent is what a click on a cell means for the current player.
type Intent int

const (
	NoIntent Intent = iota
	Selection
	Movement
	Eating
	Revealing
)

func (i Intent) String() string {
	switch i {
	case Selection:
		return "SELECTION"
	case Movement:
		return "MOVEMENT"
	case Eating:
		return "EATING"
	case Revealing:
		return "REVEAL"
	}
	return "NONE"
}

// isAlly reports whether p belongs to the current player. Nothing is an ally before colours are assigned.
func (s *State) isAlly(p *Piece) bool {
	color := s.CurrentPlayer().Color
	return color != NoSide && p.Side == color
}

// Classify decides what a click on cell means. It depends only on the occupant of cell,
// whether it is covered, whether a piece is selected and whether the two are allied.
func (s *State) Classify(cell int) Intent {
	p := s.board.Piece(cell)
	_, selected := s.Selected()
	switch {
	case p != nil && p.Covered():
		return Revealing
	case selected && p == nil:
		return Movement
	case selected && s.isAlly(p):
		return Selection
	case selected:
		return Eating
	case p != nil && s.isAlly(p):
		return Selection
	}
	return NoIntent
}

// Select marks cell as the origin of the next move or eat. Only a revealed ally can be
// selected, and only while nothing else is.
func (s *State) Select(cell int) error {
	if _, ok := s.Selected(); ok {
		return errors.Wrapf(ErrNotSelectable, "cell %d: another cell is already selected", cell)
	}
	p := s.board.Piece(cell)
	if p == nil || p.Covered() || !s.isAlly(p) {
		return errors.Wrapf(ErrNotSelectable, "cell %d", cell)
	}
	s.selected = cell
	return nil
}

// Handle classifies a click on cell and carries it out: selections change the selected
// cell, everything else goes through Play. It returns the classified intent.
func (s *State) Handle(cell int) (Intent, error) {
	if s.Ended() {
		return NoIntent, errors.Wrapf(ErrGameOver, "status %v", s.status)
	}
	intent := s.Classify(cell)
	from, _ := s.Selected()
	var err error
	switch intent {
	case Selection:
		s.Deselect()
		err = s.Select(cell)
	case Movement:
		err = s.Play(Action{From: from, Kind: Move, To: cell})
	case Eating:
		err = s.Play(Action{From: from, Kind: Eat, To: cell})
	case Revealing:
		err = s.Play(NewReveal(cell))
	}
	return intent, err
}
