package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// Position is a self-contained snapshot of a match used by the search. It is a plain
// value: copying it clones it, and Apply returns a new Position without touching the
// receiver or the live State it came from.
type Position struct {
	Squares   [NumCells]Square
	ToMove    int     // index of the player about to act
	Colors    [2]Side // per player index, NoSide until the first reveal
	Remaining [2]int  // per player index
	Idle      int
	IdleLimit int
}

// NewPosition snapshots the live state.
func NewPosition(s *State) Position {
	p := Position{
		ToMove:    s.current,
		Idle:      s.idle,
		IdleLimit: s.idleLimit,
	}
	for i := 0; i < NumCells; i++ {
		p.Squares[i] = s.board.At(i)
	}
	for i, pl := range s.players {
		p.Colors[i] = pl.Color
		p.Remaining[i] = PiecesPerSide
		if pl.Color != NoSide {
			p.Remaining[i] = s.remaining[pl.Color]
		}
	}
	return p
}

// At implements Grid.
func (p Position) At(cell int) Square { return p.Squares[cell] }

// Mover is the colour of the player about to act.
func (p Position) Mover() Side { return p.Colors[p.ToMove] }

// Features is Board.Features seen by the player about to act.
func (p Position) Features() [NumCells]int { return features(p, p.Mover()) }

// LegalActions lists the actions of the player about to act.
func (p Position) LegalActions() []Action { return LegalActions(p, p.Mover()) }

// LegalMask returns a 0/1 vector over the whole action space.
func (p Position) LegalMask() []float32 {
	retVal := make([]float32, ActionSpace)
	for _, a := range p.LegalActions() {
		retVal[a.Index()] = 1
	}
	return retVal
}

// Apply plays the action with index idx for the player about to act. The turn is not
// handed over; call FlipPerspective for that.
func (p Position) Apply(idx int) (Position, error) {
	a, err := Decode(idx)
	if err != nil {
		return p, err
	}
	from := p.Squares[a.From]
	if from.Empty() {
		return p, errors.Wrapf(ErrInvalidAction, "%v: origin is empty", a)
	}

	switch a.Kind {
	case Reveal:
		p.Squares[a.From].Covered = false
		p.Idle = 0
		if p.Colors[p.ToMove] == NoSide {
			p.Colors[p.ToMove] = from.Side
			p.Colors[1-p.ToMove] = from.Side.Opposite()
		}
	case Move:
		p.Squares[a.To], p.Squares[a.From] = from, Square{}
		p.Idle++
	case Eat:
		p.Squares[a.To], p.Squares[a.From] = from, Square{}
		p.Remaining[1-p.ToMove]--
		p.Idle = 0
	default:
		panic(fmt.Sprintf("unknown action kind %d", a.Kind))
	}
	return p, nil
}

// FlipPerspective hands the turn to the other player.
func (p Position) FlipPerspective() Position {
	p.ToMove = 1 - p.ToMove
	return p
}

// TerminalValue checks whether the player about to act is done. A position at the idle
// ceiling is a draw (0). A mover without pieces or without any legal action has lost,
// and the returned value is 1, scored for the player that made the last move.
func (p Position) TerminalValue() (value float32, terminal bool) {
	if p.Idle >= p.IdleLimit {
		return 0, true
	}
	if p.Remaining[p.ToMove] <= 0 || len(p.LegalActions()) == 0 {
		return 1, true
	}
	return 0, false
}

func (p Position) String() string {
	return fmt.Sprintf("%sto move: %d (%v) idle: %d/%d remaining: %v",
		gridString(p), p.ToMove, p.Mover(), p.Idle, p.IdleLimit, p.Remaining)
}
