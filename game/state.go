package game

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Status is the outcome of a match so far. Everything but Ongoing is terminal.
type Status int

const (
	Ongoing Status = iota
	RedWin
	BlackWin
	Draw
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ONGOING"
	case RedWin:
		return "RED_WIN"
	case BlackWin:
		return "BLACK_WIN"
	case Draw:
		return "DRAW"
	}
	return "UNKNOWN STATUS"
}

// DefaultIdleLimit is the number of consecutive plain moves that ends a match in a draw.
const DefaultIdleLimit = 17

const noSelection = -1

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrGameOver      = errors.New("game is over")
	ErrNotSelectable = errors.New("cell cannot be selected")
)

// Player is one of the two participants. Color stays NoSide until the first reveal.
type Player struct {
	Name  string
	Color Side
	IsAI  bool
}

// Option configures a State.
type Option func(s *State)

// WithRand sets the random source used for board shuffles and the first mover.
func WithRand(r *rand.Rand) Option {
	return func(s *State) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithSeed is WithRand with a fresh source seeded by seed.
func WithSeed(seed uint64) Option {
	return func(s *State) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithIdleLimit sets the draw ceiling on consecutive plain moves.
func WithIdleLimit(limit int) Option {
	return func(s *State) {
		if limit > 0 {
			s.idleLimit = limit
		}
	}
}

// WithPlayers names the two players and flags the AI ones.
func WithPlayers(a, b Player) Option {
	return func(s *State) {
		s.players = [2]Player{a, b}
	}
}

// WithBoard starts the match from b instead of a shuffled board. The first mover is still drawn at random
// unless WithFirstMover is given.
func WithBoard(b *Board) Option {
	return func(s *State) {
		s.board = b
	}
}

// WithFirstMover fixes the index of the player that moves first.
func WithFirstMover(idx int) Option {
	return func(s *State) {
		s.firstMover = idx
	}
}

// State is the live match: the board, the players, turn and idle bookkeeping and the status.
// It is mutated only by Apply and AdvanceTurn (or Play, which is both).
type State struct {
	status        Status
	board         *Board
	gen           *Generator
	players       [2]Player
	current       int
	idle          int
	idleLimit     int
	colorAssigned bool
	selected      int
	remaining     [3]int // indexed by Side

	rng        *rand.Rand
	firstMover int
}

// NewState starts a new match.
func NewState(opts ...Option) *State {
	s := &State{
		players:    [2]Player{{Name: "Player 1"}, {Name: "Player 2"}},
		idleLimit:  DefaultIdleLimit,
		firstMover: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if s.board == nil {
		s.Reset()
		return s
	}
	s.gen = NewGenerator(s.board)
	s.resetBookkeeping()
	s.recount()
	s.UpdateStatus()
	return s
}

// Reset starts over with a freshly shuffled board, a new generator and unassigned colours.
func (s *State) Reset() {
	if s.board == nil {
		s.board = NewBoard(s.rng)
	} else {
		s.board.Reset(s.rng)
	}
	s.gen = NewGenerator(s.board)
	s.resetBookkeeping()
}

func (s *State) resetBookkeeping() {
	s.status = Ongoing
	s.idle = 0
	s.colorAssigned = false
	s.selected = noSelection
	s.remaining[Red] = PiecesPerSide
	s.remaining[Black] = PiecesPerSide
	for i := range s.players {
		s.players[i].Color = NoSide
	}
	if s.firstMover == 0 || s.firstMover == 1 {
		s.current = s.firstMover
	} else {
		s.current = s.rng.Intn(2)
	}
}

// recount sets the remaining counters from the pieces on a hand-built board.
func (s *State) recount() {
	s.remaining[Red], s.remaining[Black] = 0, 0
	for i := 0; i < NumCells; i++ {
		if p := s.board.Piece(i); p != nil {
			s.remaining[p.Side]++
		}
	}
}

// AssignColors gives the current player color and the other player the opposite one.
// It does nothing once colours are assigned.
func (s *State) AssignColors(color Side) {
	if s.colorAssigned || color == NoSide {
		return
	}
	s.players[s.current].Color = color
	s.players[1-s.current].Color = color.Opposite()
	s.colorAssigned = true
}

func (s *State) Status() Status { return s.status }
func (s *State) Board() *Board { return s.board }
func (s *State) Generator() *Generator { return s.gen }
func (s *State) CurrentIndex() int { return s.current }
func (s *State) CurrentPlayer() Player { return s.players[s.current] }
func (s *State) Player(idx int) Player { return s.players[idx] }
func (s *State) IdleSteps() int { return s.idle }
func (s *State) IdleLimit() int { return s.idleLimit }
func (s *State) ColorAssigned() bool { return s.colorAssigned }
func (s *State) Remaining(side Side) int { return s.remaining[side] }
func (s *State) LegalActions() []Action { return s.gen.LegalActions(s.CurrentPlayer().Color) }
func (s *State) PieceAt(row, col int) *Piece { return s.board.PieceAt(row, col) }
func (s *State) Selected() (cell int, ok bool) { return s.selected, s.selected != noSelection }
func (s *State) Deselect() { s.selected = noSelection }
func (s *State) Ended() bool { return s.status != Ongoing }

// Validate reports whether a is legal for the current player.
func (s *State) Validate(a Action) bool {
	if s.status != Ongoing {
		return false
	}
	return s.gen.IsValid(a, s.CurrentPlayer().Color)
}

// Apply commits a to the board together with its kind-specific bookkeeping.
// An invalid action leaves the state untouched and returns ErrInvalidAction.
// The turn is not handed over; call AdvanceTurn afterwards.
func (s *State) Apply(a Action) error {
	if s.status != Ongoing {
		return errors.Wrapf(ErrGameOver, "cannot apply %v: status %v", a, s.status)
	}
	if !s.Validate(a) {
		return errors.Wrapf(ErrInvalidAction, "%v for %v", a, s.CurrentPlayer().Color)
	}

	switch a.Kind {
	case Reveal:
		s.board.apply(a)
		s.AssignColors(s.board.Piece(a.From).Side)
		s.idle = 0
	case Move:
		s.board.apply(a)
		s.idle++
	case Eat:
		victim := s.board.Piece(a.To)
		s.board.apply(a)
		s.remaining[victim.Side]--
		s.idle = 0
	}
	return nil
}

// AdvanceTurn hands the turn to the other player, clears the selection, recomputes
// the legal action sets and re-evaluates the status.
func (s *State) AdvanceTurn() {
	s.current = 1 - s.current
	s.selected = noSelection
	s.gen.Refresh()
	s.UpdateStatus()
}

// Play is Apply followed by AdvanceTurn.
func (s *State) Play(a Action) error {
	if err := s.Apply(a); err != nil {
		return err
	}
	s.AdvanceTurn()
	return nil
}

// UpdateStatus evaluates the terminal conditions: the idle ceiling first, then a side
// without pieces or without any legal action loses.
func (s *State) UpdateStatus() {
	switch {
	case s.idle >= s.idleLimit:
		s.status = Draw
	case s.remaining[Red] <= 0 || !s.gen.HasAnyAction(Red):
		s.status = BlackWin
	case s.remaining[Black] <= 0 || !s.gen.HasAnyAction(Black):
		s.status = RedWin
	default:
		s.status = Ongoing
	}
}

// Winner returns the index of the winning player, or -1 for a draw or an ongoing match.
func (s *State) Winner() int {
	var color Side
	switch s.status {
	case RedWin:
		color = Red
	case BlackWin:
		color = Black
	default:
		return -1
	}
	for i, p := range s.players {
		if p.Color == color {
			return i
		}
	}
	return -1
}

func (s *State) String() string { return s.board.String() }
