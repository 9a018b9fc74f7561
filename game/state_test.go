package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	s := NewState(WithSeed(11))
	require.Equal(t, Ongoing, s.Status())
	require.False(t, s.ColorAssigned())
	require.Equal(t, NoSide, s.Player(0).Color)
	require.Equal(t, NoSide, s.Player(1).Color)
	require.Equal(t, PiecesPerSide, s.Remaining(Red))
	require.Equal(t, PiecesPerSide, s.Remaining(Black))
	require.Equal(t, DefaultIdleLimit, s.IdleLimit())
	require.Len(t, s.LegalActions(), NumCells)
	_, selected := s.Selected()
	require.False(t, selected)
}

func TestFirstMoverIsSeeded(t *testing.T) {
	seen := make(map[int]bool)
	for seed := uint64(1); seed < 40; seed++ {
		a := NewState(WithSeed(seed))
		b := NewState(WithSeed(seed))
		require.Equal(t, a.CurrentIndex(), b.CurrentIndex())
		seen[a.CurrentIndex()] = true
	}
	require.Len(t, seen, 2)
	require.Equal(t, 1, NewState(WithSeed(5), WithFirstMover(1)).CurrentIndex())
}

func TestFirstRevealAssignsColors(t *testing.T) {
	s := NewState(WithSeed(7), WithFirstMover(1))
	p := s.Board().Piece(5)
	require.NoError(t, s.Play(NewReveal(5)))

	require.True(t, s.ColorAssigned())
	require.Equal(t, p.Side, s.Player(1).Color)
	require.Equal(t, p.Side.Opposite(), s.Player(0).Color)
	require.False(t, p.Covered())
	require.Equal(t, 0, s.CurrentIndex())
	require.Equal(t, 0, s.IdleSteps())

	// a later reveal of the other colour keeps the assignment
	for cell := 0; cell < NumCells; cell++ {
		if q := s.Board().Piece(cell); q.Covered() && q.Side != s.CurrentPlayer().Color {
			require.NoError(t, s.Play(NewReveal(cell)))
			break
		}
	}
	require.Equal(t, p.Side, s.Player(1).Color)
}

func TestSoldierMoveThenEat(t *testing.T) {
	s := setup(t, map[int]*Piece{
		Index(0, 0): revealed(0, Soldier, Red),
		Index(0, 2): revealed(1, Soldier, Black),
		Index(3, 7): revealed(2, Horse, Black),
	})

	require.NoError(t, s.Play(Action{From: Index(0, 0), Kind: Move, To: Index(0, 1)}))
	require.Equal(t, 1, s.IdleSteps())
	require.Nil(t, s.PieceAt(0, 0))
	require.Equal(t, Soldier, s.PieceAt(0, 1).Rank)
	require.Equal(t, 1, s.CurrentIndex())

	require.NoError(t, s.Play(Action{From: Index(3, 7), Kind: Move, To: Index(3, 6)}))
	require.Equal(t, 2, s.IdleSteps())

	require.NoError(t, s.Play(Action{From: Index(0, 1), Kind: Eat, To: Index(0, 2)}))
	require.Equal(t, 0, s.IdleSteps())
	require.Equal(t, 1, s.Remaining(Black))
	require.Equal(t, Red, s.PieceAt(0, 2).Side)
	require.Equal(t, Ongoing, s.Status())
}

func TestSoldierMoveNextToCoveredThenEatGeneral(t *testing.T) {
	s := setup(t, map[int]*Piece{
		Index(0, 0): revealed(0, Soldier, Red),
		Index(0, 1): NewPiece(1, Horse, Black),
		Index(2, 0): revealed(2, General, Black),
		Index(3, 7): revealed(3, Horse, Black),
	})
	require.False(t, s.Validate(Action{From: Index(0, 0), Kind: Eat, To: Index(0, 1)}), "covered pieces cannot be eaten")

	require.NoError(t, s.Play(Action{From: Index(0, 0), Kind: Move, To: Index(1, 0)}))
	require.Equal(t, 1, s.IdleSteps())
	require.NoError(t, s.Play(Action{From: Index(3, 7), Kind: Move, To: Index(3, 6)}))
	require.Equal(t, 2, s.IdleSteps())

	require.NoError(t, s.Play(Action{From: Index(1, 0), Kind: Eat, To: Index(2, 0)}))
	require.Equal(t, 0, s.IdleSteps())
	require.Equal(t, Soldier, s.PieceAt(2, 0).Rank)
	require.Equal(t, Red, s.PieceAt(2, 0).Side)
	require.Nil(t, s.PieceAt(1, 0))
	require.Equal(t, 2, s.Remaining(Black))
	require.Equal(t, Ongoing, s.Status())
}

func TestIdleLimitDraw(t *testing.T) {
	s := setup(t, map[int]*Piece{
		Index(0, 0): revealed(0, Horse, Red),
		Index(3, 7): revealed(1, Horse, Black),
	})
	red := [2]int{Index(0, 0), Index(0, 1)}
	black := [2]int{Index(3, 7), Index(3, 6)}
	for i := 0; i < DefaultIdleLimit; i++ {
		require.Equal(t, Ongoing, s.Status(), "move %d", i)
		path := red
		if s.CurrentIndex() == 1 {
			path = black
		}
		k := i / 2 % 2
		require.NoError(t, s.Play(Action{From: path[k], Kind: Move, To: path[1-k]}))
	}
	require.Equal(t, DefaultIdleLimit, s.IdleSteps())
	require.Equal(t, Draw, s.Status())
	require.Equal(t, -1, s.Winner())

	err := s.Play(Action{From: Index(0, 1), Kind: Move, To: Index(0, 2)})
	require.Equal(t, ErrGameOver, errors.Cause(err))
}

func TestCustomIdleLimit(t *testing.T) {
	s := setup(t, map[int]*Piece{
		Index(0, 0): revealed(0, Horse, Red),
		Index(3, 7): revealed(1, Horse, Black),
	}, WithIdleLimit(2))
	require.NoError(t, s.Play(Action{From: Index(0, 0), Kind: Move, To: Index(0, 1)}))
	require.Equal(t, Ongoing, s.Status())
	require.NoError(t, s.Play(Action{From: Index(3, 7), Kind: Move, To: Index(3, 6)}))
	require.Equal(t, Draw, s.Status())
}

func TestEliminationWins(t *testing.T) {
	s := setup(t, map[int]*Piece{
		Index(1, 1): revealed(0, Soldier, Red),
		Index(1, 2): revealed(1, General, Black),
	})
	require.NoError(t, s.Play(Action{From: Index(1, 1), Kind: Eat, To: Index(1, 2)}))
	require.Equal(t, 0, s.Remaining(Black))
	require.Equal(t, RedWin, s.Status())
	require.True(t, s.Ended())
	require.Equal(t, 0, s.Winner())
}

func TestNoActionLoses(t *testing.T) {
	s := setup(t, map[int]*Piece{
		Index(0, 0): revealed(0, Soldier, Black),
		Index(0, 1): revealed(1, Advisor, Red),
		Index(1, 0): revealed(2, Advisor, Red),
	})
	require.Equal(t, 1, s.Remaining(Black))
	require.Equal(t, RedWin, s.Status())

	// the idle ceiling is checked first
	s.idle = s.idleLimit
	s.UpdateStatus()
	require.Equal(t, Draw, s.Status())
}

func TestRejectedActionLeavesStateUntouched(t *testing.T) {
	s := setup(t, map[int]*Piece{
		Index(0, 0): revealed(0, Horse, Red),
		Index(0, 1): revealed(1, Chariot, Black),
		Index(3, 7): revealed(2, Horse, Black),
	})
	before := s.Board().String()
	cases := []Action{
		{From: Index(0, 0), Kind: Eat, To: Index(0, 1)},  // horse cannot eat chariot
		{From: Index(0, 0), Kind: Move, To: Index(0, 2)}, // not adjacent
		{From: Index(3, 7), Kind: Move, To: Index(3, 6)}, // not ours
		{From: Index(2, 2), Kind: Move, To: Index(2, 3)}, // empty origin
		{From: Index(0, 0), Kind: Move, To: Index(0, 1)}, // occupied
	}
	for _, a := range cases {
		assert.False(t, s.Validate(a), "%v", a)
		err := s.Play(a)
		assert.Equal(t, ErrInvalidAction, errors.Cause(err), "%v", a)
	}
	require.Equal(t, before, s.Board().String())
	require.Equal(t, 0, s.CurrentIndex())
	require.Equal(t, 0, s.IdleSteps())
}

func TestResetStartsOver(t *testing.T) {
	s := NewState(WithSeed(2))
	require.NoError(t, s.Play(s.LegalActions()[0]))
	s.Reset()
	require.False(t, s.ColorAssigned())
	require.Equal(t, Ongoing, s.Status())
	require.Len(t, s.LegalActions(), NumCells)
	for cell := 0; cell < NumCells; cell++ {
		require.True(t, s.Board().Piece(cell).Covered())
	}
}
