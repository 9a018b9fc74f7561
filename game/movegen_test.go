package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func hasAction(actions []Action, want Action) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}

func TestFreshBoardOnlyReveals(t *testing.T) {
	b := NewBoard(rand.New(rand.NewSource(1)))
	for _, side := range []Side{NoSide, Red, Black} {
		actions := LegalActions(b, side)
		require.Len(t, actions, NumCells)
		for i, a := range actions {
			require.Equal(t, NewReveal(i), a)
			require.Equal(t, i*ActionStride+64, a.Index())
		}
	}
	g := NewGenerator(b)
	require.Equal(t, LegalActions(b, Red), g.LegalActions(Red))
	require.True(t, g.HasAnyAction(Black))
}

func TestMovesAndEats(t *testing.T) {
	b := NewEmptyBoard()
	b.Place(Index(1, 1), revealed(0, Soldier, Red))
	b.Place(Index(1, 2), revealed(1, General, Black))
	b.Place(Index(0, 1), revealed(2, Horse, Black))
	b.Place(Index(2, 1), revealed(3, Soldier, Red))

	actions := LegalActions(b, Red)
	soldier := Index(1, 1)
	assert.True(t, hasAction(actions, Action{From: soldier, Kind: Eat, To: Index(1, 2)}), "soldier eats general")
	assert.False(t, hasAction(actions, Action{From: soldier, Kind: Eat, To: Index(0, 1)}), "soldier cannot eat horse")
	assert.True(t, hasAction(actions, Action{From: soldier, Kind: Move, To: Index(1, 0)}))
	assert.False(t, hasAction(actions, Action{From: soldier, Kind: Move, To: Index(2, 1)}), "occupied by ally")
	assert.False(t, hasAction(actions, Action{From: soldier, Kind: Eat, To: Index(2, 1)}), "no friendly fire")

	blackActions := LegalActions(b, Black)
	general := Index(1, 2)
	assert.False(t, hasAction(blackActions, Action{From: general, Kind: Eat, To: soldier}), "general cannot eat soldier")
	assert.True(t, hasAction(blackActions, Action{From: Index(0, 1), Kind: Eat, To: soldier}), "horse eats soldier")

	for i := 1; i < len(actions); i++ {
		require.Less(t, actions[i-1].Index(), actions[i].Index())
	}
}

func TestCoveredPiecesCannotBeEatenByAdjacency(t *testing.T) {
	b := NewEmptyBoard()
	b.Place(Index(0, 0), revealed(0, General, Red))
	b.Place(Index(0, 1), NewPiece(1, Soldier, Black))
	actions := LegalActions(b, Red)
	assert.False(t, hasAction(actions, Action{From: 0, Kind: Eat, To: 1}))
	assert.True(t, hasAction(actions, NewReveal(1)))
}

func TestCannon(t *testing.T) {
	cannon := Index(0, 0)
	cases := []struct {
		name   string
		pieces map[int]*Piece
		target int
		legal  bool
	}{
		{
			name: "covered screen",
			pieces: map[int]*Piece{
				Index(0, 2): NewPiece(1, Advisor, Red),
				Index(0, 5): revealed(2, General, Black),
			},
			target: Index(0, 5),
			legal:  true,
		},
		{
			name: "column ray",
			pieces: map[int]*Piece{
				Index(1, 0): revealed(1, Soldier, Red),
				Index(3, 0): revealed(2, Soldier, Black),
			},
			target: Index(3, 0),
			legal:  true,
		},
		{
			name: "adjacent enemy without screen",
			pieces: map[int]*Piece{
				Index(0, 1): revealed(1, Soldier, Black),
			},
			target: Index(0, 1),
			legal:  false,
		},
		{
			name: "covered target",
			pieces: map[int]*Piece{
				Index(0, 1): revealed(1, Soldier, Black),
				Index(0, 2): NewPiece(2, Soldier, Black),
			},
			target: Index(0, 2),
			legal:  false,
		},
		{
			name: "own target",
			pieces: map[int]*Piece{
				Index(0, 1): revealed(1, Soldier, Black),
				Index(0, 2): revealed(2, Soldier, Red),
			},
			target: Index(0, 2),
			legal:  false,
		},
		{
			name: "two screens",
			pieces: map[int]*Piece{
				Index(0, 1): revealed(1, Soldier, Black),
				Index(0, 2): revealed(2, Soldier, Red),
				Index(0, 3): revealed(3, General, Black),
			},
			target: Index(0, 3),
			legal:  false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewEmptyBoard()
			b.Place(cannon, revealed(0, Cannon, Red))
			for cell, p := range c.pieces {
				b.Place(cell, p)
			}
			got := hasAction(LegalActions(b, Red), Action{From: cannon, Kind: Eat, To: c.target})
			require.Equal(t, c.legal, got)
		})
	}
}

func TestGeneratorMatchesLegalActions(t *testing.T) {
	s := NewState(WithSeed(3), WithFirstMover(0))
	for i := 0; i < 60 && !s.Ended(); i++ {
		for _, side := range []Side{Red, Black} {
			require.Equal(t, LegalActions(s.Board(), side), s.Generator().LegalActions(side), "step %d %v", i, side)
		}
		legal := s.LegalActions()
		require.NoError(t, s.Play(legal[i%len(legal)]))
	}

	indices := s.Generator().LegalIndices(Red)
	for i, a := range s.Generator().LegalActions(Red) {
		require.Equal(t, a.Index(), indices[i])
	}
}

func TestIsValidWithoutColor(t *testing.T) {
	b := NewEmptyBoard()
	b.Place(0, revealed(0, Horse, Red))
	b.Place(9, NewPiece(1, Horse, Black))
	g := NewGenerator(b)
	require.True(t, g.IsValid(NewReveal(9), NoSide))
	require.False(t, g.IsValid(Action{From: 0, Kind: Move, To: 1}, NoSide))
	require.True(t, g.IsValid(Action{From: 0, Kind: Move, To: 1}, Red))
	require.False(t, g.IsValid(Action{From: 0, Kind: Move, To: 1}, Black))
}

// checkGeometry asserts that every action in actions is well formed for side on g.
func checkGeometry(t *testing.T, g Grid, side Side, actions []Action) {
	t.Helper()
	for _, a := range actions {
		from := g.At(a.From)
		require.False(t, from.Empty(), "%v: empty origin", a)
		fr, fc := Coordinates(a.From)
		tr, tc := Coordinates(a.To)
		dr, dc := fr-tr, fc-tc
		if dr < 0 {
			dr = -dr
		}
		if dc < 0 {
			dc = -dc
		}
		switch a.Kind {
		case Reveal:
			require.True(t, from.Covered, "%v: reveal of a face-up piece", a)
			require.Equal(t, a.From, a.To)
		case Move:
			require.True(t, from.Revealed(), "%v", a)
			require.Equal(t, side, from.Side, "%v", a)
			require.Equal(t, 1, dr+dc, "%v: not one orthogonal step", a)
			require.True(t, g.At(a.To).Empty(), "%v: destination occupied", a)
		case Eat:
			to := g.At(a.To)
			require.True(t, from.Revealed(), "%v", a)
			require.Equal(t, side, from.Side, "%v", a)
			require.True(t, to.Revealed(), "%v: target not revealed", a)
			require.Equal(t, side.Opposite(), to.Side, "%v: target not an enemy", a)
			if from.Rank == Cannon {
				require.True(t, (dr == 0) != (dc == 0), "%v: cannon off its row and column", a)
			} else {
				require.Equal(t, 1, dr+dc, "%v: not adjacent", a)
			}
		}
	}
}

func TestLegalActionGeometry(t *testing.T) {
	for seed := uint64(1); seed < 60; seed++ {
		s := NewState(WithSeed(seed))
		r := rand.New(rand.NewSource(seed))
		for ply := 0; ply < 400 && !s.Ended(); ply++ {
			for _, side := range []Side{Red, Black} {
				checkGeometry(t, s.Board(), side, s.Generator().LegalActions(side))
			}
			legal := s.LegalActions()
			require.NotEmpty(t, legal, "seed %d ply %d", seed, ply)
			require.NoError(t, s.Play(legal[r.Intn(len(legal))]))
		}
	}
}

func TestCannonJumpsRevealedScreen(t *testing.T) {
	// C . . s . g along the top row
	b := NewEmptyBoard()
	b.Place(Index(0, 0), revealed(0, Cannon, Red))
	b.Place(Index(0, 3), revealed(1, Soldier, Black))
	b.Place(Index(0, 5), revealed(2, General, Black))

	actions := LegalActions(b, Red)
	require.True(t, hasAction(actions, Action{From: Index(0, 0), Kind: Eat, To: Index(0, 5)}))
	require.False(t, hasAction(actions, Action{From: Index(0, 0), Kind: Eat, To: Index(0, 3)}), "the screen itself is safe")
	require.Equal(t, []int{Index(0, 5)}, cannonTargets(b, Index(0, 0)))
	checkGeometry(t, b, Red, actions)
}
