package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestActionIndexRoundTrip(t *testing.T) {
	for idx := 0; idx < ActionSpace; idx++ {
		a, err := Decode(idx)
		require.NoError(t, err)
		require.Equal(t, idx, a.Index(), "action %v", a)
		if a.Kind == Reveal {
			require.Equal(t, a.From, a.To)
		}
	}
}

func TestActionIndex(t *testing.T) {
	cases := []struct {
		a   Action
		idx int
	}{
		{Action{From: 0, Kind: Move, To: 1}, 1},
		{Action{From: 1, Kind: Eat, To: 2}, 65 + 32 + 2},
		{NewReveal(0), 64},
		{NewReveal(31), 2079},
		{Action{From: 31, Kind: Move, To: 23}, 31*65 + 23},
	}
	for _, c := range cases {
		require.Equal(t, c.idx, c.a.Index(), "%v", c.a)
		require.Equal(t, c.a, MustDecode(c.idx))
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, ActionSpace, ActionSpace + 65} {
		_, err := Decode(idx)
		require.Error(t, err)
		require.Equal(t, ErrActionOutOfRange, errors.Cause(err))
	}
	require.Panics(t, func() { MustDecode(ActionSpace) })
}

func TestActionKey(t *testing.T) {
	require.Equal(t, "(0,0)-MOVE-(0,1)", Action{From: 0, Kind: Move, To: 1}.Key())
	require.Equal(t, "(1,2)-EAT-(2,2)", Action{From: Index(1, 2), Kind: Eat, To: Index(2, 2)}.Key())
	require.Equal(t, "(3,7)-REVEAL-(3,7)", NewReveal(31).Key())
}
