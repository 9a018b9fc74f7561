package game

import "sort"

// orthogonal directions as (row, col) deltas
var directions = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// appendMoves appends the MOVE actions of the piece on cell: any empty orthogonal neighbour.
func appendMoves(dst []Action, g Grid, cell int) []Action {
	row, col := Coordinates(cell)
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		if !InBounds(r, c) {
			continue
		}
		to := Index(r, c)
		if g.At(to).Empty() {
			dst = append(dst, Action{From: cell, Kind: Move, To: to})
		}
	}
	return dst
}

// appendEats appends the EAT actions of the revealed piece on cell.
func appendEats(dst []Action, g Grid, cell int) []Action {
	me := g.At(cell)
	if me.Rank == Cannon {
		for _, to := range cannonTargets(g, cell) {
			target := g.At(to)
			if target.Covered || target.Side == me.Side {
				continue
			}
			dst = append(dst, Action{From: cell, Kind: Eat, To: to})
		}
		return dst
	}

	row, col := Coordinates(cell)
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		if !InBounds(r, c) {
			continue
		}
		to := Index(r, c)
		target := g.At(to)
		if !target.Revealed() || target.Side != me.Side.Opposite() {
			continue
		}
		if me.Rank.CanDefeat(target.Rank) {
			dst = append(dst, Action{From: cell, Kind: Eat, To: to})
		}
	}
	return dst
}

// cannonTargets walks each ray from cell and returns the second occupied cell of every
// ray, i.e. the one right behind exactly one screen. Ownership and coverage are not
// checked here.
func cannonTargets(g Grid, cell int) []int {
	var retVal []int
	row, col := Coordinates(cell)
	for _, d := range directions {
		screened := false
		for r, c := row+d[0], col+d[1]; InBounds(r, c); r, c = r+d[0], c+d[1] {
			idx := Index(r, c)
			if g.At(idx).Empty() {
				continue
			}
			if !screened {
				screened = true
				continue
			}
			retVal = append(retVal, idx)
			break
		}
	}
	return retVal
}

// LegalActions lists the actions available to side on g, ordered by action index.
// Reveals are colour neutral; with NoSide only reveals are returned.
func LegalActions(g Grid, side Side) []Action {
	var retVal []Action
	for cell := 0; cell < NumCells; cell++ {
		sq := g.At(cell)
		switch {
		case sq.Empty():
		case sq.Covered:
			retVal = append(retVal, NewReveal(cell))
		case side != NoSide && sq.Side == side:
			retVal = appendMoves(retVal, g, cell)
			retVal = appendEats(retVal, g, cell)
		}
	}
	sort.Slice(retVal, func(i, j int) bool { return retVal[i].Index() < retVal[j].Index() })
	return retVal
}

// Generator holds the legal action sets of a board, partitioned into colour-neutral
// reveals and per-side moves and eats. Call Refresh after every mutation of the board.
type Generator struct {
	board   *Board
	neutral map[string]Action
	red     map[string]Action
	black   map[string]Action
}

// NewGenerator returns a Generator already refreshed for b.
func NewGenerator(b *Board) *Generator {
	g := &Generator{board: b}
	g.Refresh()
	return g
}

// Refresh recomputes every action set from scratch.
func (g *Generator) Refresh() {
	g.neutral = make(map[string]Action)
	g.red = make(map[string]Action)
	g.black = make(map[string]Action)

	var buf []Action
	for cell := 0; cell < NumCells; cell++ {
		sq := g.board.At(cell)
		if sq.Empty() {
			continue
		}
		if sq.Covered {
			a := NewReveal(cell)
			g.neutral[a.Key()] = a
			continue
		}
		set := g.red
		if sq.Side == Black {
			set = g.black
		}
		buf = appendMoves(buf[:0], g.board, cell)
		buf = appendEats(buf, g.board, cell)
		for _, a := range buf {
			set[a.Key()] = a
		}
	}
}

func (g *Generator) sideSet(side Side) map[string]Action {
	switch side {
	case Red:
		return g.red
	case Black:
		return g.black
	}
	return nil
}

// IsValid reports whether a is legal for a player of the given colour.
// A player without a colour may only reveal.
func (g *Generator) IsValid(a Action, color Side) bool {
	key := a.Key()
	if _, ok := g.neutral[key]; ok {
		return true
	}
	_, ok := g.sideSet(color)[key]
	return ok
}

// HasAnyAction reports whether side has at least one reveal, move or eat.
func (g *Generator) HasAnyAction(side Side) bool {
	return len(g.neutral) > 0 || len(g.sideSet(side)) > 0
}

// LegalActions returns the actions open to color, ordered by action index.
func (g *Generator) LegalActions(color Side) []Action {
	retVal := make([]Action, 0, len(g.neutral)+len(g.sideSet(color)))
	for _, a := range g.neutral {
		retVal = append(retVal, a)
	}
	for _, a := range g.sideSet(color) {
		retVal = append(retVal, a)
	}
	sort.Slice(retVal, func(i, j int) bool { return retVal[i].Index() < retVal[j].Index() })
	return retVal
}

// LegalIndices is LegalActions expressed as action indices.
func (g *Generator) LegalIndices(color Side) []int {
	actions := g.LegalActions(color)
	retVal := make([]int, len(actions))
	for i, a := range actions {
		retVal[i] = a.Index()
	}
	return retVal
}
