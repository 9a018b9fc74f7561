package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
)

const (
	RowNum   = 4
	ColNum   = 8
	NumCells = RowNum * ColNum

	// CoveredFeature marks a face-down piece in Features.
	CoveredFeature = 100
)

// Index maps (row, col) to a cell index. The mapping is row-major and fixed.
func Index(row, col int) int { return row*ColNum + col }

// Coordinates is the inverse of Index.
func Coordinates(cell int) (row, col int) { return cell / ColNum, cell % ColNum }

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool { return row >= 0 && row < RowNum && col >= 0 && col < ColNum }

// Grid is anything that can describe the content of each cell.
// Both the live Board and the search Position implement it, so both share the move generator.
type Grid interface {
	At(cell int) Square
}

// Board is the 4x8 grid of optional pieces.
type Board struct {
	pieces [NumCells]*Piece
}

// NewBoard places all 32 pieces face-down and shuffles them with r.
func NewBoard(r *rand.Rand) *Board {
	b := new(Board)
	b.Reset(r)
	return b
}

// NewEmptyBoard returns a board with no pieces. Mostly useful to set up positions by hand.
func NewEmptyBoard() *Board { return new(Board) }

// Reset refills the board with a fresh shuffled set of pieces.
func (b *Board) Reset(r *rand.Rand) {
	var key int
	for _, side := range []Side{Red, Black} {
		for _, pc := range PieceCounts {
			for i := 0; i < pc.Count; i++ {
				b.pieces[key] = NewPiece(key, pc.Rank, side)
				key++
			}
		}
	}
	r.Shuffle(NumCells, func(i, j int) {
		b.pieces[i], b.pieces[j] = b.pieces[j], b.pieces[i]
	})
}

// Piece returns the piece at cell, or nil.
func (b *Board) Piece(cell int) *Piece { return b.pieces[cell] }

// PieceAt returns the piece at (row, col), or nil.
func (b *Board) PieceAt(row, col int) *Piece { return b.pieces[Index(row, col)] }

// Place puts p on cell, replacing whatever was there.
func (b *Board) Place(cell int, p *Piece) { b.pieces[cell] = p }

// At implements Grid.
func (b *Board) At(cell int) Square {
	p := b.pieces[cell]
	if p == nil {
		return Square{}
	}
	return Square{Rank: p.Rank, Side: p.Side, Covered: p.covered}
}

// Features returns one integer per cell from the point of view of side:
// 0 for empty, CoveredFeature for face-down, +rank for side's pieces and -rank otherwise.
func (b *Board) Features(side Side) [NumCells]int {
	return features(b, side)
}

func features(g Grid, side Side) (retVal [NumCells]int) {
	for i := 0; i < NumCells; i++ {
		sq := g.At(i)
		switch {
		case sq.Empty():
			retVal[i] = 0
		case sq.Covered:
			retVal[i] = CoveredFeature
		case sq.Side == side:
			retVal[i] = int(sq.Rank)
		default:
			retVal[i] = -int(sq.Rank)
		}
	}
	return
}

// apply mutates the board for an already validated action.
func (b *Board) apply(a Action) {
	switch a.Kind {
	case Move, Eat:
		b.pieces[a.To], b.pieces[a.From] = b.pieces[a.From], nil
	case Reveal:
		if p := b.pieces[a.From]; p != nil {
			p.Reveal()
		}
	default:
		panic(fmt.Sprintf("unknown action kind %d", a.Kind))
	}
}

func (b *Board) String() string {
	return gridString(b)
}

func gridString(g Grid) string {
	var sb strings.Builder
	for r := 0; r < RowNum; r++ {
		for c := 0; c < ColNum; c++ {
			sq := g.At(Index(r, c))
			switch {
			case sq.Empty():
				sb.WriteString(" .")
			case sq.Covered:
				sb.WriteString(" #")
			case sq.Side == Red:
				sb.WriteString(" " + sq.Rank.letter())
			default:
				sb.WriteString(" " + strings.ToLower(sq.Rank.letter()))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
