package game

import "gorgonia.org/tensor"

// Input planes of the predictor, all from the point of view of the player to move.
const (
	EmptyPlane   = 0
	minePlane    = 1 // minePlane + rank - 1 for ranks General..Soldier
	theirsPlane  = minePlane + NumRanks
	CoveredPlane = theirsPlane + NumRanks

	// Features is the number of input planes.
	Features = CoveredPlane + 1
	// InputSize is the length of a flattened encoded position.
	InputSize = Features * NumCells
)

// MinePlane returns the plane holding the mover's pieces of rank r.
func MinePlane(r Rank) int { return minePlane + int(r) - 1 }

// TheirsPlane returns the plane holding the opponent's pieces of rank r.
func TheirsPlane(r Rank) int { return theirsPlane + int(r) - 1 }

// InputEncoder encodes a position into Features planes of RowNum x ColNum, flattened plane-major.
func InputEncoder(p Position) []float32 {
	retVal := make([]float32, InputSize)
	for cell, f := range p.Features() {
		var plane int
		switch {
		case f == 0:
			plane = EmptyPlane
		case f == CoveredFeature:
			plane = CoveredPlane
		case f > 0:
			plane = MinePlane(Rank(f))
		default:
			plane = TheirsPlane(Rank(-f))
		}
		retVal[plane*NumCells+cell] = 1
	}
	return retVal
}

// Encode returns the predictor input for p as a (Features, RowNum, ColNum) tensor.
func (p Position) Encode() *tensor.Dense {
	return tensor.New(
		tensor.WithShape(Features, RowNum, ColNum),
		tensor.WithBacking(InputEncoder(p)),
	)
}
