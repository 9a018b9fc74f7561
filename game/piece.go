package game

// Rank is the identity of a piece. Lower values are generally stronger, with the
// Soldier/General exception and the Cannon capturing by geometry instead of rank.
type Rank byte

const (
	NoRank Rank = iota
	General
	Advisor
	Elephant
	Chariot
	Horse
	Cannon
	Soldier
)

// NumRanks is the number of distinct piece ranks.
const NumRanks = 7

func (r Rank) String() string {
	switch r {
	case General:
		return "General"
	case Advisor:
		return "Advisor"
	case Elephant:
		return "Elephant"
	case Chariot:
		return "Chariot"
	case Horse:
		return "Horse"
	case Cannon:
		return "Cannon"
	case Soldier:
		return "Soldier"
	}
	return "None"
}

// letter is the one-character board diagram symbol. Chariot uses R to stay distinct from Cannon.
func (r Rank) letter() string {
	const letters = ".GAERHCS"
	if int(r) >= len(letters) {
		return "?"
	}
	return letters[r : r+1]
}

// CanDefeat reports whether a revealed piece of rank r may capture an adjacent revealed
// enemy of rank enemy. Cannons never capture by adjacency; see cannonTargets.
func (r Rank) CanDefeat(enemy Rank) bool {
	if enemy == NoRank {
		return false
	}
	switch r {
	case General:
		return enemy < Soldier
	case Advisor, Elephant, Chariot, Horse:
		return enemy >= r
	case Soldier:
		return enemy == Soldier || enemy == General
	case Cannon:
		return false
	}
	return false
}

// PieceCounts is how many pieces of each rank a side starts with.
var PieceCounts = [...]struct {
	Rank  Rank
	Count int
}{
	{General, 1},
	{Advisor, 2},
	{Elephant, 2},
	{Chariot, 2},
	{Horse, 2},
	{Cannon, 2},
	{Soldier, 5},
}

// PiecesPerSide is the sum of PieceCounts.
const PiecesPerSide = 16

// Side is the fixed colour of a piece, and the colour a player is assigned on the first reveal.
type Side byte

const (
	NoSide Side = iota
	Red
	Black
)

// Opposite returns the other side. NoSide stays NoSide.
func (s Side) Opposite() Side {
	switch s {
	case Red:
		return Black
	case Black:
		return Red
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case Red:
		return "Red"
	case Black:
		return "Black"
	}
	return "NoSide"
}

// Piece is a single physical piece. It is created covered and revealed at most once.
type Piece struct {
	Key     int
	Rank    Rank
	Side    Side
	covered bool
}

// NewPiece returns a face-down piece.
func NewPiece(key int, rank Rank, side Side) *Piece {
	return &Piece{Key: key, Rank: rank, Side: side, covered: true}
}

// Covered reports whether the piece is still face-down.
func (p *Piece) Covered() bool { return p.covered }

// Reveal turns the piece face-up. It is a no-op on a revealed piece.
func (p *Piece) Reveal() { p.covered = false }

func (p *Piece) String() string {
	if p.covered {
		return "covered"
	}
	return p.Side.String() + " " + p.Rank.String()
}

// Square is the value view of a cell: what occupies it and whether it is face-down.
// The zero Square is an empty cell.
type Square struct {
	Rank    Rank
	Side    Side
	Covered bool
}

// Empty reports whether no piece occupies the square.
func (s Square) Empty() bool { return s.Rank == NoRank }

// Revealed reports whether a face-up piece occupies the square.
func (s Square) Revealed() bool { return !s.Empty() && !s.Covered }
