package mcts

import (
	"fmt"

	"github.com/banqizero/game"
	"github.com/chewxy/math32"
)

// Node is a search tree node. Nodes live in the MCTS arena and refer to each other by index.
type Node struct {
	state    game.Position // position reached by move, already flipped to the next player
	move     int32         // action index that led here, -1 for the root
	parent   naughty
	visits   uint32  // N(s, a)
	valueSum float32 // accumulated value, seen by the player to move in state
	psa      float32 // P(s, a), prior from the parent's policy

	id naughty
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v, Move: %v, Q(s,a) %v, P(s,a) %v, Visits %v}",
		n.id, n.move, n.QSA(), n.psa, n.visits)
}

// Move gets the action index associated with the node
func (n *Node) Move() int32 { return n.move }

// PSA returns P(s, a)
func (n *Node) PSA() float32 { return n.psa }

func (n *Node) Visits() uint32 { return n.visits }

func (n *Node) ValueSum() float32 { return n.valueSum }

func (n *Node) State() game.Position { return n.state }

func (n *Node) ID() int { return int(n.id) }

// QSA is the exploitation term as seen from the parent: the node's mean value in [-1, 1]
// is mapped to [0, 1] and inverted, since the value is accumulated for the player who
// moves at this node, which is the parent's opponent. Unvisited nodes score 0.
func (n *Node) QSA() float32 {
	if n.visits == 0 {
		return 0
	}
	mean := n.valueSum / float32(n.visits)
	return 1 - (mean+1)/2
}

// update adds one visit worth value.
func (n *Node) update(value float32) {
	n.visits++
	n.valueSum += value
}

// ucb scores child from the point of view of its parent:
//
//	U(s, a) = Q(s, a) + PUCT * sqrt(N(s)) / (1 + N(s, a)) * P(s, a)
func (t *MCTS) ucb(parent, child *Node) float32 {
	explore := math32.Sqrt(float32(parent.visits)) / (float32(child.visits) + 1)
	return child.QSA() + t.PUCT*explore*child.psa
}

// selectChild returns the child of of with the highest upper confidence bound.
// Ties go to the first child, i.e. the lowest action index.
func (t *MCTS) selectChild(of naughty) naughty {
	parent := t.nodeFromNaughty(of)
	best := nilNode
	bestValue := math32.Inf(-1)
	for _, kid := range t.Children(of) {
		child := t.nodeFromNaughty(kid)
		if u := t.ucb(parent, child); u > bestValue {
			bestValue = u
			best = kid
		}
	}
	if best == nilNode {
		panic("Cannot return nil")
	}
	return best
}

// countChildren counts the number of children node a node has and number of grandkids recursively
func (t *MCTS) countChildren(of naughty) (retVal int) {
	for _, kid := range t.Children(of) {
		retVal += t.countChildren(kid)
		retVal++ // plus the child itself
	}
	return
}

// findChild finds the first child that has the wanted move
func (t *MCTS) findChild(of naughty, move int32) naughty {
	for _, kid := range t.Children(of) {
		if t.nodeFromNaughty(kid).move == move {
			return kid
		}
	}
	return nilNode
}
