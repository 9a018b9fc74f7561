package mcts

import (
	"sort"

	"github.com/chewxy/math32"
	"gorgonia.org/vecf32"
)

// pair is a tuple of score and action index
type pair struct {
	Move  int32
	Score float32
}

// byScore is a sortable list of pairs It sorts the list with best score fist
type byScore []pair

func (l byScore) Len() int { return len(l) }
func (l byScore) Less(i, j int) bool {
	if l[i].Score == l[j].Score {
		return l[i].Move < l[j].Move
	}
	return l[i].Score > l[j].Score
}
func (l byScore) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// softmax returns a new slice; the input is left untouched.
func softmax(logits []float32) []float32 {
	retVal := make([]float32, len(logits))
	maxV := math32.Inf(-1)
	for _, v := range logits {
		if v > maxV {
			maxV = v
		}
	}
	var sum float32
	for i, v := range logits {
		e := math32.Exp(v - maxV)
		retVal[i] = e
		sum += e
	}
	if sum > 0 {
		vecf32.Scale(retVal, 1/sum)
	}
	return retVal
}

// normalize rescales policy to sum to 1. If nothing legal kept any probability mass the
// policy falls back to uniform over mask.
func normalize(policy, mask []float32) {
	if sum := vecf32.Sum(policy); sum > math32.SmallestNonzeroFloat32 {
		vecf32.Scale(policy, 1/sum)
		return
	}
	copy(policy, mask)
	vecf32.Scale(policy, 1/vecf32.Sum(mask))
}

// Visit is the search statistic of one root child.
type Visit struct {
	Action int
	Visits uint32
	Prior  float32
	Q      float32
}

// TopChildren returns up to k root children, most visited first.
func (t *MCTS) TopChildren(k int) []Visit {
	if !t.root.isValid() {
		return nil
	}
	children := t.Children(t.root)
	pairs := make([]pair, 0, len(children))
	for _, kid := range children {
		child := t.nodeFromNaughty(kid)
		pairs = append(pairs, pair{Move: child.move, Score: float32(child.visits)})
	}
	sort.Sort(byScore(pairs))
	if k > len(pairs) || k < 0 {
		k = len(pairs)
	}
	retVal := make([]Visit, 0, k)
	for _, p := range pairs[:k] {
		child := t.nodeFromNaughty(t.findChild(t.root, p.Move))
		retVal = append(retVal, Visit{
			Action: int(child.move),
			Visits: child.visits,
			Prior:  child.psa,
			Q:      child.QSA(),
		})
	}
	return retVal
}
