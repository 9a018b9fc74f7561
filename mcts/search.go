package mcts

import (
	"github.com/banqizero/game"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distmv"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"
)

/*
Here lies the search loop, while node.go and tree.go handle the data structure stuff.

One search is strictly sequential: SELECT down to a leaf, EVALUATE it (terminal check or
one predictor call), EXPAND it with every action of nonzero prior, BACKPROPAGATE the value
with alternating signs. Every node is fully expanded the first time it is evaluated.
*/

// Inferencer is essentially the neural network. Given a (Features, RowNum, ColNum) input
// it returns game.ActionSpace policy logits and a value in [-1, 1] for the player to move.
type Inferencer interface {
	Infer(input *tensor.Dense) (policy []float32, value float32, err error)
}

var (
	// ErrNoLegalActions means the search reached a non-terminal position without any
	// legal action, which the game rules exclude. The search panics with it.
	ErrNoLegalActions = errors.New("no legal actions in a non-terminal position")

	// ErrMalformedOutput is returned when the predictor output has the wrong shape.
	ErrMalformedOutput = errors.New("malformed predictor output")
)

// Search runs Budget simulations from state and returns the visit distribution of the
// root's children over the whole action space.
func (t *MCTS) Search(state game.Position) ([]float32, error) {
	t.Reset()
	t.root = t.alloc(state, -1, 0, nilNode)
	t.nodeFromNaughty(t.root).visits = 1

	policy, _, err := t.infer(state)
	if err != nil {
		return nil, err
	}
	t.addNoise(policy)
	if err = t.maskAndExpand(t.root, policy); err != nil {
		return nil, err
	}

	for i := 0; i < t.Budget; i++ {
		if err = t.simulate(); err != nil {
			return nil, errors.WithMessagef(err, "simulation %d", i)
		}
	}

	retVal := t.actionProbs()
	t.logger.Debug().
		Int("simulations", t.Budget).
		Int("nodes", len(t.nodes)).
		Int("children", len(t.Children(t.root))).
		Int("descendants", t.countChildren(t.root)).
		Int("best", vecf32.Argmax(retVal)).
		Msg("search complete")
	return retVal, nil
}

func (t *MCTS) simulate() error {
	// SELECT
	node := t.root
	for t.hasChildren(node) {
		node = t.selectChild(node)
	}

	// EVALUATE and EXPAND
	state := t.nodeFromNaughty(node).state
	value, terminal := state.TerminalValue()
	value = -value
	if !terminal {
		policy, v, err := t.infer(state)
		if err != nil {
			return err
		}
		value = v
		if err = t.maskAndExpand(node, policy); err != nil {
			return err
		}
	}

	// BACKPROPAGATE
	t.backpropagate(node, value)
	return nil
}

// infer calls the predictor and turns its logits into a probability distribution.
func (t *MCTS) infer(state game.Position) (policy []float32, value float32, err error) {
	logits, value, err := t.nn.Infer(state.Encode())
	if err != nil {
		return nil, 0, errors.WithMessage(err, "predictor failed")
	}
	if len(logits) != game.ActionSpace {
		return nil, 0, errors.Wrapf(ErrMalformedOutput, "policy has %d entries, want %d", len(logits), game.ActionSpace)
	}
	return softmax(logits), value, nil
}

// addNoise blends Dirichlet noise into the root policy.
func (t *MCTS) addNoise(policy []float32) {
	eps := t.DirichletEpsilon
	if eps <= 0 {
		return
	}
	alpha := make([]float64, len(policy))
	for i := range alpha {
		alpha[i] = t.DirichletAlpha
	}
	sample := distmv.NewDirichlet(alpha, t.rand).Rand(nil)
	noise := make([]float32, len(sample))
	for i, x := range sample {
		noise[i] = float32(x)
	}
	vecf32.Scale(policy, 1-eps)
	vecf32.Scale(noise, eps)
	vecf32.Add(policy, noise)
}

// maskAndExpand zeroes the illegal actions of policy, renormalizes it and expands of with it.
func (t *MCTS) maskAndExpand(of naughty, policy []float32) error {
	state := t.nodeFromNaughty(of).state
	mask := state.LegalMask()
	if vecf32.Sum(mask) == 0 {
		panic(errors.WithStack(ErrNoLegalActions))
	}
	vecf32.Mul(policy, mask)
	normalize(policy, mask)
	return t.expand(of, policy)
}

// expand adds one child per action with a nonzero prior. The child state is the parent
// state after the action, seen by the next player.
func (t *MCTS) expand(of naughty, policy []float32) error {
	state := t.nodeFromNaughty(of).state // copied, alloc may move the arena
	for a, prior := range policy {
		if prior <= 0 {
			continue
		}
		next, err := state.Apply(a)
		if err != nil {
			return errors.WithMessagef(err, "expanding action %d", a)
		}
		t.alloc(next.FlipPerspective(), int32(a), prior, of)
	}
	return nil
}

// backpropagate walks from the leaf to the root, negating value at every step.
func (t *MCTS) backpropagate(from naughty, value float32) {
	for n := from; n.isValid(); n = t.nodeFromNaughty(n).parent {
		t.nodeFromNaughty(n).update(value)
		value = -value
	}
}

// actionProbs normalizes the visit counts of the root's children. With no visits at all
// (a zero budget) the priors are returned instead.
func (t *MCTS) actionProbs() []float32 {
	retVal := make([]float32, game.ActionSpace)
	children := t.Children(t.root)
	for _, kid := range children {
		child := t.nodeFromNaughty(kid)
		retVal[child.move] = float32(child.visits)
	}
	if sum := vecf32.Sum(retVal); sum > 0 {
		vecf32.Scale(retVal, 1/sum)
		return retVal
	}
	for _, kid := range children {
		child := t.nodeFromNaughty(kid)
		retVal[child.move] = child.psa
	}
	return retVal
}
