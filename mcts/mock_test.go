package mcts

import (
	"github.com/banqizero/game"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

var errMockFailure = errors.New("mock predictor failure")

// mockInferencer returns flat logits and a fixed value, and counts its calls.
type mockInferencer struct {
	value  float32
	bias   map[int]float32 // extra logit per action index
	size   int             // policy length, game.ActionSpace when zero
	fail   bool
	called int
}

func (m *mockInferencer) Infer(input *tensor.Dense) ([]float32, float32, error) {
	m.called++
	if m.fail {
		return nil, 0, errMockFailure
	}
	size := m.size
	if size == 0 {
		size = game.ActionSpace
	}
	policy := make([]float32, size)
	for idx, b := range m.bias {
		policy[idx] = b
	}
	return policy, m.value, nil
}
