// Package onnxnet runs an exported Banqi network through ONNX Runtime.
package onnxnet

import (
	"os"
	"sync"

	"github.com/banqizero/game"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	ort "github.com/yalue/onnxruntime_go"
	"gorgonia.org/tensor"
)

// LibraryPathEnv names the environment variable that points at libonnxruntime.
const LibraryPathEnv = "ORT_SHARED_LIBRARY_PATH"

const (
	inputName  = "input"
	policyName = "policy"
	valueName  = "value"
)

var (
	ortInitOnce sync.Once
	ortInitErr  error
)

// Client evaluates one position at a time. The model must take an input named "input" of
// shape [1, 16, 4, 8] and produce "policy" [1, 2080] logits and "value" [1, 1].
type Client struct {
	mu      sync.Mutex
	session *ort.DynamicAdvancedSession
	path    string
}

func initEnvironment() error {
	ortInitOnce.Do(func() {
		if p := os.Getenv(LibraryPathEnv); p != "" {
			ort.SetSharedLibraryPath(p)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// New loads the model at modelPath.
func New(modelPath string) (*Client, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := initEnvironment(); err != nil {
		return nil, errors.Wrap(err, "failed to init onnxruntime")
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer options.Destroy()
	if err = options.SetIntraOpNumThreads(1); err != nil {
		return nil, errors.WithStack(err)
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{inputName}, []string{policyName, valueName}, options)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create session for %s", modelPath)
	}
	log.Info().Str("model", modelPath).Msg("onnx session ready")
	return &Client{session: session, path: modelPath}, nil
}

// Infer implements mcts.Inferencer.
func (c *Client) Infer(input *tensor.Dense) ([]float32, float32, error) {
	data, ok := input.Data().([]float32)
	if !ok || len(data) != game.InputSize {
		return nil, 0, errors.Errorf("expected %d float32 inputs, got %v", game.InputSize, input.Shape())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, 0, errors.New("onnx client is closed")
	}

	in, err := ort.NewTensor(ort.NewShape(1, game.Features, game.RowNum, game.ColNum), data)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	defer in.Destroy()

	policy, err := ort.NewEmptyTensor[float32](ort.NewShape(1, game.ActionSpace))
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	defer policy.Destroy()

	value, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	defer value.Destroy()

	if err = c.session.Run([]ort.Value{in}, []ort.Value{policy, value}); err != nil {
		return nil, 0, errors.Wrapf(err, "running %s", c.path)
	}

	retVal := make([]float32, game.ActionSpace)
	copy(retVal, policy.GetData())
	return retVal, value.GetData()[0], nil
}

// Close releases the session. It is safe to call twice.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	err := c.session.Destroy()
	c.session = nil
	return errors.WithStack(err)
}
