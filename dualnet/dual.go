package dual

import (
	"bytes"
	"encoding/gob"
	"os"
	"sync"

	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Dual is a two-headed network: a shared fully connected trunk feeding a policy head of
// ActionSpace logits and a tanh value head. Only the forward pass is built.
type Dual struct {
	Config

	sync.Mutex
	g     *G.ExprGraph
	input *G.Node

	policyOutput *G.Node
	valueOutput  *G.Node

	// w1, b1, wp, bp, wv, bv
	learnables G.Nodes
	vm         G.VM
}

var learnableNames = [...]string{"w1", "b1", "wp", "bp", "wv", "bv"}

// New creates a new Dual. Call Init or Load before Infer.
func New(conf Config) *Dual {
	return &Dual{Config: conf}
}

func (d *Dual) shapes() [][]int {
	in := d.inputSize()
	return [][]int{
		{in, d.FC}, {1, d.FC},
		{d.FC, d.ActionSpace}, {1, d.ActionSpace},
		{d.FC, 1}, {1, 1},
	}
}

// Init builds the graph with freshly initialized weights.
func (d *Dual) Init() error {
	if err := d.Validate(); err != nil {
		return err
	}
	return d.build(nil)
}

// build creates the expression graph. With nil weights the matrices are Glorot
// initialized and the biases zeroed.
func (d *Dual) build(weights []*tensor.Dense) error {
	shapes := d.shapes()
	if weights != nil && len(weights) != len(shapes) {
		return errors.Errorf("expected %d weight tensors, got %d", len(shapes), len(weights))
	}

	g := G.NewGraph()
	d.input = G.NewMatrix(g, tensor.Float32, G.WithShape(1, d.inputSize()), G.WithName("input"), G.WithInit(G.Zeroes()))

	d.learnables = d.learnables[:0]
	for i, shp := range shapes {
		opt := G.WithInit(G.Zeroes())
		if shp[0] > 1 {
			opt = G.WithInit(G.GlorotU(1))
		}
		if weights != nil {
			if !weights[i].Shape().Eq(tensor.Shape(shp)) {
				return errors.Errorf("%s: expected shape %v, got %v", learnableNames[i], shp, weights[i].Shape())
			}
			opt = G.WithValue(weights[i])
		}
		n := G.NewMatrix(g, tensor.Float32, G.WithShape(shp...), G.WithName(learnableNames[i]), opt)
		d.learnables = append(d.learnables, n)
	}
	w1, b1, wp, bp, wv, bv := d.learnables[0], d.learnables[1], d.learnables[2], d.learnables[3], d.learnables[4], d.learnables[5]

	var err error
	var hidden, z *G.Node
	if z, err = G.Mul(d.input, w1); err != nil {
		return errors.Wrap(err, "trunk")
	}
	if z, err = G.Add(z, b1); err != nil {
		return errors.Wrap(err, "trunk bias")
	}
	if hidden, err = G.Rectify(z); err != nil {
		return errors.Wrap(err, "trunk activation")
	}

	if z, err = G.Mul(hidden, wp); err != nil {
		return errors.Wrap(err, "policy head")
	}
	if d.policyOutput, err = G.Add(z, bp); err != nil {
		return errors.Wrap(err, "policy bias")
	}

	if z, err = G.Mul(hidden, wv); err != nil {
		return errors.Wrap(err, "value head")
	}
	if z, err = G.Add(z, bv); err != nil {
		return errors.Wrap(err, "value bias")
	}
	if d.valueOutput, err = G.Tanh(z); err != nil {
		return errors.Wrap(err, "value activation")
	}

	if d.vm != nil {
		d.vm.Close()
	}
	d.g = g
	d.vm = G.NewTapeMachine(g)
	return nil
}

// Infer implements mcts.Inferencer. The input is flattened, so any shape holding
// Features*Height*Width values is accepted.
func (d *Dual) Infer(input *tensor.Dense) (policy []float32, value float32, err error) {
	data, ok := input.Data().([]float32)
	if !ok || len(data) != d.inputSize() {
		return nil, 0, errors.Errorf("expected %d float32 inputs, got %v", d.inputSize(), input.Shape())
	}

	d.Lock()
	defer d.Unlock()
	if d.vm == nil {
		return nil, 0, errors.New("network is not initialized")
	}

	backing := make([]float32, len(data))
	copy(backing, data)
	x := tensor.New(tensor.WithShape(1, len(backing)), tensor.WithBacking(backing))
	if err = G.Let(d.input, x); err != nil {
		return nil, 0, errors.WithStack(err)
	}
	defer d.vm.Reset()
	if err = d.vm.RunAll(); err != nil {
		return nil, 0, errors.WithStack(err)
	}

	logits := d.policyOutput.Value().Data().([]float32)
	policy = make([]float32, len(logits))
	copy(policy, logits)
	value = d.valueOutput.Value().Data().([]float32)[0]
	return policy, value, nil
}

// Close releases the tape machine.
func (d *Dual) Close() error {
	d.Lock()
	defer d.Unlock()
	if d.vm == nil {
		return nil
	}
	err := d.vm.Close()
	d.vm = nil
	return errors.WithStack(err)
}

type dualGob struct {
	Config  Config
	Weights []*tensor.Dense
}

// GobEncode implements gob.GobEncoder.
func (d *Dual) GobEncode() ([]byte, error) {
	if len(d.learnables) != len(learnableNames) {
		return nil, errors.New("network is not initialized")
	}
	payload := dualGob{Config: d.Config}
	for _, n := range d.learnables {
		w, ok := n.Value().(*tensor.Dense)
		if !ok {
			return nil, errors.Errorf("%s has no dense value", n.Name())
		}
		payload.Weights = append(payload.Weights, w)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (d *Dual) GobDecode(p []byte) error {
	var payload dualGob
	if err := gob.NewDecoder(bytes.NewReader(p)).Decode(&payload); err != nil {
		return errors.WithStack(err)
	}
	d.Config = payload.Config
	if err := d.Validate(); err != nil {
		return err
	}
	return d.build(payload.Weights)
}

// Save writes the weights of d into filename.
func Save(d *Dual, filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	if err = gob.NewEncoder(f).Encode(d); err != nil {
		return errors.Wrapf(err, "saving %s", filename)
	}
	return errors.WithStack(f.Close())
}

// Load reads a network saved with Save.
func Load(filename string) (*Dual, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	d := new(Dual)
	if err = gob.NewDecoder(f).Decode(d); err != nil {
		return nil, errors.Wrapf(err, "loading %s", filename)
	}
	return d, nil
}
