// Package model implements the trainable sequence classifier: a stacked
// LSTM over single-feature return windows, classifying the final hidden
// state into {underperform, outperform} through a linear head.
//
// No Go deep-learning framework is involved; the cell, backpropagation
// through time and the RMSProp optimizer are written out on plain float64
// slices. Training is synchronous and blocking from the caller's side.
package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/wonny/signalcheck/internal/study"
)

// Mode is the classifier's parameter-mutation state. Inference mode
// guarantees no parameter updates and deterministic output for fixed
// parameters and input.
type Mode int

const (
	ModeTraining Mode = iota
	ModeInference
)

func (m Mode) String() string {
	if m == ModeTraining {
		return "training"
	}
	return "inference"
}

// Config holds classifier hyperparameters.
type Config struct {
	Window       int     // 입력 시퀀스 길이
	HiddenSize   int     // LSTM hidden 폭
	NumLayers    int     // 적층 LSTM 레이어 수
	Dropout      float64 // 레이어 사이 dropout 확률 (학습 시에만)
	LearningRate float64
	Epochs       int
	BatchSize    int
	Seed         int64 // shuffle과 초기화 재현용
}

// DefaultConfig returns the standard classifier setup.
func DefaultConfig() Config {
	return Config{
		Window:       240,
		HiddenSize:   25,
		NumLayers:    2,
		Dropout:      0.1,
		LearningRate: 1e-3,
		Epochs:       10,
		BatchSize:    512,
		Seed:         42,
	}
}

const (
	rmsPropRho = 0.99
	rmsPropEps = 1e-8
	numClasses = 2
)

// Classifier is a binary sequence classifier over fixed-length
// single-feature windows.
type Classifier struct {
	cfg    Config
	layers []*lstmLayer
	head   *denseLayer
	mode   Mode
	rng    *rand.Rand
}

// New creates a classifier with freshly initialized parameters, in
// inference mode.
func New(cfg Config) (*Classifier, error) {
	if cfg.Window <= 0 || cfg.HiddenSize <= 0 || cfg.NumLayers <= 0 {
		return nil, fmt.Errorf("model: invalid config window=%d hidden=%d layers=%d",
			cfg.Window, cfg.HiddenSize, cfg.NumLayers)
	}
	if cfg.Dropout < 0 || cfg.Dropout >= 1 {
		return nil, fmt.Errorf("model: invalid dropout %v", cfg.Dropout)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	layers := make([]*lstmLayer, cfg.NumLayers)
	in := 1 // single feature per timestep
	for i := range layers {
		layers[i] = newLSTMLayer(in, cfg.HiddenSize, rng)
		in = cfg.HiddenSize
	}

	return &Classifier{
		cfg:    cfg,
		layers: layers,
		head:   newDenseLayer(cfg.HiddenSize, numClasses, rng),
		mode:   ModeInference,
		rng:    rng,
	}, nil
}

// Mode returns the classifier's current mode.
func (c *Classifier) Mode() Mode { return c.mode }

// Train fits the classifier on labeled sequences for the configured number
// of epochs over shuffled mini-batches. Numerical divergence (NaN loss)
// aborts with an error; the caller isolates the failure to its study
// period.
func (c *Classifier) Train(seqs []study.Sequence) error {
	if len(seqs) == 0 {
		return errors.New("model: no training sequences")
	}
	if err := c.checkWindows(seqs); err != nil {
		return err
	}

	c.mode = ModeTraining
	defer func() { c.mode = ModeInference }()

	for epoch := 0; epoch < c.cfg.Epochs; epoch++ {
		order := c.rng.Perm(len(seqs))
		for start := 0; start < len(order); start += c.cfg.BatchSize {
			end := start + c.cfg.BatchSize
			if end > len(order) {
				end = len(order)
			}
			loss := c.trainBatch(seqs, order[start:end])
			if math.IsNaN(loss) || math.IsInf(loss, 0) {
				return fmt.Errorf("model: training diverged at epoch %d (loss=%v)", epoch, loss)
			}
		}
	}
	return nil
}

// trainBatch accumulates gradients over one mini-batch and applies a
// single RMSProp step. Returns the mean batch loss.
func (c *Classifier) trainBatch(seqs []study.Sequence, batch []int) float64 {
	var totalLoss float64
	for _, idx := range batch {
		totalLoss += c.trainSample(seqs[idx])
	}

	scale := 1 / float64(len(batch))
	for _, l := range c.layers {
		l.wx.step(c.cfg.LearningRate, rmsPropRho, rmsPropEps, scale)
		l.wh.step(c.cfg.LearningRate, rmsPropRho, rmsPropEps, scale)
		l.b.step(c.cfg.LearningRate, rmsPropRho, rmsPropEps, scale)
	}
	c.head.w.step(c.cfg.LearningRate, rmsPropRho, rmsPropEps, scale)
	c.head.b.step(c.cfg.LearningRate, rmsPropRho, rmsPropEps, scale)

	return totalLoss * scale
}

// trainSample runs forward and backward for one sequence and accumulates
// gradients. Returns the cross-entropy loss.
func (c *Classifier) trainSample(seq study.Sequence) float64 {
	T := len(seq.Window)

	inputs := make([][]float64, T)
	for t, v := range seq.Window {
		inputs[t] = []float64{v}
	}

	caches := make([]*layerCache, len(c.layers))
	masks := make([][][]float64, len(c.layers)) // dropout masks applied to layer outputs
	for li, layer := range c.layers {
		caches[li] = layer.forward(inputs)
		outputs := caches[li].h
		if li < len(c.layers)-1 && c.cfg.Dropout > 0 {
			masks[li] = c.dropoutMasks(T)
			outputs = applyMasks(outputs, masks[li])
		}
		inputs = outputs
	}

	last := inputs[T-1]
	logits := c.head.forward(last)
	probs := softmax(logits)

	loss := -math.Log(math.Max(probs[seq.Label], 1e-12))

	// softmax cross-entropy gradient
	dlogits := make([]float64, numClasses)
	copy(dlogits, probs)
	dlogits[seq.Label] -= 1

	dLast := c.head.backward(last, dlogits)

	// loss touches only the final timestep of the top layer
	dh := make([][]float64, T)
	dh[T-1] = dLast
	for li := len(c.layers) - 1; li >= 0; li-- {
		dx := c.layers[li].backward(caches[li], dh)
		if li == 0 {
			break
		}
		if masks[li-1] != nil {
			dx = applyMasks(dx, masks[li-1])
		}
		dh = dx
	}
	return loss
}

// Predict runs batched inference over sequences and returns one binary
// label per input, in input order. The classifier is placed in inference
// mode; parameters are never mutated and dropout is disabled.
func (c *Classifier) Predict(seqs []study.Sequence) ([]int, error) {
	if err := c.checkWindows(seqs); err != nil {
		return nil, err
	}
	c.mode = ModeInference

	preds := make([]int, len(seqs))
	for si, seq := range seqs {
		inputs := make([][]float64, len(seq.Window))
		for t, v := range seq.Window {
			inputs[t] = []float64{v}
		}
		for _, layer := range c.layers {
			inputs = layer.forward(inputs).h
		}
		logits := c.head.forward(inputs[len(inputs)-1])
		preds[si] = argmax(logits)
	}
	return preds, nil
}

func (c *Classifier) checkWindows(seqs []study.Sequence) error {
	for i, s := range seqs {
		if len(s.Window) != c.cfg.Window {
			return fmt.Errorf("model: sequence %d has window %d, want %d", i, len(s.Window), c.cfg.Window)
		}
	}
	return nil
}

// dropoutMasks builds inverted-dropout masks for every timestep of a
// layer's output.
func (c *Classifier) dropoutMasks(T int) [][]float64 {
	keep := 1 - c.cfg.Dropout
	masks := make([][]float64, T)
	for t := range masks {
		m := make([]float64, c.cfg.HiddenSize)
		for u := range m {
			if c.rng.Float64() < keep {
				m[u] = 1 / keep
			}
		}
		masks[t] = m
	}
	return masks
}

func applyMasks(values, masks [][]float64) [][]float64 {
	out := make([][]float64, len(values))
	for t := range values {
		if values[t] == nil {
			continue
		}
		row := make([]float64, len(values[t]))
		for u, v := range values[t] {
			row[u] = v * masks[t][u]
		}
		out[t] = row
	}
	return out
}
