package model

import (
	"math"
	"math/rand"
)

// param is a flat weight tensor with its accumulated gradient and RMSProp
// second-moment cache.
type param struct {
	w     []float64
	g     []float64
	cache []float64
}

func newParam(size int, bound float64, rng *rand.Rand) *param {
	p := &param{
		w:     make([]float64, size),
		g:     make([]float64, size),
		cache: make([]float64, size),
	}
	for i := range p.w {
		p.w[i] = (rng.Float64()*2 - 1) * bound
	}
	return p
}

// step applies one RMSProp update from the accumulated gradient, averaged
// over scale samples, then clears the gradient.
func (p *param) step(lr, rho, eps, scale float64) {
	for i := range p.w {
		g := p.g[i] * scale
		p.cache[i] = rho*p.cache[i] + (1-rho)*g*g
		p.w[i] -= lr * g / (math.Sqrt(p.cache[i]) + eps)
		p.g[i] = 0
	}
}

// lstmLayer is a single LSTM layer. Gate order within the 4H-wide
// preactivation block is input, forget, cell, output.
type lstmLayer struct {
	inSize, hidden int
	wx             *param // [4H x inSize]
	wh             *param // [4H x hidden]
	b              *param // [4H]
}

func newLSTMLayer(inSize, hidden int, rng *rand.Rand) *lstmLayer {
	bound := 1 / math.Sqrt(float64(hidden))
	return &lstmLayer{
		inSize: inSize,
		hidden: hidden,
		wx:     newParam(4*hidden*inSize, bound, rng),
		wh:     newParam(4*hidden*hidden, bound, rng),
		b:      newParam(4*hidden, 0, rng),
	}
}

// layerCache stores the per-timestep activations one forward pass produced,
// for use by the matching backward pass.
type layerCache struct {
	inputs [][]float64 // T x inSize
	gi     [][]float64 // T x H, input gate after sigmoid
	gf     [][]float64 // T x H, forget gate after sigmoid
	gg     [][]float64 // T x H, cell candidate after tanh
	og     [][]float64 // T x H, output gate after sigmoid
	c      [][]float64 // T x H, cell state
	tc     [][]float64 // T x H, tanh(cell state)
	h      [][]float64 // T x H, hidden state
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// forward consumes a full sequence starting from zero hidden and cell
// state and returns the hidden state at every timestep.
func (l *lstmLayer) forward(inputs [][]float64) *layerCache {
	T := len(inputs)
	H := l.hidden
	cache := &layerCache{
		inputs: inputs,
		gi:     make([][]float64, T),
		gf:     make([][]float64, T),
		gg:     make([][]float64, T),
		og:     make([][]float64, T),
		c:      make([][]float64, T),
		tc:     make([][]float64, T),
		h:      make([][]float64, T),
	}

	hPrev := make([]float64, H)
	cPrev := make([]float64, H)

	pre := make([]float64, 4*H)
	for t := 0; t < T; t++ {
		x := inputs[t]
		for k := 0; k < 4*H; k++ {
			sum := l.b.w[k]
			for d := 0; d < l.inSize; d++ {
				sum += l.wx.w[k*l.inSize+d] * x[d]
			}
			for d := 0; d < H; d++ {
				sum += l.wh.w[k*H+d] * hPrev[d]
			}
			pre[k] = sum
		}

		gi := make([]float64, H)
		gf := make([]float64, H)
		gg := make([]float64, H)
		og := make([]float64, H)
		c := make([]float64, H)
		tc := make([]float64, H)
		h := make([]float64, H)
		for u := 0; u < H; u++ {
			gi[u] = sigmoid(pre[u])
			gf[u] = sigmoid(pre[H+u])
			gg[u] = math.Tanh(pre[2*H+u])
			og[u] = sigmoid(pre[3*H+u])
			c[u] = gf[u]*cPrev[u] + gi[u]*gg[u]
			tc[u] = math.Tanh(c[u])
			h[u] = og[u] * tc[u]
		}

		cache.gi[t], cache.gf[t], cache.gg[t], cache.og[t] = gi, gf, gg, og
		cache.c[t], cache.tc[t], cache.h[t] = c, tc, h
		hPrev, cPrev = h, c
	}
	return cache
}

// backward runs truncated-at-zero BPTT over the cached forward pass. dh
// holds, per timestep, the gradient flowing into that timestep's hidden
// output from above (upper layer or classification head). Weight gradients
// accumulate into the layer's params; the returned slice holds the
// gradients with respect to the layer inputs.
func (l *lstmLayer) backward(cache *layerCache, dh [][]float64) [][]float64 {
	T := len(cache.inputs)
	H := l.hidden

	dx := make([][]float64, T)
	dhNext := make([]float64, H)
	dcNext := make([]float64, H)
	gatePre := make([]float64, 4*H)

	for t := T - 1; t >= 0; t-- {
		var hPrev, cPrev []float64
		if t > 0 {
			hPrev = cache.h[t-1]
			cPrev = cache.c[t-1]
		} else {
			hPrev = make([]float64, H)
			cPrev = make([]float64, H)
		}

		for u := 0; u < H; u++ {
			dhu := dhNext[u]
			if dh[t] != nil {
				dhu += dh[t][u]
			}

			og := cache.og[t][u]
			tc := cache.tc[t][u]
			gi := cache.gi[t][u]
			gf := cache.gf[t][u]
			gg := cache.gg[t][u]

			dog := dhu * tc
			dc := dhu*og*(1-tc*tc) + dcNext[u]

			dgi := dc * gg
			dgf := dc * cPrev[u]
			dgg := dc * gi
			dcNext[u] = dc * gf

			gatePre[u] = dgi * gi * (1 - gi)
			gatePre[H+u] = dgf * gf * (1 - gf)
			gatePre[2*H+u] = dgg * (1 - gg*gg)
			gatePre[3*H+u] = dog * og * (1 - og)
		}

		x := cache.inputs[t]
		dxt := make([]float64, l.inSize)
		dhPrev := make([]float64, H)
		for k := 0; k < 4*H; k++ {
			gp := gatePre[k]
			if gp == 0 {
				continue
			}
			for d := 0; d < l.inSize; d++ {
				l.wx.g[k*l.inSize+d] += gp * x[d]
				dxt[d] += l.wx.w[k*l.inSize+d] * gp
			}
			for d := 0; d < H; d++ {
				l.wh.g[k*H+d] += gp * hPrev[d]
				dhPrev[d] += l.wh.w[k*H+d] * gp
			}
			l.b.g[k] += gp
		}

		dx[t] = dxt
		dhNext = dhPrev
	}
	return dx
}

// denseLayer is the final linear projection from the last hidden state to
// class logits.
type denseLayer struct {
	in, out int
	w       *param // [out x in]
	b       *param // [out]
}

func newDenseLayer(in, out int, rng *rand.Rand) *denseLayer {
	bound := 1 / math.Sqrt(float64(in))
	return &denseLayer{
		in:  in,
		out: out,
		w:   newParam(out*in, bound, rng),
		b:   newParam(out, 0, rng),
	}
}

func (l *denseLayer) forward(h []float64) []float64 {
	logits := make([]float64, l.out)
	for k := 0; k < l.out; k++ {
		sum := l.b.w[k]
		for d := 0; d < l.in; d++ {
			sum += l.w.w[k*l.in+d] * h[d]
		}
		logits[k] = sum
	}
	return logits
}

// backward accumulates weight gradients for dlogits and returns the
// gradient with respect to the input hidden state.
func (l *denseLayer) backward(h, dlogits []float64) []float64 {
	dh := make([]float64, l.in)
	for k := 0; k < l.out; k++ {
		dl := dlogits[k]
		for d := 0; d < l.in; d++ {
			l.w.g[k*l.in+d] += dl * h[d]
			dh[d] += l.w.w[k*l.in+d] * dl
		}
		l.b.g[k] += dl
	}
	return dh
}

// softmax returns the class probabilities for a logit vector, computed
// with the max subtracted for numerical stability.
func softmax(logits []float64) []float64 {
	maxL := logits[0]
	for _, v := range logits[1:] {
		if v > maxL {
			maxL = v
		}
	}
	probs := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		probs[i] = math.Exp(v - maxL)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func argmax(xs []float64) int {
	best := 0
	for i, v := range xs {
		if v > xs[best] {
			best = i
		}
	}
	return best
}
