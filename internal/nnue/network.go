package nnue

import "github.com/kz04px/autaxxnnue/internal/board"

// Network holds the five affine stages that make up the evaluator:
// two feature transformers (w, b — one per perspective) and the three
// stacked affines (fc0, fc1, fc2) applied to their concatenation.
type Network struct {
	WWeights [HalfKASize][BaseDim]float32
	WBias    [BaseDim]float32
	BWeights [HalfKASize][BaseDim]float32
	BBias    [BaseDim]float32

	FC0Weights [ConcatDim][FC0Out]float32
	FC0Bias    [FC0Out]float32
	FC1Weights [FC0Out][FC1Out]float32
	FC1Bias    [FC1Out]float32
	FC2Weights [FC2In]float32
	FC2Bias    float32
}

// NewNetwork returns a zero-valued network; callers load real weights
// with LoadWeights before using it for evaluation.
func NewNetwork() *Network {
	return &Network{}
}

// Forward runs the five-stage pass described in the evaluator design:
// pov-first concatenation, ReLU, fc0+ReLU, residual concat with
// fc1+ReLU, fc2 to a scalar, scaled to centipawns.
func (n *Network) Forward(acc *Accumulator, pov board.Color) int {
	var x0 [ConcatDim]float32
	if pov == board.White {
		copy(x0[:BaseDim], acc.White[:])
		copy(x0[BaseDim:], acc.Black[:])
	} else {
		copy(x0[:BaseDim], acc.Black[:])
		copy(x0[BaseDim:], acc.White[:])
	}
	for i := range x0 {
		x0[i] = ReLU(x0[i])
	}

	var x1 [FC0Out]float32
	for j := 0; j < FC0Out; j++ {
		sum := n.FC0Bias[j]
		for i := 0; i < ConcatDim; i++ {
			sum += x0[i] * n.FC0Weights[i][j]
		}
		x1[j] = ReLU(sum)
	}

	var x2 [FC2In]float32
	copy(x2[:FC0Out], x1[:])
	for j := 0; j < FC1Out; j++ {
		sum := n.FC1Bias[j]
		for i := 0; i < FC0Out; i++ {
			sum += x1[i] * n.FC1Weights[i][j]
		}
		x2[FC0Out+j] = ReLU(sum)
	}

	score := n.FC2Bias
	for i := 0; i < FC2In; i++ {
		score += x2[i] * n.FC2Weights[i]
	}

	return int(OutputScale * score)
}
