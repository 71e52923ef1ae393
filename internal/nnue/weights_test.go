package nnue

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendFloats(buf *bytes.Buffer, vals ...float32) {
	for _, v := range vals {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
		buf.Write(b[:])
	}
}

func TestLoadWeightsNoHeaderExactCount(t *testing.T) {
	var buf bytes.Buffer

	fill := func(n int, v float32) {
		vals := make([]float32, n)
		for i := range vals {
			vals[i] = v
		}
		appendFloats(&buf, vals...)
	}

	fill(HalfKASize*BaseDim, 0.1) // w weights
	fill(BaseDim, 0.2)            // w bias
	fill(HalfKASize*BaseDim, 0.3) // b weights
	fill(BaseDim, 0.4)            // b bias
	fill(ConcatDim*FC0Out, 0.5)   // fc0 weights
	fill(FC0Out, 0.6)             // fc0 bias
	fill(FC0Out*FC1Out, 0.7)      // fc1 weights
	fill(FC1Out, 0.8)             // fc1 bias
	fill(FC2In, 0.9)              // fc2 weights
	fill(1, 1.0)                  // fc2 bias

	net, sig, err := LoadWeightsFromReader(&buf)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, net.WWeights[0][0], 1e-6)
	assert.InDelta(t, 0.4, net.BBias[0], 1e-6)
	assert.InDelta(t, 1.0, net.FC2Bias, 1e-6)
	assert.NotZero(t, sig)

	// No trailing bytes left unread: the reader consumed exactly the
	// expected element count.
	assert.Equal(t, 0, buf.Len())
}

func TestLoadWeightsTruncatedIsError(t *testing.T) {
	var buf bytes.Buffer
	appendFloats(&buf, 1.0, 2.0) // far short of a full w-weights tensor
	_, _, err := LoadWeightsFromReader(&buf)
	assert.Error(t, err)
}
