package nnue

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// weightsStreamer reads a flat stream of little-endian float32 tensors
// with no header or length prefix, folding a 32-bit compatibility
// signature as it goes: the running XOR of every element's first four
// bytes. This is a compatibility tag, not a cryptographic digest.
type weightsStreamer struct {
	r         io.Reader
	signature uint32
}

func newWeightsStreamer(r io.Reader) *weightsStreamer {
	return &weightsStreamer{r: r}
}

func (s *weightsStreamer) next() (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(s.r, buf[:]); err != nil {
		return 0, err
	}
	bits := binary.LittleEndian.Uint32(buf[:])
	s.signature ^= bits
	return math.Float32frombits(bits), nil
}

func (s *weightsStreamer) vector(dst []float32) error {
	for i := range dst {
		v, err := s.next()
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (s *weightsStreamer) matrix(rows int, dst func(row int) []float32) error {
	for r := 0; r < rows; r++ {
		if err := s.vector(dst(r)); err != nil {
			return err
		}
	}
	return nil
}

// LoadWeights streams a network's weights from path in the fixed
// tensor order w, b, fc0, fc1, fc2 (each affine: weights then bias),
// returning the folded signature. There is no header or length
// prefix: exactly the expected element count per tensor is consumed.
func LoadWeights(path string) (*Network, uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("nnue: open weights %q: %w", path, err)
	}
	defer f.Close()
	return LoadWeightsFromReader(f)
}

// LoadWeightsFromReader is LoadWeights for an already-open reader.
func LoadWeightsFromReader(r io.Reader) (*Network, uint32, error) {
	s := newWeightsStreamer(r)
	n := NewNetwork()

	steps := []struct {
		name string
		run  func() error
	}{
		{"w.weights", func() error {
			return s.matrix(HalfKASize, func(i int) []float32 { return n.WWeights[i][:] })
		}},
		{"w.bias", func() error { return s.vector(n.WBias[:]) }},
		{"b.weights", func() error {
			return s.matrix(HalfKASize, func(i int) []float32 { return n.BWeights[i][:] })
		}},
		{"b.bias", func() error { return s.vector(n.BBias[:]) }},
		{"fc0.weights", func() error {
			return s.matrix(ConcatDim, func(i int) []float32 { return n.FC0Weights[i][:] })
		}},
		{"fc0.bias", func() error { return s.vector(n.FC0Bias[:]) }},
		{"fc1.weights", func() error {
			return s.matrix(FC0Out, func(i int) []float32 { return n.FC1Weights[i][:] })
		}},
		{"fc1.bias", func() error { return s.vector(n.FC1Bias[:]) }},
		{"fc2.weights", func() error { return s.vector(n.FC2Weights[:]) }},
		{"fc2.bias", func() error {
			v, err := s.next()
			if err != nil {
				return err
			}
			n.FC2Bias = v
			return nil
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return nil, 0, fmt.Errorf("nnue: reading tensor %s: %w", step.name, err)
		}
	}

	return n, s.signature, nil
}
