// Package arrays builds the input arrays the visualizer sorts.
package arrays

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
)

const (
	MinValue = 10
	MaxValue = 390

	MinSize     = 2
	MaxSize     = 100
	DefaultSize = 40
)

var ErrUnknownShape = errors.New("arrays: unknown shape")

// Shape is the initial ordering of a generated array.
type Shape uint8

const (
	Random Shape = iota
	Sorted
	Reversed
	NearlySorted
	FewUnique

	numShapes
)

var shapeNames = [numShapes]string{
	Random:       "random",
	Sorted:       "sorted",
	Reversed:     "reversed",
	NearlySorted: "nearly-sorted",
	FewUnique:    "few-unique",
}

func Shapes() []Shape {
	all := make([]Shape, numShapes)
	for i := range all {
		all[i] = Shape(i)
	}
	return all
}

func (s Shape) String() string {
	if s >= numShapes {
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
	return shapeNames[s]
}

// Next cycles through the shapes.
func (s Shape) Next() Shape { return (s + 1) % numShapes }

func ParseShape(raw string) (Shape, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, raw)
}

func (s Shape) MarshalText() ([]byte, error) {
	if s >= numShapes {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ClampSize pins n into [MinSize, MaxSize].
func ClampSize(n int) int {
	return min(max(n, MinSize), MaxSize)
}

// Generate returns size values in [MinValue, MaxValue) arranged by shape.
func Generate(size int, shape Shape, rng *rand.Rand) ([]int, error) {
	if shape >= numShapes {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, uint8(shape))
	}
	if size <= 0 {
		return []int{}, nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	out := make([]int, size)
	span := MaxValue - MinValue

	if shape == FewUnique {
		levels := [4]int{}
		for i := range levels {
			levels[i] = MinValue + rng.Intn(span)
		}
		for i := range out {
			out[i] = levels[rng.Intn(len(levels))]
		}
		return out, nil
	}

	for i := range out {
		out[i] = MinValue + rng.Intn(span)
	}

	switch shape {
	case Sorted:
		slices.Sort(out)
	case Reversed:
		slices.Sort(out)
		slices.Reverse(out)
	case NearlySorted:
		slices.Sort(out)
		swaps := max(1, size/20)
		for range swaps {
			i, j := rng.Intn(size), rng.Intn(size)
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}
