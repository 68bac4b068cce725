package plant

import (
	"errors"
	"fmt"
)

// ErrNoStems is returned when a build request names no stems.
var ErrNoStems = errors.New("plant: at least one stem is required")

// BuildChain links stems into a single chain. Stems are listed tip first:
// each stem becomes the parent of the one listed before it, so the last stem
// is the root. Ids follow list order.
func BuildChain(stems []Stem) (*Hierarchy, error) {
	if len(stems) == 0 {
		return nil, ErrNoStems
	}
	h := NewHierarchy()
	var prev StemID
	for i, s := range stems {
		id, err := h.AddRoot(s)
		if err != nil {
			return nil, fmt.Errorf("stem %d: %w", i, err)
		}
		if i > 0 {
			if err := h.SetParent(prev, id); err != nil {
				return nil, err
			}
		}
		prev = id
	}
	return h, nil
}

// BuildLengths builds a chain from lengths listed tip first, every stem with
// the given ring size.
func BuildLengths(lengths []float32, size float32) (*Hierarchy, error) {
	stems := make([]Stem, len(lengths))
	for i, l := range lengths {
		stems[i] = Simple().WithLength(l).WithSize(size)
	}
	return BuildChain(stems)
}

// BuildLevels builds a chain of n identical stems.
func BuildLevels(n int, length, size float32) (*Hierarchy, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d levels", ErrNoStems, n)
	}
	lengths := make([]float32, n)
	for i := range lengths {
		lengths[i] = length
	}
	return BuildLengths(lengths, size)
}
