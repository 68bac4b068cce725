package plant

import (
	"fmt"
	"strings"

	"github.com/Faultbox/stemforge/pkg/math"
	"github.com/Faultbox/stemforge/pkg/relation"
)

// Mode selects how a child's transform derives from its parent's.
type Mode uint8

const (
	// Additive places each child at parent position + up*length and ignores
	// rotation.
	Additive Mode = iota
	// Compositional composes full rigid transforms:
	// child = parent * translate(up*length) * rotate(child.Rotation).
	Compositional
)

func (m Mode) String() string {
	switch m {
	case Additive:
		return "additive"
	case Compositional:
		return "compositional"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses "additive" or "compositional".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "additive", "":
		return Additive, nil
	case "compositional":
		return Compositional, nil
	default:
		return 0, fmt.Errorf("plant: unknown propagation mode %q", s)
	}
}

// Propagate computes a world transform per stem, indexed by StemID. Roots sit
// at base; in Compositional mode a root's own rotation is applied on top of
// base.
func (h *Hierarchy) Propagate(base math.Mat4, mode Mode) ([]math.Mat4, error) {
	out := make([]math.Mat4, len(h.stems))
	err := h.Traverse(func(v Visit) relation.Control {
		switch {
		case !v.HasParent && mode == Additive:
			out[v.ID] = math.Translate(base.Translation())
		case !v.HasParent:
			out[v.ID] = base.Mul(v.Stem.Rotation.ToMat4())
		case mode == Additive:
			pos := out[v.Parent].Translation().Add(math.Up.Scale(v.Stem.Length))
			out[v.ID] = math.Translate(pos)
		default:
			local := math.Translate(math.Up.Scale(v.Stem.Length)).Mul(v.Stem.Rotation.ToMat4())
			out[v.ID] = out[v.Parent].Mul(local)
		}
		return relation.Continue
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Positions extracts the translation of each transform.
func Positions(transforms []math.Mat4) []math.Vec3 {
	out := make([]math.Vec3, len(transforms))
	for i, t := range transforms {
		out[i] = t.Translation()
	}
	return out
}
