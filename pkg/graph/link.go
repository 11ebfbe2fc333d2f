package graph

import "fmt"

// LinkKind distinguishes the two roles a spring plays.
type LinkKind int

const (
	LinkPeer    LinkKind = iota // between two peripheral nodes
	LinkRecover                 // from a peripheral node to the center
)

func (k LinkKind) String() string {
	switch k {
	case LinkPeer:
		return "peer"
	case LinkRecover:
		return "recover"
	default:
		return fmt.Sprintf("LinkKind(%d)", int(k))
	}
}

// Link is a spring between two distinct nodes.
type Link struct {
	A          NodeID   `json:"a"`
	B          NodeID   `json:"b"`
	Kind       LinkKind `json:"kind"`
	Stiffness  float64  `json:"stiffness"`
	Damping    float64  `json:"damping"`
	AutoAnchor bool     `json:"autoAnchor"` // rest length taken from the distance at creation
	RestLength float64  `json:"restLength"` // zero for fixed zero-offset springs
}

// Key returns the canonical pair key of the link.
func (l Link) Key() PairKey {
	return MakePairKey(l.A, l.B)
}

// Other returns the endpoint of l that is not id.
func (l Link) Other(id NodeID) NodeID {
	if l.A == id {
		return l.B
	}
	return l.A
}

// PairKey identifies an unordered node pair. Lo is always the smaller id.
type PairKey struct {
	Lo NodeID
	Hi NodeID
}

// MakePairKey returns the canonical key for the pair (a, b) regardless of
// argument order.
func MakePairKey(a, b NodeID) PairKey {
	if a <= b {
		return PairKey{Lo: a, Hi: b}
	}
	return PairKey{Lo: b, Hi: a}
}

// String renders the key as "<min>_<max>".
func (k PairKey) String() string {
	return fmt.Sprintf("%d_%d", int(k.Lo), int(k.Hi))
}

// IsSelf reports whether both ends are the same node.
func (k PairKey) IsSelf() bool {
	return k.Lo == k.Hi
}
