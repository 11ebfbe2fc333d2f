package graph

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// NodeID is a node's index in its graph's arena.
type NodeID int

// InvalidNode is returned by lookups that find nothing.
const InvalidNode NodeID = -1

func (id NodeID) String() string {
	return fmt.Sprintf("n%d", int(id))
}

// Node is one simulated point of the soft body.
type Node struct {
	ID       NodeID `json:"id"`
	Name     string `json:"name"`
	Position v3.Vec `json:"position"` // world space, written by the physics step
	Anchor   v3.Vec `json:"anchor"`   // local rest position captured at creation
	Center   bool   `json:"center,omitempty"`
	Active   bool   `json:"active"`
}
