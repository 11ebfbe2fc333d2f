package graph

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/google/uuid"
)

// Graph holds all nodes and links of one topology build.
type Graph struct {
	Nodes      []Node    `json:"nodes"`
	Links      []Link    `json:"links"`
	BuildID    uuid.UUID `json:"buildId"`
	Generation uint64    `json:"generation"`

	pairs     map[PairKey]int
	adjacency [][]int // node -> link indices
	center    NodeID
}

// New creates an empty graph for the given build generation.
func New(generation uint64) *Graph {
	return &Graph{
		BuildID:    uuid.New(),
		Generation: generation,
		pairs:      make(map[PairKey]int),
		center:     InvalidNode,
	}
}

// AddNode appends a node at the given world position with the given local
// anchor and returns its id.
func (g *Graph) AddNode(name string, position, anchor v3.Vec) NodeID {
	id := NodeID(len(g.Nodes))
	g.Nodes = append(g.Nodes, Node{
		ID:       id,
		Name:     name,
		Position: position,
		Anchor:   anchor,
		Active:   true,
	})
	g.adjacency = append(g.adjacency, nil)
	return id
}

// AddCenter appends the center node. A graph has at most one.
func (g *Graph) AddCenter(name string, position v3.Vec) (NodeID, error) {
	if g.center != InvalidNode {
		return InvalidNode, fmt.Errorf("graph already has center node %s", g.center)
	}
	id := g.AddNode(name, position, v3.Vec{})
	g.Nodes[id].Center = true
	g.center = id
	return id, nil
}

// Center returns the center node id, if any.
func (g *Graph) Center() (NodeID, bool) {
	return g.center, g.center != InvalidNode
}

// AddLink inserts l unless its pair is already linked. It reports whether
// the link was added. Self links and unknown endpoints are errors.
func (g *Graph) AddLink(l Link) (bool, error) {
	key := l.Key()
	if key.IsSelf() {
		return false, fmt.Errorf("self link on node %s", l.A)
	}
	if !g.valid(l.A) || !g.valid(l.B) {
		return false, fmt.Errorf("link %s references a missing node", key)
	}
	if _, dup := g.pairs[key]; dup {
		return false, nil
	}
	if l.AutoAnchor {
		l.RestLength = g.Nodes[l.A].Position.Sub(g.Nodes[l.B].Position).Length()
	} else {
		l.RestLength = 0
	}
	idx := len(g.Links)
	g.Links = append(g.Links, l)
	g.pairs[key] = idx
	g.adjacency[l.A] = append(g.adjacency[l.A], idx)
	g.adjacency[l.B] = append(g.adjacency[l.B], idx)
	return true, nil
}

// HasLink reports whether a and b are linked, in either order.
func (g *Graph) HasLink(a, b NodeID) bool {
	_, ok := g.pairs[MakePairKey(a, b)]
	return ok
}

// Link returns the link between a and b.
func (g *Graph) Link(a, b NodeID) (Link, bool) {
	idx, ok := g.pairs[MakePairKey(a, b)]
	if !ok {
		return Link{}, false
	}
	return g.Links[idx], true
}

// Neighbors returns the nodes linked to id.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	if !g.valid(id) {
		return nil
	}
	out := make([]NodeID, 0, len(g.adjacency[id]))
	for _, li := range g.adjacency[id] {
		out = append(out, g.Links[li].Other(id))
	}
	return out
}

// NodeCount returns the total number of nodes, center included.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// LinkCount returns the total number of links.
func (g *Graph) LinkCount() int {
	return len(g.Links)
}

// Get returns a pointer to the node with the given id, or nil.
func (g *Graph) Get(id NodeID) *Node {
	if !g.valid(id) {
		return nil
	}
	return &g.Nodes[id]
}

// Lookup returns the node with the given name, or nil.
func (g *Graph) Lookup(name string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].Name == name {
			return &g.Nodes[i]
		}
	}
	return nil
}

// SetPosition records the simulated world position of one node.
func (g *Graph) SetPosition(id NodeID, p v3.Vec) error {
	if !g.valid(id) {
		return fmt.Errorf("set position: unknown node %s", id)
	}
	g.Nodes[id].Position = p
	return nil
}

// SetActive enables or disables a node. Inactive nodes are skipped by
// Positions(true).
func (g *Graph) SetActive(id NodeID, active bool) error {
	if !g.valid(id) {
		return fmt.Errorf("set active: unknown node %s", id)
	}
	g.Nodes[id].Active = active
	return nil
}

// UpdatePositions replaces every peripheral node position, in creation
// order. The center node, if present, is not part of positions.
func (g *Graph) UpdatePositions(positions []v3.Vec) error {
	peripheral := g.NodeCount()
	if g.center != InvalidNode {
		peripheral--
	}
	if len(positions) != peripheral {
		return fmt.Errorf("update positions: got %d positions for %d nodes", len(positions), peripheral)
	}
	i := 0
	for id := range g.Nodes {
		if g.Nodes[id].Center {
			continue
		}
		g.Nodes[id].Position = positions[i]
		i++
	}
	return nil
}

// Positions appends peripheral node positions to dst in creation order.
// With activeOnly set, inactive nodes are skipped.
func (g *Graph) Positions(dst []v3.Vec, activeOnly bool) []v3.Vec {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Center || (activeOnly && !n.Active) {
			continue
		}
		dst = append(dst, n.Position)
	}
	return dst
}

// Connected reports whether every node can reach every other node through
// links. Empty and single-node graphs are connected.
func (g *Graph) Connected() bool {
	if len(g.Nodes) <= 1 {
		return true
	}
	return len(g.reachable(0)) == len(g.Nodes)
}

// reachable returns the set of nodes reachable from start (breadth-first).
func (g *Graph) reachable(start NodeID) map[NodeID]bool {
	seen := map[NodeID]bool{start: true}
	queue := []NodeID{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, li := range g.adjacency[id] {
			next := g.Links[li].Other(id)
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.Nodes)
}
