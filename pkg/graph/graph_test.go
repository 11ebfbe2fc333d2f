package graph

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/google/uuid"
)

// triangle builds three linked nodes on the X axis plus a center.
func triangle(t *testing.T) *Graph {
	t.Helper()
	g := New(1)
	a := g.AddNode("a", v3.Vec{X: 0}, v3.Vec{X: 0})
	b := g.AddNode("b", v3.Vec{X: 1}, v3.Vec{X: 1})
	c := g.AddNode("c", v3.Vec{X: 3}, v3.Vec{X: 3})
	for _, pair := range [][2]NodeID{{a, b}, {b, c}, {a, c}} {
		if _, err := g.AddLink(Link{A: pair[0], B: pair[1], Stiffness: 100, Damping: 5, AutoAnchor: true}); err != nil {
			t.Fatalf("AddLink(%v): %v", pair, err)
		}
	}
	return g
}

func TestNewGraph(t *testing.T) {
	g := New(7)
	if g.NodeCount() != 0 || g.LinkCount() != 0 {
		t.Errorf("empty graph has %d nodes, %d links", g.NodeCount(), g.LinkCount())
	}
	if g.Generation != 7 {
		t.Errorf("Generation = %d, want 7", g.Generation)
	}
	if g.BuildID == uuid.Nil {
		t.Error("BuildID not assigned")
	}
	if New(7).BuildID == g.BuildID {
		t.Error("two builds share a BuildID")
	}
	if _, ok := g.Center(); ok {
		t.Error("empty graph reports a center")
	}
}

func TestAddNodeAndLookup(t *testing.T) {
	g := New(1)
	id := g.AddNode("SlimeNode_0", v3.Vec{X: 1, Y: 2, Z: 3}, v3.Vec{X: 0.5})
	if id != 0 {
		t.Errorf("first id = %v, want 0", id)
	}
	n := g.Lookup("SlimeNode_0")
	if n == nil {
		t.Fatal("Lookup returned nil")
	}
	if !n.Active || n.Center {
		t.Errorf("new node flags: active=%v center=%v", n.Active, n.Center)
	}
	if n.Anchor.X != 0.5 {
		t.Errorf("anchor = %v", n.Anchor)
	}
	if g.Lookup("missing") != nil {
		t.Error("Lookup(missing) should be nil")
	}
	if g.Get(5) != nil || g.Get(-1) != nil {
		t.Error("Get out of range should be nil")
	}
}

func TestAddCenterOnce(t *testing.T) {
	g := New(1)
	id, err := g.AddCenter("CenterNode", v3.Vec{})
	if err != nil {
		t.Fatalf("AddCenter: %v", err)
	}
	if got, ok := g.Center(); !ok || got != id {
		t.Errorf("Center() = %v, %v", got, ok)
	}
	if _, err := g.AddCenter("again", v3.Vec{}); err == nil {
		t.Error("second AddCenter should fail")
	}
}

// --- Links ---

func TestPairKeyCanonical(t *testing.T) {
	if MakePairKey(5, 2) != MakePairKey(2, 5) {
		t.Error("pair key depends on argument order")
	}
	if got := MakePairKey(5, 2).String(); got != "2_5" {
		t.Errorf("String() = %q, want 2_5", got)
	}
	if !MakePairKey(3, 3).IsSelf() {
		t.Error("IsSelf false for (3,3)")
	}
}

func TestAddLinkRejectsSelfAndDuplicates(t *testing.T) {
	g := triangle(t)
	if _, err := g.AddLink(Link{A: 1, B: 1}); err == nil {
		t.Error("self link accepted")
	}
	added, err := g.AddLink(Link{A: 1, B: 0, AutoAnchor: true})
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	if added {
		t.Error("reversed duplicate pair was added")
	}
	if g.LinkCount() != 3 {
		t.Errorf("LinkCount = %d, want 3", g.LinkCount())
	}
	if _, err := g.AddLink(Link{A: 0, B: 9}); err == nil {
		t.Error("link to a missing node accepted")
	}
}

func TestRestLength(t *testing.T) {
	g := triangle(t)
	l, ok := g.Link(2, 0)
	if !ok {
		t.Fatal("link a-c missing")
	}
	if math.Abs(l.RestLength-3) > 1e-12 {
		t.Errorf("auto rest length = %v, want 3", l.RestLength)
	}

	center, _ := g.AddCenter("CenterNode", v3.Vec{Y: 10})
	if _, err := g.AddLink(Link{A: 0, B: center, Kind: LinkRecover, RestLength: 42}); err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	l, _ = g.Link(0, center)
	if l.RestLength != 0 {
		t.Errorf("fixed zero-offset rest length = %v, want 0", l.RestLength)
	}
}

func TestNeighbors(t *testing.T) {
	g := triangle(t)
	got := g.Neighbors(1)
	if len(got) != 2 {
		t.Fatalf("Neighbors(1) = %v, want 2 entries", got)
	}
	seen := map[NodeID]bool{}
	for _, id := range got {
		seen[id] = true
	}
	if !seen[0] || !seen[2] {
		t.Errorf("Neighbors(1) = %v, want 0 and 2", got)
	}
	if g.Neighbors(99) != nil {
		t.Error("Neighbors of a missing node should be nil")
	}
}

// --- Positions ---

func TestUpdatePositionsSkipsCenter(t *testing.T) {
	g := triangle(t)
	g.AddCenter("CenterNode", v3.Vec{Y: 5})
	moved := []v3.Vec{{Z: 1}, {Z: 2}, {Z: 3}}
	if err := g.UpdatePositions(moved); err != nil {
		t.Fatalf("UpdatePositions: %v", err)
	}
	got := g.Positions(nil, false)
	if len(got) != 3 {
		t.Fatalf("Positions returned %d entries, want 3", len(got))
	}
	for i := range moved {
		if got[i] != moved[i] {
			t.Errorf("position %d = %v, want %v", i, got[i], moved[i])
		}
	}
	if c := g.Get(3); c.Position.Y != 5 {
		t.Errorf("center moved to %v", c.Position)
	}
	if err := g.UpdatePositions(moved[:1]); err == nil {
		t.Error("UpdatePositions accepted a short slice")
	}
}

func TestPositionsActiveOnly(t *testing.T) {
	g := triangle(t)
	if err := g.SetActive(1, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if got := len(g.Positions(nil, true)); got != 2 {
		t.Errorf("active positions = %d, want 2", got)
	}
	if got := len(g.Positions(nil, false)); got != 3 {
		t.Errorf("all positions = %d, want 3", got)
	}
	if err := g.SetPosition(9, v3.Vec{}); err == nil {
		t.Error("SetPosition on a missing node should fail")
	}
}

func TestConnected(t *testing.T) {
	g := triangle(t)
	if !g.Connected() {
		t.Error("triangle should be connected")
	}
	g.AddNode("loose", v3.Vec{}, v3.Vec{})
	if g.Connected() {
		t.Error("graph with an unlinked node reported connected")
	}
	if !New(1).Connected() {
		t.Error("empty graph should be connected")
	}
}
