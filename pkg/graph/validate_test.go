package graph

import (
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestValidateCleanGraph(t *testing.T) {
	g := triangle(t)
	c, _ := g.AddCenter("CenterNode", v3.Vec{})
	for id := NodeID(0); id < 3; id++ {
		if _, err := g.AddLink(Link{A: id, B: c, Kind: LinkRecover, Stiffness: 100, Damping: 5}); err != nil {
			t.Fatalf("AddLink: %v", err)
		}
	}
	if errs := Validate(g); len(errs) != 0 {
		t.Errorf("expected no findings, got %v", errs)
	}
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(g *Graph)
		wantMsg string
		wantErr bool
	}{
		{
			name:    "self link",
			mutate:  func(g *Graph) { g.Links = append(g.Links, Link{A: 1, B: 1}) },
			wantMsg: "self link",
			wantErr: true,
		},
		{
			name:    "duplicate pair",
			mutate:  func(g *Graph) { g.Links = append(g.Links, Link{A: 1, B: 0}) },
			wantMsg: "duplicate link 0_1",
			wantErr: true,
		},
		{
			name:    "dangling",
			mutate:  func(g *Graph) { g.Links = append(g.Links, Link{A: 0, B: 12}) },
			wantMsg: "missing node",
			wantErr: true,
		},
		{
			name:    "disconnected",
			mutate:  func(g *Graph) { g.AddNode("loose", v3.Vec{}, v3.Vec{}) },
			wantMsg: "not connected",
			wantErr: true,
		},
		{
			name: "two centers",
			mutate: func(g *Graph) {
				g.Nodes[0].Center = true
				g.Nodes[1].Center = true
			},
			wantMsg: "2 center nodes",
			wantErr: true,
		},
		{
			name:    "recover link off center",
			mutate:  func(g *Graph) { g.Links[0].Kind = LinkRecover },
			wantMsg: "does not touch the center",
			wantErr: true,
		},
		{
			name:    "negative stiffness",
			mutate:  func(g *Graph) { g.Links[0].Stiffness = -1 },
			wantMsg: "negative stiffness",
			wantErr: false,
		},
		{
			name:    "bad id",
			mutate:  func(g *Graph) { g.Nodes[2].ID = 7 },
			wantMsg: "carries id n7",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := triangle(t)
			tt.mutate(g)
			errs := Validate(g)
			found := false
			for _, e := range errs {
				if strings.Contains(e.Message, tt.wantMsg) {
					found = true
				}
			}
			if !found {
				t.Fatalf("no finding containing %q in %v", tt.wantMsg, errs)
			}
			if HasErrors(errs) != tt.wantErr {
				t.Errorf("HasErrors = %v, want %v (%v)", HasErrors(errs), tt.wantErr, errs)
			}
		})
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{NodeID: 3, Message: "boom", Severity: SeverityError}
	if got := e.Error(); got != "[error] node n3: boom" {
		t.Errorf("Error() = %q", got)
	}
	g := ValidationError{NodeID: InvalidNode, Message: "graph", Severity: SeverityWarning}
	if got := g.Error(); got != "[warning] graph" {
		t.Errorf("Error() = %q", got)
	}
}
