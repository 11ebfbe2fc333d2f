package graph

import "fmt"

// ValidationSeverity indicates whether a validation finding makes the
// graph unusable or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // graph must not be simulated
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (InvalidNode if graph-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID == InvalidNode {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID, e.Message)
}

// Validate checks the structural invariants of a topology graph and returns
// every finding. An empty slice means the graph is valid. Validate walks the
// raw Nodes and Links slices, so it also catches graphs assembled by hand
// rather than through AddLink.
func Validate(g *Graph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateIDs(g)...)
	errs = append(errs, validateLinks(g)...)
	errs = append(errs, validateCenter(g)...)
	errs = append(errs, validateConnectivity(g)...)
	return errs
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// validateIDs checks that every node's ID matches its arena slot.
func validateIDs(g *Graph) []ValidationError {
	var errs []ValidationError
	for i, n := range g.Nodes {
		if n.ID != NodeID(i) {
			errs = append(errs, ValidationError{
				NodeID:   NodeID(i),
				Message:  fmt.Sprintf("node in slot %d carries id %s", i, n.ID),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateLinks checks for self links, dangling endpoints, duplicate pairs
// and springs with negative coefficients.
func validateLinks(g *Graph) []ValidationError {
	var errs []ValidationError
	seen := make(map[PairKey]bool, len(g.Links))
	for _, l := range g.Links {
		key := l.Key()
		if key.IsSelf() {
			errs = append(errs, ValidationError{
				NodeID:   l.A,
				Message:  "self link",
				Severity: SeverityError,
			})
			continue
		}
		if !g.valid(l.A) || !g.valid(l.B) {
			errs = append(errs, ValidationError{
				NodeID:   InvalidNode,
				Message:  fmt.Sprintf("link %s references a missing node", key),
				Severity: SeverityError,
			})
			continue
		}
		if seen[key] {
			errs = append(errs, ValidationError{
				NodeID:   key.Lo,
				Message:  fmt.Sprintf("duplicate link %s", key),
				Severity: SeverityError,
			})
			continue
		}
		seen[key] = true
		if l.Stiffness < 0 || l.Damping < 0 {
			errs = append(errs, ValidationError{
				NodeID:   key.Lo,
				Message:  fmt.Sprintf("link %s has negative stiffness or damping", key),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// validateCenter checks that at most one node is flagged as the center and
// that recover links end on it.
func validateCenter(g *Graph) []ValidationError {
	var errs []ValidationError
	centers := 0
	for _, n := range g.Nodes {
		if n.Center {
			centers++
		}
	}
	if centers > 1 {
		errs = append(errs, ValidationError{
			NodeID:   InvalidNode,
			Message:  fmt.Sprintf("%d center nodes, want at most 1", centers),
			Severity: SeverityError,
		})
	}
	for _, l := range g.Links {
		if l.Kind != LinkRecover || !g.valid(l.A) || !g.valid(l.B) {
			continue
		}
		if !g.Nodes[l.A].Center && !g.Nodes[l.B].Center {
			errs = append(errs, ValidationError{
				NodeID:   l.A,
				Message:  fmt.Sprintf("recover link %s does not touch the center node", l.Key()),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateConnectivity checks that the links join all nodes into one
// component. The walk uses the raw link list rather than the adjacency
// index.
func validateConnectivity(g *Graph) []ValidationError {
	if len(g.Nodes) <= 1 {
		return nil
	}
	adj := make(map[NodeID][]NodeID, len(g.Nodes))
	for _, l := range g.Links {
		if l.A == l.B || !g.valid(l.A) || !g.valid(l.B) {
			continue
		}
		adj[l.A] = append(adj[l.A], l.B)
		adj[l.B] = append(adj[l.B], l.A)
	}
	seen := map[NodeID]bool{0: true}
	stack := []NodeID{0}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range adj[id] {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	if len(seen) == len(g.Nodes) {
		return nil
	}
	var errs []ValidationError
	for _, n := range g.Nodes {
		if !seen[n.ID] {
			errs = append(errs, ValidationError{
				NodeID:   n.ID,
				Message:  "node is not connected to the rest of the body",
				Severity: SeverityError,
			})
		}
	}
	return errs
}
