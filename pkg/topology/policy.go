package topology

import (
	"fmt"
	"strings"
)

// Policy selects which springs the builder creates.
type Policy int

const (
	// PolicyAllPairs links every pair of peripheral nodes.
	PolicyAllPairs Policy = iota
	// PolicyHub links each peripheral node to the center node only.
	PolicyHub
	// PolicyAllPairsWithHub does both.
	PolicyAllPairsWithHub
)

func (p Policy) String() string {
	switch p {
	case PolicyAllPairs:
		return "all-pairs"
	case PolicyHub:
		return "hub"
	case PolicyAllPairsWithHub:
		return "all-pairs-hub"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts the names produced by Policy.String, with
// underscores allowed in place of dashes. An empty name selects the
// default, all-pairs with hub.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "all-pairs":
		return PolicyAllPairs, nil
	case "hub":
		return PolicyHub, nil
	case "all-pairs-hub", "all-pairs-with-hub", "":
		return PolicyAllPairsWithHub, nil
	default:
		return 0, fmt.Errorf("unknown topology policy %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p Policy) peers() bool {
	return p == PolicyAllPairs || p == PolicyAllPairsWithHub
}

func (p Policy) hub() bool {
	return p == PolicyHub || p == PolicyAllPairsWithHub
}

// ExpectedCounts returns the node and link counts a build over n source
// vertices produces.
func ExpectedCounts(p Policy, n int, centerNode bool) (nodes, links int) {
	nodes = n
	if centerNode || p.hub() {
		nodes++
	}
	if p.peers() {
		m := n
		if !p.hub() {
			m = nodes
		}
		links += m * (m - 1) / 2
	}
	if p.hub() {
		links += n
	}
	return nodes, links
}
