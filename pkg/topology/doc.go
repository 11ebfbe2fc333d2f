// Package topology builds the spring network of a soft body from a source
// mesh. Each source vertex becomes a node; springs connect every pair of
// nodes, every node to a center node, or both, depending on the policy.
//
// The builder owns the graph it produces. Build replaces the whole graph;
// Update triggers the first build lazily once the source has vertices and
// never rebuilds on its own after that.
package topology
