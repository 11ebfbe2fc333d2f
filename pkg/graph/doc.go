// Package graph defines the topology graph of a soft body: an arena of
// nodes (one per source vertex plus an optional center) and the spring
// links between them. A graph is produced whole by the topology builder
// and replaced, never patched, on rebuild. Only node positions change
// between rebuilds, fed in by the external physics step.
package graph
