// Package topo builds directed subnet topologies from routing records and
// computes betweenness centrality to find structurally critical devices.
package topo

import (
	"sort"
	"strings"
)

// DefaultKeyNodeThreshold is the fraction of the maximum centrality a node
// must reach to be reported as a key node.
const DefaultKeyNodeThreshold = 0.1

// Route is one routing-table record collected from a device. Dest is a CIDR
// string; only its host part participates in graph membership.
type Route struct {
	Source  string `json:"source"`
	Dest    string `json:"dest,omitempty"`
	NextHop string `json:"next_hop"`
}

// Edge is a directed source→next-hop adjacency.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// BuildFromRoutes converts route records into a directed edge list plus the
// node set. An edge is added only when both source and next hop are present;
// a dest network additionally contributes its host IP (prefix length
// stripped) as a node when the route has a source. Loopback, zero-address
// and self-referential routes are the collection layer's responsibility to
// filter before this point. Nodes are sorted for deterministic output.
func BuildFromRoutes(routes []Route) ([]Edge, []string) {
	var edges []Edge
	nodes := make(map[string]struct{})

	for _, r := range routes {
		if r.Source != "" && r.NextHop != "" {
			edges = append(edges, Edge{From: r.Source, To: r.NextHop})
			nodes[r.Source] = struct{}{}
			nodes[r.NextHop] = struct{}{}
		}
		if r.Dest != "" && r.Source != "" {
			host, _, _ := strings.Cut(r.Dest, "/")
			if host != "" {
				nodes[host] = struct{}{}
			}
		}
	}

	sorted := make([]string, 0, len(nodes))
	for n := range nodes {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)
	return edges, sorted
}
