package topo

import "sort"

// Betweenness computes shortest-path betweenness centrality for the directed
// graph over the given edges, using Brandes' accumulation with one BFS per
// source (unit edge weights). The graph sizes here are subnet-scale, so the
// O(V·E) pass is cheap and avoids an external graph dependency.
//
// When nodes is nil the node set is inferred from the edge endpoints.
// Parallel edges collapse to a single adjacency. Graphs with at most one
// node yield all-zero centrality. With normalized set, raw sums are divided
// by (n-1)(n-2) — the maximum attainable for a directed graph — and graphs
// with n <= 2 yield all zeros.
func Betweenness(edges []Edge, nodes []string, normalized bool) map[string]float64 {
	index := make(map[string]int)
	var ids []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := index[name]; !ok {
			index[name] = len(ids)
			ids = append(ids, name)
		}
	}
	for _, name := range nodes {
		add(name)
	}
	for _, e := range edges {
		add(e.From)
		add(e.To)
	}

	n := len(ids)
	result := make(map[string]float64, n)
	for _, name := range ids {
		result[name] = 0
	}
	if n <= 1 {
		return result
	}

	adj := make([][]int, n)
	seen := make(map[[2]int]struct{}, len(edges))
	for _, e := range edges {
		u, v := index[e.From], index[e.To]
		if u == v {
			continue
		}
		key := [2]int{u, v}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		adj[u] = append(adj[u], v)
	}

	cb := make([]float64, n)
	sigma := make([]float64, n)
	dist := make([]int, n)
	delta := make([]float64, n)
	preds := make([][]int, n)
	stack := make([]int, 0, n)
	queue := make([]int, 0, n)

	for s := 0; s < n; s++ {
		stack = stack[:0]
		queue = queue[:0]
		for i := 0; i < n; i++ {
			sigma[i] = 0
			dist[i] = -1
			delta[i] = 0
			preds[i] = preds[i][:0]
		}
		sigma[s] = 1
		dist[s] = 0
		queue = append(queue, s)

		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range adj[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		// Dependency accumulation in reverse BFS order.
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	if normalized {
		if n <= 2 {
			return result
		}
		scale := 1.0 / (float64(n-1) * float64(n-2))
		for i := range cb {
			cb[i] *= scale
		}
	}

	for i, name := range ids {
		result[name] = cb[i]
	}
	return result
}

// KeyNodes returns the nodes whose centrality is at least threshold times
// the maximum observed value, sorted. Empty or all-zero centrality yields
// no key nodes.
func KeyNodes(centrality map[string]float64, threshold float64) []string {
	if len(centrality) == 0 {
		return nil
	}

	var max float64
	for _, v := range centrality {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return nil
	}

	cut := threshold * max
	var keys []string
	for ip, c := range centrality {
		if c >= cut {
			keys = append(keys, ip)
		}
	}
	sort.Strings(keys)
	return keys
}
