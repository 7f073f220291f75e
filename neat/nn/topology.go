package nn

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// digraph builds the directed graph of enabled connections. Self-loops are not
// representable in a simple graph and are reported separately.
func (net *Network) digraph() (g *simple.DirectedGraph, selfLoop bool) {
	g = simple.NewDirectedGraph()
	for _, n := range net.neurons {
		g.AddNode(simple.Node(n.key))
	}
	for _, n := range net.neurons {
		for _, c := range n.connections {
			if c.to == n {
				selfLoop = true
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(n.key), simple.Node(c.to.key)))
		}
	}
	return g, selfLoop
}

// Acyclic reports whether the enabled connections form a DAG.
func (net *Network) Acyclic() bool {
	_, _, ok := net.order()
	return ok
}

// order returns the graph with its nodes in topological order.
func (net *Network) order() (*simple.DirectedGraph, []graph.Node, bool) {
	g, selfLoop := net.digraph()
	if selfLoop {
		return nil, nil, false
	}
	sorted, err := topo.Sort(g)
	if err != nil {
		return nil, nil, false
	}
	return g, sorted, true
}

// Depth returns the number of links on the longest path of an acyclic network.
// The second result is false when the network has a cycle.
func (net *Network) Depth() (int, bool) {
	g, sorted, ok := net.order()
	if !ok {
		return 0, false
	}
	depth := make(map[int64]int, len(sorted))
	longest := 0
	for _, node := range sorted {
		d := depth[node.ID()]
		to := g.From(node.ID())
		for to.Next() {
			next := to.Node().ID()
			if d+1 > depth[next] {
				depth[next] = d + 1
			}
		}
		longest = max(longest, d)
	}
	return longest, true
}
