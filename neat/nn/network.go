package nn

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/baldhumanity/neat-innov/neat"
)

// BiasSignal is injected into every bias neuron on each push.
const BiasSignal = 1.0

// ErrInputSize is returned when an input vector does not match the number of
// input neurons.
var ErrInputSize = errors.New("input vector size mismatch")

// connection is an outgoing weighted edge of a neuron.
type connection struct {
	to     *neuron
	weight float64
}

// neuron accumulates signal for the next push in receive, holds the signal of
// the current push in buffer and its computed output in forward.
type neuron struct {
	key       int
	kind      neat.NodeType
	threshold float64

	receive float64
	buffer  float64
	forward float64

	connections []connection
}

func (n *neuron) flush() {
	n.buffer = n.receive
	n.receive = 0
}

func (n *neuron) fire() {
	if n.buffer > n.threshold {
		n.forward = Squash(n.buffer)
	} else {
		n.forward = 0
	}
	for _, c := range n.connections {
		c.to.receive += c.weight * n.forward
	}
}

// Network is the executable form of a genome. Signals advance one link per
// Push, so a path of d links needs d+1 pushes to carry an input to an output.
type Network struct {
	neurons []*neuron // sorted by key
	byKey   map[int]*neuron
	inputs  []*neuron
	outputs []*neuron
	biases  []*neuron

	links []neat.ConnectionGene // enabled links, in innovation order
}

// Decode compiles g into a network. Every node becomes a neuron carrying its
// threshold; every enabled link becomes a weighted connection. A link that
// references an undeclared node creates that node as a hidden neuron.
func Decode(g *neat.Genome) *Network {
	net := &Network{byKey: make(map[int]*neuron, g.NumNodes())}
	for _, node := range g.Nodes() {
		net.add(node)
	}
	for _, link := range g.Links() {
		if !link.Enabled {
			continue
		}
		src := net.lookup(link.In())
		dst := net.lookup(link.Out())
		src.connections = append(src.connections, connection{to: dst, weight: link.Weight})
		net.links = append(net.links, link)
	}
	sort.Slice(net.neurons, func(i, j int) bool {
		return net.neurons[i].key < net.neurons[j].key
	})
	return net
}

func (net *Network) add(node neat.NodeGene) *neuron {
	n := &neuron{key: node.Key, kind: node.Type, threshold: node.Threshold}
	net.neurons = append(net.neurons, n)
	net.byKey[node.Key] = n
	switch node.Type {
	case neat.InputNode:
		net.inputs = append(net.inputs, n)
	case neat.OutputNode:
		net.outputs = append(net.outputs, n)
	case neat.BiasNode:
		net.biases = append(net.biases, n)
	case neat.HiddenNode:
	default:
		panic(fmt.Sprintf("nn: unknown node type %d for node %d", node.Type, node.Key))
	}
	return n
}

func (net *Network) lookup(key int) *neuron {
	if n, ok := net.byKey[key]; ok {
		return n
	}
	return net.add(neat.NewNodeGene(key, neat.HiddenNode))
}

// Push feeds one input vector through the network and returns the output
// neuron values. Inputs and bias signals are added to the neurons'
// accumulators, every neuron flushes its accumulator, and then every neuron
// fires into its downstream accumulators for the next push.
func (net *Network) Push(inputs []float64) ([]float64, error) {
	if len(inputs) != len(net.inputs) {
		return nil, fmt.Errorf("%w: got %d values for %d inputs", ErrInputSize, len(inputs), len(net.inputs))
	}
	for i, n := range net.inputs {
		n.receive += inputs[i]
	}
	for _, n := range net.biases {
		n.receive += BiasSignal
	}
	for _, n := range net.neurons {
		n.flush()
	}
	for _, n := range net.neurons {
		n.fire()
	}
	return net.outputValues(), nil
}

// Prime pushes a vector filled with v once per neuron, enough to carry a signal
// through the longest possible chain.
func (net *Network) Prime(v float64) {
	inputs := make([]float64, len(net.inputs))
	for i := range inputs {
		inputs[i] = v
	}
	for range net.neurons {
		// The vector length always matches, so Push cannot fail.
		_, _ = net.Push(inputs)
	}
}

// Activate clears the network state and pushes inputs until every output
// reflects them: Depth()+1 times for an acyclic network, Len() times otherwise.
func (net *Network) Activate(inputs []float64) ([]float64, error) {
	net.Reset()
	steps := len(net.neurons)
	if depth, ok := net.Depth(); ok {
		steps = depth + 1
	}
	var outputs []float64
	for i := 0; i < steps; i++ {
		var err error
		if outputs, err = net.Push(inputs); err != nil {
			return nil, err
		}
	}
	if outputs == nil {
		outputs = net.outputValues()
	}
	return outputs, nil
}

func (net *Network) outputValues() []float64 {
	values := make([]float64, len(net.outputs))
	for i, n := range net.outputs {
		values[i] = n.forward
	}
	return values
}

// Reset zeroes every neuron's signal state.
func (net *Network) Reset() {
	for _, n := range net.neurons {
		n.receive, n.buffer, n.forward = 0, 0, 0
	}
}

// Value returns the last output of the neuron with the given key.
func (net *Network) Value(key int) (float64, bool) {
	n, ok := net.byKey[key]
	if !ok {
		return 0, false
	}
	return n.forward, true
}

// Inputs is the number of input neurons.
func (net *Network) Inputs() int { return len(net.inputs) }

// Outputs is the number of output neurons.
func (net *Network) Outputs() int { return len(net.outputs) }

// Len is the number of neurons, including hidden neurons created for undeclared keys.
func (net *Network) Len() int { return len(net.neurons) }

// String returns a dump of every neuron's state.
func (net *Network) String() string {
	var sb strings.Builder
	sb.WriteString("Network:\n")
	for _, n := range net.neurons {
		fmt.Fprintf(&sb, "  Neuron(Key: %d, Type: %s, R: %.2f, B: %.2f, F: %.2f)",
			n.key, n.kind, n.receive, n.buffer, n.forward)
		for _, c := range n.connections {
			fmt.Fprintf(&sb, " -> %d (%.2f)", c.to.key, c.weight)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
