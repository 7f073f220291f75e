package neat

import (
	"fmt"
)

// NodeType is the role a node plays in the network.
type NodeType int

const (
	InputNode NodeType = iota
	OutputNode
	BiasNode
	HiddenNode
)

// String returns the name of the node type.
func (t NodeType) String() string {
	switch t {
	case InputNode:
		return "Input"
	case OutputNode:
		return "Output"
	case BiasNode:
		return "Bias"
	case HiddenNode:
		return "Hidden"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// ParseNodeType converts a node type name back into a NodeType.
func ParseNodeType(name string) (NodeType, error) {
	switch name {
	case "Input", "input":
		return InputNode, nil
	case "Output", "output":
		return OutputNode, nil
	case "Bias", "bias":
		return BiasNode, nil
	case "Hidden", "hidden":
		return HiddenNode, nil
	}
	return 0, fmt.Errorf("unknown node type %q", name)
}

const (
	// NoThreshold marks a node created without an explicit activation threshold.
	// The decoder uses it as the firing threshold as-is.
	NoThreshold = -2.0
	// NoInnovation marks a link that has not been through the innovation ledger.
	NoInnovation = -1
)

// --------------------------- NodeGene ---------------------------

// NodeGene represents a vertex of the network. Identity is the Key alone.
type NodeGene struct {
	Key       int
	Type      NodeType
	Threshold float64
}

// NewNodeGene creates a node without an explicit threshold.
func NewNodeGene(key int, nodeType NodeType) NodeGene {
	return NodeGene{Key: key, Type: nodeType, Threshold: NoThreshold}
}

// NewNodeGeneWithThreshold creates a node with an explicit activation threshold.
func NewNodeGeneWithThreshold(key int, nodeType NodeType, threshold float64) NodeGene {
	return NodeGene{Key: key, Type: nodeType, Threshold: threshold}
}

// Same reports whether two nodes share a key.
func (ng NodeGene) Same(other NodeGene) bool {
	return ng.Key == other.Key
}

// String returns a string representation of the NodeGene.
func (ng NodeGene) String() string {
	return fmt.Sprintf("NodeGene(Key: %d, Type: %s, Threshold: %.3f)", ng.Key, ng.Type, ng.Threshold)
}

// --------------------------- ConnectionGene ---------------------------

// ConnectionKey identifies a gene by its (source, target) pair.
type ConnectionKey struct {
	InNodeID  int
	OutNodeID int
}

// ConnectionGene is a directed weighted edge. Two genes with the same Key are the
// same gene regardless of Weight, Enabled or Innovation.
type ConnectionGene struct {
	Key        ConnectionKey
	Weight     float64
	Enabled    bool
	Innovation int
}

// NewConnectionGene creates a gene that has not yet been assigned an innovation id.
func NewConnectionGene(in, out int, weight float64, enabled bool) ConnectionGene {
	return ConnectionGene{
		Key:        ConnectionKey{InNodeID: in, OutNodeID: out},
		Weight:     weight,
		Enabled:    enabled,
		Innovation: NoInnovation,
	}
}

// In is the source node key.
func (cg ConnectionGene) In() int { return cg.Key.InNodeID }

// Out is the target node key.
func (cg ConnectionGene) Out() int { return cg.Key.OutNodeID }

// Same reports gene identity, which is decided by the (source, target) pair only.
func (cg ConnectionGene) Same(other ConnectionGene) bool {
	return cg.Key == other.Key
}

// String returns a string representation of the ConnectionGene.
func (cg ConnectionGene) String() string {
	return fmt.Sprintf("ConnGene(Key: %d->%d, Innovation: %d, Weight: %.3f, Enabled: %t)",
		cg.Key.InNodeID, cg.Key.OutNodeID, cg.Innovation, cg.Weight, cg.Enabled)
}
