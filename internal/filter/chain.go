package filter

import (
	"fmt"

	"framepass/internal/feature"
)

// Shape classifies a chain by its surface counts.
type Shape int

const (
	ShapeInvalid Shape = iota
	ShapeOneToOne
	ShapeNToOne
	ShapeOneToN
	ShapeZeroToOne
)

func (s Shape) String() string {
	switch s {
	case ShapeOneToOne:
		return "1:1"
	case ShapeNToOne:
		return "N:1"
	case ShapeOneToN:
		return "1:N"
	case ShapeZeroToOne:
		return "0:1"
	default:
		return "invalid"
	}
}

// Chain is one frame's requested processing, grouped per surface. Inputs[i]
// holds the nodes applied to input surface i, Outputs[j] those applied to
// output surface j.
type Chain struct {
	Inputs  [][]*Node
	Outputs [][]*Node
}

// NewChain returns an empty chain with the given surface counts.
func NewChain(inputs, outputs int) *Chain {
	c := &Chain{
		Inputs:  make([][]*Node, inputs),
		Outputs: make([][]*Node, outputs),
	}
	return c
}

// NewOneToOne builds a single-input single-output chain with nodes on the
// input side.
func NewOneToOne(nodes ...*Node) *Chain {
	c := NewChain(1, 1)
	c.Inputs[0] = append(c.Inputs[0], nodes...)
	return c
}

// EmptyLike returns a chain with the same surface counts and no nodes.
func (c *Chain) EmptyLike() *Chain {
	return NewChain(len(c.Inputs), len(c.Outputs))
}

// Shape reports the chain's surface shape.
func (c *Chain) Shape() Shape {
	if c == nil {
		return ShapeInvalid
	}
	in, out := len(c.Inputs), len(c.Outputs)
	switch {
	case in == 1 && out == 1:
		return ShapeOneToOne
	case in > 1 && out == 1:
		return ShapeNToOne
	case in == 1 && out > 1:
		return ShapeOneToN
	case in == 0 && out == 1:
		return ShapeZeroToOne
	default:
		return ShapeInvalid
	}
}

func (c *Chain) side(isInput bool) [][]*Node {
	if isInput {
		return c.Inputs
	}
	return c.Outputs
}

// Find returns the first node of type t on the given surface.
func (c *Chain) Find(isInput bool, index int, t feature.Type) *Node {
	side := c.side(isInput)
	if index < 0 || index >= len(side) {
		return nil
	}
	for _, n := range side[index] {
		if n.Type == t {
			return n
		}
	}
	return nil
}

// Insert appends n to the given surface.
func (c *Chain) Insert(isInput bool, index int, n *Node) error {
	side := c.side(isInput)
	if index < 0 || index >= len(side) {
		return fmt.Errorf("surface index %d out of range (inputs=%d outputs=%d, input side=%t)", index, len(c.Inputs), len(c.Outputs), isInput)
	}
	if n == nil {
		return fmt.Errorf("nil node")
	}
	side[index] = append(side[index], n)
	return nil
}

// Remove drops n from whichever surface holds it.
func (c *Chain) Remove(n *Node) bool {
	for _, side := range [][][]*Node{c.Inputs, c.Outputs} {
		for i, nodes := range side {
			for j, candidate := range nodes {
				if candidate == n {
					side[i] = append(nodes[:j:j], nodes[j+1:]...)
					return true
				}
			}
		}
	}
	return false
}

// Replace swaps old for replacement in place.
func (c *Chain) Replace(old, replacement *Node) bool {
	for _, side := range [][][]*Node{c.Inputs, c.Outputs} {
		for _, nodes := range side {
			for j, candidate := range nodes {
				if candidate == old {
					nodes[j] = replacement
					return true
				}
			}
		}
	}
	return false
}

// Entry is a node together with its position.
type Entry struct {
	Node    *Node
	IsInput bool
	Index   int
}

// Entries snapshots every node, inputs first, in surface order.
func (c *Chain) Entries() []Entry {
	var out []Entry
	for i, nodes := range c.Inputs {
		for _, n := range nodes {
			out = append(out, Entry{Node: n, IsInput: true, Index: i})
		}
	}
	for i, nodes := range c.Outputs {
		for _, n := range nodes {
			out = append(out, Entry{Node: n, IsInput: false, Index: i})
		}
	}
	return out
}

// Len returns the total node count.
func (c *Chain) Len() int {
	total := 0
	for _, nodes := range c.Inputs {
		total += len(nodes)
	}
	for _, nodes := range c.Outputs {
		total += len(nodes)
	}
	return total
}
