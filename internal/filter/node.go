package filter

import (
	"fmt"

	"framepass/internal/feature"
)

// Node is one requested transform plus its routing state.
type Node struct {
	Type   feature.Type
	Caps   feature.EngineCaps
	Params Params
}

// NewCsc builds a node for a colour request.
func NewCsc(t feature.Type, p CscParams) *Node {
	return &Node{Type: feature.Type{Kind: feature.KindCsc, Engine: t.Engine}, Params: &p}
}

// NewDenoise builds a node for a denoise request.
func NewDenoise(t feature.Type, p DenoiseParams) *Node {
	return &Node{Type: feature.Type{Kind: feature.KindDenoise, Engine: t.Engine}, Params: &p}
}

// Clone returns a deep copy that shares nothing with n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Type: n.Type, Caps: n.Caps}
	if n.Params != nil {
		out.Params = n.Params.cloneParams()
	}
	return out
}

// Csc returns the colour request when the node carries one.
func (n *Node) Csc() (*CscParams, bool) {
	p, ok := n.Params.(*CscParams)
	return p, ok
}

// Denoise returns the denoise request when the node carries one.
func (n *Node) Denoise() (*DenoiseParams, bool) {
	p, ok := n.Params.(*DenoiseParams)
	return p, ok
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s[%s]", n.Type, n.Caps)
}
