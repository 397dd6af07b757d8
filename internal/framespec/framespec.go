package framespec

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"framepass/internal/feature"
	"framepass/internal/filter"
	"framepass/internal/status"
)

// Frame is a decoded description, ready for the resolver.
type Frame struct {
	ID     string
	Source string
	Chain  *filter.Chain
	Passes []feature.ExecuteCaps
}

type document struct {
	ID      string                `toml:"id"`
	Height  uint32                `toml:"height"`
	Inputs  *int                  `toml:"inputs"`
	Outputs *int                  `toml:"outputs"`
	Passes  []feature.ExecuteCaps `toml:"pass"`
	Nodes   []nodeDocument        `toml:"node"`
}

type nodeDocument struct {
	Kind    string                `toml:"kind"`
	Engine  string                `toml:"engine"`
	Side    string                `toml:"side"`
	Index   int                   `toml:"index"`
	Caps    feature.EngineCaps    `toml:"caps"`
	Csc     *filter.CscParams     `toml:"csc"`
	Denoise *filter.DenoiseParams `toml:"denoise"`
}

// Load reads and parses the description at path.
func Load(path string) (*Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read frame description: %w", err)
	}
	frame, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	frame.Source = path
	return frame, nil
}

// Parse decodes a description. Malformed input is reported as
// status.ErrInvalidArgument.
func Parse(data []byte) (*Frame, error) {
	var doc document
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, invalid("decode", strict.String())
		}
		return nil, status.Wrap(status.ErrInvalidArgument, "framespec", "decode", "", err)
	}
	return doc.build()
}

func (d *document) build() (*Frame, error) {
	if len(d.Passes) == 0 {
		return nil, invalid("validate", "at least one [[pass]] is required")
	}
	inputs, outputs := intOr(d.Inputs, 1), intOr(d.Outputs, 1)
	if inputs < 0 || outputs < 0 {
		return nil, invalid("validate", "inputs and outputs must be >= 0")
	}

	id := strings.TrimSpace(d.ID)
	if id == "" {
		id = uuid.NewString()
	}

	chain := filter.NewChain(inputs, outputs)
	for i := range d.Nodes {
		node, isInput, index, err := d.Nodes[i].build(d.Height)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i+1, err)
		}
		if err := chain.Insert(isInput, index, node); err != nil {
			return nil, status.Wrap(status.ErrInvalidArgument, "framespec", "validate", fmt.Sprintf("node %d", i+1), err)
		}
	}
	return &Frame{ID: id, Chain: chain, Passes: d.Passes}, nil
}

func (n *nodeDocument) build(frameHeight uint32) (*filter.Node, bool, int, error) {
	kind, err := feature.ParseKind(n.Kind)
	if err != nil || kind == feature.KindNone {
		return nil, false, 0, invalid("validate", fmt.Sprintf("kind must be csc or denoise, got %q", n.Kind))
	}
	engine, err := feature.ParseEngine(n.Engine)
	if err != nil {
		return nil, false, 0, invalid("validate", err.Error())
	}
	t := feature.Type{Kind: kind, Engine: engine}

	var isInput bool
	switch strings.ToLower(strings.TrimSpace(n.Side)) {
	case "", "input":
		isInput = true
	case "output":
	default:
		return nil, false, 0, invalid("validate", fmt.Sprintf("side must be input or output, got %q", n.Side))
	}

	var node *filter.Node
	switch kind {
	case feature.KindCsc:
		if n.Csc == nil || n.Denoise != nil {
			return nil, false, 0, invalid("validate", "csc nodes take exactly a [node.csc] table")
		}
		node = filter.NewCsc(t, *n.Csc)
	case feature.KindDenoise:
		if n.Denoise == nil || n.Csc != nil {
			return nil, false, 0, invalid("validate", "denoise nodes take exactly a [node.denoise] table")
		}
		p := *n.Denoise
		if p.Height == 0 {
			p.Height = frameHeight
		}
		node = filter.NewDenoise(t, p)
	}
	node.Caps = n.Caps
	return node, isInput, n.Index, nil
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func invalid(operation, message string) error {
	return status.Wrap(status.ErrInvalidArgument, "framespec", operation, message, nil)
}
