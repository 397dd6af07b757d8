package plan

import (
	"time"

	"framepass/internal/calc"
	"framepass/internal/feature"
)

// Step is one applied plan node, captured after the builder accepted it.
type Step struct {
	Type   feature.Type `json:"-"`
	Name   string       `json:"type"`
	Setter string       `json:"setter"`
	Block  calc.Block   `json:"block"`
}

// Pass groups the steps resolved under one capability set.
type Pass struct {
	Index int                 `json:"index"`
	Caps  feature.ExecuteCaps `json:"caps"`
	Steps []Step              `json:"steps"`
}

// Decision records a routing, split, or gating choice made while resolving.
type Decision struct {
	Pass    int    `json:"pass"`
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Result  string `json:"result"`
	Reason  string `json:"reason"`
}

// Unresolved is a node no pass could place. Composition picks these up
// downstream.
type Unresolved struct {
	Type   string `json:"type"`
	Caps   string `json:"caps"`
	Reason string `json:"reason"`
}

// Frame is the resolved plan for one frame.
type Frame struct {
	ID         string       `json:"id"`
	ResolvedAt time.Time    `json:"resolved_at"`
	Passes     []Pass       `json:"passes"`
	Unresolved []Unresolved `json:"unresolved,omitempty"`
	Decisions  []Decision   `json:"decisions,omitempty"`
}

// StepCount returns the number of steps across all passes.
func (f *Frame) StepCount() int {
	total := 0
	for _, p := range f.Passes {
		total += len(p.Steps)
	}
	return total
}
