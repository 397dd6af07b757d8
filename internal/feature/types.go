package feature

import (
	"fmt"
	"strings"
)

// Kind is the transform a node requests.
type Kind int

const (
	KindNone Kind = iota
	KindCsc
	KindDenoise
	kindCount
)

// Engine is the hardware-class execution path a node is routed to.
type Engine int

const (
	EngineNone Engine = iota
	EngineSfc
	EngineVebox
	EngineRender
	engineCount
)

// KindCount and EngineCount size dispatch tables.
const (
	KindCount   = int(kindCount)
	EngineCount = int(engineCount)
)

var (
	kindNames   = []string{"none", "csc", "denoise"}
	engineNames = []string{"none", "sfc", "vebox", "render"}
)

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (e Engine) String() string {
	if e >= 0 && int(e) < len(engineNames) {
		return engineNames[e]
	}
	return fmt.Sprintf("Engine(%d)", int(e))
}

// ParseKind resolves a kind name.
func ParseKind(value string) (Kind, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for i, name := range kindNames {
		if name == value {
			return Kind(i), nil
		}
	}
	return KindNone, fmt.Errorf("unknown transform kind %q", value)
}

// ParseEngine resolves an engine name. Empty means unrouted.
func ParseEngine(value string) (Engine, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return EngineNone, nil
	}
	for i, name := range engineNames {
		if name == value {
			return Engine(i), nil
		}
	}
	return EngineNone, fmt.Errorf("unknown engine %q", value)
}

// Type is the (kind, engine) key policies dispatch on. Engine is EngineNone
// for generic nodes that have not been routed yet.
type Type struct {
	Kind   Kind
	Engine Engine
}

// Generic returns the unrouted tag for the same kind.
func (t Type) Generic() Type { return Type{Kind: t.Kind} }

// IsGeneric reports whether the type has not been routed to an engine.
func (t Type) IsGeneric() bool { return t.Engine == EngineNone }

func (t Type) String() string {
	if t.IsGeneric() {
		return t.Kind.String()
	}
	return t.Kind.String() + "@" + t.Engine.String()
}

// ParseType accepts "kind" or "kind@engine".
func ParseType(value string) (Type, error) {
	kindPart, enginePart, _ := strings.Cut(value, "@")
	kind, err := ParseKind(kindPart)
	if err != nil {
		return Type{}, err
	}
	engine, err := ParseEngine(enginePart)
	if err != nil {
		return Type{}, err
	}
	return Type{Kind: kind, Engine: engine}, nil
}

// Common routed types.
var (
	CscOnSfc        = Type{Kind: KindCsc, Engine: EngineSfc}
	CscOnVebox      = Type{Kind: KindCsc, Engine: EngineVebox}
	CscOnRender     = Type{Kind: KindCsc, Engine: EngineRender}
	DenoiseOnVebox  = Type{Kind: KindDenoise, Engine: EngineVebox}
	DenoiseOnRender = Type{Kind: KindDenoise, Engine: EngineRender}
	GenericCsc      = Type{Kind: KindCsc}
	GenericDenoise  = Type{Kind: KindDenoise}
)
