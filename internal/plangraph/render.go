package plangraph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"

	"framepass/internal/feature"
	"framepass/internal/plan"
	"framepass/internal/textutil"
)

const unresolvedCluster = "cluster_unresolved"

// PassCluster returns the subgraph name used for pass index (1-based).
func PassCluster(index int) string {
	return fmt.Sprintf("cluster_pass_%d", index)
}

// StepNode returns the node name used for step seq (1-based) of pass index.
func StepNode(index, seq int) string {
	return fmt.Sprintf("p%d_s%02d", index, seq)
}

// Render returns frame as DOT source.
func Render(frame *plan.Frame) (string, error) {
	if frame == nil {
		return "", errors.New("plangraph: nil frame")
	}
	g := gographviz.NewGraph()
	name := textutil.Identifier("plan_" + frame.ID)
	if err := g.SetName(name); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}
	if err := g.AddAttr(name, "rankdir", "LR"); err != nil {
		return "", err
	}
	if err := g.AddAttr(name, "label", quote("frame "+frame.ID)); err != nil {
		return "", err
	}

	prev := ""
	for _, pass := range frame.Passes {
		cluster := PassCluster(pass.Index)
		if err := g.AddSubGraph(name, cluster, map[string]string{
			"label": quote(passLabel(pass)),
			"style": "rounded",
		}); err != nil {
			return "", fmt.Errorf("pass %d: %w", pass.Index, err)
		}
		if len(pass.Steps) == 0 {
			idle := fmt.Sprintf("p%d_idle", pass.Index)
			if err := g.AddNode(cluster, idle, map[string]string{
				"label": quote("no work"),
				"shape": "plaintext",
			}); err != nil {
				return "", err
			}
			continue
		}
		for i, step := range pass.Steps {
			node := StepNode(pass.Index, i+1)
			if err := g.AddNode(cluster, node, map[string]string{
				"label": quote(step.Name + "\n" + step.Setter),
				"shape": "box",
				"color": engineColor(step.Type.Engine),
			}); err != nil {
				return "", fmt.Errorf("step %s: %w", node, err)
			}
			if prev != "" {
				if err := g.AddEdge(prev, node, true, nil); err != nil {
					return "", err
				}
			}
			prev = node
		}
	}

	if len(frame.Unresolved) > 0 {
		if err := g.AddSubGraph(name, unresolvedCluster, map[string]string{
			"label": quote("unresolved"),
			"style": "dashed",
		}); err != nil {
			return "", err
		}
		for i, u := range frame.Unresolved {
			if err := g.AddNode(unresolvedCluster, fmt.Sprintf("u%02d", i+1), map[string]string{
				"label": quote(u.Type + "\n" + u.Reason),
				"shape": "box",
				"style": "dashed",
			}); err != nil {
				return "", err
			}
		}
	}

	out, err := g.WriteAst()
	if err != nil {
		return "", fmt.Errorf("write dot: %w", err)
	}
	return out.String(), nil
}

func passLabel(pass plan.Pass) string {
	engines := pass.Caps.Engines()
	names := make([]string, 0, len(engines))
	for _, e := range engines {
		names = append(names, e.String())
	}
	if len(names) == 0 {
		names = append(names, "no engines")
	}
	return fmt.Sprintf("pass %d (%s)", pass.Index, strings.Join(names, ", "))
}

func engineColor(e feature.Engine) string {
	switch e {
	case feature.EngineSfc:
		return "blue"
	case feature.EngineVebox:
		return "darkgreen"
	case feature.EngineRender:
		return "orange"
	default:
		return "black"
	}
}

// quote renders value as a DOT string literal. gographviz writes attribute
// values verbatim.
func quote(value string) string {
	return strconv.Quote(value)
}
