package main

import (
	"fmt"
	"strconv"
	"strings"

	"framepass/internal/feature"
	"framepass/internal/plan"
	"framepass/internal/textutil"
)

func renderPlan(frame *plan.Frame, colorize bool) string {
	var b strings.Builder

	kind := statusOK
	if len(frame.Unresolved) > 0 {
		kind = statusWarn
	}
	steps := frame.StepCount()
	summary := fmt.Sprintf("%s (%d %s, %d %s)",
		frame.ID,
		len(frame.Passes), textutil.Plural(len(frame.Passes), "pass", "passes"),
		steps, textutil.Plural(steps, "step", "steps"),
	)
	b.WriteString(renderStatusLine("Frame", kind, summary, colorize))
	b.WriteString("\n")
	if len(frame.Unresolved) > 0 {
		b.WriteString(renderStatusLine("Unresolved", statusWarn, strconv.Itoa(len(frame.Unresolved)), colorize))
		b.WriteString("\n")
	}

	writeSection(&b, "Plan", colorize)
	rows := make([][]string, 0, steps)
	for _, pass := range frame.Passes {
		engines := passEngines(pass.Caps)
		if len(pass.Steps) == 0 {
			rows = append(rows, []string{strconv.Itoa(pass.Index), engines, "-", "(no work)", "-"})
			continue
		}
		for i, step := range pass.Steps {
			if i > 0 {
				engines = ""
			}
			rows = append(rows, []string{
				strconv.Itoa(pass.Index),
				engines,
				strconv.Itoa(i + 1),
				step.Name,
				step.Setter,
			})
		}
	}
	b.WriteString(renderTable([]column{colPass, {title: "Engines"}, colSeq, colFeature, colSetter}, rows))
	b.WriteString("\n")

	if len(frame.Decisions) > 0 {
		writeSection(&b, "Decisions", colorize)
		rows = rows[:0]
		for _, d := range frame.Decisions {
			rows = append(rows, []string{
				strconv.Itoa(d.Pass),
				titleLabel(d.Kind),
				d.Subject,
				titleLabel(d.Result),
				textutil.OrDash(d.Reason),
			})
		}
		b.WriteString(renderTable([]column{colPass, {title: "Decision"}, {title: "Subject"}, {title: "Result"}, colReason}, rows))
		b.WriteString("\n")
	}

	if len(frame.Unresolved) > 0 {
		writeSection(&b, "Unresolved", colorize)
		rows = rows[:0]
		for _, u := range frame.Unresolved {
			rows = append(rows, []string{u.Type, u.Caps, u.Reason})
		}
		b.WriteString(renderTable([]column{colFeature, colCaps, colReason}, rows))
		b.WriteString("\n")
	}
	return b.String()
}

func writeSection(b *strings.Builder, title string, colorize bool) {
	b.WriteString("\n")
	for _, line := range renderSectionHeader(title, colorize) {
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func passEngines(caps feature.ExecuteCaps) string {
	engines := caps.Engines()
	if len(engines) == 0 {
		return "-"
	}
	names := make([]string, 0, len(engines))
	for _, e := range engines {
		names = append(names, engineLabel(e.String()))
	}
	return strings.Join(names, "+")
}
