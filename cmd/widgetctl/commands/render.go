// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/widgets/cmd/widgetctl/cli"
	"github.com/bureau-foundation/widgets/lib/widget"
)

// highlightFormatter returns the chroma formatter for stdout's color
// profile, or "" for plain output. NO_COLOR and pipes give plain output
// unless force is set.
func highlightFormatter(force bool) string {
	profile := termenv.Ascii
	if file, ok := stdout.(*os.File); ok && cli.IsTerminal(file) {
		profile = termenv.NewOutput(file).EnvColorProfile()
	}
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	}
	if force {
		return "terminal256"
	}
	return ""
}

// writeHighlightedJSON writes data indented, highlighted with formatter
// unless it is empty.
func writeHighlightedJSON(w io.Writer, data []byte, formatter string) error {
	var indented bytes.Buffer
	if err := json.Indent(&indented, data, "", "  "); err != nil {
		return fmt.Errorf("formatting JSON: %w", err)
	}
	indented.WriteByte('\n')
	if formatter != "" {
		if err := quick.Highlight(w, indented.String(), "json", formatter, "monokai"); err == nil {
			return nil
		}
	}
	_, err := w.Write(indented.Bytes())
	return err
}

// summaryWidth bounds the attribute summary printed next to an element.
const summaryWidth = 60

// inspectStyles are the styles of the inspect tree. Rendering through a
// renderer bound to the output keeps escape codes out of pipes.
type inspectStyles struct {
	size, element, summary, enumerator lipgloss.Style
}

func newInspectStyles(w io.Writer) inspectStyles {
	renderer := lipgloss.NewRenderer(w)
	return inspectStyles{
		size:       renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		element:    renderer.NewStyle().Foreground(lipgloss.Color("12")),
		summary:    renderer.NewStyle().Faint(true),
		enumerator: renderer.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// renderInspect draws every size family of config as a tree followed
// by element counts.
func renderInspect(w io.Writer, config *widget.Config) error {
	styles := newInspectStyles(w)
	for _, size := range widget.Sizes {
		root := config.Layout(size)
		if root == nil {
			continue
		}
		layout := tree.Root(styles.size.Render(string(size))).
			Child(elementTree(root, styles)).
			EnumeratorStyle(styles.enumerator)
		if _, err := fmt.Fprintln(w, layout.String()); err != nil {
			return err
		}
	}

	counts := widget.Count(config)
	types := make([]widget.ElementType, 0, len(counts))
	total := 0
	for elementType, count := range counts {
		types = append(types, elementType)
		total += count
	}
	slices.Sort(types)
	parts := make([]string, 0, len(types))
	for _, elementType := range types {
		parts = append(parts, fmt.Sprintf("%s=%d", elementType, counts[elementType]))
	}
	_, err := fmt.Fprintf(w, "\n%d elements: %s\n", total, strings.Join(parts, " "))
	return err
}

func elementTree(element widget.Element, styles inspectStyles) *tree.Tree {
	label := styles.element.Render(string(element.Type()))
	if summary := summarize(element); summary != "" {
		label += " " + styles.summary.Render(summary)
	}
	node := tree.Root(label).EnumeratorStyle(styles.enumerator)
	if parent, ok := element.(widget.Parent); ok {
		for _, child := range parent.ChildElements() {
			node.Child(elementTree(child, styles))
		}
	}
	return node
}

// summarize lists the scalar attributes of element as key=value pairs,
// sorted by key and truncated to summaryWidth.
func summarize(element widget.Element) string {
	data, err := json.Marshal(element)
	if err != nil {
		return ""
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for key, value := range fields {
		if key == "type" || len(value) == 0 || value[0] == '{' || value[0] == '[' {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+string(fields[key]))
	}
	summary := strings.Join(parts, " ")
	if runes := []rune(summary); len(runes) > summaryWidth {
		summary = string(runes[:summaryWidth-3]) + "..."
	}
	return summary
}
