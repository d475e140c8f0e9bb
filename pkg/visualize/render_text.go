package visualize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	ruleColor    = color.New(color.FgCyan, color.Faint)
	layerColor   = color.New(color.FgWhite, color.Bold)
	newColor     = color.New(color.FgGreen, color.Bold)
	interpColor  = color.New(color.FgBlue, color.Bold)
	overColor    = color.New(color.FgYellow, color.Bold)
	fileColor    = color.New(color.FgCyan, color.Faint)
	faintColor   = color.New(color.FgWhite, color.Faint)
	inheritColor = color.New(color.FgMagenta, color.Faint)
)

const ruleWidth = 80

// RenderText serializes the tree as an indented, colored hierarchy with
// per-layer contribution summaries and a legend.
func RenderText(t *Tree) string {
	var b strings.Builder

	rule := strings.Repeat("=", ruleWidth)
	b.WriteString(ruleColor.Sprint(rule) + "\n")
	b.WriteString(headerColor.Sprint("CONFIGURATION HIERARCHY") + "\n")
	b.WriteString(ruleColor.Sprint(rule) + "\n")
	b.WriteString(fmt.Sprintf("Context: %s\n", layerColor.Sprint(t.ContextID)))

	nodes := t.Nodes()
	b.WriteString(fmt.Sprintf("Total Layers: %s\n\n", headerColor.Sprint(len(nodes))))

	renderContributions(&b, nodes)
	renderChain(&b, nodes)
	renderLegend(&b)

	return b.String()
}

// renderContributions lists layers by descending key delta, with each
// file's own counts.
func renderContributions(b *strings.Builder, nodes []*Node) {
	var contributors []*Node
	total := 0
	for _, n := range nodes {
		total = n.KeyCount
		if n.Delta > 0 || n.Depth == 0 && n.KeyCount > 0 {
			contributors = append(contributors, n)
		}
	}
	if len(contributors) == 0 {
		return
	}

	b.WriteString(headerColor.Sprint("Key Contributions by Layer:") + "\n")
	b.WriteString(fmt.Sprintf("Total Keys: %s\n\n", overColor.Sprint(total)))

	sorted := make([]*Node, len(contributors))
	copy(sorted, contributors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return contribution(sorted[i]) > contribution(sorted[j])
	})

	for _, n := range sorted {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", newColor.Sprintf("+%d", contribution(n)), layerColor.Sprint(n.ID)))
		renderFileStats(b, n, "      ")
		b.WriteString("\n")
	}

	b.WriteString(ruleColor.Sprint(strings.Repeat("-", ruleWidth)) + "\n\n")
}

func contribution(n *Node) int {
	if n.Depth == 0 {
		return n.KeyCount
	}
	return n.Delta
}

// renderChain draws the root-to-leaf tree with per-layer counts, file
// stats and the unaccounted interpolation-inheritance line.
func renderChain(b *strings.Builder, nodes []*Node) {
	for i, n := range nodes {
		indent := strings.Repeat("  ", n.Depth)
		branch := "├─"
		if i == len(nodes)-1 {
			branch = "└─"
		}

		b.WriteString(fmt.Sprintf("%s%s %s\n", indent, newColor.Sprint(branch), layerColor.Sprint(n.ID)))

		deltaStr := ""
		if i > 0 {
			switch {
			case n.Delta > 0:
				deltaStr = " " + newColor.Sprintf("(+%d)", n.Delta)
			case n.Delta == 0:
				deltaStr = " " + faintColor.Sprint("(no change)")
			default:
				deltaStr = " " + color.New(color.FgRed, color.Bold).Sprintf("(%d)", n.Delta)
			}
		}
		b.WriteString(fmt.Sprintf("%s   Keys: %s%s\n", indent, bucketColor(n.Bucket).Sprint(n.KeyCount), deltaStr))

		renderFileStats(b, n, indent+"     ")

		// Keys gained through merge inheritance rather than this layer's
		// own files.
		accounted := 0
		for _, f := range n.Report.Files {
			accounted += f.Counts.New + f.Counts.Overridden + f.Counts.Interpolated
		}
		if i > 0 && n.Delta > 0 && accounted < n.Delta {
			b.WriteString(fmt.Sprintf("%s     %s %s\n", indent,
				inheritColor.Sprintf("(interpolation inheritance) (+%d)", n.Delta-accounted),
				faintColor.Sprintf("from %s", nodes[i-1].ID)))
		}

		b.WriteString("\n")
	}
}

func renderFileStats(b *strings.Builder, n *Node, indent string) {
	for _, f := range n.Report.Files {
		var parts []string
		if f.Counts.New > 0 {
			parts = append(parts, newColor.Sprintf("+%d", f.Counts.New))
		}
		if f.Counts.Interpolated > 0 {
			parts = append(parts, interpColor.Sprintf("~%d", f.Counts.Interpolated))
		}
		if f.Counts.Overridden > 0 {
			parts = append(parts, overColor.Sprintf("!%d", f.Counts.Overridden))
		}

		line := fmt.Sprintf("%s%s %s", indent, fileColor.Sprint("•"), fileColor.Sprint(f.File))
		if len(parts) > 0 {
			line += " (" + strings.Join(parts, ", ") + ")"
		}
		b.WriteString(line + "\n")
	}
}

func renderLegend(b *strings.Builder) {
	b.WriteString(ruleColor.Sprint(strings.Repeat("-", ruleWidth)) + "\n\n")
	b.WriteString(headerColor.Sprint("Legend:") + "\n")
	b.WriteString(fmt.Sprintf("  %s    New keys (first appearance)\n", newColor.Sprint("+N")))
	b.WriteString(fmt.Sprintf("  %s    Interpolation resolved (fewer {{}} tokens)\n", interpColor.Sprint("~N")))
	b.WriteString(fmt.Sprintf("  %s    Override (value changed)\n", overColor.Sprint("!N")))
	b.WriteString(fmt.Sprintf("  %s Keys inherited through the merge from parent layers\n", inheritColor.Sprint("(interpolation inheritance)")))
}

func bucketColor(bucket Bucket) *color.Color {
	switch bucket {
	case BucketSmall:
		return color.New(color.FgWhite, color.Bold)
	case BucketMedium:
		return color.New(color.FgCyan, color.Bold)
	default:
		return color.New(color.FgYellow, color.Bold)
	}
}
