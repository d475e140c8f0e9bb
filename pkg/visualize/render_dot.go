package visualize

import (
	"fmt"
	"strings"
)

// RenderDOT serializes the tree as a GraphViz digraph. Node fill colors
// follow the size buckets; edges carry the key delta.
func RenderDOT(t *Tree) string {
	var b strings.Builder

	b.WriteString("digraph hierarchy {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  bgcolor=\"white\";\n")
	b.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Arial\", fontsize=12];\n")
	b.WriteString("  edge [fontname=\"Arial\", fontsize=10];\n\n")

	b.WriteString("  subgraph cluster_legend {\n")
	b.WriteString("    label=\"Legend\";\n")
	b.WriteString("    style=filled;\n")
	b.WriteString("    color=lightgrey;\n")
	b.WriteString("    node [shape=plaintext];\n")
	b.WriteString("    legend [label=\"green: small\\ncyan: medium\\nyellow: large\\nedge +N: keys added\"];\n")
	b.WriteString("  }\n\n")

	nodes := t.Nodes()
	for i, n := range nodes {
		label := dotLabel(n)
		b.WriteString(fmt.Sprintf("  layer%d [label=%s, fillcolor=%q];\n", i, label, dotFill(n.Bucket)))

		if i > 0 {
			edgeLabel := "inherited"
			if n.Delta > 0 {
				edgeLabel = fmt.Sprintf("+%d", n.Delta)
			}
			b.WriteString(fmt.Sprintf("  layer%d -> layer%d [label=%q, color=\"darkgreen\", fontcolor=\"darkgreen\"];\n",
				i-1, i, edgeLabel))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// dotLabel builds an HTML-like node label: path, key count and up to
// three contributing files.
func dotLabel(n *Node) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("<b>%s</b>", strings.ReplaceAll(n.ID, "/", "/<br/>")))
	lines = append(lines, fmt.Sprintf("<font point-size=\"10\">Total: %d keys</font>", n.KeyCount))
	if n.Depth > 0 && n.Delta > 0 {
		lines = append(lines, fmt.Sprintf("<font point-size=\"10\" color=\"darkgreen\">(+%d)</font>", n.Delta))
	}

	const maxFiles = 3
	for i, f := range n.Report.Files {
		if i == maxFiles {
			lines = append(lines, fmt.Sprintf("<font point-size=\"9\">... +%d more</font>", len(n.Report.Files)-maxFiles))
			break
		}
		total := f.Counts.New + f.Counts.Interpolated + f.Counts.Overridden
		if total > 0 {
			lines = append(lines, fmt.Sprintf("<font point-size=\"9\">• %s (+%d)</font>", f.File, total))
		} else {
			lines = append(lines, fmt.Sprintf("<font point-size=\"9\">• %s</font>", f.File))
		}
	}

	return "<" + strings.Join(lines, "<br/>") + ">"
}

func dotFill(bucket Bucket) string {
	switch bucket {
	case BucketSmall:
		return "lightgreen"
	case BucketMedium:
		return "lightblue"
	default:
		return "lightyellow"
	}
}
