package visualize

import (
	"fmt"
	"strings"
)

// RenderMarkdown serializes the tree as a markdown document suitable
// for docs and pull-request summaries.
func RenderMarkdown(t *Tree) string {
	var b strings.Builder

	b.WriteString("# Configuration Hierarchy\n\n")
	b.WriteString(fmt.Sprintf("Context: `%s`\n\n", t.ContextID))
	b.WriteString("## Layers\n\n")

	for _, n := range t.Nodes() {
		b.WriteString(fmt.Sprintf("### %s\n\n", n.ID))
		b.WriteString(fmt.Sprintf("- **Keys**: %d\n", n.KeyCount))
		if n.Depth > 0 {
			b.WriteString(fmt.Sprintf("- **Delta**: %+d\n", n.Delta))
		}
		b.WriteString(fmt.Sprintf("- **New**: %d\n", n.Report.Counts.New))
		b.WriteString(fmt.Sprintf("- **Overridden**: %d\n", n.Report.Counts.Overridden))
		b.WriteString(fmt.Sprintf("- **Interpolated**: %d\n", n.Report.Counts.Interpolated))

		if len(n.Report.Files) > 0 {
			b.WriteString("- **Files**:\n")
			for _, f := range n.Report.Files {
				b.WriteString(fmt.Sprintf("  - `%s` (+%d new, ~%d interpolated, !%d overridden)\n",
					f.File, f.Counts.New, f.Counts.Interpolated, f.Counts.Overridden))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
