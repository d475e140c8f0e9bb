package explore

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/adobe/kompos/errors"
	"github.com/adobe/kompos/pkg/compare"
	"github.com/adobe/kompos/pkg/provenance"
	"github.com/adobe/kompos/pkg/utils"
	"github.com/adobe/kompos/pkg/visualize"
)

var (
	headerColor    = color.New(color.FgCyan, color.Bold)
	ruleColor      = color.New(color.FgCyan)
	layerColor     = color.New(color.FgWhite, color.Faint)
	strongColor    = color.New(color.FgWhite, color.Bold)
	newColor       = color.New(color.FgGreen, color.Bold)
	interpColor    = color.New(color.FgBlue, color.Bold)
	overColor      = color.New(color.FgYellow, color.Bold)
	undefinedColor = color.New(color.FgRed, color.Bold)
	suggestColor   = color.New(color.FgYellow)
	highlightColor = color.New(color.FgYellow, color.Bold, color.Underline)
)

const ruleWidth = 80

// RenderTrace serializes a trace result in the requested format.
func RenderTrace(result *TraceResult, format Format) (string, error) {
	switch format {
	case FormatText:
		return renderTraceText(result), nil
	case FormatYAML:
		return utils.ConvertToYAML(traceDoc(result))
	case FormatJSON:
		return utils.ConvertToJSON(traceDoc(result))
	default:
		return "", errors.Build(errors.ErrUnknownFormat).
			WithExplanationf("trace does not support format %q", format).
			Err()
	}
}

func renderTraceText(result *TraceResult) string {
	t := result.Trace
	var b strings.Builder

	rule := strings.Repeat("=", ruleWidth)
	b.WriteString(ruleColor.Sprint(rule) + "\n")
	b.WriteString(headerColor.Sprintf("VALUE TRACE: %s", t.Key) + "\n")
	b.WriteString(ruleColor.Sprint(rule) + "\n")
	b.WriteString(fmt.Sprintf("Context: %s\n\n", strongColor.Sprint(t.ContextID)))

	if t.NotFound {
		b.WriteString(suggestColor.Sprintf("Key %q not found in any layer.", t.Key) + "\n\n")
		if len(t.Suggestions) > 0 {
			b.WriteString(suggestColor.Sprint("Suggested keys (use the full dotted path):") + "\n")
			for _, s := range t.Suggestions {
				b.WriteString(fmt.Sprintf("  • %s\n", headerColor.Sprint(s)))
			}
			b.WriteString("\nExample:\n")
			b.WriteString(fmt.Sprintf("  kompos %s trace --key %s\n", t.ContextID, headerColor.Sprint(t.Suggestions[0])))
		}
		return b.String()
	}

	for _, record := range t.Records {
		b.WriteString("  " + layerColor.Sprint(record.LayerID) + "\n")

		if record.Raw == nil {
			b.WriteString(fmt.Sprintf("    Value: — %s\n\n", undefinedColor.Sprint("[UNDEFINED]")))
			continue
		}

		display := record.Raw.Display()
		rendered := display
		if record.Diff.Start >= 0 {
			rendered = highlightSpan(display, record.Diff.Start, record.Diff.End)
		}

		b.WriteString(fmt.Sprintf("    Value: %s%s\n", rendered, statusTag(record.Classification)))
		if record.Resolved != nil && record.Resolved.Display() != display {
			b.WriteString(fmt.Sprintf("    Resolved: %s\n", record.Resolved.Display()))
		}
		b.WriteString("\n")
	}

	for _, diag := range result.Diagnostics {
		b.WriteString(suggestColor.Sprintf("Unresolved interpolation: %s", diag) + "\n")
	}

	return b.String()
}

func statusTag(cls provenance.Classification) string {
	switch cls {
	case provenance.New:
		return " " + newColor.Sprint("[NEW]")
	case provenance.Interpolated:
		return " " + interpColor.Sprint("[INTERP]")
	case provenance.Overridden:
		return " " + overColor.Sprint("[OVERRIDE]")
	case provenance.Undefined:
		return " " + undefinedColor.Sprint("[UNDEFINED]")
	default:
		return ""
	}
}

// highlightSpan colors the differing character range of a display
// string.
func highlightSpan(s string, start, end int) string {
	if start < 0 || start >= len(s) || end > len(s) || start >= end {
		return s
	}
	return s[:start] + highlightColor.Sprint(s[start:end]) + s[end:]
}

func traceDoc(result *TraceResult) map[string]any {
	t := result.Trace
	records := make([]map[string]any, 0, len(t.Records))
	for _, record := range t.Records {
		doc := map[string]any{
			"layer":  record.LayerID,
			"status": record.Classification.String(),
		}
		if record.Raw != nil {
			doc["value"] = record.Raw.ToAny()
		}
		if record.Resolved != nil {
			doc["resolved"] = record.Resolved.ToAny()
		}
		if record.Diff.Start >= 0 {
			doc["diff"] = map[string]int{"start": record.Diff.Start, "end": record.Diff.End}
		}
		records = append(records, doc)
	}

	doc := map[string]any{
		"key":     t.Key,
		"context": t.ContextID,
		"trace":   records,
	}
	if t.NotFound {
		doc["not_found"] = true
		doc["suggestions"] = t.Suggestions
	}
	if len(result.Diagnostics) > 0 {
		doc["diagnostics"] = result.Diagnostics
	}
	return doc
}

// RenderAnalyze serializes an analyze result in the requested format.
func RenderAnalyze(result *AnalyzeResult, format Format) (string, error) {
	switch format {
	case FormatText:
		return renderAnalyzeText(result), nil
	case FormatYAML:
		return utils.ConvertToYAML(result)
	case FormatJSON:
		return utils.ConvertToJSON(result)
	default:
		return "", errors.Build(errors.ErrUnknownFormat).
			WithExplanationf("analyze does not support format %q", format).
			Err()
	}
}

const maxListedKeys = 10

func renderAnalyzeText(result *AnalyzeResult) string {
	var b strings.Builder

	rule := strings.Repeat("=", ruleWidth)
	b.WriteString(ruleColor.Sprint(rule) + "\n")
	b.WriteString(headerColor.Sprint("HIERARCHICAL CONFIGURATION ANALYSIS") + "\n")
	b.WriteString(ruleColor.Sprint(rule) + "\n")
	b.WriteString(fmt.Sprintf("Context: %s\n", strongColor.Sprint(result.ContextID)))
	b.WriteString(fmt.Sprintf("Total Layers: %s\n\n", headerColor.Sprint(len(result.Reports))))

	for _, report := range result.Reports {
		b.WriteString(fmt.Sprintf("Layer: %s\n", strongColor.Sprint(report.LayerID)))

		b.WriteString(fmt.Sprintf("  New Keys: %s\n", newColor.Sprint(report.Counts.New)))
		listKeys(&b, report.NewKeys, "+", newColor)

		b.WriteString(fmt.Sprintf("  Overridden Keys: %s\n", overColor.Sprint(report.Counts.Overridden)))
		listKeys(&b, report.OverriddenKeys, "~", overColor)

		b.WriteString(fmt.Sprintf("  Interpolated Keys: %s\n", interpColor.Sprint(report.Counts.Interpolated)))
		listKeys(&b, report.InterpolatedKeys, "~", interpColor)

		b.WriteString(fmt.Sprintf("  Unchanged: %s\n\n", layerColor.Sprint(report.Counts.Unchanged)))
	}

	for _, warning := range result.Warnings {
		b.WriteString(suggestColor.Sprintf("Warning: %s", warning) + "\n")
	}

	return b.String()
}

func listKeys(b *strings.Builder, keys []string, marker string, c *color.Color) {
	for i, key := range keys {
		if i == maxListedKeys {
			b.WriteString(layerColor.Sprintf("    ... and %d more", len(keys)-maxListedKeys) + "\n")
			return
		}
		b.WriteString(fmt.Sprintf("    %s %s\n", c.Sprint(marker), c.Sprint(key)))
	}
}

// RenderCompare serializes a comparison matrix in the requested format.
func RenderCompare(matrix *compare.Matrix, format Format) (string, error) {
	switch format {
	case FormatText:
		return renderCompareText(matrix), nil
	case FormatYAML:
		return utils.ConvertToYAML(compareDoc(matrix))
	case FormatJSON:
		return utils.ConvertToJSON(compareDoc(matrix))
	default:
		return "", errors.Build(errors.ErrUnknownFormat).
			WithExplanationf("compare does not support format %q", format).
			Err()
	}
}

func renderCompareText(matrix *compare.Matrix) string {
	var b strings.Builder

	rule := strings.Repeat("=", ruleWidth)
	b.WriteString(ruleColor.Sprint(rule) + "\n")
	b.WriteString(headerColor.Sprint("CONFIGURATION COMPARISON MATRIX") + "\n")
	b.WriteString(ruleColor.Sprint(rule) + "\n\n")

	for _, row := range matrix.Rows {
		marker := ""
		if row.Differs {
			marker = " " + overColor.Sprint("[DIFFERS]")
		}
		b.WriteString(fmt.Sprintf("Key: %s%s\n", strongColor.Sprint(row.Key), marker))

		for _, cell := range row.Cells {
			display := layerColor.Sprint("(undefined)")
			if cell.Present {
				display = cell.Value.Display()
				if cell.Unresolved {
					display += " " + suggestColor.Sprint("(unresolved)")
				}
			}
			b.WriteString(fmt.Sprintf("  %s: %s\n", layerColor.Sprint(cell.ContextID), display))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func compareDoc(matrix *compare.Matrix) map[string]any {
	rows := make([]map[string]any, 0, len(matrix.Rows))
	for _, row := range matrix.Rows {
		cells := make([]map[string]any, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cellDoc := map[string]any{
				"context": cell.ContextID,
				"present": cell.Present,
			}
			if cell.Present {
				cellDoc["value"] = cell.Value.ToAny()
				if cell.Unresolved {
					cellDoc["unresolved"] = true
				}
			}
			cells = append(cells, cellDoc)
		}
		rows = append(rows, map[string]any{
			"key":     row.Key,
			"differs": row.Differs,
			"cells":   cells,
		})
	}

	return map[string]any{
		"contexts": matrix.Contexts,
		"keys":     rows,
	}
}

// RenderVisualize serializes a hierarchy tree in the requested format.
func RenderVisualize(result *VisualizeResult, format Format) (string, error) {
	switch format {
	case FormatText:
		return visualize.RenderText(result.Tree), nil
	case FormatDOT:
		return visualize.RenderDOT(result.Tree), nil
	case FormatMarkdown:
		return visualize.RenderMarkdown(result.Tree), nil
	case FormatYAML:
		return utils.ConvertToYAML(result.Tree.ToDoc())
	case FormatJSON:
		return utils.ConvertToJSON(result.Tree.ToDoc())
	default:
		return "", errors.Build(errors.ErrUnknownFormat).
			WithExplanationf("visualize does not support format %q", format).
			Err()
	}
}
