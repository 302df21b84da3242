package tui

import (
	"fmt"
	"strings"

	"layerfill/internal/adapters/tui/styles"
	"layerfill/internal/application/commands"
	"layerfill/internal/domain"
)

// SummaryRow is one label/value line of RenderTable
type SummaryRow struct {
	Label string
	Value string
}

// RenderTable draws label/value rows between two rules
func RenderTable(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, len(row.Label))
		valueWidth = max(valueWidth, len(row.Value))
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		lines = append(lines, fmt.Sprintf("%s | %s", styles.Label.Render(label), styles.Value.Render(value)))
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// RenderSummary reports an import: totals, then each applied image and
// each skipped file with its reason
func RenderSummary(result *domain.ImportResult) string {
	if result == nil {
		return styles.MutedText.Render("No import data available")
	}

	var b strings.Builder
	b.WriteString(RenderTable([]SummaryRow{
		{Label: "Images", Value: fmt.Sprintf("%d", result.TotalImages)},
		{Label: "Mapped", Value: fmt.Sprintf("%d", result.Mapped)},
		{Label: "Skipped", Value: fmt.Sprintf("%d", result.Skipped)},
	}))
	b.WriteString("\n")

	for _, a := range result.Applied {
		fmt.Fprintf(&b, "%s %s %s %s\n",
			styles.Success.Render("✓"),
			a.Filename,
			styles.MutedText.Render("→"),
			styles.LayerPath.Render(a.LayerPath))
	}
	for _, s := range result.SkippedDetails {
		fmt.Fprintf(&b, "%s %s %s\n",
			styles.Skipped.Render("✗"),
			s.Filename,
			styles.MutedText.Render("("+s.Reason+")"))
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderLayers lists the fillable layers of a container, flagging names
// shared by more than one layer
func RenderLayers(result *commands.ListLayersResult) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(result.Container.Name()))
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("  %d fillable names", len(result.Buckets))))
	b.WriteString("\n")

	for _, bucket := range result.Buckets {
		for i, layer := range bucket.Layers {
			line := fmt.Sprintf("%-24s %s %s",
				bucket.Name,
				styles.LayerKind.Render(strings.ToLower(layer.Kind.String())),
				styles.LayerPath.Render(layer.Path))
			if i > 0 {
				line += styles.Duplicate.Render("  (shadowed)")
			}
			b.WriteString(line + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderError formats a command failure for the terminal
func RenderError(err error) string {
	return styles.ErrorMsg.Render("Error: " + err.Error())
}

// RenderImages lists stored image resources
func RenderImages(images []domain.ImageResource) string {
	if len(images) == 0 {
		return styles.MutedText.Render("No images stored")
	}

	var b strings.Builder
	for _, img := range images {
		fmt.Fprintf(&b, "%s  %-4s %5dx%-5d %s\n",
			img.Hash,
			img.Format,
			img.Width,
			img.Height,
			styles.MutedText.Render(fmt.Sprintf("%d bytes", img.Size)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
