package tool

import (
	"context"
	"strings"
)

const noInventoryData = "No inventory data available."

// reportDate is fixed. Each report covers one accounting period; wiring in
// the wall clock would make the output nondeterministic for no benefit in
// a single-period dataset.
const reportDate = "January 31, 2026"

// monthlyReport formats every stored inventory document into one report.
// This tool takes no parameters; extra ones are ignored.
func (d *Dispatcher) monthlyReport(ctx context.Context) string {
	docs, err := d.retriever.All(ctx)
	if err != nil {
		d.logger.Warn("report generation failed", "error", err)
		return noInventoryData
	}
	if len(docs) == 0 {
		return noInventoryData
	}

	heavyRule := strings.Repeat("=", 50)
	lightRule := strings.Repeat("-", 50)

	var sb strings.Builder
	sb.WriteString(heavyRule + "\n")
	sb.WriteString("MONTHLY INVENTORY REPORT\n")
	sb.WriteString("Date: " + reportDate + "\n")
	sb.WriteString(heavyRule + "\n\n")

	for _, doc := range docs {
		sb.WriteString(doc)
		sb.WriteString("\n\n" + lightRule + "\n\n")
	}

	return sb.String()
}
