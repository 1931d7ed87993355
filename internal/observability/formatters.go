// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/dividend-extractor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for run summaries and debug mode.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSymbolResult outputs a human-readable summary of one processed symbol.
func (p *Printer) PrintSymbolResult(result *types.SymbolResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", result.InstrumentName))
	sb.WriteString(fmt.Sprintf("Exchange:  %s\n", result.Exchange))
	sb.WriteString(fmt.Sprintf("Dividends: %d\n", len(result.Dividends)))

	count := min(len(result.Dividends), maxItemsToShow)
	for i := 0; i < count; i++ {
		d := result.Dividends[i]
		sb.WriteString(fmt.Sprintf("  • %s  %.4f\n", d.ExDate, d.Amount))
	}
	if len(result.Dividends) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Dividends)-maxItemsToShow))
	}

	sb.WriteString(fmt.Sprintf("Reports:   %d\n", len(result.SECReports)))
	count = min(len(result.SECReports), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := result.SECReports[i]
		sb.WriteString(fmt.Sprintf("  • %s (%d files)\n", r.FiledAt, len(r.Files)))
	}
	if len(result.SECReports) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.SECReports)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("RESULT: %s", result.Ticker), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs the end-of-run tally.
func (p *Printer) PrintRunSummary(runID string, attempted, succeeded, failed int, outputPath string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:       %s\n", runID))
	sb.WriteString(fmt.Sprintf("Attempted: %d\n", attempted))
	sb.WriteString(fmt.Sprintf("Succeeded: %d\n", succeeded))
	sb.WriteString(fmt.Sprintf("Failed:    %d\n", failed))
	sb.WriteString(fmt.Sprintf("Output:    %s", outputPath))
	p.printBox("EXTRACTION COMPLETE", sb.String())
}
