package processor

import (
	"fmt"
	"io"

	"codeberg.org/snonux/pronounceit/internal/report"
)

// Summary counts the outcome of a run
type Summary struct {
	Total    int
	Found    int
	NotFound int
	Failed   int
}

// Summarize counts the rows of table by status
func Summarize(table *report.Table) Summary {
	s := Summary{Total: len(table.Rows)}
	for _, row := range table.Rows {
		switch row.Status {
		case report.StatusFound:
			s.Found++
		case report.StatusNotFound:
			s.NotFound++
		case report.StatusFailed:
			s.Failed++
		}
	}
	return s
}

// Print writes the summary block shown after a batch
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "\n=== Summary ===\n")
	fmt.Fprintf(w, "Total words: %d\n", s.Total)
	fmt.Fprintf(w, "Found: %d\n", s.Found)
	fmt.Fprintf(w, "Not found: %d\n", s.NotFound)
	if s.Failed > 0 {
		fmt.Fprintf(w, "Lookup errors: %d\n", s.Failed)
	}
	fmt.Fprintf(w, "===============\n")
}
