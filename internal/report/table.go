package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
)

// Mode selects what the Value column of a table holds
type Mode int

const (
	// ModeRespelling holds hyphenated phonetic respellings
	ModeRespelling Mode = iota
	// ModeRaw holds space separated ARPAbet pronunciations
	ModeRaw
)

// Default export file names per mode
const (
	RespellingFileName = "phonetic_spelling_table.txt"
	RawFileName        = "pronunciations.csv"
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	default:
		return "respelling"
	}
}

// Header returns the two column titles of the mode
func (m Mode) Header() []string {
	if m == ModeRaw {
		return []string{"Word", "Pronunciation"}
	}
	return []string{"Word", "Phonetic Spelling"}
}

// DefaultFileName returns the export file name used when none is given
func (m Mode) DefaultFileName() string {
	if m == ModeRaw {
		return RawFileName
	}
	return RespellingFileName
}

// Status tells how a row's value was obtained
type Status int

const (
	StatusFound Status = iota
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Row is one word of the table. Value holds either the result or a
// placeholder text when Status is not StatusFound.
type Row struct {
	Word   string
	Value  string
	Status Status

	// Pronunciation keeps the raw ARPAbet form of a found word in both
	// modes; the deck export needs it next to the respelling.
	Pronunciation string
}

// Table is the ordered result of a run
type Table struct {
	Mode Mode
	Rows []Row
}

// NewTable creates an empty table
func NewTable(mode Mode, capacity int) *Table {
	return &Table{Mode: mode, Rows: make([]Row, 0, capacity)}
}

// Found returns the rows with a result
func (t *Table) Found() []Row {
	var rows []Row
	for _, row := range t.Rows {
		if row.Status == StatusFound {
			rows = append(rows, row)
		}
	}
	return rows
}

// Render prints an aligned table for the terminal
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := t.Mode.Header()

	fmt.Fprintf(tw, "%s\t%s\n", header[0], header[1])
	fmt.Fprintf(tw, "%s\t%s\n", strings.Repeat("-", len(header[0])), strings.Repeat("-", len(header[1])))
	for _, row := range t.Rows {
		fmt.Fprintf(tw, "%s\t%s\n", row.Word, row.Value)
	}

	return tw.Flush()
}

// WriteTSV writes the phonetic spelling table: a header line followed by one
// "word<TAB>value" line per row, joined by newlines without a trailing one.
func (t *Table) WriteTSV(w io.Writer) error {
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, strings.Join(ModeRespelling.Header(), "\t"))
	for _, row := range t.Rows {
		lines = append(lines, row.Word+"\t"+row.Value)
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// WriteCSV writes the raw pronunciations as CSV with a header row
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(ModeRaw.Header()); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, row := range t.Rows {
		if err := writer.Write([]string{row.Word, row.Value}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile exports the table to path in the format matching its mode,
// creating parent directories as needed.
func (t *Table) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if t.Mode == ModeRaw {
		err = t.WriteCSV(file)
	} else {
		err = t.WriteTSV(file)
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
