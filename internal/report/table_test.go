package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/pronounceit/internal/testutil"
)

func sampleTable(mode Mode) *Table {
	table := NewTable(mode, 3)
	if mode == ModeRaw {
		table.Rows = append(table.Rows,
			Row{Word: "hello", Value: "HH AH0 L OW1", Status: StatusFound, Pronunciation: "HH AH0 L OW1"},
			Row{Word: "xyzzy", Value: "No pronunciation found", Status: StatusNotFound},
			Row{Word: "cat, dog", Value: "K AE1 T", Status: StatusFound, Pronunciation: "K AE1 T"},
		)
		return table
	}
	table.Rows = append(table.Rows,
		Row{Word: "hello", Value: "h-uh-l-oh", Status: StatusFound, Pronunciation: "HH AH0 L OW1"},
		Row{Word: "xyzzy", Value: "Phonetic spelling not found", Status: StatusNotFound},
		Row{Word: "cat", Value: "k-a-t", Status: StatusFound, Pronunciation: "K AE1 T"},
	)
	return table
}

func TestMode(t *testing.T) {
	tests := []struct {
		mode     Mode
		name     string
		header   string
		fileName string
	}{
		{ModeRespelling, "respelling", "Word|Phonetic Spelling", "phonetic_spelling_table.txt"},
		{ModeRaw, "raw", "Word|Pronunciation", "pronunciations.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := strings.Join(tt.mode.Header(), "|"); got != tt.header {
				t.Errorf("Header() = %q, want %q", got, tt.header)
			}
			if got := tt.mode.DefaultFileName(); got != tt.fileName {
				t.Errorf("DefaultFileName() = %q, want %q", got, tt.fileName)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusFound:    "found",
		StatusNotFound: "not found",
		StatusFailed:   "failed",
		Status(42):     "unknown",
	}
	for status, want := range tests {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", int(status), got, want)
		}
	}
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable(ModeRespelling).WriteTSV(&buf); err != nil {
		t.Fatalf("WriteTSV failed: %v", err)
	}

	want := "Word\tPhonetic Spelling\n" +
		"hello\th-uh-l-oh\n" +
		"xyzzy\tPhonetic spelling not found\n" +
		"cat\tk-a-t"
	if got := buf.String(); got != want {
		t.Errorf("WriteTSV() = %q, want %q", got, want)
	}
}

func TestWriteTSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTable(ModeRespelling, 0).WriteTSV(&buf); err != nil {
		t.Fatalf("WriteTSV failed: %v", err)
	}
	if got := buf.String(); got != "Word\tPhonetic Spelling" {
		t.Errorf("WriteTSV() = %q, want header only", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable(ModeRaw).WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := "Word,Pronunciation\n" +
		"hello,HH AH0 L OW1\n" +
		"xyzzy,No pronunciation found\n" +
		"\"cat, dog\",K AE1 T\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV() = %q, want %q", got, want)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable(ModeRespelling).Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("Render() produced %d lines, want 5:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Word") || !strings.HasSuffix(lines[0], "Phonetic Spelling") {
		t.Errorf("unexpected header line %q", lines[0])
	}

	// Values start in the same column on every line
	col := strings.Index(lines[2], "h-uh-l-oh")
	if col < 0 {
		t.Fatalf("hello row missing respelling: %q", lines[2])
	}
	if got := strings.Index(lines[4], "k-a-t"); got != col {
		t.Errorf("cat row value at column %d, want %d", got, col)
	}
}

func TestFound(t *testing.T) {
	found := sampleTable(ModeRespelling).Found()
	if len(found) != 2 {
		t.Fatalf("Found() returned %d rows, want 2", len(found))
	}
	if found[0].Word != "hello" || found[1].Word != "cat" {
		t.Errorf("Found() = %v, want hello and cat in order", found)
	}
}

func TestWriteFile(t *testing.T) {
	tmpDir := t.TempDir()

	respellingPath := filepath.Join(tmpDir, "nested", ModeRespelling.DefaultFileName())
	if err := sampleTable(ModeRespelling).WriteFile(respellingPath); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	testutil.AssertFileContent(t, respellingPath,
		[]byte("Word\tPhonetic Spelling\nhello\th-uh-l-oh\nxyzzy\tPhonetic spelling not found\ncat\tk-a-t"))

	rawPath := filepath.Join(tmpDir, ModeRaw.DefaultFileName())
	if err := sampleTable(ModeRaw).WriteFile(rawPath); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	testutil.AssertFileContains(t, rawPath, "Word,Pronunciation\nhello,HH AH0 L OW1\n")
}
