package export

import (
	"encoding/csv"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/intalks"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/timeutil"
)

var loc = timeutil.LoadZone("")

func TestWrite_HeaderAndRowShape(t *testing.T) {
	customers := []intalks.Customer{
		{
			ID: "c-1", FullName: "Asha Rao", Phone: "9876543210", State: "Karnataka",
			UploadedAt: "2025-06-18 10:00:00", CallStatus: "call_completed",
			Loans: []intalks.Loan{
				{LoanID: "LN-1", Cluster: "South", Branch: "Mysuru", Outstanding: 1200.50},
				{LoanID: "LN-2", Cluster: "South", Branch: "Mysuru"},
			},
		},
		{ID: "c-2", FullName: "Vikram Shetty", Phone: "9123456780"},
	}

	var b strings.Builder
	if err := Write(&b, customers, loc); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	// Standard CSV escaping means a standard reader must round-trip it.
	records, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	if err != nil {
		t.Fatalf("output not parseable as CSV: %v", err)
	}

	// Header + two loan rows + one loanless row.
	if len(records) != 4 {
		t.Fatalf("record count = %d, want 4", len(records))
	}
	if len(records[0]) != 17 {
		t.Fatalf("header width = %d, want 17", len(records[0]))
	}
	if records[0][0] != "Name" || records[0][16] != "Call Status" {
		t.Fatalf("header = %v", records[0])
	}

	if records[1][3] != "LN-1" || records[1][4] != "1200.5" {
		t.Fatalf("first loan row = %v", records[1])
	}
	if records[1][16] != "completed" {
		t.Fatalf("call status cell = %q, want canonical completed", records[1][16])
	}
	if records[2][3] != "LN-2" {
		t.Fatalf("second loan row = %v", records[2])
	}

	// Loanless customer keeps its identity columns and empty loan columns.
	if records[3][0] != "Vikram Shetty" || records[3][3] != "" {
		t.Fatalf("loanless row = %v", records[3])
	}
	if records[3][16] != "ready" {
		t.Fatalf("loanless status = %q, want ready default", records[3][16])
	}
}

func TestWrite_EveryFieldQuoted(t *testing.T) {
	customers := []intalks.Customer{{FullName: "Plain", Phone: "1"}}

	var b strings.Builder
	if err := Write(&b, customers, loc); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	for _, line := range strings.Split(strings.TrimSpace(b.String()), "\r\n") {
		if !strings.HasPrefix(line, `"`) || !strings.HasSuffix(line, `"`) {
			t.Fatalf("line not fully quoted: %q", line)
		}
		if got := len(strings.Split(line, `","`)); got != 17 {
			t.Fatalf("line has %d quoted fields, want 17: %q", got, line)
		}
	}
}

func TestWrite_EmptySelectionIsRejected(t *testing.T) {
	var sb strings.Builder
	err := Write(&sb, nil, loc)
	if !errors.Is(err, ErrNoCustomers) {
		t.Fatalf("Write(nil) = %v, want ErrNoCustomers", err)
	}
	if sb.Len() != 0 {
		t.Fatalf("no output expected for empty selection, got %q", sb.String())
	}
}

func TestQuote_DoublesInternalQuotes(t *testing.T) {
	if got := quote(`say "hello"`); got != `"say ""hello"""` {
		t.Fatalf("quote = %s", got)
	}
	if got := quote(""); got != `""` {
		t.Fatalf("quote empty = %s", got)
	}
}

func TestWriteFile_CreatesTimestampedCSV(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(dir, []intalks.Customer{{FullName: "Asha Rao"}}, loc)
	if err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	if !strings.HasPrefix(path, dir) || !strings.HasSuffix(path, ".csv") {
		t.Fatalf("path = %q, want csv under %q", path, dir)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(content), "Asha Rao") {
		t.Fatalf("export content missing customer: %q", content)
	}
}
