package state

import (
	"testing"
	"time"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/intalks"
)

func sampleCustomers() []intalks.Customer {
	return []intalks.Customer{
		{ID: "c-1", FullName: "Asha Rao", Phone: "9876543210", Loans: []intalks.Loan{{LoanID: "L-1"}}},
		{ID: "c-2", FullName: "Vikram Shetty", Phone: "9123456780"},
	}
}

func TestStore_ReplaceCustomersClonesAndBumpsVersion(t *testing.T) {
	var s Store

	before := time.Now()
	input := sampleCustomers()
	s.ReplaceCustomers(input)

	if s.Version() == 0 {
		t.Fatal("Version not bumped by replace")
	}
	if !s.Loaded() {
		t.Fatal("Loaded = false after replace")
	}
	if s.LastUpdated().Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", s.LastUpdated(), before)
	}

	got := s.Customers()
	if len(got) != 2 || got[0].ID != "c-1" {
		t.Fatalf("Customers = %#v, want 2 customers", got)
	}

	// Mutating the returned slice must not reach the store.
	got[0].CallStatus = "calling"
	got[0].Loans[0].LoanID = "tampered"
	fresh := s.Customers()
	if fresh[0].CallStatus != "" || fresh[0].Loans[0].LoanID != "L-1" {
		t.Fatalf("store shares memory with returned snapshot: %#v", fresh[0])
	}

	// Mutating the caller's input slice must not reach the store either.
	input[1].FullName = "tampered"
	if s.Customers()[1].FullName != "Vikram Shetty" {
		t.Fatal("store shares memory with caller input")
	}
}

func TestStore_ReplaceIsTotalNotMerge(t *testing.T) {
	var s Store

	s.ReplaceCustomers(sampleCustomers())
	s.ReplaceCustomers([]intalks.Customer{{ID: "c-9"}})

	got := s.Customers()
	if len(got) != 1 || got[0].ID != "c-9" {
		t.Fatalf("Customers after second replace = %#v, want only c-9", got)
	}
}

func TestStore_ApplyStatusUpdate(t *testing.T) {
	var s Store
	s.ReplaceCustomers(sampleCustomers())
	v := s.Version()

	if !s.ApplyStatusUpdate("c-1", "call_in_progress", "agent dialing") {
		t.Fatal("ApplyStatusUpdate returned false for present id")
	}
	got := s.Customers()
	if got[0].CallStatus != "call_in_progress" {
		t.Fatalf("CallStatus = %q, want call_in_progress", got[0].CallStatus)
	}
	if got[0].FullName != "Asha Rao" || got[0].Loans[0].LoanID != "L-1" {
		t.Fatalf("status update touched other fields: %#v", got[0])
	}
	if s.StatusMessage("c-1") != "agent dialing" {
		t.Fatalf("StatusMessage = %q, want agent dialing", s.StatusMessage("c-1"))
	}
	if s.Version() == v {
		t.Fatal("Version not bumped by status update")
	}
}

func TestStore_ApplyStatusUpdateAbsentIDIsNoop(t *testing.T) {
	var s Store
	s.ReplaceCustomers(sampleCustomers())
	v := s.Version()

	if s.ApplyStatusUpdate("gone", "call_failed", "") {
		t.Fatal("ApplyStatusUpdate returned true for absent id")
	}
	if s.Version() != v {
		t.Fatal("Version bumped by no-op status update")
	}
	for _, c := range s.Customers() {
		if c.CallStatus != "" {
			t.Fatalf("no-op update mutated customer %q", c.ID)
		}
	}
}

func TestStore_ReplaceCustomersDropsStatusMessages(t *testing.T) {
	var s Store
	s.ReplaceCustomers(sampleCustomers())
	s.ApplyStatusUpdate("c-1", "calling", "ringing now")

	s.ReplaceCustomers(sampleCustomers())
	if msg := s.StatusMessage("c-1"); msg != "" {
		t.Fatalf("StatusMessage survived snapshot replace: %q", msg)
	}
}

func TestStore_UploadsAndCallEvents(t *testing.T) {
	var s Store

	uploads := []intalks.BatchUpload{{ID: "u-1", Filename: "batch.csv"}}
	meta := intalks.PageMeta{CurrentPage: 1, TotalPages: 3, TotalCount: 41, PageSize: 20, HasNext: true}
	s.ReplaceUploads(uploads, meta)

	gotUploads, gotMeta := s.Uploads()
	if len(gotUploads) != 1 || gotUploads[0].ID != "u-1" {
		t.Fatalf("Uploads = %#v, want 1 upload", gotUploads)
	}
	if gotMeta.TotalCount != 41 || !gotMeta.HasNext {
		t.Fatalf("Uploads meta = %#v, want total 41 with next", gotMeta)
	}
	gotUploads[0].Filename = "tampered"
	fresh, _ := s.Uploads()
	if fresh[0].Filename != "batch.csv" {
		t.Fatal("store shares memory with returned uploads")
	}

	events := []intalks.CallEvent{{CallSID: "CA1", Status: "initiated"}}
	s.ReplaceCallEvents(events)
	gotEvents := s.CallEvents()
	if len(gotEvents) != 1 || gotEvents[0].CallSID != "CA1" {
		t.Fatalf("CallEvents = %#v, want 1 event", gotEvents)
	}

	if s.Loaded() {
		t.Fatal("Loaded = true without a customer snapshot")
	}
}
