package ui

import (
	"testing"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/timeutil"
)

func TestNextBucket_CyclesBackToNone(t *testing.T) {
	current := timeutil.BucketNone
	for range bucketCycle {
		current = nextBucket(current)
	}
	if current != timeutil.BucketNone {
		t.Fatalf("bucket cycle did not wrap, ended at %v", current)
	}
}

func TestNextBucket_CustomResetsToNone(t *testing.T) {
	// Custom is entered via explicit dates, never via the cycle; stepping
	// from it clears the date filter.
	if got := nextBucket(timeutil.BucketCustom); got != timeutil.BucketNone {
		t.Fatalf("nextBucket(Custom) = %v, want None", got)
	}
}

func TestNextStatusFilter_FullCycle(t *testing.T) {
	seen := map[string]bool{}
	current := ""
	for i := 0; i < 16; i++ {
		current = nextStatusFilter(current)
		if current == "" {
			break
		}
		seen[current] = true
	}
	if current != "" {
		t.Fatalf("status cycle never returned to empty, at %q", current)
	}
	if len(seen) != 6 {
		t.Fatalf("visited %d statuses, want 6", len(seen))
	}
}

func TestNextPageSize(t *testing.T) {
	if got := nextPageSize(20); got != 50 {
		t.Fatalf("nextPageSize(20) = %d, want 50", got)
	}
	if got := nextPageSize(0); got != 10 {
		t.Fatalf("nextPageSize(0) = %d, want 10 (wrap)", got)
	}
	if got := nextPageSize(7); got != 10 {
		t.Fatalf("nextPageSize(7) = %d, want 10 (unknown resets)", got)
	}
}
