package filter

import (
	"testing"
	"time"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/intalks"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/timeutil"
)

var (
	testLoc = timeutil.LoadZone("")
	testNow = time.Date(2025, 6, 18, 11, 0, 0, 0, testLoc) // a Wednesday
)

func ts(t time.Time) string { return t.Format("2006-01-02 15:04:05") }

func fixtureCustomers() []intalks.Customer {
	return []intalks.Customer{
		{
			ID: "c-1", FullName: "Asha Rao", Phone: "9876543210", State: "Karnataka",
			UploadedAt: ts(testNow.Add(-2 * time.Hour)),
			CallStatus: "call_completed",
			Loans: []intalks.Loan{
				{LoanID: "LN-100", Cluster: "South", Branch: "Mysuru", EmployeeName: "Kiran"},
			},
		},
		{
			ID: "c-2", FullName: "Vikram Shetty", Phone: "9123456780", State: "Kerala",
			UploadedAt: ts(testNow.AddDate(0, 0, -1)),
			Loans: []intalks.Loan{
				{LoanID: "LN-200", Cluster: "South", Branch: "Kochi", EmployeeName: "Meera"},
				{LoanID: "LN-201", Cluster: "North", Branch: "Mysuru", EmployeeName: "Kiran"},
			},
		},
		{
			ID: "c-3", FullName: "Priya Nair", Phone: "9000000003", State: "Karnataka",
			UploadedAt: ts(testNow.AddDate(0, 0, -8)),
			CallStatus: "call_failed",
		},
	}
}

func ids(customers []intalks.Customer) []string {
	out := make([]string, len(customers))
	for i, c := range customers {
		out[i] = c.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply_NoCriteriaReturnsEverythingInOrder(t *testing.T) {
	got := Apply(fixtureCustomers(), Criteria{}, testNow, testLoc)
	if !equalIDs(ids(got), []string{"c-1", "c-2", "c-3"}) {
		t.Fatalf("Apply with no criteria = %v, want original order", ids(got))
	}
}

func TestApply_SearchMatchesNamePhoneAndLoanID(t *testing.T) {
	customers := fixtureCustomers()

	tests := []struct {
		term string
		want []string
	}{
		{"asha", []string{"c-1"}},
		{"ASHA", []string{"c-1"}},
		{"912345", []string{"c-2"}},
		{"ln-200", []string{"c-2"}},
		{"LN-2", []string{"c-2"}},
		{"nobody", nil},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := ids(Apply(customers, Criteria{Search: tt.term}, testNow, testLoc))
			if !equalIDs(got, tt.want) {
				t.Errorf("search %q = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestApply_DateBuckets(t *testing.T) {
	// Customers uploaded today, yesterday, and nine days ago; the old one
	// must fall outside both this-week and yesterday.
	customers := fixtureCustomers()

	tests := []struct {
		bucket timeutil.Bucket
		want   []string
	}{
		{timeutil.BucketToday, []string{"c-1"}},
		{timeutil.BucketYesterday, []string{"c-2"}},
		{timeutil.BucketThisWeek, []string{"c-1", "c-2"}},
		{timeutil.BucketLastWeek, []string{"c-3"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			got := ids(Apply(customers, Criteria{UploadDate: tt.bucket}, testNow, testLoc))
			if !equalIDs(got, tt.want) {
				t.Errorf("bucket %q = %v, want %v", tt.bucket, got, tt.want)
			}
		})
	}
}

func TestApply_CustomDateRange(t *testing.T) {
	customers := fixtureCustomers()
	start := testNow.AddDate(0, 0, -1).Format("2006-01-02")

	got := ids(Apply(customers, Criteria{
		UploadDate: timeutil.BucketCustom,
		StartDate:  start,
	}, testNow, testLoc))
	if !equalIDs(got, []string{"c-1", "c-2"}) {
		t.Fatalf("custom range from %s = %v, want [c-1 c-2]", start, got)
	}

	// Custom with both bounds empty is a no-op filter.
	got = ids(Apply(customers, Criteria{UploadDate: timeutil.BucketCustom}, testNow, testLoc))
	if len(got) != 3 {
		t.Fatalf("custom range with open bounds = %v, want all", got)
	}
}

func TestApply_CallStatusUsesCanonicalValues(t *testing.T) {
	customers := fixtureCustomers()

	// c-2 has no call_status at all and must classify as ready.
	got := ids(Apply(customers, Criteria{CallStatus: "ready"}, testNow, testLoc))
	if !equalIDs(got, []string{"c-2"}) {
		t.Fatalf("status ready = %v, want [c-2]", got)
	}

	// call_completed normalizes to completed.
	got = ids(Apply(customers, Criteria{CallStatus: "completed"}, testNow, testLoc))
	if !equalIDs(got, []string{"c-1"}) {
		t.Fatalf("status completed = %v, want [c-1]", got)
	}
}

func TestApply_LoanConstraintsRequireOneLoanToMatchAll(t *testing.T) {
	customers := fixtureCustomers()

	// c-2 has a South loan (Kochi/Meera) and a Mysuru loan (North/Kiran),
	// but no single loan that is both South and Mysuru.
	got := ids(Apply(customers, Criteria{Cluster: "South", Branch: "Mysuru"}, testNow, testLoc))
	if !equalIDs(got, []string{"c-1"}) {
		t.Fatalf("cluster+branch = %v, want [c-1] only", got)
	}

	got = ids(Apply(customers, Criteria{Cluster: "South", Branch: "Kochi", Employee: "Meera"}, testNow, testLoc))
	if !equalIDs(got, []string{"c-2"}) {
		t.Fatalf("full triple = %v, want [c-2]", got)
	}

	// A loanless customer never matches an active loan constraint.
	got = ids(Apply(customers, Criteria{Cluster: "South"}, testNow, testLoc))
	for _, id := range got {
		if id == "c-3" {
			t.Fatal("loanless customer matched a cluster constraint")
		}
	}
}

func TestApply_CriteriaComposeAsIntersection(t *testing.T) {
	customers := fixtureCustomers()

	a := Criteria{State: "Karnataka"}
	b := Criteria{UploadDate: timeutil.BucketThisWeek}
	both := Criteria{State: "Karnataka", UploadDate: timeutil.BucketThisWeek}

	inA := make(map[string]bool)
	for _, id := range ids(Apply(customers, a, testNow, testLoc)) {
		inA[id] = true
	}
	inB := make(map[string]bool)
	for _, id := range ids(Apply(customers, b, testNow, testLoc)) {
		inB[id] = true
	}

	combined := ids(Apply(customers, both, testNow, testLoc))
	for _, id := range combined {
		if !inA[id] || !inB[id] {
			t.Errorf("combined result %q not in both single-criterion views", id)
		}
	}

	// Both dimensions are pure field predicates here, so the composition is
	// exactly the intersection.
	want := 0
	for id := range inA {
		if inB[id] {
			want++
		}
	}
	if len(combined) != want {
		t.Errorf("combined size = %d, want intersection size %d", len(combined), want)
	}
}

func TestApply_Deterministic(t *testing.T) {
	customers := fixtureCustomers()
	c := Criteria{UploadDate: timeutil.BucketThisWeek}

	first := ids(Apply(customers, c, testNow, testLoc))
	second := ids(Apply(customers, c, testNow, testLoc))
	if !equalIDs(first, second) {
		t.Fatalf("repeated Apply diverged: %v vs %v", first, second)
	}
}
