// Package filter computes the derived customer view from the record store
// given the active filter criteria, plus the dashboard statistics. Views
// are always recomputed from the full collection, never patched.
package filter

import (
	"strings"
	"time"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/callstatus"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/intalks"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/timeutil"
)

// Criteria captures every filter dimension the dashboard exposes. Zero
// values mean "dimension inactive". Dimensions compose with logical AND.
type Criteria struct {
	Search     string
	UploadDate timeutil.Bucket
	CallStatus string // canonical value, empty for no filter
	State      string
	Cluster    string
	Branch     string
	Employee   string
	StartDate  string // YYYY-MM-DD, used by the custom bucket
	EndDate    string
}

// Active reports whether any dimension is set.
func (c Criteria) Active() bool {
	return c.Search != "" || c.UploadDate != timeutil.BucketNone || c.CallStatus != "" ||
		c.State != "" || c.Cluster != "" || c.Branch != "" || c.Employee != ""
}

// Apply returns the ordered subsequence of customers satisfying every
// active criterion. now and loc fix the civil-date arithmetic to the
// business timezone.
func Apply(customers []intalks.Customer, c Criteria, now time.Time, loc *time.Location) []intalks.Customer {
	if !c.Active() {
		out := make([]intalks.Customer, len(customers))
		copy(out, customers)
		return out
	}

	out := make([]intalks.Customer, 0, len(customers))
	for _, cust := range customers {
		if matches(cust, c, now, loc) {
			out = append(out, cust)
		}
	}
	return out
}

func matches(cust intalks.Customer, c Criteria, now time.Time, loc *time.Location) bool {
	if c.Search != "" && !matchesSearch(cust, c.Search) {
		return false
	}
	if !matchesUploadDate(cust, c, now, loc) {
		return false
	}
	if c.CallStatus != "" && callstatus.Normalize(cust.CallStatus) != callstatus.Status(c.CallStatus) {
		return false
	}
	if c.State != "" && !strings.EqualFold(cust.State, c.State) {
		return false
	}
	if !matchesLoanConstraints(cust, c) {
		return false
	}
	return true
}

// matchesSearch is a case-insensitive substring match against the full
// name, the primary phone, or any loan identifier.
func matchesSearch(cust intalks.Customer, term string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(cust.FullName), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(cust.Phone), needle) {
		return true
	}
	for _, loan := range cust.Loans {
		if strings.Contains(strings.ToLower(loan.LoanID), needle) {
			return true
		}
	}
	return false
}

func matchesUploadDate(cust intalks.Customer, c Criteria, now time.Time, loc *time.Location) bool {
	switch c.UploadDate {
	case timeutil.BucketNone:
		return true
	case timeutil.BucketCustom:
		if c.StartDate == "" && c.EndDate == "" {
			return true
		}
		return timeutil.InRange(cust.ParsedUploadedAt(loc), c.StartDate, c.EndDate, loc)
	default:
		return timeutil.InBucket(cust.ParsedUploadedAt(loc), c.UploadDate, now, loc)
	}
}

// matchesLoanConstraints requires a single loan to satisfy all active
// cluster/branch/employee constraints simultaneously; three different loans
// each satisfying one dimension is not a match.
func matchesLoanConstraints(cust intalks.Customer, c Criteria) bool {
	if c.Cluster == "" && c.Branch == "" && c.Employee == "" {
		return true
	}
	for _, loan := range cust.Loans {
		if c.Cluster != "" && !strings.EqualFold(loan.Cluster, c.Cluster) {
			continue
		}
		if c.Branch != "" && !strings.EqualFold(loan.Branch, c.Branch) {
			continue
		}
		if c.Employee != "" && !strings.EqualFold(loan.EmployeeName, c.Employee) {
			continue
		}
		return true
	}
	return false
}
