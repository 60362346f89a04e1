// Package export builds the CSV artifact for selected customers. The
// schema is fixed at 17 columns, one row per loan; consumers on the other
// side expect every field quoted, so rows are assembled by hand instead of
// through encoding/csv's minimal quoting.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/callstatus"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/intalks"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/timeutil"
)

// ErrNoCustomers is returned when an export is requested with nothing
// selected.
var ErrNoCustomers = errors.New("no customers to export")

// Columns is the fixed export header, in order.
var Columns = []string{
	"Name", "Phone", "State", "Loan ID", "Outstanding Amount", "Due Amount",
	"Next Due Date", "Last Paid Date", "Last Paid Amount", "Cluster",
	"Branch", "Branch Contact", "Employee", "Employee ID",
	"Employee Contact", "Upload Date", "Call Status",
}

// Write streams the CSV for the given customers. Customers without loans
// still produce one row with empty loan columns.
func Write(w io.Writer, customers []intalks.Customer, loc *time.Location) error {
	if len(customers) == 0 {
		return ErrNoCustomers
	}
	if err := writeRow(w, Columns); err != nil {
		return err
	}

	for _, cust := range customers {
		loans := cust.Loans
		if len(loans) == 0 {
			loans = []intalks.Loan{{}}
		}
		for _, loan := range loans {
			row := []string{
				cust.FullName,
				cust.Phone,
				cust.State,
				loan.LoanID,
				amount(loan.Outstanding),
				amount(loan.DueAmount),
				loan.NextDueDate,
				loan.LastPaidDate,
				amount(loan.LastPaidAmount),
				loan.Cluster,
				loan.Branch,
				loan.BranchContact,
				loan.EmployeeName,
				loan.EmployeeID,
				loan.EmployeeContact,
				timeutil.FormatDate(cust.ParsedUploadedAt(loc), loc),
				string(callstatus.Normalize(cust.CallStatus)),
			}
			if err := writeRow(w, row); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteFile writes the CSV to a timestamped file under dir and returns its
// path.
func WriteFile(dir string, customers []intalks.Customer, loc *time.Location) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	name := "customers-" + time.Now().In(loc).Format("20060102-150405") + ".csv"
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := Write(f, customers, loc); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func writeRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quote(f)
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\r\n")
	return err
}

// quote double-quotes a field, doubling internal quotes.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// amount renders a monetary value, omitting trailing zero decimals and
// leaving zero amounts empty like the source files do.
func amount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
