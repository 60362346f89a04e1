package intalks

import (
	"encoding/json"
	"time"
)

const backendTimestampLayout = "2006-01-02 15:04:05"

// Customer mirrors one element of the /api/customers snapshot.
type Customer struct {
	ID            string `json:"customer_id"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	State         string `json:"state"`
	Email         string `json:"email,omitempty"`
	UploadedAt    string `json:"uploaded_at"`
	LastContactAt string `json:"last_contact_at,omitempty"`
	CallStatus    string `json:"call_status,omitempty"`
	Loans         []Loan `json:"loans"`
}

// Loan is a customer's outstanding loan record. Loans are immutable once
// part of a snapshot; a refresh replaces them wholesale.
type Loan struct {
	LoanID          string  `json:"loan_id"`
	Cluster         string  `json:"cluster"`
	Branch          string  `json:"branch"`
	BranchContact   string  `json:"branch_contact"`
	EmployeeName    string  `json:"employee_name"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeContact string  `json:"employee_contact"`
	Outstanding     float64 `json:"outstanding_amount"`
	DueAmount       float64 `json:"due_amount"`
	NextDueDate     string  `json:"next_due_date"`
	LastPaidDate    string  `json:"last_paid_date"`
	LastPaidAmount  float64 `json:"last_paid_amount"`
}

// BatchUpload describes one customer-file upload as reported by
// /api/uploaded-files. The engine only pages and aggregates these.
type BatchUpload struct {
	ID               string          `json:"id"`
	Filename         string          `json:"filename"`
	OriginalFilename string          `json:"original_filename"`
	UploadedAt       string          `json:"uploaded_at"`
	UploadedBy       string          `json:"uploaded_by"`
	Status           string          `json:"status"`
	TotalRecords     int             `json:"total_records"`
	SuccessRecords   int             `json:"success_records"`
	FailedRecords    int             `json:"failed_records"`
	ProcessingErrors json.RawMessage `json:"processing_errors,omitempty"`
}

// PageMeta mirrors the server-side pagination envelope for uploads.
type PageMeta struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalCount  int  `json:"total_count"`
	PageSize    int  `json:"page_size"`
	HasPrev     bool `json:"has_prev"`
	HasNext     bool `json:"has_next"`
}

// CallEvent is one call-status record. Several events share a call_sid over
// the life of a call; the latest by timestamp is the session's outcome.
type CallEvent struct {
	CallSID       string `json:"call_sid"`
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	Timestamp     string `json:"timestamp"`
}

// CallHistory mirrors /api/call-statuses/{call_sid}.
type CallHistory struct {
	CallSID       string      `json:"call_sid"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Statuses      []CallEvent `json:"statuses"`
}

// UploadDetails mirrors /api/uploaded-files/{id}/details.
type UploadDetails struct {
	BatchUpload
	Rows []json.RawMessage `json:"rows"`
}

// uploadsResponse is the /api/uploaded-files envelope.
type uploadsResponse struct {
	Success    bool          `json:"success"`
	Uploads    []BatchUpload `json:"uploads"`
	Pagination PageMeta      `json:"pagination"`
}

// uploadIDsResponse is the /api/uploaded-files/ids envelope.
type uploadIDsResponse struct {
	Success   bool     `json:"success"`
	UploadIDs []string `json:"upload_ids"`
}

// uploadDetailsResponse is the /api/uploaded-files/{id}/details envelope.
type uploadDetailsResponse struct {
	Success       bool          `json:"success"`
	UploadDetails UploadDetails `json:"upload_details"`
}

// callStatusesResponse is the /api/call-statuses envelope.
type callStatusesResponse struct {
	Success  bool        `json:"success"`
	Statuses []CallEvent `json:"statuses"`
}

// actionResponse covers the call-trigger and upload endpoints.
type actionResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message,omitempty"`
	ProcessingResults struct {
		SuccessRecords int `json:"success_records"`
	} `json:"processing_results"`
}

// ParsedUploadedAt returns the upload timestamp as time.Time when possible.
func (c Customer) ParsedUploadedAt(loc *time.Location) time.Time {
	return parseTime(c.UploadedAt, loc)
}

// ParsedLastContactAt returns the last-contact timestamp when present.
func (c Customer) ParsedLastContactAt(loc *time.Location) time.Time {
	return parseTime(c.LastContactAt, loc)
}

// ParsedUploadedAt returns the batch upload timestamp as time.Time.
func (b BatchUpload) ParsedUploadedAt(loc *time.Location) time.Time {
	return parseTime(b.UploadedAt, loc)
}

// ParsedTimestamp returns the event timestamp as time.Time.
func (e CallEvent) ParsedTimestamp(loc *time.Location) time.Time {
	return parseTime(e.Timestamp, loc)
}

// parseTime accepts the mixed timestamp layouts the backend emits. Bare
// layouts are interpreted in the business timezone, not the device's.
func parseTime(value string, loc *time.Location) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range []string{backendTimestampLayout, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}
