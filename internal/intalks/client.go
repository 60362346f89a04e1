package intalks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Fetcher is the read side of the INTALKS API consumed by the sync
// orchestrator. Implemented by *Client; handy to fake in tests.
type Fetcher interface {
	FetchCustomers(ctx context.Context) ([]Customer, error)
	FetchUploads(ctx context.Context, query UploadQuery) ([]BatchUpload, PageMeta, error)
	FetchCallStatuses(ctx context.Context) ([]CallEvent, error)
}

var _ Fetcher = (*Client)(nil)

// Client talks to the INTALKS backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:8000"
	defaultUserAgent = "intalksdash/0.1"
	requestTimeout   = 15 * time.Second
)

// NewClient builds a Client from the configured host:port or base URL.
func NewClient(apiBase string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchCustomers retrieves the full customer snapshot.
func (c *Client) FetchCustomers(ctx context.Context) ([]Customer, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Customer
	if err := c.get(ctx, "/api/customers", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// UploadQuery configures /api/uploaded-files requests.
type UploadQuery struct {
	Page       int
	PageSize   int
	DateFilter string
}

// FetchUploads retrieves one server-side page of batch uploads.
func (c *Client) FetchUploads(ctx context.Context, query UploadQuery) ([]BatchUpload, PageMeta, error) {
	if c == nil {
		return nil, PageMeta{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(query.PageSize))
	}
	if df := strings.TrimSpace(query.DateFilter); df != "" {
		values.Set("date_filter", df)
	}
	rel := &url.URL{Path: "/api/uploaded-files", RawQuery: values.Encode()}
	var payload uploadsResponse
	if err := c.getURL(ctx, rel, &payload); err != nil {
		return nil, PageMeta{}, err
	}
	if !payload.Success {
		return nil, PageMeta{}, &ProtocolError{Op: "fetch uploads", Reason: "backend reported failure"}
	}
	return payload.Uploads, payload.Pagination, nil
}

// FetchUploadIDs retrieves every upload identifier matching the date filter,
// independent of server-side paging.
func (c *Client) FetchUploadIDs(ctx context.Context, dateFilter string) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if df := strings.TrimSpace(dateFilter); df != "" {
		values.Set("date_filter", df)
	}
	rel := &url.URL{Path: "/api/uploaded-files/ids", RawQuery: values.Encode()}
	var payload uploadIDsResponse
	if err := c.getURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		return nil, &ProtocolError{Op: "fetch upload ids", Reason: "backend reported failure"}
	}
	return payload.UploadIDs, nil
}

// FetchUploadDetails retrieves per-row processing details for one upload.
func (c *Client) FetchUploadDetails(ctx context.Context, id string) (UploadDetails, error) {
	if c == nil {
		return UploadDetails{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return UploadDetails{}, fmt.Errorf("upload id required")
	}
	var payload uploadDetailsResponse
	if err := c.get(ctx, "/api/uploaded-files/"+url.PathEscape(id)+"/details", &payload); err != nil {
		return UploadDetails{}, err
	}
	if !payload.Success {
		return UploadDetails{}, &ProtocolError{Op: "fetch upload details", Reason: "backend reported failure"}
	}
	return payload.UploadDetails, nil
}

// FetchCallStatuses retrieves the current call-status event list.
func (c *Client) FetchCallStatuses(ctx context.Context) ([]CallEvent, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload callStatusesResponse
	if err := c.get(ctx, "/api/call-statuses", &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		return nil, &ProtocolError{Op: "fetch call statuses", Reason: "backend reported failure"}
	}
	return payload.Statuses, nil
}

// FetchCallHistory retrieves the full event history for one call session.
func (c *Client) FetchCallHistory(ctx context.Context, callSID string) (CallHistory, error) {
	if c == nil {
		return CallHistory{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(callSID) == "" {
		return CallHistory{}, fmt.Errorf("call sid required")
	}
	var payload CallHistory
	if err := c.get(ctx, "/api/call-statuses/"+url.PathEscape(callSID), &payload); err != nil {
		return CallHistory{}, err
	}
	return payload, nil
}

// TriggerCall asks the backend to place one outbound call.
func (c *Client) TriggerCall(ctx context.Context, customerID string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	body := map[string]string{"customer_id": customerID}
	var payload actionResponse
	if err := c.postJSON(ctx, "/api/trigger-single-call", body, &payload); err != nil {
		return "", err
	}
	if !payload.Success {
		return "", &ProtocolError{Op: "trigger call", Reason: orMessage(payload.Message, "backend reported failure")}
	}
	return payload.Message, nil
}

// TriggerBulkCalls asks the backend to place calls for every listed customer.
func (c *Client) TriggerBulkCalls(ctx context.Context, customerIDs []string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	if len(customerIDs) == 0 {
		return "", fmt.Errorf("no customers selected")
	}
	body := map[string][]string{"customer_ids": customerIDs}
	var payload actionResponse
	if err := c.postJSON(ctx, "/api/trigger-bulk-calls", body, &payload); err != nil {
		return "", err
	}
	if !payload.Success {
		return "", &ProtocolError{Op: "trigger bulk calls", Reason: orMessage(payload.Message, "backend reported failure")}
	}
	return payload.Message, nil
}

// UploadCustomers posts a customer file as multipart form data and returns
// the number of records the backend accepted.
func (c *Client) UploadCustomers(ctx context.Context, filename string, file io.Reader) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return 0, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return 0, fmt.Errorf("read upload file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return 0, fmt.Errorf("finalize form: %w", err)
	}

	var payload actionResponse
	if err := c.do(ctx, http.MethodPost, &url.URL{Path: "/api/upload-customers"}, &buf, mw.FormDataContentType(), &payload); err != nil {
		return 0, err
	}
	if !payload.Success {
		return 0, &ProtocolError{Op: "upload customers", Reason: orMessage(payload.Message, "backend reported failure")}
	}
	return payload.ProcessingResults.SuccessRecords, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	return c.getURL(ctx, &url.URL{Path: path}, dest)
}

func (c *Client) getURL(ctx context.Context, rel *url.URL, dest any) error {
	return c.do(ctx, http.MethodGet, rel, nil, "", dest)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, dest any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, &url.URL{Path: path}, bytes.NewReader(encoded), "application/json", dest)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + rel.Path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &ProtocolError{Op: method + " " + rel.Path, Reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return &ProtocolError{Op: method + " " + rel.Path, Reason: "decode response", Err: err}
	}
	return nil
}

func orMessage(msg, fallback string) string {
	if strings.TrimSpace(msg) != "" {
		return msg
	}
	return fallback
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
