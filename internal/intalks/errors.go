package intalks

import "fmt"

// NetworkError wraps a transport failure: connection refused, timeout, DNS.
// A refresh that fails with a NetworkError leaves previous state intact.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProtocolError wraps a payload the client could not accept: an HTTP error
// status, a success=false envelope, or a malformed shape.
type ProtocolError struct {
	Op     string
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol: %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("protocol: %s: %s", e.Op, e.Reason)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
