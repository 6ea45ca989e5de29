package building

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNilClient is returned by every call on a nil *Client.
var ErrNilClient = errors.New("building: client is nil")

// Kind classifies an APIError.
type Kind int

const (
	// KindTransport means no response was received.
	KindTransport Kind = iota + 1
	// KindStatus is a non-2xx response carrying a message body.
	KindStatus
	// KindStatusNoBody is a non-2xx response without a parseable message.
	KindStatusNoBody
	// KindDecode is a 2xx response whose body could not be decoded.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindStatusNoBody:
		return "status without body"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// APIError describes a failed backend call.
type APIError struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	target := e.Method + " " + e.Path
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("%s: %d: %s", target, e.Status, e.Message)
	case KindStatusNoBody:
		return fmt.Sprintf("%s: status %d", target, e.Status)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", target, e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s error", target, e.Kind)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// UserMessage is the short text shown in a notification.
func (e *APIError) UserMessage() string {
	switch e.Kind {
	case KindTransport:
		return "Cannot reach the server"
	case KindStatus:
		return e.Message
	case KindStatusNoBody:
		return fmt.Sprintf("Request failed (HTTP %d)", e.Status)
	default:
		return "Unexpected response from the server"
	}
}

// IsKind reports whether err is an *APIError of kind k.
func IsKind(err error, k Kind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == k
}

// UserMessage extracts a notification text from any error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}

// statusError builds the error for a non-2xx response. The backend sends
// {timestamp, status, error, message, path}; only message is required.
func statusError(method, path string, status int, body []byte) *APIError {
	e := &APIError{Method: method, Path: path, Status: status, Kind: KindStatusNoBody}
	if !gjson.ValidBytes(body) {
		return e
	}
	msg := strings.TrimSpace(gjson.GetBytes(body, "message").String())
	if msg == "" {
		msg = strings.TrimSpace(gjson.GetBytes(body, "error").String())
	}
	if msg != "" {
		e.Kind = KindStatus
		e.Message = msg
	}
	return e
}
