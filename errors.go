package tweetie

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Error classes returned by the client. Match them with errors.Is.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrAuth         = errors.New("platform authentication failed")
	ErrRateLimited  = errors.New("platform rate limit exceeded")
	ErrNetwork      = errors.New("platform unreachable")
	ErrPlatform     = errors.New("platform error")
)

// APIError is a failed v1.1 API response.
type APIError struct {
	Endpoint string
	Status   int
	Code     int
	Message  string
	Reset    time.Time // set for rate-limited responses
	class    error
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s HTTP %d (code %d): %s", e.Endpoint, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%s HTTP %d: %s", e.Endpoint, e.Status, e.Message)
}

// Unwrap returns the error class (ErrUserNotFound, ErrAuth, ...).
func (e *APIError) Unwrap() error { return e.class }

// errorClass categorizes Twitter API error responses for targeted handling.
type errorClass int

const (
	errNone         errorClass = iota
	errNotFound                 // 34, 50, 63: page/user missing or suspended
	errAuthFailed               // 32, 89, 135, 215, 220: bad or expired OAuth credentials
	errRateLimit                // 88: rate limit exceeded
	errNotAuthorized            // 179: protected account
	errInternal                 // 130, 131: over capacity / internal error
)

// apiErrorBody is the v1.1 error envelope: {"errors":[{"code":50,"message":"User not found."}]}.
type apiErrorBody struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
	Error string `json:"error"`
}

// classifyError inspects a response body for known Twitter error codes.
// It returns the class of the first recognized code, the code and its message.
func classifyError(body []byte) (errorClass, int, string) {
	var errResp apiErrorBody
	if json.Unmarshal(body, &errResp) != nil {
		return errNone, 0, ""
	}
	if len(errResp.Errors) == 0 {
		// friends/list on a protected account answers {"request":...,"error":"Not authorized."}
		if errResp.Error != "" {
			return errNotAuthorized, 0, errResp.Error
		}
		return errNone, 0, ""
	}

	for _, e := range errResp.Errors {
		switch e.Code {
		case 34, 50, 63:
			return errNotFound, e.Code, e.Message
		case 32, 89, 135, 215, 220:
			return errAuthFailed, e.Code, e.Message
		case 88:
			return errRateLimit, e.Code, e.Message
		case 179:
			return errNotAuthorized, e.Code, e.Message
		case 130, 131:
			return errInternal, e.Code, e.Message
		}
	}
	return errNone, errResp.Errors[0].Code, errResp.Errors[0].Message
}

// statusError builds the error for a non-200 response.
func statusError(endpoint string, status int, body []byte) *APIError {
	class, code, msg := classifyError(body)
	if msg == "" {
		msg = truncateBytes(body, 200)
	}
	e := &APIError{Endpoint: endpoint, Status: status, Code: code, Message: msg}

	switch {
	case status == 429 || class == errRateLimit:
		e.class = ErrRateLimited
	case status == 404 || class == errNotFound:
		e.class = ErrUserNotFound
	case status == 401 || class == errAuthFailed || class == errNotAuthorized:
		e.class = ErrAuth
	default:
		e.class = ErrPlatform
	}
	return e
}

// retryable reports whether a response status is worth another attempt.
func retryable(status int, class errorClass) bool {
	return status >= 500 || class == errInternal
}

// parseRateLimitReset parses the X-Rate-Limit-Reset unix timestamp header.
// Falls back to 15 minutes from now if missing or invalid.
func parseRateLimitReset(v string) time.Time {
	if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Unix(ts, 0)
	}
	return time.Now().Add(15 * time.Minute)
}
