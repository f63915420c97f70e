package httpclient

import (
	"fmt"
	"io"
	"net/http"
)

// MaxErrorBody bounds how much of an error response body is kept.
const MaxErrorBody = 1 << 10

// StatusError is a non-success HTTP answer from an upstream API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// NewStatusError consumes and closes resp.Body, keeping at most MaxErrorBody
// bytes of it.
func NewStatusError(resp *http.Response) *StatusError {
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody))
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
