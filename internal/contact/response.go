package contact

import (
	"encoding/json"
	"io"
)

// maxResponseBody bounds how much of a response is read for the error field.
const maxResponseBody = 64 << 10

// responseBody is the decoded response. ok is false when the body was missing
// or was not a JSON object.
type responseBody struct {
	errorText string
	ok        bool
}

// ErrorText returns the backend's error message, or "" when absent.
func (b responseBody) ErrorText() string {
	if !b.ok {
		return ""
	}

	return b.errorText
}

// parseResponseBody never fails: any read or decode problem yields the absent
// body.
func parseResponseBody(r io.Reader) responseBody {
	if r == nil {
		return responseBody{}
	}
	raw, err := io.ReadAll(io.LimitReader(r, maxResponseBody))
	if err != nil || len(raw) == 0 {
		return responseBody{}
	}

	var decoded *struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil || decoded == nil {
		return responseBody{}
	}
	if decoded.Error == nil {
		return responseBody{ok: true}
	}

	return responseBody{errorText: *decoded.Error, ok: true}
}
