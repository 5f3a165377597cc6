package testutil

import (
	"encoding/json"
	"testing"
)

// Response mirrors the JSON envelope written by github.com/dracory/api.
type Response struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// DecodeResponse parses an api envelope or fails the test.
func DecodeResponse(t *testing.T, body []byte) Response {
	t.Helper()

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to parse response: %v: %s", err, body)
	}
	return resp
}
