// internal/common/http/response.go
package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrorBody is the envelope for non-core endpoint failures.
type ErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg, detail string) {
	WriteJSON(w, status, ErrorBody{Error: msg, Detail: detail})
}

// ErrInvalidJSON is returned by DecodeBody for a body that is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON body")

// DecodeBody decodes a JSON request body into v. The body must hold a single
// object or array. An empty body or a top-level array leaves v untouched and
// is not an error.
func DecodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrInvalidJSON
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ErrInvalidJSON
	}

	raw = bytes.TrimSpace(raw)
	switch raw[0] {
	case '{':
		if err := json.Unmarshal(raw, v); err != nil {
			return ErrInvalidJSON
		}
		return nil
	case '[':
		return nil
	default:
		return ErrInvalidJSON
	}
}
