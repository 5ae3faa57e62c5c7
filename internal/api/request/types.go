package request

import (
	"encoding/json"
	"errors"
	"io"
)

// ErrMissingIndex is returned when a body has no "index" field
var ErrMissingIndex = errors.New("index is required")

// IndexRequest is the request body for moves and history jumps.
// Index is a pointer so a missing field can be told apart from 0.
type IndexRequest struct {
	Index *int `json:"index"`
}

// DecodeIndex reads an IndexRequest from r and returns its index
func DecodeIndex(r io.Reader) (int, error) {
	var req IndexRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return 0, err
	}
	if req.Index == nil {
		return 0, ErrMissingIndex
	}
	return *req.Index, nil
}
