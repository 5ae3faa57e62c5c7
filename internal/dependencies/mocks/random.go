package mocks

import (
	"sync"

	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// Queued results are handed out in order; once a queue is drained the
// zero value is returned, unless Fallback is set.
type MockRandom struct {
	mu sync.Mutex

	intnResults []int
	intnIndex   int

	stringResults []string
	stringIndex   int

	// Fallback, when set, serves calls once a queue is empty
	Fallback random.Random
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.intnIndex >= len(r.intnResults) {
		if r.Fallback != nil {
			return r.Fallback.Intn(n)
		}
		return 0
	}
	result := r.intnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// String returns the next queued result
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stringIndex >= len(r.stringResults) {
		if r.Fallback != nil {
			return r.Fallback.String(length, alphabet)
		}
		return ""
	}
	result := r.stringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnResults = append(r.intnResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stringResults = append(r.stringResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnResults = nil
	r.intnIndex = 0
	r.stringResults = nil
	r.stringIndex = 0
}
