// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/rendydev404/beatly-backend/internal/models"
	"github.com/rendydev404/beatly-backend/internal/services"
)

// MockSearcher is a test double for [services.VideoSearcher].
//
// SearchFunc drives per-query behavior; Calls records every query in order,
// guarded for concurrent use.
type MockSearcher struct {
	SearchFunc func(query string) ([]services.VideoCandidate, error)
	Status     services.KeyStatus

	mu     sync.Mutex
	calls  []string
	resets int
}

func (m *MockSearcher) Search(ctx context.Context, query string) ([]services.VideoCandidate, error) {
	m.mu.Lock()
	m.calls = append(m.calls, query)
	m.mu.Unlock()

	if m.SearchFunc == nil {
		return nil, nil
	}
	return m.SearchFunc(query)
}

func (m *MockSearcher) ResetKeys() {
	m.mu.Lock()
	m.resets++
	m.mu.Unlock()
}

func (m *MockSearcher) KeyStatus() services.KeyStatus {
	return m.Status
}

// Calls returns a copy of the recorded queries.
func (m *MockSearcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how many searches were issued.
func (m *MockSearcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Resets returns how many times ResetKeys was called.
func (m *MockSearcher) Resets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

// MockCatalog is a test double for [services.Catalog].
type MockCatalog struct {
	Tracks []models.Track
	Err    error
}

func (m *MockCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	return m.Tracks, m.Err
}

func (m *MockCatalog) Name() string { return "mock" }

// MockLyrics is a test double for [services.Lyrics].
type MockLyrics struct {
	Lyrics string
	Err    error
}

func (m *MockLyrics) GetLyrics(ctx context.Context, artist, title string) (string, error) {
	return m.Lyrics, m.Err
}

// MockTextGenerator is a test double for [services.TextGenerator].
type MockTextGenerator struct {
	Text string
	Err  error
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return m.Text, m.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
