package httputil

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestMockHTTPClient_ReplaysInOrder(t *testing.T) {
	mock := NewMockHTTPClient().
		AddResponse(http.StatusOK, `{"result":"first"}`).
		AddResponse(http.StatusNotFound, `{"error":"gone"}`)

	req, _ := http.NewRequest(http.MethodGet, "http://tracker/api/vehicles", nil)
	resp, err := mock.Do(req)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != `{"result":"first"}` {
		t.Errorf("got %d %q", resp.StatusCode, body)
	}

	resp, _ = mock.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("got status %d, want 404", resp.StatusCode)
	}

	// Exhausted queue falls back to an empty 200.
	resp, _ = mock.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("got status %d, want 200", resp.StatusCode)
	}
	if mock.RequestCount() != 3 {
		t.Errorf("got %d requests, want 3", mock.RequestCount())
	}
}

func TestMockHTTPClient_RecordsBody(t *testing.T) {
	mock := NewMockHTTPClient()
	req, _ := http.NewRequest(http.MethodPost, "http://tracker/api/vehicles/v1/command", strings.NewReader(`{"command":"accelerate"}`))
	if _, err := mock.Do(req); err != nil {
		t.Fatal(err)
	}

	got, body := mock.Request(0)
	if got.URL.Path != "/api/vehicles/v1/command" || body != `{"command":"accelerate"}` {
		t.Errorf("recorded %s %q", got.URL.Path, body)
	}
	if r, _ := mock.Request(5); r != nil {
		t.Error("expected nil for out-of-range request")
	}
}

func TestMockHTTPClient_Error(t *testing.T) {
	wantErr := errors.New("connection refused")
	mock := NewMockHTTPClient().AddErrorResponse(wantErr)

	req, _ := http.NewRequest(http.MethodGet, "http://tracker/", nil)
	if _, err := mock.Do(req); !errors.Is(err, wantErr) {
		t.Errorf("got %v, want %v", err, wantErr)
	}
}
