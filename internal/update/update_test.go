package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheck_NewerAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`))
	}))
	defer srv.Close()

	release, newer, err := checkURL(context.Background(), srv.URL, "v1.2.0")
	if err != nil {
		t.Fatalf("checkURL failed: %v", err)
	}
	if !newer {
		t.Error("expected newer release to be reported")
	}
	if release.Version != "v2.0.0" {
		t.Errorf("unexpected version: %s", release.Version)
	}
}

func TestCheck_UpToDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name":"v1.2.0"}`))
	}))
	defer srv.Close()

	_, newer, err := checkURL(context.Background(), srv.URL, "v1.2.0")
	if err != nil {
		t.Fatalf("checkURL failed: %v", err)
	}
	if newer {
		t.Error("same version should not be reported as newer")
	}
}

func TestCheck_BadResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{broken`))
		}},
		{"missing version", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"html_url":"x"}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			if _, _, err := checkURL(context.Background(), srv.URL, "v1.0.0"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
