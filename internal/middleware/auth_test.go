package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDefaultAuthConfig(t *testing.T) {
	config := DefaultAuthConfig()

	if !config.Require {
		t.Error("Expected Require to be true by default")
	}

	expectedPaths := []string{"/download", "/info"}
	if len(config.ProtectedPaths) != len(expectedPaths) {
		t.Fatalf("Expected %d protected paths, got %d", len(expectedPaths), len(config.ProtectedPaths))
	}
	for i, path := range expectedPaths {
		if config.ProtectedPaths[i] != path {
			t.Errorf("Expected protected path %q, got %q", path, config.ProtectedPaths[i])
		}
	}
}

func TestAPIHeadersRejectsMissingHeaders(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		headers map[string]string
	}{
		{
			name: "No headers on download",
			path: "/download",
		},
		{
			name: "No headers on info",
			path: "/info",
		},
		{
			name:    "Key without host",
			path:    "/download",
			headers: map[string]string{"X-RapidAPI-Key": "abc123"},
		},
		{
			name:    "Host without key",
			path:    "/download",
			headers: map[string]string{"X-RapidAPI-Host": "clipper.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			middleware := APIHeaders(DefaultAuthConfig())
			wrappedHandler := middleware(handler)

			req := httptest.NewRequest(http.MethodPost, tt.path, http.NoBody)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			wrappedHandler.ServeHTTP(w, req)

			if handlerCalled {
				t.Error("Expected handler not to be called")
			}

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", w.Code)
			}

			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected application/json content type, got %q", ct)
			}

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("Response body is not valid JSON: %v", err)
			}

			if body["error"] != "Unauthorized" {
				t.Errorf("Expected error %q, got %q", "Unauthorized", body["error"])
			}

			if body["message"] != "X-RapidAPI-Key and X-RapidAPI-Host headers are required" {
				t.Errorf("Unexpected message: %q", body["message"])
			}
		})
	}
}

func TestAPIHeadersAllowsAuthenticatedRequests(t *testing.T) {
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	middleware := APIHeaders(DefaultAuthConfig())
	wrappedHandler := middleware(handler)

	req := httptest.NewRequest(http.MethodPost, "/download", http.NoBody)
	req.Header.Set("X-RapidAPI-Key", "abc123")
	req.Header.Set("X-RapidAPI-Host", "clipper.example.com")
	w := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(w, req)

	if !handlerCalled {
		t.Error("Expected handler to be called")
	}

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestAPIHeadersIgnoresUnprotectedPaths(t *testing.T) {
	paths := []string{"/", "/health", "/healthz", "/version"}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			handlerCalled := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			middleware := APIHeaders(DefaultAuthConfig())
			wrappedHandler := middleware(handler)

			req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
			w := httptest.NewRecorder()

			wrappedHandler.ServeHTTP(w, req)

			if !handlerCalled {
				t.Error("Expected handler to be called without API headers")
			}

			if w.Code != http.StatusOK {
				t.Errorf("Expected status 200, got %d", w.Code)
			}
		})
	}
}

func TestAPIHeadersDisabled(t *testing.T) {
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	config := AuthConfig{
		Require:        false,
		ProtectedPaths: []string{"/download", "/info"},
	}
	middleware := APIHeaders(config)
	wrappedHandler := middleware(handler)

	req := httptest.NewRequest(http.MethodPost, "/download", http.NoBody)
	w := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(w, req)

	if !handlerCalled {
		t.Error("Expected handler to be called when enforcement is disabled")
	}

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}
