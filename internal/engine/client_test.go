package engine

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestProcess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "missing image", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)

		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(append([]byte("pixelated:"), data...))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	got, err := client.Process(context.Background(), []byte("face"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "pixelated:face" {
		t.Errorf("Expected pixelated:face, got %s", got)
	}
}

func TestProcessErrors(t *testing.T) {
	tests := []struct {
		name   string
		server func(t *testing.T) string
		check  func(t *testing.T, err error)
	}{
		{
			name: "non-200 carries status and body",
			server: func(t *testing.T) string {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, `{"error":"No se pudo decodificar la imagen."}`, http.StatusUnprocessableEntity)
				}))
				t.Cleanup(srv.Close)
				return srv.URL
			},
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("Expected StatusError, got %v", err)
				}
				if statusErr.Code != http.StatusUnprocessableEntity {
					t.Errorf("Expected 422, got %d", statusErr.Code)
				}
				if statusErr.Body == "" {
					t.Error("Expected engine body to be kept")
				}
			},
		},
		{
			name: "connection refused",
			server: func(t *testing.T) string {
				srv := httptest.NewServer(http.NotFoundHandler())
				url := srv.URL
				srv.Close()
				return url
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrUnavailable) {
					t.Errorf("Expected ErrUnavailable, got %v", err)
				}
			},
		},
		{
			name: "timeout",
			server: func(t *testing.T) string {
				release := make(chan struct{})
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					select {
					case <-release:
					case <-r.Context().Done():
					}
				}))
				t.Cleanup(func() {
					close(release)
					srv.Close()
				})
				return srv.URL
			},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrTimeout) {
					t.Errorf("Expected ErrTimeout, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := New(tt.server(t), 100*time.Millisecond)
			_, err := client.Process(context.Background(), []byte("face"))
			if err == nil {
				t.Fatal("Expected error")
			}
			tt.check(t, err)
		})
	}
}
