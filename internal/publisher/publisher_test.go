package publisher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeArchive(t *testing.T) (string, []byte) {
	t.Helper()
	data := []byte("PK\x03\x04 fake archive")
	path := filepath.Join(t.TempDir(), "slider.adc")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path, data
}

func TestPublish(t *testing.T) {
	path, data := writeArchive(t)
	sum := sha256.Sum256(data)
	wantChecksum := hex.EncodeToString(sum[:])

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer s3cret" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "adxutil/1.2.3" {
			t.Errorf("User-Agent = %q", got)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()
		got, _ := io.ReadAll(file)
		if header.Filename != "slider.adc" || string(got) != string(data) {
			t.Errorf("uploaded %q with %d bytes", header.Filename, len(got))
		}
		if r.FormValue("checksum") != wantChecksum {
			t.Errorf("checksum = %q, want %q", r.FormValue("checksum"), wantChecksum)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"42","url":"https://store.example.com/adc/42"}`))
	}))
	defer server.Close()

	p := New(server.URL, "s3cret", WithHTTPClient(server.Client()), WithVersion("1.2.3"))
	receipt, err := p.Publish(context.Background(), path)
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if receipt.ID != "42" || receipt.URL != "https://store.example.com/adc/42" {
		t.Errorf("receipt = %+v", receipt)
	}
	if receipt.Checksum != wantChecksum {
		t.Errorf("Checksum = %q", receipt.Checksum)
	}
}

func TestPublish_NoTokenNoBody(t *testing.T) {
	path, _ := writeArchive(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("Authorization header sent without a token")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	receipt, err := New(server.URL, "", WithHTTPClient(server.Client())).Publish(context.Background(), path)
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if receipt.ID != "" {
		t.Errorf("ID = %q, want empty", receipt.ID)
	}
}

func TestPublish_StatusError(t *testing.T) {
	path, _ := writeArchive(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := New(server.URL, "old", WithHTTPClient(server.Client())).Publish(context.Background(), path)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized || !strings.Contains(statusErr.Error(), "token expired") {
		t.Errorf("StatusError = %v", statusErr)
	}
}

func TestPublish_Errors(t *testing.T) {
	path, _ := writeArchive(t)

	if _, err := New("", "").Publish(context.Background(), path); !errors.Is(err, ErrNoEndpoint) {
		t.Errorf("error = %v, want ErrNoEndpoint", err)
	}
	if _, err := New("http://127.0.0.1:1", "").Publish(context.Background(), filepath.Join(t.TempDir(), "missing.adc")); err == nil {
		t.Error("expected error for missing archive")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()
	if _, err := New(server.URL, "", WithHTTPClient(server.Client())).Publish(context.Background(), path); err == nil {
		t.Error("expected error for non-JSON response")
	}
}
