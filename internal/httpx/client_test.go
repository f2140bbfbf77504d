package httpx

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ildiar25/NavidromeServer-sub000/internal/errs"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	body, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != "payload" {
		t.Errorf("Get body = %q, want %q", body, "payload")
	}
}

func TestGetNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	if _, err := c.Get(context.Background(), srv.URL); !errors.Is(err, errs.ErrClientPlatform) {
		t.Errorf("Get(404) = %v, want ErrClientPlatform", err)
	}
}

func TestDownloadFileWithProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out.bin")
	c := NewClient(5 * time.Second)

	var last int64
	err := c.DownloadFile(context.Background(), srv.URL, dest, func(written, total int64) {
		last = written
	})
	if err != nil {
		t.Fatalf("DownloadFile: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading destination: %v", err)
	}
	if string(data) != "0123456789" {
		t.Errorf("downloaded content = %q", data)
	}
	if last != 10 {
		t.Errorf("final progress = %d, want 10", last)
	}
}

func TestDownloadFileTruncatedLeavesNoPartial(t *testing.T) {
	// Declares 100 bytes but sends 10, so the client hits an
	// unexpected EOF mid-copy.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out.bin")
	c := NewClient(5 * time.Second)

	if err := c.DownloadFile(context.Background(), srv.URL, dest, nil); !errors.Is(err, errs.ErrClientPlatform) {
		t.Fatalf("DownloadFile(truncated) = %v, want ErrClientPlatform", err)
	}
	if _, err := os.Stat(dest); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("truncated file left at destination: stat = %v", err)
	}
}

func TestGetFileSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "42")
		if r.Method == http.MethodHead {
			return
		}
		w.Write(make([]byte, 42))
	}))
	defer srv.Close()

	c := NewClient(5 * time.Second)
	size, err := c.GetFileSize(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetFileSize: %v", err)
	}
	if size != 42 {
		t.Errorf("GetFileSize = %d, want 42", size)
	}
}
