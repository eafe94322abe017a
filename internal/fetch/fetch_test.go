package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDownload_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("poster-bytes"))
	}))
	defer srv.Close()

	cl, _ := New(Options{Timeout: 3 * time.Second})
	b, err := cl.Download(context.Background(), srv.URL, 0)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if string(b) != "poster-bytes" {
		t.Fatalf("body=%q", b)
	}
}

func TestDownload_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("moved"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cl, _ := New(Options{Timeout: 3 * time.Second})
	b, err := cl.Download(context.Background(), srv.URL, 0)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if string(b) != "moved" {
		t.Fatalf("body=%q", b)
	}
}

func TestGet_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	cl, _ := New(Options{Timeout: 3 * time.Second})
	if _, err := cl.Get(context.Background(), srv.URL); err == nil {
		t.Fatalf("expect error for 404")
	}
}

func TestGet_RetryRecovers(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cl, _ := New(Options{Timeout: 3 * time.Second, Retry: 1})
	resp, err := cl.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get with retry: %v", err)
	}
	resp.Body.Close()
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("calls=%d want=2", calls)
	}
}

func TestDownload_Limit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 1024))
	}))
	defer srv.Close()

	cl, _ := New(Options{Timeout: 3 * time.Second})
	b, err := cl.Download(context.Background(), srv.URL, 16)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if len(b) != 16 {
		t.Fatalf("limit not applied: len=%d", len(b))
	}
}
