package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"hotels_xml/internal/adapters/fetch"
)

func TestClient_Fetch_HTTPSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "hotels-xml/1.0" {
			t.Errorf("unexpected user agent %q", ua)
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte("<Hotels/>"))
	}))
	defer ts.Close()

	cl := fetch.New(fetch.Options{RPS: 100}) // high RPS for tests
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := cl.Fetch(ctx, ts.URL+"/Hotels.xml")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(got) != "<Hotels/>" {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestClient_Fetch_NoRetryOn5xx(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("  upstream down \n"))
	}))
	defer ts.Close()

	cl := fetch.New(fetch.Options{RPS: 100})
	_, err := cl.Fetch(context.Background(), ts.URL)

	var se *fetch.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusBadGateway || se.Body != "upstream down" {
		t.Fatalf("unexpected status error: %+v", se)
	}
	if err.Error() != "bad status 502: upstream down" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected exactly one attempt, got %d", n)
	}
}

func TestClient_Fetch_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl := fetch.New(fetch.Options{RPS: 100})
	_, err := cl.Fetch(context.Background(), ts.URL+"/missing.xml")
	if !errors.Is(err, fetch.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Fetch_Forbidden(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	_, err := fetch.New(fetch.Options{RPS: 100}).Fetch(context.Background(), ts.URL)
	if !errors.Is(err, fetch.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestClient_Fetch_SizeLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 64))
	}))
	defer ts.Close()

	cl := fetch.New(fetch.Options{RPS: 100, MaxBytes: 63})
	if _, err := cl.Fetch(context.Background(), ts.URL); !errors.Is(err, fetch.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestClient_Fetch_LocalPathAndFileURL(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "Hotels.xml")
	if err := os.WriteFile(p, []byte("<Hotels/>"), 0o600); err != nil {
		t.Fatal(err)
	}
	cl := fetch.New(fetch.Options{})

	for _, loc := range []string{p, "file://" + filepath.ToSlash(p)} {
		got, err := cl.Fetch(context.Background(), loc)
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", loc, err)
		}
		if string(got) != "<Hotels/>" {
			t.Fatalf("%s: unexpected body %q", loc, got)
		}
	}

	if _, err := cl.Fetch(context.Background(), filepath.Join(dir, "nope.xml")); !errors.Is(err, fetch.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing file, got %v", err)
	}
}

func TestClient_Fetch_UnsupportedScheme(t *testing.T) {
	_, err := fetch.New(fetch.Options{}).Fetch(context.Background(), "ftp://example.test/Hotels.xml")
	if err == nil {
		t.Fatalf("expected error for ftp scheme")
	}
}
