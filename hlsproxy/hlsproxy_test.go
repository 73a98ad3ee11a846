package hlsproxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestForward(t *testing.T) {
	var gotPath string
	var gotHeader http.Header
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RawPath
		if gotPath == "" {
			gotPath = r.URL.Path
		}
		gotHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
		w.Header().Set("Transfer-Encoding", "chunked")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "#EXTM3U\n")
	}))
	defer upstream.Close()

	req := httptest.NewRequest(http.MethodGet, "http://example/data/c1/movie.mp4/master.m3u8", nil)
	req.Header.Set("User-Agent", "test-client")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Access-Control-Allow-Origin", "*")
	req.RemoteAddr = "192.0.2.10:5555"
	rec := httptest.NewRecorder()

	p := New()
	p.Forward(rec, req, upstream.URL, "movie.mp4/master.m3u8")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); body != "#EXTM3U\n" {
		t.Errorf("body = %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.apple.mpegurl" {
		t.Errorf("content type = %q", ct)
	}

	if gotHeader.Get("User-Agent") != "test-client" {
		t.Error("client headers not relayed")
	}
	if gotHeader.Get("Connection") != "" {
		t.Error("hop-by-hop header relayed")
	}
	if gotHeader.Get("Access-Control-Allow-Origin") != "" {
		t.Error("client CORS header relayed")
	}
	if gotHeader.Get("X-Forwarded-For") != "192.0.2.10" {
		t.Errorf("X-Forwarded-For = %q", gotHeader.Get("X-Forwarded-For"))
	}
}

func TestForwardStatusRelayed(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such segment", http.StatusNotFound)
	}))
	defer upstream.Close()

	req := httptest.NewRequest(http.MethodGet, "http://example/x", nil)
	rec := httptest.NewRecorder()
	New().Forward(rec, req, upstream.URL, "gone.mp4/seg1.ts")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestForwardUpstreamDown(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example/x", nil)
	rec := httptest.NewRecorder()
	New().Forward(rec, req, "http://127.0.0.1:1", "movie.mp4/master.m3u8")

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestIsHlsPath(t *testing.T) {
	if !IsHlsPath("Movie (2020)/movie.mp4/master.m3u8") {
		t.Error("hls path not recognized")
	}
	if IsHlsPath("Movie (2020)/movie.mkv") {
		t.Error("plain file mistaken for hls path")
	}
}

func TestForwardEscapesPerSegment(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		io.WriteString(w, "#EXTM3U\n")
	}))
	defer upstream.Close()

	req := httptest.NewRequest(http.MethodGet, "http://example/x", nil)
	rec := httptest.NewRecorder()
	New().Forward(rec, req, upstream.URL, "Movie (2020)/movie.mp4/master.m3u8")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if want := "/Movie%20(2020)/movie.mp4/master.m3u8"; gotPath != want {
		t.Errorf("upstream path = %q, want %q", gotPath, want)
	}
}
