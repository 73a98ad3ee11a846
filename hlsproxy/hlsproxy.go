// Package hlsproxy forwards segment and playlist requests to an
// external HLS transcoder and relays the response. The transcoder is
// configured per collection; this server stays the single endpoint the
// client talks to.
package hlsproxy

import (
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Segment fetches can be slow while the transcoder is still encoding.
const requestTimeout = 120 * time.Second

// Hop-by-hop headers are meaningful per connection and must not be
// relayed (RFC 9110 section 7.6.1).
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailers",
	"Transfer-Encoding",
	"Upgrade",
}

type Proxy struct {
	client *http.Client
}

func New() *Proxy {
	return &Proxy{
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Forward proxies the request to hlsServer, requesting mediaPath below
// it, and streams the upstream response back to the client.
func (p *Proxy) Forward(w http.ResponseWriter, r *http.Request, hlsServer, mediaPath string) {
	// Escape per segment; escaping the whole path would turn its
	// slashes into %2F.
	segments := strings.Split(mediaPath, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	target := strings.TrimSuffix(hlsServer, "/") + "/" + strings.Join(segments, "/")

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}

	copyHeaders(req.Header, r.Header)
	appendForwardedFor(req, r)

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("hlsproxy: %s: %v", target, err)
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	dst := w.Header()
	for name, values := range resp.Header {
		if skipHeader(name) {
			continue
		}
		dst[name] = values
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("hlsproxy: streaming %s: %v", target, err)
	}
}

// copyHeaders relays the client request headers, minus hop-by-hop
// headers and any CORS headers the client sent along; this server
// applies its own CORS policy to the response.
func copyHeaders(dst, src http.Header) {
	for name, values := range src {
		if skipHeader(name) {
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), "access-control-allow-") {
			continue
		}
		dst[name] = values
	}
}

func skipHeader(name string) bool {
	for _, h := range hopByHopHeaders {
		if http.CanonicalHeaderKey(name) == h {
			return true
		}
	}
	return false
}

func appendForwardedFor(req *http.Request, r *http.Request) {
	clientIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		clientIP = r.RemoteAddr
	}
	if prior := r.Header.Get("X-Forwarded-For"); prior != "" {
		clientIP = prior + ", " + clientIP
	}
	req.Header.Set("X-Forwarded-For", clientIP)
}

// IsHlsPath reports whether a data path addresses content inside a
// media file, e.g. "movie.mp4/master.m3u8", which only the transcoder
// can serve.
func IsHlsPath(mediaPath string) bool {
	return strings.Contains(mediaPath, ".mp4/")
}
