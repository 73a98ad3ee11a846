package muxnormalizer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/Items", func(http.ResponseWriter, *http.Request) {})
	r.HandleFunc("/Items/{id}", func(http.ResponseWriter, *http.Request) {})
	r.HandleFunc("/Users/Me", func(http.ResponseWriter, *http.Request) {})

	n, err := New(r)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return n
}

func normalize(t *testing.T, n *Normalizer, target string) *http.Request {
	t.Helper()
	var got *http.Request
	h := n.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	return got
}

func TestNormalizePath(t *testing.T) {
	n := newTestNormalizer(t)

	tests := []struct {
		in   string
		want string
	}{
		{"/items", "/Items"},
		{"/ITEMS/abc", "/Items/abc"},
		{"/emby/Items", "/Items"},
		{"/Items//abc", "/Items/abc"},
		{"/Items/", "/Items"},
		{"/users/me", "/Users/Me"},
		{"/Unknown/route/here", "/Unknown/route/here"},
	}
	for _, tc := range tests {
		if got := normalize(t, n, tc.in); got.URL.Path != tc.want {
			t.Errorf("normalize(%q).Path = %q, want %q", tc.in, got.URL.Path, tc.want)
		}
	}
}

func TestPathParameterCasingKept(t *testing.T) {
	n := newTestNormalizer(t)
	got := normalize(t, n, "/items/AbCdEf")
	if got.URL.Path != "/Items/AbCdEf" {
		t.Errorf("path parameter casing changed: %q", got.URL.Path)
	}
}

func TestNormalizeQueryParameters(t *testing.T) {
	n := newTestNormalizer(t)

	got := normalize(t, n, "/Items?ParentId=123&SEARCHTERM=heat&fields=a,b")
	q := got.URL.Query()
	if q.Get("parentId") != "123" {
		t.Errorf("parentId = %q, query %q", q.Get("parentId"), got.URL.RawQuery)
	}
	if q.Get("searchTerm") != "heat" {
		t.Errorf("searchTerm = %q", q.Get("searchTerm"))
	}
	if q.Has("fields") {
		t.Error("fields parameter not removed")
	}
}

func TestNormalizeApiKeyParameter(t *testing.T) {
	n := newTestNormalizer(t)

	for _, param := range []string{"apikey", "ApiKey", "APIKEY", "api_key"} {
		got := normalize(t, n, "/Items?"+param+"=s3cret")
		if q := got.URL.Query(); q.Get("api_key") != "s3cret" {
			t.Errorf("%s: api_key = %q, query %q", param, q.Get("api_key"), got.URL.RawQuery)
		}
	}
}
