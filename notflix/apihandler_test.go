package notflix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"

	"github.com/jellofin/jellofin-server/collection"
	"github.com/jellofin/jellofin-server/imageresize"
)

func writeFile(t *testing.T, name string, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T) *mux.Router {
	t.Helper()
	dir := t.TempDir()

	m := path.Join(dir, "The Matrix (1999)")
	writeFile(t, path.Join(m, "The.Matrix.1999.mkv"), "matrix video")
	writeFile(t, path.Join(m, "movie.nfo"),
		`<movie><title>The Matrix</title><year>1999</year><genre>Action / Sci-Fi</genre></movie>`)

	m2 := path.Join(dir, "Speed (1994)")
	writeFile(t, path.Join(m2, "Speed.1994.mkv"), "speed video")
	writeFile(t, path.Join(m2, "movie.nfo"),
		`<movie><title>Speed</title><year>1994</year><genre>Action</genre></movie>`)

	collections := collection.New(&collection.Options{})
	if err := collections.AddCollection("movies", "Movies", "movies", dir, "", ""); err != nil {
		t.Fatal(err)
	}
	collections.Init(context.Background())

	n := New(&Options{
		Collections:  collections,
		Imageresizer: imageresize.New(imageresize.Options{}),
	})
	r := mux.NewRouter()
	n.RegisterHandlers(r)
	return r
}

func get(t *testing.T, r *mux.Router, url string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("GET %s: decoding %q: %v", url, w.Body.String(), err)
		}
	}
	return w
}

func TestCollections(t *testing.T) {
	r := newTestServer(t)

	var cc []Collection
	get(t, r, "/api/collections", &cc)
	if len(cc) != 1 || cc[0].ID != "movies" || cc[0].Type != "movies" {
		t.Errorf("collections = %+v", cc)
	}

	var c Collection
	w := get(t, r, "/api/collection/movies", &c)
	if w.Code != http.StatusOK || c.Name != "Movies" {
		t.Errorf("collection = %d %+v", w.Code, c)
	}

	if w := get(t, r, "/api/collection/nosuch", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown collection status = %d", w.Code)
	}
}

func TestItems(t *testing.T) {
	r := newTestServer(t)

	var items []Item
	get(t, r, "/api/collection/movies/items", &items)
	if len(items) != 2 {
		t.Fatalf("items = %d", len(items))
	}
	for _, i := range items {
		if i.Type != "movie" {
			t.Errorf("type = %q", i.Type)
		}
		if i.ID == "" || i.Path == "" {
			t.Errorf("incomplete item %+v", i)
		}
	}
}

func TestItemDetail(t *testing.T) {
	r := newTestServer(t)

	var items []Item
	get(t, r, "/api/collection/movies/items", &items)

	var movie *Item
	for i := range items {
		if items[i].Name == "The Matrix (1999)" {
			movie = &items[i]
		}
	}
	if movie == nil {
		t.Fatal("matrix not listed")
	}

	var detail MovieDetail
	get(t, r, "/api/collection/movies/item/"+movie.ID, &detail)
	if detail.Year != 1999 {
		t.Errorf("year = %d", detail.Year)
	}
	if len(detail.Videos) != 1 || detail.Videos[0].Container != "mkv" {
		t.Errorf("videos = %+v", detail.Videos)
	}

	if w := get(t, r, "/api/collection/movies/item/nosuch", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown item status = %d", w.Code)
	}
}

func TestGenresSortedByCount(t *testing.T) {
	r := newTestServer(t)

	var genres []GenreCount
	get(t, r, "/api/collection/movies/genres", &genres)
	if len(genres) != 2 {
		t.Fatalf("genres = %+v", genres)
	}
	if genres[0].Name != "Action" || genres[0].Count != 2 {
		t.Errorf("first genre = %+v", genres[0])
	}
	if genres[1].Name != "Sci-Fi" || genres[1].Count != 1 {
		t.Errorf("second genre = %+v", genres[1])
	}
}

func TestDataServing(t *testing.T) {
	r := newTestServer(t)

	w := get(t, r, "/data/movies/The%20Matrix%20(1999)/The.Matrix.1999.mkv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != "matrix video" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestDataRejectsTraversal(t *testing.T) {
	r := newTestServer(t)

	for _, p := range []string{
		"/data/movies/../../../etc/passwd",
		"/data/movies/..%2f..%2fetc%2fpasswd",
	} {
		req := httptest.NewRequest("GET", p, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			t.Errorf("%s served, status = %d", p, w.Code)
		}
	}
}

func TestDataRefusesWrites(t *testing.T) {
	r := newTestServer(t)

	req := httptest.NewRequest("PUT", "/data/movies/The%20Matrix%20(1999)/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("PUT status = %d", w.Code)
	}
}

func TestItemConditionalRequest(t *testing.T) {
	r := newTestServer(t)

	var items []Item
	get(t, r, "/api/collection/movies/items", &items)
	if len(items) == 0 {
		t.Fatal("no items listed")
	}
	url := "/api/collection/movies/item/" + items[0].ID

	w := get(t, r, url, nil)
	etag := w.Header().Get("Etag")
	if etag == "" {
		t.Fatal("no Etag header on item response")
	}

	for _, inm := range []string{
		etag,
		"W/" + etag,
		`"other", ` + etag,
		"*",
	} {
		req := httptest.NewRequest("GET", url, nil)
		req.Header.Set("If-None-Match", inm)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotModified {
			t.Errorf("If-None-Match %q: status = %d, want 304", inm, w.Code)
		}
	}

	req := httptest.NewRequest("GET", url, nil)
	req.Header.Set("If-None-Match", `"nope"`)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Errorf("mismatching If-None-Match: status = %d, want 200", w2.Code)
	}
}
