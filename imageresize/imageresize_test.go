package imageresize

import (
	"image"
	"image/jpeg"
	"image/png"
	"net/url"
	"os"
	"path"
	"strings"
	"testing"
	"time"
)

func writeTestImage(t *testing.T, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fh, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	if strings.HasSuffix(name, ".png") {
		err = png.Encode(fh, img)
	} else {
		err = jpeg.Encode(fh, img, nil)
	}
	if err != nil {
		t.Fatal(err)
	}
	return name
}

func openImage(t *testing.T, name string) image.Image {
	t.Helper()
	fh, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	img, _, err := image.Decode(fh)
	if err != nil {
		t.Fatalf("decode %s: %v", name, err)
	}
	return img
}

func TestResize(t *testing.T) {
	dir := t.TempDir()
	source := writeTestImage(t, path.Join(dir, "poster.jpg"), 400, 600)

	r := New(Options{Cachedir: t.TempDir()})

	resized := r.Resize(source, 200, 0, 0)
	if resized == source {
		t.Fatal("expected a cache path, got the source")
	}
	img := openImage(t, resized)
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 300 {
		t.Errorf("resized to %dx%d, want 200x300 (aspect preserved)",
			img.Bounds().Dx(), img.Bounds().Dy())
	}

	// same parameters hit the same cache entry
	if again := r.Resize(source, 200, 0, 0); again != resized {
		t.Errorf("cache miss on identical request: %q != %q", again, resized)
	}

	// different parameters get a different entry
	if other := r.Resize(source, 100, 100, 0); other == resized {
		t.Error("different dimensions mapped to the same cache entry")
	}
}

func TestResizePassthrough(t *testing.T) {
	dir := t.TempDir()
	source := writeTestImage(t, path.Join(dir, "poster.jpg"), 100, 100)

	r := New(Options{Cachedir: t.TempDir()})
	if got := r.Resize(source, 0, 0, 0); got != source {
		t.Errorf("no parameters must return the source, got %q", got)
	}
}

func TestResizeBadSourceFallsBack(t *testing.T) {
	dir := t.TempDir()
	source := path.Join(dir, "broken.jpg")
	if err := os.WriteFile(source, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	r := New(Options{Cachedir: t.TempDir()})
	if got := r.Resize(source, 100, 0, 0); got != source {
		t.Errorf("decode failure must fall back to the source, got %q", got)
	}
}

func TestResizePngKeepsFormat(t *testing.T) {
	dir := t.TempDir()
	source := writeTestImage(t, path.Join(dir, "logo.png"), 300, 300)

	r := New(Options{Cachedir: t.TempDir()})
	resized := r.Resize(source, 150, 150, 0)
	if !strings.HasSuffix(resized, ".png") {
		t.Errorf("cache entry %q does not keep the png extension", resized)
	}
	openImage(t, resized)
}

func TestCacheNameDependsOnMtime(t *testing.T) {
	now := time.Now()
	a := cacheName("/x/poster.jpg", 100, 100, 90, now)
	b := cacheName("/x/poster.jpg", 100, 100, 90, now.Add(time.Second))
	if a == b {
		t.Error("cache name must change when the source mtime changes")
	}
}

func TestCleanup(t *testing.T) {
	cachedir := t.TempDir()
	old := path.Join(cachedir, "old.jpg")
	if err := os.WriteFile(old, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}
	fresh := path.Join(cachedir, "fresh.jpg")
	if err := os.WriteFile(fresh, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	r := New(Options{Cachedir: cachedir, CleanupAge: 24 * time.Hour})
	r.Cleanup()

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale cache entry not removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh cache entry removed")
	}
}

func TestFromQuery(t *testing.T) {
	params, _ := url.ParseQuery("w=200&h=300&q=85")
	w, h, q := FromQuery(params)
	if w != 200 || h != 300 || q != 85 {
		t.Errorf("FromQuery = %d %d %d", w, h, q)
	}
	w, h, q = FromQuery(url.Values{})
	if w != 0 || h != 0 || q != 0 {
		t.Errorf("FromQuery empty = %d %d %d", w, h, q)
	}
}
