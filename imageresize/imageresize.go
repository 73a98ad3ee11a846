// Package imageresize resizes artwork on demand and keeps the results
// in an on-disk cache. Cache entries are content-addressed: the key
// covers the source path, the requested dimensions and quality, and the
// source modification time, so a replaced poster never serves stale
// thumbnails.
package imageresize

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

const defaultJpegQuality = 90

type Options struct {
	// Cachedir is the directory resized images are stored in. Empty
	// disables the cache; images are then served unresized.
	Cachedir string
	// CleanupAge is how old a cache entry may get before the periodic
	// cleanup removes it.
	CleanupAge time.Duration
}

type Resizer struct {
	cachedir   string
	cleanupAge time.Duration
	// tmpExt makes in-progress cache writes unique per process.
	tmpExt string

	resizeMutexMapLock sync.Mutex
	resizeMutexMap     map[string]*sync.Mutex
}

func New(options Options) *Resizer {
	r := &Resizer{
		cachedir:       options.Cachedir,
		cleanupAge:     options.CleanupAge,
		tmpExt:         fmt.Sprintf(".%d", os.Getpid()),
		resizeMutexMap: make(map[string]*sync.Mutex),
	}
	if r.cleanupAge == 0 {
		r.cleanupAge = 30 * 24 * time.Hour
	}
	return r
}

// FromQuery extracts the w, h and q resize parameters from a query
// string. Absent or malformed values come back as 0.
func FromQuery(params url.Values) (width, height, quality int) {
	width = queryInt(params, "w")
	height = queryInt(params, "h")
	quality = queryInt(params, "q")
	return
}

func queryInt(params url.Values, name string) int {
	v, err := strconv.ParseUint(params.Get(name), 10, 32)
	if err != nil {
		return 0
	}
	return int(v)
}

// Resize returns the path of a resized rendition of source. When no
// resize parameters are given, or when anything goes wrong along the
// way, the source path comes back unchanged: serving the original
// beats serving an error.
func (r *Resizer) Resize(source string, width, height, quality int) string {
	if width == 0 && height == 0 && quality == 0 {
		return source
	}
	if r.cachedir == "" {
		return source
	}

	fi, err := os.Stat(source)
	if err != nil {
		return source
	}
	cachefile := path.Join(r.cachedir, cacheName(source, width, height, quality, fi.ModTime()))
	if _, err := os.Stat(cachefile); err == nil {
		return cachefile
	}

	// Collapse concurrent requests for the same source into one resize.
	r.resizeMutexMapLock.Lock()
	m, ok := r.resizeMutexMap[source]
	if !ok {
		m = &sync.Mutex{}
		r.resizeMutexMap[source] = m
	}
	r.resizeMutexMapLock.Unlock()
	m.Lock()
	defer m.Unlock()

	if _, err := os.Stat(cachefile); err == nil {
		return cachefile
	}

	img, err := imaging.Open(source)
	if err != nil {
		log.Printf("resize: cannot decode %s: %v", source, err)
		return source
	}

	targetW, targetH := targetSize(img.Bounds().Dx(), img.Bounds().Dy(), width, height)
	if targetW != img.Bounds().Dx() || targetH != img.Bounds().Dy() {
		img = imaging.Resize(img, targetW, targetH, imaging.Lanczos)
	}

	if err := r.writeCache(cachefile, source, img, quality); err != nil {
		log.Printf("resize: cannot write cache for %s: %v", source, err)
		return source
	}
	return cachefile
}

// cacheName derives the cache file name for one rendition of a source
// image. The digest covers the source path, requested dimensions and
// quality, and the source mtime.
func cacheName(source string, width, height, quality int, mtime time.Time) string {
	h := sha256.New()
	h.Write([]byte(source))
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(width))
	h.Write(buf[:4])
	binary.LittleEndian.PutUint32(buf[:4], uint32(height))
	h.Write(buf[:4])
	binary.LittleEndian.PutUint32(buf[:4], uint32(quality))
	h.Write(buf[:4])
	binary.LittleEndian.PutUint64(buf[:], uint64(mtime.Unix()))
	h.Write(buf[:])

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(source)), ".")
	return hex.EncodeToString(h.Sum(nil)) + "." + ext
}

// targetSize computes the output dimensions. One requested side scales
// the other to keep the aspect ratio; none requested passes through.
func targetSize(origW, origH, width, height int) (int, int) {
	if width == 0 && height == 0 {
		return origW, origH
	}
	if width == 0 {
		return origW * height / origH, height
	}
	if height == 0 {
		return width, origH * width / origW
	}
	return width, height
}

// writeCache encodes the image to a temp file next to the cache entry
// and renames it into place.
func (r *Resizer) writeCache(cachefile, source string, img image.Image, quality int) error {
	tmp := cachefile + r.tmpExt
	fh, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(source))
	if ext == ".jpg" || ext == ".jpeg" || ext == ".tbn" {
		if quality < 1 || quality > 100 {
			quality = defaultJpegQuality
		}
		err = jpeg.Encode(fh, img, &jpeg.Options{Quality: quality})
	} else {
		format, ferr := imaging.FormatFromFilename(source)
		if ferr != nil {
			format = imaging.PNG
		}
		err = imaging.Encode(fh, img, format)
	}
	if err != nil {
		fh.Close()
		os.Remove(tmp)
		return err
	}
	if err := fh.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, cachefile)
}

// Cleanup removes cache entries that have not been touched for the
// configured age.
func (r *Resizer) Cleanup() {
	if r.cachedir == "" {
		return
	}
	entries, err := os.ReadDir(r.cachedir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-r.cleanupAge)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		if fi.ModTime().Before(cutoff) {
			os.Remove(path.Join(r.cachedir, e.Name()))
		}
	}
}

// Background runs the cache cleanup once a day until ctx is done.
func (r *Resizer) Background(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Cleanup()
		}
	}
}
