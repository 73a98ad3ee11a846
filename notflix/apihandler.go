// Package notflix implements the native API: a small JSON surface for
// the bundled web UI plus the /data file server.
package notflix

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/jellofin/jellofin-server/collection"
	"github.com/jellofin/jellofin-server/hlsproxy"
	"github.com/jellofin/jellofin-server/idhash"
	"github.com/jellofin/jellofin-server/imageresize"
)

type Options struct {
	Collections  *collection.CollectionRepo
	Imageresizer *imageresize.Resizer
	// Appdir holds the static web UI assets.
	Appdir string
}

type Notflix struct {
	collections  *collection.CollectionRepo
	imageresizer *imageresize.Resizer
	hlsProxy     *hlsproxy.Proxy
	appdir       string
}

func New(o *Options) *Notflix {
	return &Notflix{
		collections:  o.Collections,
		imageresizer: o.Imageresizer,
		hlsProxy:     hlsproxy.New(),
		appdir:       o.Appdir,
	}
}

func (n *Notflix) RegisterHandlers(r *mux.Router) {
	notFound := http.NotFoundHandler()
	gzip := handlers.CompressHandler

	r.Handle("/api", notFound)
	s := r.PathPrefix("/api/").Subrouter()
	s.HandleFunc("/collections", n.collectionsHandler)
	s.HandleFunc("/collection/{coll}", n.collectionHandler)
	s.HandleFunc("/collection/{coll}/genres", n.genresHandler)
	s.Handle("/collection/{coll}/items", gzip(http.HandlerFunc(n.itemsHandler)))
	s.Handle("/collection/{coll}/item/{item}", gzip(http.HandlerFunc(n.itemHandler)))

	r.Handle("/data", notFound)
	s = r.PathPrefix("/data/").Subrouter()
	s.HandleFunc("/{source}/{path:.*}", n.dataHandler)

	r.Handle("/v", notFound)
	r.PathPrefix("/v/").HandlerFunc(n.indexHandler)
}

// preCheck rejects unsupported methods and applies the CORS headers.
func preCheck(w http.ResponseWriter, r *http.Request, keys ...string) (done bool) {
	vars := mux.Vars(r)
	for _, k := range keys {
		if _, ok := vars[k]; !ok {
			http.Error(w, "500 Internal Server Error",
				http.StatusInternalServerError)
			return true
		}
	}
	switch r.Method {
	case "OPTIONS":
		setheaders(w.Header())
		done = true
	case "GET", "HEAD":
		setheaders(w.Header())
	default:
		http.Error(w, "403 Access denied", http.StatusForbidden)
		done = true
	}
	return
}

func setheaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
}

func serveJSON(obj any, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	e.Encode(obj)
}

// checkEtag answers 304 when the client already has the entity derived
// from the given timestamp.
func checkEtag(w http.ResponseWriter, r *http.Request, modified time.Time) bool {
	if modified.IsZero() {
		return false
	}
	etag := `"` + idhash.IdHash(modified.UTC().Format(time.RFC3339Nano)) + `"`
	w.Header().Set("Etag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && etagMatch(inm, etag) {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

// etagMatch checks an If-None-Match header against an etag. The header
// can list several tags, and caches may send weak validators.
func etagMatch(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// GET /api/collections
func (n *Notflix) collectionsHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r) {
		return
	}
	cc := []Collection{}
	for _, c := range n.collections.GetCollections() {
		cc = append(cc, makeCollection(&c))
	}
	serveJSON(cc, w)
}

// GET /api/collection/{coll}
func (n *Notflix) collectionHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r, "coll") {
		return
	}
	c := n.collections.GetCollection(mux.Vars(r)["coll"])
	if c == nil {
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}
	serveJSON(makeCollection(c), w)
}

// GET /api/collection/{coll}/items
func (n *Notflix) itemsHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r, "coll") {
		return
	}
	c := n.collections.GetCollection(mux.Vars(r)["coll"])
	if c == nil {
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}

	var lastVideo time.Time
	for _, i := range c.Items {
		if s, ok := i.(*collection.Show); ok {
			if s.LastVideo().After(lastVideo) {
				lastVideo = s.LastVideo()
			}
		}
	}
	if checkEtag(w, r, lastVideo) {
		return
	}
	if r.Method == "HEAD" {
		return
	}

	items := make([]Item, 0, len(c.Items))
	for _, i := range c.Items {
		items = append(items, makeItem(c, i))
	}
	serveJSON(items, w)
}

// GET /api/collection/{coll}/item/{item}
func (n *Notflix) itemHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r, "coll", "item") {
		return
	}
	vars := mux.Vars(r)
	c := n.collections.GetCollection(vars["coll"])
	if c == nil {
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}
	i := n.collections.GetItem(vars["coll"], vars["item"])
	if i == nil {
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}

	switch v := i.(type) {
	case *collection.Movie:
		if checkEtag(w, r, v.Created()) {
			return
		}
		if r.Method == "HEAD" {
			return
		}
		serveJSON(makeMovieDetail(c, v), w)
	case *collection.Show:
		if checkEtag(w, r, v.LastVideo()) {
			return
		}
		if r.Method == "HEAD" {
			return
		}
		serveJSON(makeShowDetail(c, v), w)
	default:
		http.Error(w, "404 Not Found", http.StatusNotFound)
	}
}

// GET /api/collection/{coll}/genres
//
// genresHandler lists genres sorted by item count, most used first,
// ties broken by name.
func (n *Notflix) genresHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r, "coll") {
		return
	}
	c := n.collections.GetCollection(mux.Vars(r)["coll"])
	if c == nil {
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}

	genres := []GenreCount{}
	for name, count := range c.GenreCount() {
		genres = append(genres, GenreCount{Name: name, Count: count})
	}
	sort.Slice(genres, func(i, j int) bool {
		if genres[i].Count != genres[j].Count {
			return genres[i].Count > genres[j].Count
		}
		return genres[i].Name < genres[j].Name
	})
	serveJSON(genres, w)
}

// GET /data/{source}/{path}
//
// dataHandler serves media and artwork straight from the collection
// directory. HLS playlist and segment paths are forwarded to the
// configured transcoder, images honor the w, h and q resize parameters.
func (n *Notflix) dataHandler(w http.ResponseWriter, r *http.Request) {
	if preCheck(w, r, "source", "path") {
		return
	}
	vars := mux.Vars(r)
	c := n.collections.GetCollection(vars["source"])
	if c == nil {
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}

	mediaPath := path.Clean("/" + vars["path"])
	if mediaPath == "/" {
		http.Error(w, "403 Access denied", http.StatusForbidden)
		return
	}

	if c.HlsServer != "" && hlsproxy.IsHlsPath(mediaPath) {
		n.hlsProxy.Forward(w, r, c.HlsServer, strings.TrimPrefix(mediaPath, "/"))
		return
	}

	// The cleaned path must stay below the collection root.
	root := path.Clean(c.Directory)
	fn := path.Join(root, mediaPath)
	if !strings.HasPrefix(fn, root+"/") {
		http.Error(w, "403 Access denied", http.StatusForbidden)
		return
	}
	switch strings.ToLower(path.Ext(fn)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".tbn":
		width, height, quality := imageresize.FromQuery(r.URL.Query())
		fn = n.imageresizer.Resize(fn, width, height, quality)
	case ".srt":
		w.Header().Set("content-type", "application/x-subrip")
	case ".vtt":
		w.Header().Set("content-type", "text/vtt")
	}

	file, err := os.Open(fn)
	if err != nil {
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}
	defer file.Close()

	fi, err := file.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		http.Error(w, "403 Access denied", http.StatusForbidden)
		return
	}

	w.Header().Set("cache-control", "max-age=86400, stale-while-revalidate=300")
	if checkEtag(w, r, fi.ModTime()) {
		return
	}
	http.ServeContent(w, r, fn, fi.ModTime(), file)
}

// indexHandler serves the web UI entry point, paths under /v/ are
// client-side routes.
func (n *Notflix) indexHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, path.Join(n.appdir, "index.html"))
}

func makeCollection(c *collection.Collection) Collection {
	return Collection{
		ID:   c.ID,
		Name: c.Name,
		Type: string(c.Type),
	}
}

func makeItem(c *collection.Collection, i collection.Item) Item {
	item := Item{
		ID:       i.ID(),
		Name:     i.Name(),
		SortName: i.SortName(),
		Path:     escapePath(i.Path()),
		BaseUrl:  c.BaseUrl,
		Rating:   i.CommunityRating(),
		Genres:   i.Genres(),
		Year:     i.ProductionYear(),
		Poster:   escapePath(i.Images().Primary),
		Fanart:   escapePath(i.Images().Backdrop),
	}
	switch v := i.(type) {
	case *collection.Movie:
		item.Type = "movie"
		item.FirstVideo = v.Created().UnixMilli()
		item.LastVideo = v.Created().UnixMilli()
	case *collection.Show:
		item.Type = "show"
		item.FirstVideo = v.FirstVideo().UnixMilli()
		item.LastVideo = v.LastVideo().UnixMilli()
	}
	return item
}

func makeMovieDetail(c *collection.Collection, m *collection.Movie) MovieDetail {
	detail := MovieDetail{
		Item:    makeItem(c, m),
		Plot:    m.Overview(),
		Tagline: m.Tagline(),
		MPAA:    m.OfficialRating(),
		Videos:  []Video{},
	}
	if !m.PremiereDate().IsZero() {
		detail.Premiered = m.PremiereDate().Format("2006-01-02")
	}
	if studios := m.Studios(); len(studios) > 0 {
		detail.Studio = studios[0]
	}
	for _, ms := range m.MediaSources {
		srt, vtt := makeSubs(ms.Subtitles)
		detail.Videos = append(detail.Videos, Video{
			Path:      escapePath(ms.Path),
			Container: ms.Container,
			Size:      ms.Size,
			SrtSubs:   srt,
			VttSubs:   vtt,
		})
	}
	return detail
}

func makeShowDetail(c *collection.Collection, s *collection.Show) ShowDetail {
	detail := ShowDetail{
		Item:    makeItem(c, s),
		Plot:    s.Overview(),
		MPAA:    s.OfficialRating(),
		Seasons: []Season{},
	}
	if !s.PremiereDate().IsZero() {
		detail.Premiered = s.PremiereDate().Format("2006-01-02")
	}
	if studios := s.Studios(); len(studios) > 0 {
		detail.Studio = studios[0]
	}
	for _, season := range s.Seasons {
		detail.Seasons = append(detail.Seasons, makeSeason(season))
	}
	return detail
}

func makeSeason(season *collection.Season) Season {
	s := Season{
		SeasonNo: season.SeasonNumber,
		Poster:   escapePath(season.Images.Primary),
		Episodes: make([]Episode, 0, len(season.Episodes)),
	}
	for _, e := range season.Episodes {
		s.Episodes = append(s.Episodes, makeEpisode(e))
	}
	return s
}

func makeEpisode(e *collection.Episode) Episode {
	srt, vtt := makeSubs(e.MediaSource.Subtitles)
	episode := Episode{
		Name:      e.Name,
		SeasonNo:  e.SeasonNumber,
		EpisodeNo: e.EpisodeNumber,
		Double:    e.EndEpisode != 0,
		Plot:      e.Overview,
		Video:     escapePath(e.MediaSource.Path),
		Thumb:     escapePath(e.PrimaryImage()),
		SrtSubs:   srt,
		VttSubs:   vtt,
	}
	if !e.Premiered.IsZero() {
		episode.Aired = e.Premiered.Format("2006-01-02")
	}
	return episode
}

func makeSubs(subtitles []collection.SubtitleStream) (srt, vtt []Subs) {
	for _, sub := range subtitles {
		s := Subs{Lang: sub.Language, Path: escapePath(sub.Path)}
		switch sub.Codec {
		case "webvtt":
			vtt = append(vtt, s)
		default:
			srt = append(srt, s)
		}
	}
	return
}

func escapePath(p string) string {
	u := url.URL{Path: p}
	return u.EscapedPath()
}
