// Directory scanner: rebuilds a collection's contents from a Kodi-style
// filesystem layout, one subdirectory per movie or show.
package collection

import (
	"io/fs"
	"log"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/djherbis/times"

	"github.com/jellofin/jellofin-server/collection/metadata"
	"github.com/jellofin/jellofin-server/idhash"
)

var (
	isVideo     = regexp.MustCompile(`(?i)^(.*)\.(mkv|mp4|avi|m4v|mov|wmv|flv|webm)$`)
	isImage     = regexp.MustCompile(`(?i)^(.*)\.(jpg|jpeg|png|webp)$`)
	isSubtitle  = regexp.MustCompile(`(?i)^(.*)\.(srt|vtt)$`)
	isNfo       = regexp.MustCompile(`(?i)^(.*)\.nfo$`)
	isYear      = regexp.MustCompile(` \(([0-9]{4})\)$`)
	isSeasonNum = regexp.MustCompile(`(?i)^(?:season\s*(\d+)|s(\d+))$`)
	isLangCode  = regexp.MustCompile(`^[a-zA-Z]{2,3}$`)
)

// buildMovies rebuilds the items of a movies collection. pace is the
// wait between directories so a rescan does not hammer the filesystem;
// 0 means no waiting.
func (cr *CollectionRepo) buildMovies(coll *Collection, pace time.Duration) (items []Item) {
	entries, err := os.ReadDir(coll.Directory)
	if err != nil {
		log.Printf("scan: cannot read %s: %v", coll.Directory, err)
		return nil
	}
	for _, e := range entries {
		if !e.IsDir() || skipName(e.Name()) {
			continue
		}
		if m := cr.buildMovie(coll, e.Name()); m != nil {
			items = append(items, m)
		}
		if pace > 0 {
			time.Sleep(pace)
		}
	}
	return items
}

// buildMovie scans one movie directory. Returns nil when the directory
// holds no video file.
func (cr *CollectionRepo) buildMovie(coll *Collection, dir string) *Movie {
	d := path.Join(coll.Directory, dir)
	entries, err := os.ReadDir(d)
	if err != nil {
		log.Printf("scan: cannot read %s: %v", d, err)
		return nil
	}

	var videos, images, subs []string
	var nfoPath string
	for _, e := range entries {
		name := e.Name()
		switch {
		case isVideo.MatchString(name):
			videos = append(videos, name)
		case isImage.MatchString(name):
			images = append(images, name)
		case isSubtitle.MatchString(name):
			subs = append(subs, name)
		case isNfo.MatchString(name):
			nfoPath = path.Join(d, name)
		}
	}
	if len(videos) == 0 {
		return nil
	}
	sort.Strings(videos)

	name := path.Base(dir)
	year := 0
	if s := isYear.FindStringSubmatch(name); len(s) > 0 {
		year = parseInt(s[1])
	}

	var md metadata.Metadata
	if nfoPath != "" {
		md = metadata.NewNfo(nfoPath)
	} else {
		md = metadata.NewFilename(name, year)
	}
	if year != 0 {
		md.SetYear(year)
	}

	movie := &Movie{
		itemDetails: itemDetails{
			id:           idhash.IdHash(name),
			collectionID: coll.ID,
			name:         name,
			path:         dir,
		},
		Metadata: md,
	}
	applyMetadata(&movie.itemDetails, md)

	for _, img := range images {
		classifyImage(&movie.images, dir, img)
	}

	for _, video := range videos {
		src := cr.buildMediaSource(d, dir, video, subs, md)
		movie.MediaSources = append(movie.MediaSources, src)

		if ts := fileCreatetime(path.Join(d, video)); !ts.IsZero() {
			if movie.created.IsZero() || ts.Before(movie.created) {
				movie.created = ts
			}
			if ts.After(movie.modified) {
				movie.modified = ts
			}
		}
	}

	if movie.year == 0 && !movie.created.IsZero() {
		movie.year = movie.created.Year()
	}
	return movie
}

// buildShows rebuilds the items of a shows collection.
func (cr *CollectionRepo) buildShows(coll *Collection, pace time.Duration) (items []Item) {
	entries, err := os.ReadDir(coll.Directory)
	if err != nil {
		log.Printf("scan: cannot read %s: %v", coll.Directory, err)
		return nil
	}
	for _, e := range entries {
		if !e.IsDir() || skipName(e.Name()) {
			continue
		}
		if s := cr.buildShow(coll, e.Name()); s != nil {
			items = append(items, s)
		}
		if pace > 0 {
			time.Sleep(pace)
		}
	}
	return items
}

// buildShow scans one show directory: show-level sidecars in the root,
// episodes inside season subdirectories.
func (cr *CollectionRepo) buildShow(coll *Collection, dir string) *Show {
	d := path.Join(coll.Directory, dir)
	entries, err := os.ReadDir(d)
	if err != nil {
		log.Printf("scan: cannot read %s: %v", d, err)
		return nil
	}

	name := path.Base(dir)
	show := &Show{
		itemDetails: itemDetails{
			id:           idhash.IdHash(name),
			collectionID: coll.ID,
			name:         name,
			path:         dir,
		},
	}

	var nfoPath string
	var seasonDirs []fs.DirEntry
	for _, e := range entries {
		fn := e.Name()
		if e.IsDir() {
			if _, ok := parseSeasonDir(fn); ok {
				seasonDirs = append(seasonDirs, e)
			}
			continue
		}
		switch {
		case fn == "tvshow.nfo":
			nfoPath = path.Join(d, fn)
		case isNfo.MatchString(fn) && nfoPath == "":
			nfoPath = path.Join(d, fn)
		case isImage.MatchString(fn):
			classifyImage(&show.images, dir, fn)
		}
	}

	var md metadata.Metadata
	if nfoPath != "" {
		md = metadata.NewNfo(nfoPath)
	} else {
		md = metadata.NewFilename(name, 0)
	}
	show.Metadata = md
	applyMetadata(&show.itemDetails, md)

	for _, sd := range seasonDirs {
		seasonNumber, _ := parseSeasonDir(sd.Name())
		season := cr.buildSeason(coll, show, dir, sd.Name(), seasonNumber)
		if season != nil && len(season.Episodes) > 0 {
			show.Seasons = append(show.Seasons, season)
		}
	}
	if len(show.Seasons) == 0 {
		return nil
	}
	sort.Slice(show.Seasons, func(i, j int) bool {
		return show.Seasons[i].SeasonNumber < show.Seasons[j].SeasonNumber
	})

	show.created = show.FirstVideo()
	show.modified = show.LastVideo()
	if show.year == 0 && !show.premiered.IsZero() {
		show.year = show.premiered.Year()
	}
	if show.year == 0 && !show.created.IsZero() {
		show.year = show.created.Year()
	}
	return show
}

// buildSeason scans one season subdirectory of a show.
func (cr *CollectionRepo) buildSeason(coll *Collection, show *Show, showDir, seasonDir string, seasonNumber int) *Season {
	d := path.Join(coll.Directory, showDir, seasonDir)
	entries, err := os.ReadDir(d)
	if err != nil {
		log.Printf("scan: cannot read %s: %v", d, err)
		return nil
	}

	season := &Season{
		ID:           SeasonID(show.id, seasonNumber),
		ShowID:       show.id,
		CollectionID: coll.ID,
		Name:         SeasonName(seasonNumber),
		SeasonNumber: seasonNumber,
		Path:         path.Join(showDir, seasonDir),
	}

	var videos, images, subs []string
	nfos := make(map[string]string)
	for _, e := range entries {
		fn := e.Name()
		if e.IsDir() {
			continue
		}
		switch {
		case isVideo.MatchString(fn):
			videos = append(videos, fn)
		case isImage.MatchString(fn):
			images = append(images, fn)
		case isSubtitle.MatchString(fn):
			subs = append(subs, fn)
		case isNfo.MatchString(fn):
			nfos[strings.TrimSuffix(fn, path.Ext(fn))] = path.Join(d, fn)
		}
	}
	sort.Strings(videos)

	for _, video := range videos {
		info, ok := metadata.ParseEpisode(video)
		if !ok || info.Season != seasonNumber {
			continue
		}

		stem := strings.TrimSuffix(video, path.Ext(video))
		ep := &Episode{
			ID:            EpisodeID(season.ID, info.Episode),
			SeasonID:      season.ID,
			ShowID:        show.id,
			CollectionID:  coll.ID,
			Name:          metadata.CleanTitle(video),
			SeasonNumber:  info.Season,
			EpisodeNumber: info.Episode,
			EndEpisode:    info.End,
			Path:          season.Path,
			MediaSource:   cr.buildMediaSource(d, season.Path, video, subs, nil),
			Created:       fileCreatetime(path.Join(d, video)),
		}

		if nfoPath, ok := nfos[stem]; ok {
			nfo := metadata.NewNfo(nfoPath)
			ep.Metadata = nfo
			if t := nfo.Title(); t != "" {
				ep.Name = t
			}
			ep.Overview = nfo.Plot()
			ep.Rating = nfo.Rating()
			ep.Premiered = nfo.Premiered()
			if dur := nfo.Duration(); dur > 0 {
				ep.RuntimeTicks = int64(dur / 100)
			}
		}

		for _, img := range images {
			imgStem := strings.TrimSuffix(img, path.Ext(img))
			if imgStem == stem ||
				strings.HasPrefix(imgStem, stem+"-") ||
				strings.HasPrefix(imgStem, stem+".") {
				classifyImage(&ep.Images, season.Path, img)
			}
		}
		// an unlabeled episode image is its thumbnail
		if ep.Images.Thumb == "" && ep.Images.Primary != "" {
			ep.Images.Thumb = ep.Images.Primary
		}

		season.Episodes = append(season.Episodes, ep)
	}

	sort.Slice(season.Episodes, func(i, j int) bool {
		return season.Episodes[i].EpisodeNumber < season.Episodes[j].EpisodeNumber
	})
	return season
}

// buildMediaSource pairs a video file with its subtitle sidecars.
// dir is the absolute directory, rel the same directory relative to the
// collection root.
func (cr *CollectionRepo) buildMediaSource(dir, rel, video string, subs []string, md metadata.Metadata) MediaSource {
	stem := strings.TrimSuffix(video, path.Ext(video))
	src := MediaSource{
		Path:      path.Join(rel, video),
		Container: strings.ToLower(strings.TrimPrefix(path.Ext(video), ".")),
	}
	if fi, err := os.Stat(path.Join(dir, video)); err == nil {
		src.Size = fi.Size()
	}
	if md != nil {
		src.Bitrate = md.VideoBitrate()
	}

	for _, sub := range subs {
		subStem := strings.TrimSuffix(sub, path.Ext(sub))
		if !strings.HasPrefix(subStem, stem) {
			continue
		}
		stream := SubtitleStream{
			Path:  path.Join(rel, sub),
			Codec: "subrip",
		}
		if strings.EqualFold(path.Ext(sub), ".vtt") {
			stream.Codec = "webvtt"
		}
		// trailing language segment, e.g. "movie.en.srt"
		if idx := strings.LastIndex(subStem, "."); idx >= 0 {
			if lang := subStem[idx+1:]; isLangCode.MatchString(lang) {
				stream.Language = strings.ToLower(lang)
			}
		}
		src.Subtitles = append(src.Subtitles, stream)
	}
	return src
}

// applyMetadata copies sidecar metadata onto an item. The directory
// name stays the display name; the declared title is kept as original
// title only when it differs.
func applyMetadata(d *itemDetails, md metadata.Metadata) {
	if t := md.Title(); t != "" && t != d.name {
		d.originalTitle = t
	}
	if st := md.SortTitle(); st != "" {
		d.sortName = st
	} else {
		d.sortName = makeSortName(d.name)
	}
	d.overview = md.Plot()
	d.tagline = md.Tagline()
	d.rating = md.Rating()
	d.mpaa = md.OfficialRating()
	d.year = md.Year()
	d.premiered = md.Premiered()
	d.genres = metadata.NormalizeGenres(md.Genres())
	d.studios = md.Studios()
	d.people = md.People()
	d.providerIDs = md.ProviderIDs()
	if dur := md.Duration(); dur > 0 {
		d.runtimeTicks = int64(dur / 100)
	}
}

// classifyImage binds an image file to an image slot by filename
// convention. First classification of a slot wins.
func classifyImage(images *ImageSet, rel, filename string) {
	p := path.Join(rel, filename)
	lower := strings.ToLower(filename)
	switch {
	case strings.Contains(lower, "poster"):
		setIfEmpty(&images.Primary, p)
	case strings.Contains(lower, "fanart"), strings.Contains(lower, "backdrop"):
		setIfEmpty(&images.Backdrop, p)
	case strings.Contains(lower, "logo"):
		setIfEmpty(&images.Logo, p)
	case strings.Contains(lower, "thumb"):
		setIfEmpty(&images.Thumb, p)
	case strings.Contains(lower, "banner"):
		setIfEmpty(&images.Banner, p)
	default:
		setIfEmpty(&images.Primary, p)
	}
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// parseSeasonDir maps a directory name to a season number.
func parseSeasonDir(name string) (int, bool) {
	if strings.EqualFold(name, "specials") {
		return 0, true
	}
	s := isSeasonNum.FindStringSubmatch(name)
	if len(s) == 0 {
		return 0, false
	}
	if s[1] != "" {
		return parseInt(s[1]), true
	}
	return parseInt(s[2]), true
}

// skipName reports whether a directory entry should be ignored.
func skipName(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "+ ")
}

// fileCreatetime returns the birth time when the platform records one,
// the inode change time otherwise.
func fileCreatetime(filename string) time.Time {
	ts, err := times.Stat(filename)
	if err != nil {
		return time.Time{}
	}
	if ts.HasBirthTime() {
		return ts.BirthTime()
	}
	if ts.HasChangeTime() {
		return ts.ChangeTime()
	}
	return ts.ModTime()
}

func parseInt(s string) (i int) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		i = int(n)
	}
	return
}
