package collection

import (
	"os"
	"path"
	"path/filepath"
	"testing"
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

const matrixNfo = `<?xml version="1.0" encoding="UTF-8"?>
<movie>
  <title>The Matrix</title>
  <year>1999</year>
  <plot>A hacker learns the truth.</plot>
  <runtime>136</runtime>
  <mpaa>R</mpaa>
  <rating>8.7</rating>
  <genre>Action / Sci-Fi</genre>
  <studio>Warner Bros.</studio>
  <uniqueid type="imdb">tt0133093</uniqueid>
</movie>
`

func newMovieFixture(t *testing.T) (*CollectionRepo, *Collection) {
	t.Helper()
	dir := t.TempDir()

	m := path.Join(dir, "The Matrix (1999)")
	writeFile(t, path.Join(m, "The.Matrix.1999.1080p.mkv"), "video")
	writeFile(t, path.Join(m, "The.Matrix.1999.1080p.en.srt"), "1\n")
	writeFile(t, path.Join(m, "poster.jpg"), "img")
	writeFile(t, path.Join(m, "fanart.jpg"), "img")
	writeFile(t, path.Join(m, "movie.nfo"), matrixNfo)

	// no video file, must be skipped
	writeFile(t, path.Join(dir, "Empty Movie", "notes.txt"), "x")

	// hidden and "new content" directories are skipped
	writeFile(t, path.Join(dir, ".staging", "x.mkv"), "video")
	writeFile(t, path.Join(dir, "+ incoming", "y.mkv"), "video")

	cr := New(&Options{})
	coll := &Collection{ID: "c1", Name: "Movies", Type: CollectionMovies, Directory: dir}
	return cr, coll
}

func TestBuildMovies(t *testing.T) {
	cr, coll := newMovieFixture(t)

	items := cr.buildMovies(coll, 0)
	if len(items) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(items))
	}
	movie, ok := items[0].(*Movie)
	if !ok {
		t.Fatalf("expected *Movie, got %T", items[0])
	}

	if movie.Name() != "The Matrix (1999)" {
		t.Errorf("Name = %q", movie.Name())
	}
	if len(movie.ID()) != 20 {
		t.Errorf("ID length = %d, want 20", len(movie.ID()))
	}
	if movie.SortName() != "matrix" {
		t.Errorf("SortName = %q", movie.SortName())
	}
	if movie.ProductionYear() != 1999 {
		t.Errorf("ProductionYear = %d", movie.ProductionYear())
	}
	if movie.Overview() != "A hacker learns the truth." {
		t.Errorf("Overview = %q", movie.Overview())
	}
	if movie.OfficialRating() != "R" {
		t.Errorf("OfficialRating = %q", movie.OfficialRating())
	}
	if want := int64(136) * TicksPerMinute; movie.RuntimeTicks() != want {
		t.Errorf("RuntimeTicks = %d, want %d", movie.RuntimeTicks(), want)
	}
	if len(movie.Genres()) != 2 {
		t.Errorf("Genres = %v", movie.Genres())
	}
	if movie.ProviderIDs()["imdb"] != "tt0133093" {
		t.Errorf("ProviderIDs = %v", movie.ProviderIDs())
	}

	if len(movie.MediaSources) != 1 {
		t.Fatalf("expected 1 media source, got %d", len(movie.MediaSources))
	}
	src := movie.MediaSources[0]
	if src.Container != "mkv" {
		t.Errorf("Container = %q", src.Container)
	}
	if src.Size == 0 {
		t.Error("Size not set")
	}
	if len(src.Subtitles) != 1 {
		t.Fatalf("expected 1 subtitle, got %d", len(src.Subtitles))
	}
	if src.Subtitles[0].Language != "en" || src.Subtitles[0].Codec != "subrip" {
		t.Errorf("subtitle = %+v", src.Subtitles[0])
	}

	if movie.Images().Primary == "" {
		t.Error("poster not bound to primary image")
	}
	if movie.Images().Backdrop == "" {
		t.Error("fanart not bound to backdrop image")
	}
}

func TestBuildMoviesStableIDs(t *testing.T) {
	cr, coll := newMovieFixture(t)

	first := cr.buildMovies(coll, 0)
	second := cr.buildMovies(coll, 0)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 movie per scan, got %d and %d", len(first), len(second))
	}
	if first[0].ID() != second[0].ID() {
		t.Errorf("item ID changed across rescans: %q != %q", first[0].ID(), second[0].ID())
	}
}

func newShowFixture(t *testing.T) (*CollectionRepo, *Collection) {
	t.Helper()
	dir := t.TempDir()

	s := path.Join(dir, "Frasier")
	writeFile(t, path.Join(s, "tvshow.nfo"), `<tvshow><title>Frasier</title><genre>Comedy</genre><premiered>1993-09-16</premiered></tvshow>`)
	writeFile(t, path.Join(s, "poster.jpg"), "img")
	writeFile(t, path.Join(s, "Season 1", "Frasier.S01E01.The.Good.Son.mkv"), "video")
	writeFile(t, path.Join(s, "Season 1", "Frasier.S01E01.The.Good.Son.nfo"),
		`<episodedetails><title>The Good Son</title><plot>Frasier moves home.</plot><runtime>22</runtime></episodedetails>`)
	writeFile(t, path.Join(s, "Season 1", "Frasier.S01E01.The.Good.Son-thumb.jpg"), "img")
	writeFile(t, path.Join(s, "Season 1", "Frasier.S01E02.mkv"), "video")
	writeFile(t, path.Join(s, "Specials", "Frasier.S00E01.mkv"), "video")
	// belongs to season 2, must not be claimed by season 1
	writeFile(t, path.Join(s, "Season 1", "Frasier.S02E01.mkv"), "video")

	cr := New(&Options{})
	coll := &Collection{ID: "c2", Name: "Shows", Type: CollectionShows, Directory: dir}
	return cr, coll
}

func TestBuildShows(t *testing.T) {
	cr, coll := newShowFixture(t)

	items := cr.buildShows(coll, 0)
	if len(items) != 1 {
		t.Fatalf("expected 1 show, got %d", len(items))
	}
	show, ok := items[0].(*Show)
	if !ok {
		t.Fatalf("expected *Show, got %T", items[0])
	}

	if show.Name() != "Frasier" {
		t.Errorf("Name = %q", show.Name())
	}
	if show.ProductionYear() != 1993 {
		t.Errorf("ProductionYear = %d", show.ProductionYear())
	}

	// sorted by season number: Specials (0) before Season 1
	if len(show.Seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(show.Seasons))
	}
	specials, season1 := show.Seasons[0], show.Seasons[1]
	if specials.SeasonNumber != 0 || specials.Name != "Specials" {
		t.Errorf("specials = %d %q", specials.SeasonNumber, specials.Name)
	}
	if season1.SeasonNumber != 1 {
		t.Errorf("season1 number = %d", season1.SeasonNumber)
	}
	if season1.ID != SeasonID(show.ID(), 1) {
		t.Errorf("season ID = %q", season1.ID)
	}

	// the stray S02E01 file is not claimed by season 1
	if len(season1.Episodes) != 2 {
		t.Fatalf("expected 2 episodes in season 1, got %d", len(season1.Episodes))
	}

	e1 := season1.Episodes[0]
	if e1.ID != EpisodeID(season1.ID, 1) {
		t.Errorf("episode ID = %q", e1.ID)
	}
	if e1.Name != "The Good Son" {
		t.Errorf("episode name = %q", e1.Name)
	}
	if e1.Overview != "Frasier moves home." {
		t.Errorf("episode overview = %q", e1.Overview)
	}
	if want := int64(22) * TicksPerMinute; e1.RuntimeTicks != want {
		t.Errorf("episode runtime = %d, want %d", e1.RuntimeTicks, want)
	}
	if e1.Images.Thumb == "" {
		t.Error("episode thumb not bound")
	}
	if e1.MediaSource.Path == "" || e1.MediaSource.Container != "mkv" {
		t.Errorf("episode media source = %+v", e1.MediaSource)
	}

	e2 := season1.Episodes[1]
	if e2.Name != "Frasier" {
		t.Errorf("fallback episode name = %q", e2.Name)
	}
	if e2.EpisodeNumber != 2 {
		t.Errorf("episode number = %d", e2.EpisodeNumber)
	}
}
