package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const movieNfo = `<movie>
<title>Test Movie</title>
<rating>8.5</rating>
<year>2023</year>
<genre>Action</genre>
<genre>Drama</genre>
<studio>Test Studio</studio>
<director>John Doe</director>
</movie>`

func TestNfoDecodeMovie(t *testing.T) {
	data, err := NfoDecode(strings.NewReader(movieNfo))
	if err != nil {
		t.Fatalf("NfoDecode: %v", err)
	}
	if data.Title != "Test Movie" {
		t.Errorf("Title = %q, want Test Movie", data.Title)
	}
	if data.Rating != 8.5 {
		t.Errorf("Rating = %v, want 8.5", data.Rating)
	}
	if data.Year != 2023 {
		t.Errorf("Year = %d, want 2023", data.Year)
	}
	if len(data.Genre) != 2 || data.Genre[0] != "Action" || data.Genre[1] != "Drama" {
		t.Errorf("Genre = %v, want [Action Drama]", data.Genre)
	}
	if len(data.Studio) != 1 || data.Studio[0] != "Test Studio" {
		t.Errorf("Studio = %v, want [Test Studio]", data.Studio)
	}
	if len(data.Directors) != 1 || data.Directors[0] != "John Doe" {
		t.Errorf("Directors = %v, want [John Doe]", data.Directors)
	}
}

func TestNfoHandler(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "movie.nfo")
	content := `<movie>
<title>Heat</title>
<originaltitle>Heat</originaltitle>
<plot>A crew of thieves &amp; the cop chasing them.</plot>
<tagline>A Los Angeles crime saga</tagline>
<mpaa>R</mpaa>
<runtime>170</runtime>
<rating>8.3</rating>
<premiered>1995-12-15</premiered>
<genre>Crime / Drama</genre>
<studio>Warner Bros.</studio>
<credits>Michael Mann</credits>
<actor><name>Al Pacino</name><role>Vincent Hanna</role></actor>
<uniqueid type="imdb">tt0113277</uniqueid>
</movie>`
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewNfo(fn)
	if m.Title() != "Heat" {
		t.Errorf("Title() = %q", m.Title())
	}
	if m.Plot() != "A crew of thieves & the cop chasing them." {
		t.Errorf("Plot() = %q", m.Plot())
	}
	if m.OfficialRating() != "R" {
		t.Errorf("OfficialRating() = %q", m.OfficialRating())
	}
	if m.Duration() != 170*time.Minute {
		t.Errorf("Duration() = %v, want 170m", m.Duration())
	}
	if got := m.Rating(); got != 8.3 {
		t.Errorf("Rating() = %v, want 8.3", got)
	}
	if got := m.Premiered(); got.Year() != 1995 || got.Month() != time.December {
		t.Errorf("Premiered() = %v", got)
	}
	genres := m.Genres()
	if len(genres) != 2 || genres[0] != "Crime" || genres[1] != "Drama" {
		t.Errorf("Genres() = %v, want [Crime Drama]", genres)
	}
	if ids := m.ProviderIDs(); ids["imdb"] != "tt0113277" {
		t.Errorf("ProviderIDs() = %v", ids)
	}

	var actor, writer bool
	for _, p := range m.People() {
		switch {
		case p.Type == PersonActor && p.Name == "Al Pacino" && p.Role == "Vincent Hanna":
			actor = true
		case p.Type == PersonWriter && p.Name == "Michael Mann":
			writer = true
		}
	}
	if !actor || !writer {
		t.Errorf("People() = %+v, missing actor or writer", m.People())
	}
}

func TestNfoDurationFallback(t *testing.T) {
	content := `<movie><title>X</title>
<fileinfo><streamdetails>
<video><codec>h264</codec><durationinseconds>3600</durationinseconds></video>
<audio><codec>aac</codec><channels>2</channels></audio>
</streamdetails></fileinfo></movie>`
	data, err := NfoDecode(strings.NewReader(content))
	if err != nil {
		t.Fatalf("NfoDecode: %v", err)
	}
	if data.FileInfo.StreamDetails.Video.DurationInSeconds != 3600 {
		t.Errorf("DurationInSeconds = %d", data.FileInfo.StreamDetails.Video.DurationInSeconds)
	}

	dir := t.TempDir()
	fn := filepath.Join(dir, "x.nfo")
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	m := NewNfo(fn)
	if m.Duration() != time.Hour {
		t.Errorf("Duration() = %v, want 1h", m.Duration())
	}
	if m.AudioChannels() != 2 {
		t.Errorf("AudioChannels() = %d, want 2", m.AudioChannels())
	}
}

func TestNfoMissingFile(t *testing.T) {
	m := NewNfo(filepath.Join(t.TempDir(), "absent.nfo"))
	if m.Title() != "" || m.Year() != 0 {
		t.Errorf("missing sidecar should yield empty metadata, got %q/%d", m.Title(), m.Year())
	}
	if m.VideoCodec() != "unknown" {
		t.Errorf("VideoCodec() = %q, want unknown", m.VideoCodec())
	}
}

func TestNfoYearFromPremiered(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "movie.nfo")
	content := `<movie>
<title>Casablanca</title>
<premiered>1942-11-26</premiered>
</movie>`
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewNfo(fn)
	if got := m.Year(); got != 1942 {
		t.Errorf("Year() = %d, want 1942", got)
	}
}
