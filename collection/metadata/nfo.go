package metadata

import (
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// MetadataNfo reads a Kodi-style .NFO sidecar. The file is parsed
// lazily on first access and at most once.
type MetadataNfo struct {
	// filename is the full path to the NFO file, e.g. "/mnt/media/casablanca.nfo"
	filename string
	// year overrides the declared release year, e.g. derived from the directory name.
	year int
	// nfo is the parsed NFO data.
	nfo *nfo
}

// NewNfo creates a metadata handler for the given NFO filename.
func NewNfo(filename string) *MetadataNfo {
	return &MetadataNfo{
		filename: filename,
	}
}

func (n *MetadataNfo) Title() string {
	n.loadNfo()
	return n.nfo.Title
}

func (n *MetadataNfo) OriginalTitle() string {
	n.loadNfo()
	return n.nfo.OriginalTitle
}

func (n *MetadataNfo) SortTitle() string {
	n.loadNfo()
	return n.nfo.SortTitle
}

func (n *MetadataNfo) Plot() string {
	n.loadNfo()
	if n.nfo.Plot != "" {
		return n.nfo.Plot
	}
	return n.nfo.Overview
}

func (n *MetadataNfo) Tagline() string {
	n.loadNfo()
	return n.nfo.Tagline
}

// People returns actors, directors and writers credited in the NFO.
func (n *MetadataNfo) People() []Person {
	n.loadNfo()
	var people []Person
	for _, a := range n.nfo.Actor {
		if a.Name == "" {
			continue
		}
		people = append(people, Person{Name: a.Name, Role: a.Role, Type: PersonActor})
	}
	for _, d := range n.nfo.Directors {
		if d != "" {
			people = append(people, Person{Name: d, Type: PersonDirector})
		}
	}
	for _, w := range n.nfo.Credits {
		if w != "" {
			people = append(people, Person{Name: w, Type: PersonWriter})
		}
	}
	return people
}

func (n *MetadataNfo) Studios() []string {
	n.loadNfo()
	if len(n.nfo.Studio) == 0 {
		return nil
	}
	return n.nfo.Studio
}

func (n *MetadataNfo) Genres() []string {
	n.loadNfo()
	if len(n.nfo.Genre) == 0 {
		return nil
	}
	return n.nfo.Genre
}

func (n *MetadataNfo) SetYear(year int) {
	n.year = year
}

func (n *MetadataNfo) Year() int {
	n.loadNfo()
	if n.nfo.Year != 0 {
		return n.nfo.Year
	}
	if n.year != 0 {
		return n.year
	}
	// Zero time would report year 1 here.
	if p := n.Premiered(); !p.IsZero() {
		return p.Year()
	}
	return 0
}

func (n *MetadataNfo) Premiered() time.Time {
	n.loadNfo()
	if n.nfo.Premiered != "" {
		if parsedTime, err := n.parseTime(n.nfo.Premiered); err == nil {
			return parsedTime
		}
	}
	if n.nfo.Aired != "" {
		if parsedTime, err := n.parseTime(n.nfo.Aired); err == nil {
			return parsedTime
		}
	}
	return time.Time{}
}

func (n *MetadataNfo) Rating() float32 {
	n.loadNfo()
	return float32(math.Round(n.nfo.Rating*10) / 10)
}

func (n *MetadataNfo) OfficialRating() string {
	n.loadNfo()
	return n.nfo.Mpaa
}

func (n *MetadataNfo) ProviderIDs() map[string]string {
	n.loadNfo()
	ids := make(map[string]string)
	for _, id := range n.nfo.UniqueIDs {
		if id.Type != "" && id.Value != "" {
			ids[strings.ToLower(id.Type)] = id.Value
		}
	}
	return ids
}

// Duration returns the declared runtime. A missing <runtime> falls back
// to the stream details: <duration> in minutes, else <durationinseconds>.
func (n *MetadataNfo) Duration() time.Duration {
	n.loadNfo()
	if n.nfo.Runtime != 0 {
		return time.Duration(n.nfo.Runtime) * time.Minute
	}
	video := n.nfo.FileInfo.StreamDetails.Video
	if video.DurationMinutes != 0 {
		return time.Duration(video.DurationMinutes * float64(time.Minute))
	}
	return time.Duration(video.DurationInSeconds) * time.Second
}

// Season and EpisodeNum expose per-episode NFO numbering.
func (n *MetadataNfo) Season() int {
	n.loadNfo()
	return parseInt(n.nfo.Season)
}

func (n *MetadataNfo) EpisodeNum() int {
	n.loadNfo()
	return parseInt(n.nfo.Episode)
}

func (n *MetadataNfo) VideoCodec() string {
	n.loadNfo()
	return n.nfo.FileInfo.StreamDetails.Video.Codec
}

func (n *MetadataNfo) VideoBitrate() int {
	n.loadNfo()
	return n.nfo.FileInfo.StreamDetails.Video.Bitrate
}

func (n *MetadataNfo) VideoFrameRate() float64 {
	n.loadNfo()
	return math.Round(float64(n.nfo.FileInfo.StreamDetails.Video.FrameRate)*100) / 100
}

func (n *MetadataNfo) VideoHeight() int {
	n.loadNfo()
	return n.nfo.FileInfo.StreamDetails.Video.Height
}

func (n *MetadataNfo) VideoWidth() int {
	n.loadNfo()
	return n.nfo.FileInfo.StreamDetails.Video.Width
}

func (n *MetadataNfo) AudioCodec() string {
	n.loadNfo()
	return n.nfo.FileInfo.StreamDetails.Audio.Codec
}

func (n *MetadataNfo) AudioBitrate() int {
	n.loadNfo()
	return n.nfo.FileInfo.StreamDetails.Audio.Bitrate
}

func (n *MetadataNfo) AudioChannels() int {
	n.loadNfo()
	return n.nfo.FileInfo.StreamDetails.Audio.Channels
}

func (n *MetadataNfo) AudioLanguage() string {
	n.loadNfo()
	// alpha-3 language code only
	if lang := n.nfo.FileInfo.StreamDetails.Audio.Language; len(lang) >= 3 {
		return lang[0:3]
	}
	return "eng"
}

// loadNfo loads and parses the NFO file if not already done.
func (n *MetadataNfo) loadNfo() {
	if n.nfo != nil {
		return
	}
	if file, err := os.Open(n.filename); err == nil {
		defer file.Close()
		n.nfo, err = NfoDecode(file)
		if err != nil {
			log.Printf("Error parsing NFO file %s: %v", n.filename, err)
		}
		// A partial parse is fine, we work with whatever came out.
	}

	// Backfill empty structs so accessors never chase nil pointers.
	if n.nfo == nil {
		n.nfo = &nfo{}
	}
	if n.nfo.FileInfo == nil {
		n.nfo.FileInfo = &VidFileInfo{}
	}
	if n.nfo.FileInfo.StreamDetails == nil {
		n.nfo.FileInfo.StreamDetails = &StreamDetails{}
	}
	if n.nfo.FileInfo.StreamDetails.Video == nil {
		n.nfo.FileInfo.StreamDetails.Video = &VideoDetails{Codec: "unknown"}
	}
	if n.nfo.FileInfo.StreamDetails.Audio == nil {
		n.nfo.FileInfo.StreamDetails.Audio = &AudioDetails{Codec: "unknown"}
	}
}

// nfo represents a Kodi style .NFO file.
type nfo struct {
	Title         string     `xml:"title,omitempty"`
	OriginalTitle string     `xml:"originaltitle,omitempty"`
	SortTitle     string     `xml:"sorttitle,omitempty"`
	Id            string     `xml:"id,omitempty"`
	Runtime       int        `xml:"runtime,omitempty"`
	Mpaa          string     `xml:"mpaa,omitempty"`
	YearString    string     `xml:"year,omitempty"`
	Year          int        `xml:"-"`
	Plot          string     `xml:"plot,omitempty"`
	Overview      string     `xml:"overview,omitempty"`
	Tagline       string     `xml:"tagline,omitempty"`
	Premiered     string     `xml:"premiered,omitempty"`
	Season        string     `xml:"season,omitempty"`
	Episode       string     `xml:"episode,omitempty"`
	Aired         string     `xml:"aired,omitempty"`
	Studio        []string   `xml:"studio,omitempty"`
	RatingString  string     `xml:"rating,omitempty"`
	Rating        float64    `xml:"-"`
	VotesString   string     `xml:"votes,omitempty"`
	Votes         int        `xml:"-"`
	Genre         []string   `xml:"genre,omitempty"`
	Actor         []Actor    `xml:"actor,omitempty"`
	Directors     []string   `xml:"director,omitempty"`
	Credits       []string   `xml:"credits,omitempty"`
	UniqueIDs     []UniqueID `xml:"uniqueid,omitempty"`
	Thumb         string     `xml:"thumb,omitempty"`

	FileInfo *VidFileInfo `xml:"fileinfo,omitempty"`
}

type UniqueID struct {
	Type    string `xml:"type,attr"`
	Default string `xml:"default,attr"`
	Value   string `xml:",chardata"`
}

type Actor struct {
	Name  string `xml:"name,omitempty"`
	Role  string `xml:"role,omitempty"`
	Thumb string `xml:"thumb,omitempty"`
}

type VidFileInfo struct {
	StreamDetails *StreamDetails `xml:"streamdetails,omitempty"`
}

type StreamDetails struct {
	Video *VideoDetails `xml:"video,omitempty"`
	Audio *AudioDetails `xml:"audio,omitempty"`
}

type VideoDetails struct {
	Codec                 string  `xml:"codec,omitempty"`
	Bitrate               int     `xml:"bitrate,omitempty"`
	Aspect                float32 `xml:"aspect,omitempty"`
	Width                 int     `xml:"width,omitempty"`
	Height                int     `xml:"height,omitempty"`
	FrameRate             float32 `xml:"framerate,omitempty"`
	DurationMinutesString string  `xml:"duration,omitempty"`
	DurationMinutes       float64 `xml:"-"`
	DurationInSeconds     int     `xml:"durationinseconds,omitempty"`
}

type AudioDetails struct {
	Bitrate  int    `xml:"bitrate,omitempty"`
	Channels int    `xml:"channels,omitempty"`
	Codec    string `xml:"codec,omitempty"`
	Language string `xml:"language,omitempty"`
}

// NfoDecode parses a loose NFO document. Decoding is deliberately
// forgiving: unclosed tags, HTML entities and invalid UTF-8 all occur
// in the wild.
func NfoDecode(r io.Reader) (*nfo, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	// <xbmcmultiepisode> wraps multiple episode documents; skipping the
	// tag parses just the first one.
	if len(buf) >= 18 && string(buf[:18]) == "<xbmcmultiepisode>" {
		buf = buf[18:]
	}

	txt := strings.ToValidUTF8(string(buf), "�")

	data := &nfo{}
	d := xml.NewDecoder(strings.NewReader(txt))
	d.Strict = false
	d.AutoClose = xml.HTMLAutoClose
	d.Entity = xml.HTMLEntity

	if err := d.Decode(data); err != nil {
		return nil, err
	}

	// Some sidecars pack several genres into one tag.
	needSplitup := false
	for _, g := range data.Genre {
		if strings.Contains(g, ",") || strings.Contains(g, "/") {
			needSplitup = true
			break
		}
	}
	if needSplitup {
		genre := make([]string, 0, len(data.Genre))
		for _, g := range data.Genre {
			s := strings.Split(g, "/")
			if len(s) == 1 {
				s = strings.Split(g, ",")
			}
			for _, g2 := range s {
				genre = append(genre, strings.TrimSpace(g2))
			}
		}
		data.Genre = genre
	}
	data.Genre = NormalizeGenres(data.Genre)

	// Numeric fields are frequently malformed ("8,5", "N/A") and would
	// abort the XML decoder, so they are parsed after the fact.
	data.Rating = parseFloat64(data.RatingString)
	data.Votes = parseInt(data.VotesString)
	data.Year = parseInt(data.YearString)
	if data.FileInfo != nil && data.FileInfo.StreamDetails != nil &&
		data.FileInfo.StreamDetails.Video != nil {
		v := data.FileInfo.StreamDetails.Video
		v.DurationMinutes = parseFloat64(v.DurationMinutesString)
	}

	return data, nil
}

func parseInt(s string) (i int) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err == nil {
		i = int(n)
	}
	return
}

func parseFloat64(s string) (f float64) {
	f, _ = strconv.ParseFloat(strings.TrimSpace(s), 64)
	return
}

func (n *MetadataNfo) parseTime(input string) (time.Time, error) {
	timeFormats := []string{
		"2006-01-02",
		"2006/01/02",
		"2006-01-02 15:04:05",
		"2006/01/02 15:04:05",
		"02 Jan 2006",
		"02 Jan 2006 15:04:05",
	}
	for _, format := range timeFormats {
		if parsedTime, err := time.Parse(format, input); err == nil {
			return parsedTime, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse time %s in %s", input, n.filename)
}
