package collection

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jellofin/jellofin-server/collection/metadata"
)

// ItemType tags the variants of the content graph.
type ItemType string

const (
	TypeMovie   ItemType = "Movie"
	TypeSeries  ItemType = "Series"
	TypeSeason  ItemType = "Season"
	TypeEpisode ItemType = "Episode"
)

// Item is the common projection over movies and shows: the field set
// used by DTO conversion, sorting and filtering.
type Item interface {
	ID() string
	Type() ItemType
	CollectionID() string
	Name() string
	SortName() string
	OriginalTitle() string
	// Path is the item directory relative to the collection root.
	Path() string
	Overview() string
	Tagline() string
	Genres() []string
	Studios() []string
	People() []metadata.Person
	CommunityRating() float32
	OfficialRating() string
	ProductionYear() int
	PremiereDate() time.Time
	RuntimeTicks() int64
	ProviderIDs() map[string]string
	Images() *ImageSet
	Created() time.Time
	Modified() time.Time
}

// TicksPerMinute is the number of 100 ns ticks in a minute.
const TicksPerMinute = 600_000_000

// ImageSet holds the artwork found next to an item, paths relative to
// the collection root.
type ImageSet struct {
	Primary  string
	Backdrop string
	Logo     string
	Thumb    string
	Banner   string
}

// SubtitleStream is one subtitle sidecar bound to a media source.
type SubtitleStream struct {
	// Path relative to the collection root.
	Path string
	// Language code parsed from the filename, e.g. "en" or "dut".
	Language string
	// Codec is "subrip" or "webvtt".
	Codec string
	Title string
}

// MediaSource is one playable video file.
type MediaSource struct {
	// Path relative to the collection root.
	Path string
	// Container is the file extension without dot, e.g. "mkv".
	Container string
	// Size in bytes.
	Size int64
	// Bitrate in bps, when a sidecar declares it.
	Bitrate   int
	Subtitles []SubtitleStream
}

// itemDetails carries the descriptive attributes shared by movies and
// shows, populated by the scanner from NFO or filename metadata.
type itemDetails struct {
	id            string
	collectionID  string
	name          string
	sortName      string
	originalTitle string
	path          string
	overview      string
	tagline       string
	mpaa          string
	rating        float32
	year          int
	premiered     time.Time
	runtimeTicks  int64
	genres        []string
	studios       []string
	people        []metadata.Person
	providerIDs   map[string]string
	images        ImageSet
	created       time.Time
	modified      time.Time
}

func (d *itemDetails) ID() string                      { return d.id }
func (d *itemDetails) CollectionID() string            { return d.collectionID }
func (d *itemDetails) Name() string                    { return d.name }
func (d *itemDetails) SortName() string                { return d.sortName }
func (d *itemDetails) OriginalTitle() string           { return d.originalTitle }
func (d *itemDetails) Path() string                    { return d.path }
func (d *itemDetails) Overview() string                { return d.overview }
func (d *itemDetails) Tagline() string                 { return d.tagline }
func (d *itemDetails) Genres() []string                { return d.genres }
func (d *itemDetails) Studios() []string               { return d.studios }
func (d *itemDetails) People() []metadata.Person       { return d.people }
func (d *itemDetails) CommunityRating() float32        { return d.rating }
func (d *itemDetails) OfficialRating() string          { return d.mpaa }
func (d *itemDetails) ProductionYear() int             { return d.year }
func (d *itemDetails) PremiereDate() time.Time         { return d.premiered }
func (d *itemDetails) RuntimeTicks() int64             { return d.runtimeTicks }
func (d *itemDetails) ProviderIDs() map[string]string  { return d.providerIDs }
func (d *itemDetails) Images() *ImageSet               { return &d.images }
func (d *itemDetails) Created() time.Time              { return d.created }
func (d *itemDetails) Modified() time.Time             { return d.modified }

// Movie is a single film with one or more playable files.
type Movie struct {
	itemDetails

	// MediaSources holds at least one entry, video files sorted by name.
	MediaSources []MediaSource

	// Metadata is the sidecar handler the fields above were filled from.
	Metadata metadata.Metadata
}

func (m *Movie) Type() ItemType { return TypeMovie }

// Show is a series with seasons and episodes, no media of its own.
type Show struct {
	itemDetails

	// Seasons sorted by season number.
	Seasons []*Season

	Metadata metadata.Metadata
}

func (s *Show) Type() ItemType { return TypeSeries }

// FirstVideo returns the creation time of the first episode.
func (s *Show) FirstVideo() time.Time {
	if len(s.Seasons) == 0 || len(s.Seasons[0].Episodes) == 0 {
		return time.Time{}
	}
	return s.Seasons[0].Episodes[0].Created
}

// LastVideo returns the most recent episode creation time.
func (s *Show) LastVideo() (last time.Time) {
	for _, season := range s.Seasons {
		for _, e := range season.Episodes {
			if e.Created.After(last) {
				last = e.Created
			}
		}
	}
	return
}

// Season groups the episodes of one season of a show.
type Season struct {
	// ID is "{show_id}:S{nn}".
	ID           string
	ShowID       string
	CollectionID string
	// Name is "Specials" for season 0, "Season {n}" otherwise.
	Name         string
	SeasonNumber int
	// Path is the season directory relative to the collection root.
	Path   string
	Images ImageSet
	// Episodes sorted by episode number.
	Episodes []*Episode
}

// Episode is one episode with exactly one media source.
type Episode struct {
	// ID is "{season_id}:E{nn}".
	ID            string
	SeasonID      string
	ShowID        string
	CollectionID  string
	Name          string
	SeasonNumber  int
	EpisodeNumber int
	// EndEpisode is set for double episodes.
	EndEpisode int
	// Path of the episode directory relative to the collection root.
	Path         string
	Premiered    time.Time
	Rating       float32
	RuntimeTicks int64
	Overview     string
	Images       ImageSet
	MediaSource  MediaSource
	Created      time.Time

	Metadata metadata.Metadata
}

// SeasonID derives the id of a season within a show.
func SeasonID(showID string, seasonNumber int) string {
	return fmt.Sprintf("%s:S%02d", showID, seasonNumber)
}

// EpisodeID derives the id of an episode within a season.
func EpisodeID(seasonID string, episodeNumber int) string {
	return fmt.Sprintf("%s:E%02d", seasonID, episodeNumber)
}

// SeasonName returns the display name of a season number.
func SeasonName(seasonNumber int) string {
	if seasonNumber == 0 {
		return "Specials"
	}
	return fmt.Sprintf("Season %d", seasonNumber)
}

// PrimaryImage returns the episode thumbnail, falling back to the
// season and show artwork is left to the caller.
func (e *Episode) PrimaryImage() string {
	if e.Images.Primary != "" {
		return e.Images.Primary
	}
	return e.Images.Thumb
}

// makeSortName returns a name suitable for sorting: lowercased, a
// single leading article removed, leading punctuation removed, and a
// trailing " (YYYY)" year suffix dropped.
func makeSortName(name string) string {
	title := strings.ToLower(strings.TrimSpace(name))

	for _, prefix := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(title, prefix) {
			title = strings.TrimSpace(title[len(prefix):])
			break
		}
	}

	title = strings.TrimLeftFunc(title, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})

	if s := isYear.FindStringSubmatch(title); len(s) > 0 {
		title = strings.TrimSpace(strings.TrimSuffix(title, s[0]))
	}

	return title
}
