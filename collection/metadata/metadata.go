// Package metadata extracts item metadata from the files sitting next to
// the media: Kodi-style .NFO sidecars when present, the filename itself
// otherwise. Both sources are exposed through the same Metadata interface
// so the scanner does not care which one it got.
package metadata

import "time"

// PersonType classifies a credited person.
type PersonType string

const (
	PersonActor    PersonType = "Actor"
	PersonDirector PersonType = "Director"
	PersonWriter   PersonType = "Writer"
	PersonProducer PersonType = "Producer"
)

// Person is one credited person on an item.
type Person struct {
	Name string
	Role string
	Type PersonType
}

type Metadata interface {
	// Title returns the title.
	Title() string
	// OriginalTitle returns the original title, if declared.
	OriginalTitle() string
	// SortTitle returns the declared sort title, if any.
	SortTitle() string
	// Plot returns the plot/summary/description.
	Plot() string
	// Tagline returns the tagline.
	Tagline() string
	// People returns actors, directors and writers.
	People() []Person
	// Studios returns the studios.
	Studios() []string
	// Genres returns the genres.
	Genres() []string
	// Year returns the release year.
	Year() int
	// SetYear sets the release year.
	SetYear(year int)
	// Premiered returns the premiere date.
	Premiered() time.Time
	// Rating returns the rating (0.0 - 10.0).
	Rating() float32
	// OfficialRating returns the official rating (e.g. "PG-13").
	OfficialRating() string
	// ProviderIDs returns a map of provider IDs (e.g. {"imdb": "tt1234567"}).
	ProviderIDs() map[string]string
	// Duration returns the item duration.
	Duration() time.Duration

	VideoMetadata
	AudioMetadata
}

type VideoMetadata interface {
	// VideoCodec returns the video codec (e.g. "h264").
	VideoCodec() string
	// VideoBitrate returns the video bitrate in bps.
	VideoBitrate() int
	// VideoFrameRate returns the video frame rate (e.g. 23.976).
	VideoFrameRate() float64
	// VideoHeight returns the video height in pixels.
	VideoHeight() int
	// VideoWidth returns the video width in pixels.
	VideoWidth() int
}

type AudioMetadata interface {
	// AudioCodec returns the audio codec (e.g. "aac").
	AudioCodec() string
	// AudioBitrate returns the audio bitrate in bps.
	AudioBitrate() int
	// AudioChannels returns the number of audio channels (e.g. 6).
	AudioChannels() int
	// AudioLanguage returns the audio language (e.g. "eng").
	AudioLanguage() string
}
