package metadata

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// EpisodeInfo is the numbering extracted from an episode filename.
// End is set for double episodes (S01E04E05).
type EpisodeInfo struct {
	Season  int
	Episode int
	End     int
}

// Filename patterns tried in order; first match wins.
var episodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)s(\d+)e(\d+)(?:e(\d+))?`),
	regexp.MustCompile(`(\d+)x(\d+)(?:x(\d+))?`),
	regexp.MustCompile(`(?i)season\s*(\d+).*episode\s*(\d+)`),
	regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`),
}

// dateIdx is the index of the air-date pattern in episodePatterns.
const dateIdx = 3

// ParseEpisode extracts season/episode numbering from an episode
// filename. Date-named episodes map to season=year and
// episode=month*100+day so they stay unique and ordered within the year.
func ParseEpisode(filename string) (info EpisodeInfo, ok bool) {
	for i, re := range episodePatterns {
		m := re.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		if i == dateIdx {
			year, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			return EpisodeInfo{Season: year, Episode: month*100 + day}, true
		}
		info.Season, _ = strconv.Atoi(m[1])
		info.Episode, _ = strconv.Atoi(m[2])
		if len(m) > 3 && m[3] != "" {
			info.End, _ = strconv.Atoi(m[3])
		}
		return info, true
	}
	return EpisodeInfo{}, false
}

// CleanTitle turns an episode filename into a displayable title: the
// extension goes, everything from the first numbering pattern on goes,
// and separator dots/underscores become spaces.
func CleanTitle(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	for _, re := range episodePatterns {
		if loc := re.FindStringIndex(name); loc != nil {
			name = name[:loc[0]]
			break
		}
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, ".", " ")
	return strings.TrimSpace(name)
}

// MetadataFilename provides metadata guessed from the filename alone,
// for items without an NFO sidecar.
type MetadataFilename struct {
	filename string
	name     string
	year     int
	height   int
	width    int

	videoCodec    string
	audioCodec    string
	audiochannels int
}

// NewFilename creates a metadata handler backed only by the filename.
func NewFilename(filename string, year int) *MetadataFilename {
	handler := &MetadataFilename{
		filename: filename,
		year:     year,
	}
	handler.parseFilename()
	return handler
}

var reCodecH264 = regexp.MustCompile(`(?i)[hx].?264`)
var reCodecH265 = regexp.MustCompile(`(?i)([hx].?265|hevc)`)

// parseFilename guesses stream details from common release-name tags.
func (n *MetadataFilename) parseFilename() {
	n.name = CleanTitle(filepath.Base(n.filename))

	switch {
	case reCodecH265.MatchString(n.filename):
		n.videoCodec = "hevc"
	case reCodecH264.MatchString(n.filename):
		n.videoCodec = "h264"
	}
	switch {
	case strings.Contains(n.filename, "2160") || strings.Contains(n.filename, "4K"):
		n.height = 2160
	case strings.Contains(n.filename, "1080"):
		n.height = 1080
	case strings.Contains(n.filename, "720"):
		n.height = 720
	}
	if strings.Contains(strings.ToLower(n.filename), "aac") {
		n.audioCodec = "aac"
	}
	if strings.Contains(n.filename, "5.1") {
		n.audiochannels = 6
	} else if strings.Contains(n.filename, "2.0") {
		n.audiochannels = 2
	}
}

func (n *MetadataFilename) Title() string         { return n.name }
func (n *MetadataFilename) OriginalTitle() string { return "" }
func (n *MetadataFilename) SortTitle() string     { return "" }
func (n *MetadataFilename) Plot() string          { return "" }
func (n *MetadataFilename) Tagline() string       { return "" }
func (n *MetadataFilename) People() []Person      { return nil }
func (n *MetadataFilename) Studios() []string     { return nil }
func (n *MetadataFilename) Genres() []string      { return nil }

func (n *MetadataFilename) SetYear(year int) { n.year = year }
func (n *MetadataFilename) Year() int        { return n.year }

func (n *MetadataFilename) Premiered() time.Time {
	if n.year == 0 {
		return time.Time{}
	}
	return time.Date(n.year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func (n *MetadataFilename) Rating() float32                { return 0 }
func (n *MetadataFilename) OfficialRating() string         { return "" }
func (n *MetadataFilename) ProviderIDs() map[string]string { return map[string]string{} }
func (n *MetadataFilename) Duration() time.Duration        { return 0 }

func (n *MetadataFilename) VideoCodec() string      { return n.videoCodec }
func (n *MetadataFilename) VideoBitrate() int       { return 0 }
func (n *MetadataFilename) VideoFrameRate() float64 { return 23.976 }
func (n *MetadataFilename) VideoHeight() int        { return n.height }
func (n *MetadataFilename) VideoWidth() int         { return n.width }

func (n *MetadataFilename) AudioCodec() string {
	if n.audioCodec == "" {
		return "unknown"
	}
	return n.audioCodec
}
func (n *MetadataFilename) AudioBitrate() int     { return 0 }
func (n *MetadataFilename) AudioChannels() int    { return n.audiochannels }
func (n *MetadataFilename) AudioLanguage() string { return "eng" }
