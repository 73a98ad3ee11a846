package metadata

import "testing"

func TestParseEpisode(t *testing.T) {
	tests := []struct {
		filename string
		season   int
		episode  int
		end      int
		ok       bool
	}{
		{"Show.Name.S01E04.mkv", 1, 4, 0, true},
		{"Show.Name.S03E04E05.mkv", 3, 4, 5, true},
		{"show name s10e22 720p.mp4", 10, 22, 0, true},
		{"Show.Name.3x08.mkv", 3, 8, 0, true},
		{"Show.Name.3x08x09.mkv", 3, 8, 9, true},
		{"Show Season 2 Episode 7.avi", 2, 7, 0, true},
		{"Daily.Show.2023-05-15.mkv", 2023, 515, 0, true},
		{"Some Movie (1999).mkv", 0, 0, 0, false},
	}
	for _, tc := range tests {
		info, ok := ParseEpisode(tc.filename)
		if ok != tc.ok {
			t.Errorf("ParseEpisode(%q) ok = %v, want %v", tc.filename, ok, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		if info.Season != tc.season || info.Episode != tc.episode || info.End != tc.end {
			t.Errorf("ParseEpisode(%q) = (%d,%d,%d), want (%d,%d,%d)",
				tc.filename, info.Season, info.Episode, info.End,
				tc.season, tc.episode, tc.end)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Show.Name.S01E04.mkv", "Show Name"},
		{"Show_Name_3x08_Some_Episode.mkv", "Show Name"},
		{"Plain Title.mkv", "Plain Title"},
		{"Daily.Show.2023-05-15.mkv", "Daily Show"},
	}
	for _, tc := range tests {
		if got := CleanTitle(tc.filename); got != tc.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestNewFilenameGuesses(t *testing.T) {
	m := NewFilename("Show.Name.S01E04.1080p.x264.AAC.5.1.mkv", 2010)
	if m.VideoCodec() != "h264" {
		t.Errorf("VideoCodec() = %q, want h264", m.VideoCodec())
	}
	if m.VideoHeight() != 1080 {
		t.Errorf("VideoHeight() = %d, want 1080", m.VideoHeight())
	}
	if m.AudioChannels() != 6 {
		t.Errorf("AudioChannels() = %d, want 6", m.AudioChannels())
	}
	if m.Year() != 2010 {
		t.Errorf("Year() = %d, want 2010", m.Year())
	}
}
