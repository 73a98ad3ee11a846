package collection

import "testing"

func TestMakeSortName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"The Matrix (1999)", "matrix"},
		{"An Inconvenient Truth", "inconvenient truth"},
		{"A Beautiful Mind", "beautiful mind"},
		{"On Chesil Beach (2018)", "on chesil beach"},
		{"  Heat  ", "heat"},
		{"'71", "71"},
		{"...And Justice for All", "and justice for all"},
		{"Alien", "alien"},
		{"Them!", "them!"},
	}
	for _, tc := range tests {
		if got := makeSortName(tc.name); got != tc.want {
			t.Errorf("makeSortName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestMakeSortNameIdempotent(t *testing.T) {
	for _, name := range []string{"The Matrix (1999)", "An Inconvenient Truth", "Heat"} {
		once := makeSortName(name)
		if twice := makeSortName(once); twice != once {
			t.Errorf("makeSortName not idempotent for %q: %q != %q", name, once, twice)
		}
	}
}

func TestSeasonEpisodeIDs(t *testing.T) {
	seasonID := SeasonID("AbCdEf", 2)
	if seasonID != "AbCdEf:S02" {
		t.Errorf("SeasonID = %q", seasonID)
	}
	if got := EpisodeID(seasonID, 5); got != "AbCdEf:S02:E05" {
		t.Errorf("EpisodeID = %q", got)
	}
}

func TestSeasonName(t *testing.T) {
	if got := SeasonName(0); got != "Specials" {
		t.Errorf("SeasonName(0) = %q", got)
	}
	if got := SeasonName(3); got != "Season 3" {
		t.Errorf("SeasonName(3) = %q", got)
	}
}
