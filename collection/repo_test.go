package collection

import (
	"context"
	"slices"
	"sync"
	"testing"
)

// testShow builds a show with two seasons of three episodes each.
func testShow(showID string) *Show {
	show := &Show{
		itemDetails: itemDetails{
			id:           showID,
			collectionID: "c1",
			name:         "Test Show",
			genres:       []string{"Drama"},
		},
	}
	for s := 1; s <= 2; s++ {
		season := &Season{
			ID:           SeasonID(showID, s),
			ShowID:       showID,
			CollectionID: "c1",
			Name:         SeasonName(s),
			SeasonNumber: s,
		}
		for e := 1; e <= 3; e++ {
			season.Episodes = append(season.Episodes, &Episode{
				ID:            EpisodeID(season.ID, e),
				SeasonID:      season.ID,
				ShowID:        showID,
				CollectionID:  "c1",
				SeasonNumber:  s,
				EpisodeNumber: e,
			})
		}
		show.Seasons = append(show.Seasons, season)
	}
	return show
}

func newTestRepo() (*CollectionRepo, *Show) {
	show := testShow("show1")
	cr := New(&Options{})
	cr.collections = Collections{{
		ID:    "c1",
		Name:  "Shows",
		Type:  CollectionShows,
		Items: []Item{show},
	}}
	return cr, show
}

func TestNextUpWithinSeason(t *testing.T) {
	cr, show := newTestRepo()

	watched := []string{
		EpisodeID(SeasonID(show.ID(), 1), 1),
		EpisodeID(SeasonID(show.ID(), 1), 2),
	}
	next := cr.NextUp(watched)
	want := EpisodeID(SeasonID(show.ID(), 1), 3)
	if len(next) != 1 || next[0] != want {
		t.Errorf("NextUp = %v, want [%s]", next, want)
	}
}

func TestNextUpCrossesSeason(t *testing.T) {
	cr, show := newTestRepo()

	watched := []string{EpisodeID(SeasonID(show.ID(), 1), 3)}
	next := cr.NextUp(watched)
	want := EpisodeID(SeasonID(show.ID(), 2), 1)
	if len(next) != 1 || next[0] != want {
		t.Errorf("NextUp = %v, want [%s]", next, want)
	}
}

func TestNextUpSeriesFinished(t *testing.T) {
	cr, show := newTestRepo()

	watched := []string{EpisodeID(SeasonID(show.ID(), 2), 3)}
	if next := cr.NextUp(watched); len(next) != 0 {
		t.Errorf("NextUp after final episode = %v, want none", next)
	}
}

func TestNextUpUnknownEpisode(t *testing.T) {
	cr, _ := newTestRepo()

	if next := cr.NextUp([]string{"bogus"}); len(next) != 0 {
		t.Errorf("NextUp = %v, want none", next)
	}
}

func TestFirstEpisodeID(t *testing.T) {
	cr, show := newTestRepo()

	want := EpisodeID(SeasonID(show.ID(), 1), 1)
	if got := cr.FirstEpisodeID(show.ID()); got != want {
		t.Errorf("FirstEpisodeID = %q, want %q", got, want)
	}
	if got := cr.FirstEpisodeID("bogus"); got != "" {
		t.Errorf("FirstEpisodeID for unknown show = %q", got)
	}
}

func TestGetItemByID(t *testing.T) {
	cr, show := newTestRepo()

	c, item := cr.GetItemByID(show.ID())
	if c == nil || item == nil || item.ID() != show.ID() {
		t.Fatalf("GetItemByID failed: %v %v", c, item)
	}

	sc, sshow, season := cr.GetSeasonByID(SeasonID(show.ID(), 2))
	if sc == nil || sshow == nil || season == nil || season.SeasonNumber != 2 {
		t.Fatalf("GetSeasonByID failed")
	}

	ec, _, _, episode := cr.GetEpisodeByID(EpisodeID(SeasonID(show.ID(), 2), 2))
	if ec == nil || episode == nil || episode.EpisodeNumber != 2 {
		t.Fatalf("GetEpisodeByID failed")
	}
}

func TestSearchRoundTrip(t *testing.T) {
	cr, show := newTestRepo()

	if err := cr.BuildSearchIndex(context.Background()); err != nil {
		t.Fatalf("BuildSearchIndex: %v", err)
	}
	ids, err := cr.SearchItem(context.Background(), "test show")
	if err != nil {
		t.Fatalf("SearchItem: %v", err)
	}
	if !slices.Contains(ids, show.ID()) {
		t.Errorf("expected %s in search results, got %v", show.ID(), ids)
	}
}

func TestAddCollection(t *testing.T) {
	cr := New(&Options{})
	if err := cr.AddCollection("", "Films", "movies", "/tmp/films", "", ""); err != nil {
		t.Fatalf("AddCollection: %v", err)
	}
	if err := cr.AddCollection("", "Bad", "music", "/tmp/music", "", ""); err == nil {
		t.Error("expected error for unknown collection type")
	}
	colls := cr.GetCollections()
	if len(colls) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(colls))
	}
	if len(colls[0].ID) != 20 {
		t.Errorf("derived collection ID = %q", colls[0].ID)
	}
}

func TestSearchDuringRebuild(t *testing.T) {
	cr, _ := newTestRepo()
	if err := cr.BuildSearchIndex(context.Background()); err != nil {
		t.Fatalf("BuildSearchIndex: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if _, err := cr.SearchItem(context.Background(), "test show"); err != nil {
					t.Errorf("SearchItem during rebuild: %v", err)
					return
				}
			}
		}()
	}

	for i := 0; i < 10; i++ {
		if err := cr.BuildSearchIndex(context.Background()); err != nil {
			t.Errorf("BuildSearchIndex: %v", err)
			break
		}
	}
	close(done)
	wg.Wait()
}
