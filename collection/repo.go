package collection

import (
	"context"
	"errors"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jellofin/jellofin-server/collection/search"
	"github.com/jellofin/jellofin-server/database"
	"github.com/jellofin/jellofin-server/database/model"
	"github.com/jellofin/jellofin-server/idhash"
)

// CollectionRepo is the repository holding all content collections.
// Readers are request handlers; the only writer is the scanner, which
// swaps in freshly built item lists under the write lock.
type CollectionRepo struct {
	mu          sync.RWMutex
	collections Collections
	repo        *database.Repository
	index       *search.Search

	rescanInterval time.Duration
	scanPace       time.Duration
}

type Options struct {
	Repo *database.Repository
	// RescanInterval is the wait between periodic rescans.
	RescanInterval time.Duration
	// ScanPace is the wait between item directories during a rescan.
	ScanPace time.Duration
}

const defaultRescanInterval = time.Hour

// New creates a CollectionRepo with the provided options.
func New(options *Options) *CollectionRepo {
	c := &CollectionRepo{
		repo:           options.Repo,
		rescanInterval: options.RescanInterval,
		scanPace:       options.ScanPace,
	}
	if c.rescanInterval == 0 {
		c.rescanInterval = defaultRescanInterval
	}
	return c
}

// AddCollection registers a content collection. Unknown collection
// types are rejected.
func (cr *CollectionRepo) AddCollection(id, name, collectiontype, directory, baseUrl, hlsServer string) error {
	var ct CollectionType
	switch collectiontype {
	case "movies":
		ct = CollectionMovies
	case "shows", "show", "tv", "tvshows":
		ct = CollectionShows
	default:
		return errors.New("unknown collection type " + collectiontype)
	}

	c := Collection{
		ID:        id,
		Name:      name,
		Type:      ct,
		Directory: directory,
		BaseUrl:   baseUrl,
		HlsServer: hlsServer,
	}
	if c.ID == "" {
		c.ID = idhash.IdHash(c.Name)
	}
	log.Printf("Adding collection %s, id: %s, type: %s, directory: %s", c.Name, c.ID, c.Type, c.Directory)

	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.collections = append(cr.collections, c)
	return nil
}

// Init scans all collections for the first time and builds the index.
func (cr *CollectionRepo) Init(ctx context.Context) {
	cr.updateCollections(0)
	if err := cr.BuildSearchIndex(ctx); err != nil {
		log.Printf("search index build failed: %v", err)
	}
}

// Background rescans the collections periodically until ctx is done.
func (cr *CollectionRepo) Background(ctx context.Context) {
	ticker := time.NewTicker(cr.rescanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cr.updateCollections(cr.scanPace)
			if err := cr.BuildSearchIndex(ctx); err != nil {
				log.Printf("search index rebuild failed: %v", err)
			}
		}
	}
}

// updateCollections rescans every collection sequentially. A failed
// collection keeps its previous contents; the others still update.
func (cr *CollectionRepo) updateCollections(pace time.Duration) {
	cr.mu.RLock()
	snapshot := make([]Collection, len(cr.collections))
	copy(snapshot, cr.collections)
	cr.mu.RUnlock()

	for n := range snapshot {
		c := &snapshot[n]
		var items []Item
		switch c.Type {
		case CollectionMovies:
			items = cr.buildMovies(c, pace)
		case CollectionShows:
			items = cr.buildShows(c, pace)
		default:
			log.Printf("Unknown collection type %s, skipping", c.Type)
			continue
		}
		if items == nil {
			log.Printf("scan: collection %s produced no items, keeping previous contents", c.Name)
			continue
		}

		cr.mu.Lock()
		for i := range cr.collections {
			if cr.collections[i].ID == c.ID {
				cr.collections[i].Items = items
			}
		}
		cr.mu.Unlock()

		cr.storeItemProjection(items)
	}
}

// storeItemProjection upserts the thin per-item database row used by
// DB-side queries.
func (cr *CollectionRepo) storeItemProjection(items []Item) {
	if cr.repo == nil {
		return
	}
	ctx := context.Background()
	for _, i := range items {
		dbItem := &model.Item{
			ID:     i.ID(),
			Name:   i.Name(),
			Year:   i.ProductionYear(),
			Genre:  strings.Join(i.Genres(), ","),
			Rating: float64(i.CommunityRating()),
		}
		if err := cr.repo.ItemRepo.Upsert(ctx, dbItem); err != nil {
			log.Printf("item projection upsert %s: %v", i.ID(), err)
		}
	}
}

// GetCollections returns all collections.
func (cr *CollectionRepo) GetCollections() Collections {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	out := make(Collections, len(cr.collections))
	copy(out, cr.collections)
	return out
}

// GetCollection returns a collection by ID.
func (cr *CollectionRepo) GetCollection(collectionID string) *Collection {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	for n := range cr.collections {
		if cr.collections[n].ID == collectionID {
			c := cr.collections[n]
			return &c
		}
	}
	return nil
}

// GetItem returns an item in a collection by its ID or name.
func (cr *CollectionRepo) GetItem(collectionID, itemName string) Item {
	c := cr.GetCollection(collectionID)
	if c == nil {
		return nil
	}
	for _, i := range c.Items {
		if i.Name() == itemName || i.ID() == itemName {
			return i
		}
	}
	return nil
}

// GetItemByID finds a movie or show anywhere in the library. Linear
// search; the first match wins.
func (cr *CollectionRepo) GetItemByID(itemID string) (*Collection, Item) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	for n := range cr.collections {
		for _, i := range cr.collections[n].Items {
			if i.ID() == itemID {
				c := cr.collections[n]
				return &c, i
			}
		}
	}
	return nil, nil
}

// GetSeasonByID finds a season anywhere in the library.
func (cr *CollectionRepo) GetSeasonByID(seasonID string) (*Collection, *Show, *Season) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	for n := range cr.collections {
		for _, i := range cr.collections[n].Items {
			show, ok := i.(*Show)
			if !ok {
				continue
			}
			for _, s := range show.Seasons {
				if s.ID == seasonID {
					c := cr.collections[n]
					return &c, show, s
				}
			}
		}
	}
	return nil, nil, nil
}

// GetEpisodeByID finds an episode anywhere in the library.
func (cr *CollectionRepo) GetEpisodeByID(episodeID string) (*Collection, *Show, *Season, *Episode) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	for n := range cr.collections {
		for _, i := range cr.collections[n].Items {
			show, ok := i.(*Show)
			if !ok {
				continue
			}
			for _, s := range show.Seasons {
				for _, e := range s.Episodes {
					if e.ID == episodeID {
						c := cr.collections[n]
						return &c, show, s, e
					}
				}
			}
		}
	}
	return nil, nil, nil, nil
}

// NextUp returns, per show, the episode following the highest-numbered
// episode in the provided watched list.
func (cr *CollectionRepo) NextUp(watchedEpisodeIDs []string) []string {
	type lastWatched struct {
		show      *Show
		seasonIdx int
		epIdx     int
		seasonNo  int
		episodeNo int
	}
	showMap := make(map[string]lastWatched)

	for _, episodeID := range watchedEpisodeIDs {
		c, show, season, episode := cr.GetEpisodeByID(episodeID)
		if c == nil {
			continue
		}

		seasonIdx, epIdx := -1, -1
		for si, s := range show.Seasons {
			if s.ID != season.ID {
				continue
			}
			seasonIdx = si
			for ei, e := range s.Episodes {
				if e.ID == episode.ID {
					epIdx = ei
					break
				}
			}
			break
		}
		if seasonIdx == -1 || epIdx == -1 {
			continue
		}

		entry, exists := showMap[show.ID()]
		if !exists ||
			season.SeasonNumber > entry.seasonNo ||
			(season.SeasonNumber == entry.seasonNo && episode.EpisodeNumber > entry.episodeNo) {
			showMap[show.ID()] = lastWatched{
				show:      show,
				seasonIdx: seasonIdx,
				epIdx:     epIdx,
				seasonNo:  season.SeasonNumber,
				episodeNo: episode.EpisodeNumber,
			}
		}
	}

	nextUpEpisodeIDs := make([]string, 0, len(showMap))
	for _, entry := range showMap {
		seasons := entry.show.Seasons
		season := seasons[entry.seasonIdx]
		if entry.epIdx+1 < len(season.Episodes) {
			nextUpEpisodeIDs = append(nextUpEpisodeIDs, season.Episodes[entry.epIdx+1].ID)
			continue
		}
		if entry.seasonIdx+1 < len(seasons) && len(seasons[entry.seasonIdx+1].Episodes) > 0 {
			nextUpEpisodeIDs = append(nextUpEpisodeIDs, seasons[entry.seasonIdx+1].Episodes[0].ID)
		}
	}
	return nextUpEpisodeIDs
}

// FirstEpisodeID returns the first episode of a show, for the next-up
// fallback when nothing was watched yet.
func (cr *CollectionRepo) FirstEpisodeID(showID string) string {
	_, item := cr.GetItemByID(showID)
	show, ok := item.(*Show)
	if !ok || len(show.Seasons) == 0 || len(show.Seasons[0].Episodes) == 0 {
		return ""
	}
	return show.Seasons[0].Episodes[0].ID
}

// Details aggregates details over all collections.
func (cr *CollectionRepo) Details() CollectionDetails {
	var details CollectionDetails
	for _, collection := range cr.GetCollections() {
		d := collection.Details()
		details.MovieCount += d.MovieCount
		details.ShowCount += d.ShowCount
		details.EpisodeCount += d.EpisodeCount
		for _, g := range d.Genres {
			if !slices.Contains(details.Genres, g) {
				details.Genres = append(details.Genres, g)
			}
		}
		for _, s := range d.Studios {
			if !slices.Contains(details.Studios, s) {
				details.Studios = append(details.Studios, s)
			}
		}
		for _, r := range d.OfficialRatings {
			if !slices.Contains(details.OfficialRatings, r) {
				details.OfficialRatings = append(details.OfficialRatings, r)
			}
		}
		for _, y := range d.Years {
			if !slices.Contains(details.Years, y) {
				details.Years = append(details.Years, y)
			}
		}
	}
	slices.Sort(details.Years)
	return details
}

// GenreItemCount returns number of items per genre across collections.
func (cr *CollectionRepo) GenreItemCount() map[string]int {
	genreCount := make(map[string]int)
	for _, collection := range cr.GetCollections() {
		for g, count := range collection.GenreCount() {
			genreCount[g] += count
		}
	}
	return genreCount
}

// BuildSearchIndex rebuilds the search index from the current library
// and swaps it in. Searches against the previous index keep working
// until the swap.
func (cr *CollectionRepo) BuildSearchIndex(ctx context.Context) error {
	index, err := search.New()
	if err != nil {
		return err
	}

	var docs []search.Document
	for _, c := range cr.GetCollections() {
		for _, i := range c.Items {
			docs = append(docs, makeSearchDocument(&c, i))
			if show, ok := i.(*Show); ok {
				for _, s := range show.Seasons {
					for _, e := range s.Episodes {
						docs = append(docs, makeEpisodeSearchDocument(&c, show, e))
					}
				}
			}
		}
	}

	if err := index.IndexBatch(ctx, docs); err != nil {
		return err
	}
	log.Printf("Search indexed %d items.", len(docs))

	cr.mu.Lock()
	old := cr.index
	cr.index = index
	cr.mu.Unlock()
	// Queries run under the read lock, so acquiring the write lock above
	// waited for every in-flight query. Nobody holds the old index now.
	if old != nil {
		old.Close()
	}
	return nil
}

var ErrSearchIndexNotInitialized = errors.New("search index not initialized")

// default number of search results to return.
const searchResultCount = 15

// SearchItem performs a full-text search and returns matching item IDs.
// The read lock is held for the whole query so a concurrent index
// rebuild cannot close the index mid-query.
func (cr *CollectionRepo) SearchItem(ctx context.Context, term string) ([]string, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	if cr.index == nil {
		return nil, ErrSearchIndexNotInitialized
	}
	return cr.index.SearchItem(ctx, term, searchResultCount)
}

// Similar returns IDs of items sharing genres with the given item,
// restricted to the same item type.
func (cr *CollectionRepo) Similar(ctx context.Context, i Item) ([]string, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	if cr.index == nil {
		return nil, ErrSearchIndexNotInitialized
	}
	return cr.index.Similar(ctx, i.ID(), searchResultCount)
}

// makeSearchDocument projects a movie or show into the index schema.
func makeSearchDocument(c *Collection, i Item) search.Document {
	return search.Document{
		ID:           i.ID(),
		CollectionID: c.ID,
		ItemType:     string(i.Type()),
		Name:         i.Name(),
		Overview:     i.Overview(),
		Genres:       i.Genres(),
	}
}

// makeEpisodeSearchDocument projects an episode into the index schema.
// Episodes inherit their show's genres.
func makeEpisodeSearchDocument(c *Collection, show *Show, e *Episode) search.Document {
	return search.Document{
		ID:           e.ID,
		CollectionID: c.ID,
		ItemType:     string(TypeEpisode),
		Name:         e.Name,
		Overview:     e.Overview,
		Genres:       show.Genres(),
	}
}
