// Package collection holds the in-memory library: content collections
// scanned from the filesystem, the typed movie/show/season/episode graph
// and the search index built on top of it.
package collection

import "slices"

// Collection is a top-level library unit: one directory tree plus a kind.
type Collection struct {
	// ID is the unique identifier. Taken from the configfile, or hash of the name.
	ID string
	// Name of the collection, e.g. "My Favorite Movies"
	Name string
	// Type of the collection content.
	Type CollectionType
	// Items are the movies or shows found in the collection.
	Items []Item
	// Directory is the filesystem root of this collection.
	Directory string
	// BaseUrl is a cosmetic URL prefix used in native API responses.
	BaseUrl string
	// HlsServer is the URL of an external HLS transcoder, if any.
	HlsServer string
}

type CollectionType string

const (
	CollectionMovies CollectionType = "movies"
	CollectionShows  CollectionType = "shows"
)

type Collections []Collection

func (c *Collection) GetHlsServer() string {
	return c.HlsServer
}

func (c *Collection) GetDataDir() string {
	return c.Directory
}

// CollectionDetails aggregates facts about a collection's contents.
type CollectionDetails struct {
	MovieCount      int
	ShowCount       int
	EpisodeCount    int
	Genres          []string
	Studios         []string
	OfficialRatings []string
	Years           []int
}

// Details returns collection details such as genres, ratings and years.
func (c *Collection) Details() CollectionDetails {
	var details CollectionDetails

	for _, i := range c.Items {
		switch v := i.(type) {
		case *Movie:
			details.MovieCount++
		case *Show:
			details.ShowCount++
			for _, s := range v.Seasons {
				details.EpisodeCount += len(s.Episodes)
			}
		}
		for _, g := range i.Genres() {
			if g != "" && !slices.Contains(details.Genres, g) {
				details.Genres = append(details.Genres, g)
			}
		}
		for _, s := range i.Studios() {
			if s != "" && !slices.Contains(details.Studios, s) {
				details.Studios = append(details.Studios, s)
			}
		}
		if r := i.OfficialRating(); r != "" && !slices.Contains(details.OfficialRatings, r) {
			details.OfficialRatings = append(details.OfficialRatings, r)
		}
		if y := i.ProductionYear(); y != 0 && !slices.Contains(details.Years, y) {
			details.Years = append(details.Years, y)
		}
	}

	slices.Sort(details.Years)
	return details
}

// GenreCount returns number of items per genre of a collection.
func (c *Collection) GenreCount() map[string]int {
	genreCount := make(map[string]int)
	for _, i := range c.Items {
		for _, g := range i.Genres() {
			if g == "" {
				continue
			}
			genreCount[g]++
		}
	}
	return genreCount
}
