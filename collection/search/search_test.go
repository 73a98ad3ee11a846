package search

import (
	"context"
	"slices"
	"testing"
)

func testDocuments() []Document {
	return []Document{
		{
			ID:           "M1",
			CollectionID: "C1",
			ItemType:     "Movie",
			Name:         "Heat",
			Overview:     "A heist crew and a detective circle each other.",
			Genres:       []string{"Action", "Thriller"},
		},
		{
			ID:           "M2",
			CollectionID: "C1",
			ItemType:     "Movie",
			Name:         "Ronin",
			Overview:     "Mercenaries chase a briefcase across France.",
			Genres:       []string{"Action"},
		},
		{
			ID:           "M3",
			CollectionID: "C1",
			ItemType:     "Movie",
			Name:         "Clue",
			Overview:     "A dinner party turns into a whodunit.",
			Genres:       []string{"Comedy"},
		},
		{
			ID:           "S1",
			CollectionID: "C2",
			ItemType:     "Series",
			Name:         "Wire Crossed",
			Overview:     "A crime drama about surveillance.",
			Genres:       []string{"Action", "Drama"},
		},
	}
}

func newTestIndex(t *testing.T) *Search {
	t.Helper()
	idx, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	if err := idx.IndexBatch(context.Background(), testDocuments()); err != nil {
		t.Fatalf("IndexBatch: %v", err)
	}
	return idx
}

func TestSearchItemByName(t *testing.T) {
	idx := newTestIndex(t)

	ids, err := idx.SearchItem(context.Background(), "heat", 10)
	if err != nil {
		t.Fatalf("SearchItem: %v", err)
	}
	if !slices.Contains(ids, "M1") {
		t.Errorf("expected M1 in results, got %v", ids)
	}
}

func TestSearchItemByOverview(t *testing.T) {
	idx := newTestIndex(t)

	ids, err := idx.SearchItem(context.Background(), "briefcase", 10)
	if err != nil {
		t.Fatalf("SearchItem: %v", err)
	}
	if !slices.Contains(ids, "M2") {
		t.Errorf("expected M2 in results, got %v", ids)
	}
}

func TestSearchItemEmptyTerm(t *testing.T) {
	idx := newTestIndex(t)

	ids, err := idx.SearchItem(context.Background(), "   ", 10)
	if err != nil {
		t.Fatalf("SearchItem: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no results for blank term, got %v", ids)
	}
}

func TestSimilarSharesGenre(t *testing.T) {
	idx := newTestIndex(t)

	ids, err := idx.Similar(context.Background(), "M1", 10)
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	if !slices.Contains(ids, "M2") {
		t.Errorf("expected action movie M2 in results, got %v", ids)
	}
	if slices.Contains(ids, "M1") {
		t.Errorf("item must not be similar to itself, got %v", ids)
	}
	if slices.Contains(ids, "M3") {
		t.Errorf("comedy M3 shares no genre with M1, got %v", ids)
	}
	// S1 shares a genre but is a series, not a movie.
	if slices.Contains(ids, "S1") {
		t.Errorf("series S1 must be excluded by item type, got %v", ids)
	}
}

func TestSimilarUnknownItem(t *testing.T) {
	idx := newTestIndex(t)

	if _, err := idx.Similar(context.Background(), "nope", 10); err == nil {
		t.Error("expected error for unindexed item")
	}
}

func TestDelete(t *testing.T) {
	idx := newTestIndex(t)

	if err := idx.Delete(context.Background(), "M1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ids, err := idx.SearchItem(context.Background(), "heat", 10)
	if err != nil {
		t.Fatalf("SearchItem: %v", err)
	}
	if slices.Contains(ids, "M1") {
		t.Errorf("deleted document still found: %v", ids)
	}
}
