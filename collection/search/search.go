// Package search maintains the in-memory full-text index over the
// library. The index is a projection: it stores copied document tuples,
// never references into the library graph, so both can be replaced
// independently.
package search

import (
	"context"
	"errors"
	"strings"
	"sync"

	bleve "github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Search is the bleve-backed search index.
type Search struct {
	index bleve.Index

	// docs keeps the indexed documents by id so Similar can recover
	// the source document's genres and type.
	mu   sync.RWMutex
	docs map[string]Document
}

// Document is what we store in bleve per item.
type Document struct {
	// ID of the item.
	ID string `json:"id"`
	// CollectionID of the owning collection.
	CollectionID string `json:"collection_id"`
	// ItemType is Movie, Series or Episode. Seasons are not indexed.
	ItemType string   `json:"item_type"`
	Name     string   `json:"name"`
	Overview string   `json:"overview"`
	Genres   []string `json:"genres"`
}

// New creates a new in-memory index.
func New() (*Search, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return &Search{
		index: idx,
		docs:  make(map[string]Document),
	}, nil
}

// buildIndexMapping builds the bleve field mapping: keyword analyzer
// for identifier fields, english analyzer for the text fields.
func buildIndexMapping() mapping.IndexMapping {
	m := bleve.NewIndexMapping()
	doc := bleve.NewDocumentMapping()

	text := bleve.NewTextFieldMapping()
	text.Analyzer = "en"
	// Index only; IDs come back via the hit, the library resolves the rest.
	text.Store = false
	text.Index = true

	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = "keyword"
	keyword.Store = true
	keyword.Index = true

	doc.AddFieldMappingsAt("id", keyword)
	doc.AddFieldMappingsAt("collection_id", keyword)
	doc.AddFieldMappingsAt("item_type", keyword)
	doc.AddFieldMappingsAt("name", text)
	doc.AddFieldMappingsAt("overview", text)
	doc.AddFieldMappingsAt("genres", text)

	m.DefaultMapping = doc
	return m
}

// IndexBatch indexes a slice of documents in batches.
func (b *Search) IndexBatch(ctx context.Context, docs []Document) error {
	batch := b.index.NewBatch()
	for _, d := range docs {
		if err := batch.Index(d.ID, d); err != nil {
			return err
		}
		// commit in chunks to bound batch memory
		if batch.Size() > 1000 {
			if err := b.index.Batch(batch); err != nil {
				return err
			}
			batch = b.index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := b.index.Batch(batch); err != nil {
			return err
		}
	}

	b.mu.Lock()
	for _, d := range docs {
		b.docs[d.ID] = d
	}
	b.mu.Unlock()
	return nil
}

// SearchItem runs a full-text query across name, overview and genres
// and returns up to size matching item IDs, best first.
func (b *Search) SearchItem(ctx context.Context, searchTerm string, size int) ([]string, error) {
	searchTerm = strings.TrimSpace(searchTerm)
	if searchTerm == "" {
		return nil, nil
	}

	boolQuery := bleve.NewBooleanQuery()
	for _, field := range []string{"name", "overview", "genres"} {
		mq := bleve.NewMatchQuery(searchTerm)
		mq.SetField(field)
		if field == "name" {
			mq.SetBoost(3.0)
		}
		boolQuery.AddShould(mq)
	}
	boolQuery.SetMinShould(1)

	req := bleve.NewSearchRequestOptions(boolQuery, size, 0, false)
	req.Fields = []string{"id", "collection_id", "item_type"}
	req.SortBy([]string{"-_score"})

	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}

	foundIDs := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		foundIDs = append(foundIDs, h.ID)
	}
	return foundIDs, nil
}

// Similar returns up to size items sharing genres with the given item,
// restricted to the same item type, the item itself excluded.
func (b *Search) Similar(ctx context.Context, id string, size int) ([]string, error) {
	if b == nil || b.index == nil {
		return nil, errors.New("search index not initialized")
	}

	b.mu.RLock()
	doc, ok := b.docs[id]
	b.mu.RUnlock()
	if !ok {
		return nil, errors.New("item not indexed")
	}

	boolQuery := bleve.NewBooleanQuery()

	for _, g := range doc.Genres {
		if g == "" {
			continue
		}
		fq := bleve.NewFuzzyQuery(strings.ToLower(g))
		fq.SetField("genres")
		fq.SetFuzziness(1)
		boolQuery.AddShould(fq)
	}

	typeQuery := bleve.NewTermQuery(doc.ItemType)
	typeQuery.SetField("item_type")
	boolQuery.AddMust(typeQuery)

	selfQuery := bleve.NewTermQuery(doc.ID)
	selfQuery.SetField("id")
	boolQuery.AddMustNot(selfQuery)

	boolQuery.SetMinShould(1)

	req := bleve.NewSearchRequestOptions(boolQuery, size, 0, false)
	req.Fields = []string{"id"}
	req.SortBy([]string{"-_score"})

	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}

	foundIDs := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		foundIDs = append(foundIDs, h.ID)
	}
	return foundIDs, nil
}

// Delete removes a document from the index.
func (b *Search) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	delete(b.docs, id)
	b.mu.Unlock()
	return b.index.Delete(id)
}

// Close closes the underlying index.
func (b *Search) Close() error {
	return b.index.Close()
}
