// Recstudy - News Recommendation Expert Study
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recstudy

package articles

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recstudy/internal/cache"
	"github.com/tomtom215/recstudy/internal/logging"
	"github.com/tomtom215/recstudy/internal/metrics"
)

// Store owns the two immutable source tables and the resolved-article cache.
// It is safe for concurrent use.
type Store struct {
	reference *table
	catalog   *table
	logger    zerolog.Logger

	// Bounded id -> Article memo. Concurrent misses for the same id may
	// both compute the view; the last write wins and the values are equal.
	resolved *cache.LRU[Article]
}

// MemoHeadroom is the memo room left beyond the known article ids for
// placeholders of ids found in neither table. Eviction starts only once that
// many unknown ids have been seen.
const MemoHeadroom = 1024

// Load reads the reference and catalog CSV exports. Either file being
// unreadable or lacking the uuid column is an error the caller must treat
// as fatal.
func Load(referencePath, catalogPath string) (*Store, error) {
	ref, err := os.Open(referencePath)
	if err != nil {
		return nil, fmt.Errorf("open reference table: %w", err)
	}
	defer ref.Close()

	cat, err := os.Open(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog table: %w", err)
	}
	defer cat.Close()

	return LoadReaders(ref, cat)
}

// LoadReaders builds a Store from already opened CSV sources.
func LoadReaders(reference, catalog io.Reader) (*Store, error) {
	logger := logging.WithComponent("articles")

	ref, refDups, err := readTable(Reference, reference)
	if err != nil {
		return nil, err
	}
	cat, catDups, err := readTable(Catalog, catalog)
	if err != nil {
		return nil, err
	}

	if refDups > 0 || catDups > 0 {
		logger.Warn().
			Int("reference_duplicates", refDups).
			Int("catalog_duplicates", catDups).
			Msg("Duplicate article ids ignored (first row kept)")
	}
	logger.Info().
		Int("reference_articles", len(ref.rows)).
		Int("catalog_articles", len(cat.rows)).
		Msg("Article tables loaded")

	metrics.ArticlesLoaded.WithLabelValues(Reference.String()).Set(float64(len(ref.rows)))
	metrics.ArticlesLoaded.WithLabelValues(Catalog.String()).Set(float64(len(cat.rows)))

	return &Store{
		reference: ref,
		catalog:   cat,
		logger:    logger,
		resolved:  cache.NewLRU[Article](len(ref.rows) + len(cat.rows) + MemoHeadroom),
	}, nil
}

func (s *Store) table(t Table) *table {
	switch t {
	case Reference:
		return s.reference
	case Catalog:
		return s.catalog
	default:
		return nil
	}
}

// FindByID returns the raw row for id in the given table.
func (s *Store) FindByID(t Table, id string) (*Record, bool) {
	return s.table(t).find(id)
}

// Catalog returns every catalog row in file order. The slice must not be modified.
func (s *Store) Catalog() []*Record {
	return s.catalog.rows
}

// Reference returns every reference row in file order. The slice must not be modified.
func (s *Store) Reference() []*Record {
	return s.reference.rows
}

// ReferenceIDs returns the reference article ids in file order.
func (s *Store) ReferenceIDs() []string {
	ids := make([]string, len(s.reference.rows))
	for i, r := range s.reference.rows {
		ids[i] = r.ID
	}
	return ids
}

// Listing is the compact form of an article used by the catalogue page.
type Listing struct {
	ID           string     `json:"uuid"`
	Title        string     `json:"title"`
	Section      string     `json:"section"`
	CreationDate *time.Time `json:"creation_date"`
}

// Catalogue returns the reference articles sorted by creation date, newest
// first. Articles without a valid date sort last, in file order.
func (s *Store) Catalogue() []Listing {
	out := make([]Listing, len(s.reference.rows))
	for i, r := range s.reference.rows {
		out[i] = Listing{
			ID:           r.ID,
			Title:        r.Title,
			Section:      r.Section,
			CreationDate: ParseTimestamp(r.CreationDate),
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CreationDate, out[j].CreationDate
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.After(*b)
	})
	return out
}

// Resolve returns the unified view of an article. It never fails: ids found
// in neither table give Placeholder(id). Results are memoized.
func (s *Store) Resolve(id string) Article {
	if a, ok := s.resolved.Get(id); ok {
		metrics.RecordCacheLookup("article", true)
		return a
	}
	metrics.RecordCacheLookup("article", false)

	a := s.build(id)
	s.resolved.Add(id, a)
	return a
}

func (s *Store) build(id string) Article {
	ref, inRef := s.reference.find(id)
	cat, inCat := s.catalog.find(id)

	switch {
	case inRef && inCat:
		return Merge(ref, cat).ToArticle()
	case inRef:
		return ref.ToArticle()
	case inCat:
		return cat.ToArticle()
	default:
		s.logger.Debug().Str("article_id", id).Msg("Article not found in either table")
		return Placeholder(id)
	}
}

// CatalogArticle returns the catalog-only view of id, or Placeholder(id).
// Recommended articles are always drawn from the catalog.
func (s *Store) CatalogArticle(id string) Article {
	if rec, ok := s.catalog.find(id); ok {
		return rec.ToArticle()
	}
	return Placeholder(id)
}

// CachedArticles reports how many resolved views are memoized.
func (s *Store) CachedArticles() int {
	return s.resolved.Len()
}
