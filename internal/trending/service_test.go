// Animerec - Anime Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animerec

package trending

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/animerec/internal/config"
	"github.com/tomtom215/animerec/internal/models"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeCatalog struct {
	mu          sync.Mutex
	top         []models.AnimeRecord
	page        models.AnimePage
	err         error
	topCalls    int
	browseCalls int
	lastQuery   models.BrowseQuery

	// gate, when set, holds BrowseAnime until closed or ctx ends.
	gate    chan struct{}
	started chan struct{}
}

func (f *fakeCatalog) TopAnime(_ context.Context, limit int) ([]models.AnimeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topCalls++
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.top) {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func (f *fakeCatalog) BrowseAnime(ctx context.Context, q models.BrowseQuery) (models.AnimePage, error) {
	if f.gate != nil {
		f.started <- struct{}{}
		select {
		case <-f.gate:
		case <-ctx.Done():
			return models.AnimePage{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.browseCalls++
	f.lastQuery = q
	if f.err != nil {
		return models.AnimePage{}, f.err
	}
	return f.page, nil
}

func testConfig() config.TrendingConfig {
	return config.TrendingConfig{
		TopLimit:         24,
		CategoryLimit:    24,
		CacheTTL:         time.Hour,
		CategoryCacheTTL: 5 * time.Minute,
		CacheCapacity:    16,
	}
}

func TestTop_MapsAndCaches(t *testing.T) {
	clock := &manualClock{now: time.Unix(1_700_000_000, 0)}
	cat := &fakeCatalog{top: []models.AnimeRecord{
		{ID: 5114, Title: "Fullmetal Alchemist: Brotherhood", Score: models.Float64Ptr(9.1), ImageURL: "i", URL: "u", Genres: []string{"Action"}},
		{ID: 1, Title: "No Score"},
	}}
	s := NewService(cat, testConfig(), clock)

	list := s.Top(context.Background())
	if len(list.Items) != 2 {
		t.Fatalf("got %d items", len(list.Items))
	}
	first := list.Items[0]
	if first.ID != "5114" || *first.Rating != 9.1 || first.Image != "i" {
		t.Errorf("first = %+v", first)
	}
	if list.Items[1].Rating != nil || list.Items[1].Genres == nil {
		t.Errorf("second = %+v", list.Items[1])
	}

	s.Top(context.Background())
	if cat.topCalls != 1 {
		t.Errorf("topCalls = %d, want 1 (cached)", cat.topCalls)
	}
	clock.Advance(time.Hour + time.Second)
	s.Top(context.Background())
	if cat.topCalls != 2 {
		t.Errorf("topCalls = %d, want 2 after expiry", cat.topCalls)
	}
}

func TestTop_FailureIsEmptyAndUncached(t *testing.T) {
	cat := &fakeCatalog{err: errors.New("jikan down")}
	s := NewService(cat, testConfig(), nil)

	list := s.Top(context.Background())
	if list.Items == nil || len(list.Items) != 0 {
		t.Errorf("items = %#v, want empty slice", list.Items)
	}
	s.Top(context.Background())
	if cat.topCalls != 2 {
		t.Errorf("failures should not be cached, calls = %d", cat.topCalls)
	}
}

func TestQuery_BrowseQuery(t *testing.T) {
	tests := []struct {
		category string
		status   string
		typ      string
		orderBy  string
	}{
		{"airing", "airing", "", "score"},
		{"MOVIE", "", "movie", "score"},
		{"upcoming", "upcoming", "", "members"},
		{"popular", "", "", "members"},
		{"top", "", "", "score"},
		{"whatever", "", "", "score"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			bq := Query{Category: tt.category, Genres: "1,2", Page: 0}.Normalize().BrowseQuery(24)
			if bq.Status != tt.status || bq.Type != tt.typ || bq.OrderBy != tt.orderBy {
				t.Errorf("BrowseQuery = %+v", bq)
			}
			if bq.Sort != "desc" || !bq.SFW || bq.Limit != 24 || bq.Page != 1 || bq.Genres != "1,2" {
				t.Errorf("common params = %+v", bq)
			}
		})
	}
}

func TestByCategory_MapsItems(t *testing.T) {
	cat := &fakeCatalog{page: models.AnimePage{
		Items: []models.AnimeRecord{
			{ID: 7, Title: "Airing", Synopsis: "s", Score: models.Float64Ptr(8.456), Year: 2024, Status: "Currently Airing", LargeImageURL: "L", URL: "u"},
			{ID: 8, Title: "Bare"},
		},
		Pagination: models.Pagination{CurrentPage: 2, LastVisiblePage: 5, HasNextPage: true},
	}}
	s := NewService(cat, testConfig(), nil)

	page, err := s.ByCategory(context.Background(), Query{Category: "airing", Page: 2})
	if err != nil {
		t.Fatalf("ByCategory: %v", err)
	}
	if page.Pagination.LastVisiblePage != 5 || !page.Pagination.HasNextPage {
		t.Errorf("pagination = %+v", page.Pagination)
	}
	item := page.Data[0]
	if *item.Synopsis != "s" || *item.Score != 8.46 || *item.Year != 2024 || item.Image != "L" {
		t.Errorf("item = %+v", item)
	}
	bare := page.Data[1]
	if bare.Synopsis != nil || bare.Score != nil || bare.Year != nil || bare.Genres == nil {
		t.Errorf("bare = %+v", bare)
	}
	if cat.lastQuery.Status != "airing" || cat.lastQuery.Page != 2 {
		t.Errorf("query = %+v", cat.lastQuery)
	}

	if _, err := s.ByCategory(context.Background(), Query{Category: "Airing ", Page: 2}); err != nil {
		t.Fatal(err)
	}
	if cat.browseCalls != 1 {
		t.Errorf("browseCalls = %d, want 1 (normalized key cached)", cat.browseCalls)
	}
}

func TestByCategory_Failure(t *testing.T) {
	cat := &fakeCatalog{err: errors.New("502")}
	s := NewService(cat, testConfig(), nil)
	if _, err := s.ByCategory(context.Background(), Query{Category: "movie"}); err == nil {
		t.Error("expected error")
	}
}

func TestByCategory_SharedLookupSurvivesFirstCallerCancel(t *testing.T) {
	cat := &fakeCatalog{
		page: models.AnimePage{
			Items: []models.AnimeRecord{{ID: 1, Title: "Shared"}},
		},
		gate:    make(chan struct{}),
		started: make(chan struct{}, 4),
	}
	s := NewService(cat, testConfig(), nil)
	q := Query{Category: "airing", Page: 1}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := s.ByCategory(firstCtx, q)
		firstErr <- err
	}()
	<-cat.started

	type result struct {
		page models.CategoryPage
		err  error
	}
	second := make(chan result, 1)
	go func() {
		page, err := s.ByCategory(context.Background(), q)
		second <- result{page, err}
	}()
	time.Sleep(20 * time.Millisecond) // let the second caller join the flight

	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("first caller err = %v, want context.Canceled", err)
	}

	close(cat.gate)
	select {
	case r := <-second:
		if r.err != nil {
			t.Fatalf("second caller err = %v", r.err)
		}
		if len(r.page.Data) != 1 || r.page.Data[0].Title != "Shared" {
			t.Errorf("page = %+v", r.page)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("second caller did not return")
	}
}

func TestCaches(t *testing.T) {
	s := NewService(&fakeCatalog{}, testConfig(), nil)
	caches := s.Caches()
	if len(caches) != 2 || caches[0].Name() != TopCacheName || caches[1].Name() != CategoryCacheName {
		t.Errorf("caches = %v", caches)
	}
}
