package business

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Conte777/brewquest/config"
	"github.com/Conte777/brewquest/internal/domain/content/deps"
	"github.com/Conte777/brewquest/internal/domain/content/dto"
	"github.com/Conte777/brewquest/internal/domain/content/entities"
	contentrepo "github.com/Conte777/brewquest/internal/domain/content/repository/postgres"
	journeyentities "github.com/Conte777/brewquest/internal/domain/journey/entities"
	journeyerrors "github.com/Conte777/brewquest/internal/domain/journey/errors"
	journeyrepo "github.com/Conte777/brewquest/internal/domain/journey/repository/postgres"
	journeyuc "github.com/Conte777/brewquest/internal/domain/journey/usecase/business"
	"github.com/Conte777/brewquest/internal/infrastructure/metrics"
	"github.com/Conte777/brewquest/internal/testutil"
)

// Monday 2026-03-02 00:00 UTC
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// mapCache mirrors the generation scheme of the redis cache
type mapCache struct {
	entries     map[string][]entities.Beer
	generations map[string]int64
	invalidated []string
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]entities.Beer), generations: make(map[string]int64)}
}

func cacheKey(code string, generation int64, status journeyentities.Status) string {
	return fmt.Sprintf("%s:%d:%s", code, generation, status)
}

func (c *mapCache) Get(_ context.Context, code string, status journeyentities.Status) ([]entities.Beer, int64, bool) {
	generation := c.generations[code]
	beers, ok := c.entries[cacheKey(code, generation, status)]
	return beers, generation, ok
}

func (c *mapCache) Set(_ context.Context, code string, status journeyentities.Status, generation int64, beers []entities.Beer) {
	c.entries[cacheKey(code, generation, status)] = beers
}

func (c *mapCache) Invalidate(_ context.Context, codes ...string) {
	for _, code := range codes {
		c.invalidated = append(c.invalidated, code)
		c.generations[code]++
	}
}

type mockEvents struct {
	events []dto.BeersPublishedEvent
	err    error
}

func (m *mockEvents) PublishBeersPublished(_ context.Context, event dto.BeersPublishedEvent) error {
	m.events = append(m.events, event)
	return m.err
}

type fixture struct {
	db        *gorm.DB
	scheduler *Scheduler
	cache     *mapCache
	events    *mockEvents
}

func newFixture(t *testing.T, statuses ...journeyentities.Status) *fixture {
	t.Helper()

	db := testutil.NewSQLiteDB(t, &journeyentities.State{}, &entities.Beer{})
	testutil.SeedStates(t, db, monday, statuses...)

	tracker := journeyuc.NewTracker(journeyrepo.NewRepository(db), metrics.GetDefaultMetrics(), zerolog.Nop())
	f := &fixture{db: db, cache: newMapCache(), events: &mockEvents{}}
	f.scheduler = NewScheduler(
		contentrepo.NewRepository(db),
		tracker,
		f.cache,
		f.events,
		&config.JourneyConfig{Location: time.UTC},
		metrics.GetDefaultMetrics(),
		zerolog.Nop(),
	)
	f.scheduler.now = func() time.Time { return monday.Add(80 * time.Hour) }
	return f
}

// seedBeers creates reviews for days 1..count; days listed in published get a timestamp
func (f *fixture) seedBeers(t *testing.T, code string, count int, published ...int) {
	t.Helper()

	isPublished := make(map[int]bool)
	for _, d := range published {
		isPublished[d] = true
	}

	for d := 1; d <= count; d++ {
		beer := entities.Beer{StateCode: code, DayOfWeek: d, BeerName: "Beer", Brewery: "Brewery", ABV: 5.5, Rating: 4}
		if isPublished[d] {
			at := monday
			beer.PublishedAt = &at
		}
		if err := f.db.Create(&beer).Error; err != nil {
			t.Fatalf("seed beer: %v", err)
		}
	}
}

func (f *fixture) publishedDays(t *testing.T, code string) []int {
	t.Helper()

	var beers []entities.Beer
	if err := f.db.Where("state_code = ? AND published_at IS NOT NULL", code).Order("day_of_week").Find(&beers).Error; err != nil {
		t.Fatalf("load beers: %v", err)
	}
	days := make([]int, len(beers))
	for i, b := range beers {
		days[i] = b.DayOfWeek
	}
	return days
}

func equalDays(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScheduler_PublishDueItems_ThreeDaysIn(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCompleted, journeyentities.StatusCompleted, journeyentities.StatusCurrent)
	f.seedBeers(t, "AZ", 7)

	asOf := monday.Add(3*24*time.Hour + 9*time.Hour)
	n, err := f.scheduler.PublishDueItems(context.Background(), "AZ", asOf)
	if err != nil {
		t.Fatalf("PublishDueItems: %v", err)
	}
	if n != 3 {
		t.Errorf("published = %d, want 3", n)
	}
	if days := f.publishedDays(t, "AZ"); !equalDays(days, []int{1, 2, 3}) {
		t.Errorf("published days = %v, want [1 2 3]", days)
	}
	if len(f.events.events) != 1 || f.events.events[0].ThroughDay != 3 {
		t.Errorf("events = %+v", f.events.events)
	}
}

func TestScheduler_PublishDueItems_Idempotent(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCurrent)
	f.seedBeers(t, "AL", 7)
	asOf := monday.Add(5 * 24 * time.Hour)

	first, err := f.scheduler.PublishDueItems(context.Background(), "AL", asOf)
	if err != nil || first != 5 {
		t.Fatalf("first publish = %d, %v; want 5", first, err)
	}

	var before entities.Beer
	f.db.Where("state_code = ? AND day_of_week = 1", "AL").First(&before)

	f.scheduler.now = func() time.Time { return monday.Add(200 * time.Hour) }
	second, err := f.scheduler.PublishDueItems(context.Background(), "AL", asOf)
	if err != nil || second != 0 {
		t.Fatalf("second publish = %d, %v; want 0", second, err)
	}

	var after entities.Beer
	f.db.Where("state_code = ? AND day_of_week = 1", "AL").First(&after)
	if !after.PublishedAt.Equal(*before.PublishedAt) {
		t.Errorf("timestamp overwritten: %v -> %v", before.PublishedAt, after.PublishedAt)
	}
	if len(f.scheduler.GetPublishedBeers(context.Background(), "AL")) != 5 {
		t.Error("published count changed after repeat")
	}
	if len(f.events.events) != 1 {
		t.Errorf("events = %d, want 1", len(f.events.events))
	}
}

func TestScheduler_PublishDueItems_NotCurrent(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCompleted, journeyentities.StatusUpcoming)
	f.seedBeers(t, "AL", 7)
	f.seedBeers(t, "AK", 7)

	for _, code := range []string{"AL", "AK"} {
		n, err := f.scheduler.PublishDueItems(context.Background(), code, monday.Add(72*time.Hour))
		if err != nil || n != 0 {
			t.Errorf("%s: published = %d, %v; want no-op", code, n, err)
		}
	}
}

func TestScheduler_PublishDueItems_UnknownState(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCurrent)

	_, err := f.scheduler.PublishDueItems(context.Background(), "ZZ", monday)
	if !errors.Is(err, journeyerrors.ErrStateNotFound) {
		t.Fatalf("err = %v, want ErrStateNotFound", err)
	}
}

func TestScheduler_PublishDueItems_FewerThanSeven(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCurrent)
	f.seedBeers(t, "AL", 4)

	n, err := f.scheduler.PublishDueItems(context.Background(), "AL", monday.Add(10*24*time.Hour))
	if err != nil {
		t.Fatalf("missing items must not fail: %v", err)
	}
	if n != 4 {
		t.Errorf("published = %d, want 4", n)
	}
}

func TestScheduler_GetPublishedBeers_Upcoming(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCurrent, journeyentities.StatusUpcoming)
	f.seedBeers(t, "AK", 7, 1, 2, 3, 4, 5, 6, 7)

	if beers := f.scheduler.GetPublishedBeers(context.Background(), "AK"); len(beers) != 0 {
		t.Errorf("upcoming state returned %d beers", len(beers))
	}
}

func TestScheduler_GetPublishedBeers_CompletedShowsAll(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCompleted, journeyentities.StatusCurrent)
	f.seedBeers(t, "AL", 7, 1, 2)

	beers := f.scheduler.GetPublishedBeers(context.Background(), "AL")
	if len(beers) != 7 {
		t.Fatalf("completed state returned %d beers, want 7", len(beers))
	}
	for i, b := range beers {
		if b.DayOfWeek != i+1 {
			t.Errorf("beer %d has day %d, want ordered by day", i, b.DayOfWeek)
		}
	}
}

func TestScheduler_GetPublishedBeers_CurrentShowsPublished(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCurrent)
	f.seedBeers(t, "AL", 7, 1, 2, 3)

	beers := f.scheduler.GetPublishedBeers(context.Background(), "al")
	if len(beers) != 3 {
		t.Fatalf("current state returned %d beers, want 3", len(beers))
	}
	if _, ok := f.cache.entries[cacheKey("AL", 0, journeyentities.StatusCurrent)]; !ok {
		t.Error("result was not cached")
	}
}

func TestScheduler_GetPublishedBeers_DegradesToEmpty(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCurrent)

	for _, code := range []string{"ZZ", "Arizona", ""} {
		beers := f.scheduler.GetPublishedBeers(context.Background(), code)
		if beers == nil || len(beers) != 0 {
			t.Errorf("%q: got %v, want empty non-nil slice", code, beers)
		}
	}
}

func TestScheduler_PublishInvalidatesCache(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCurrent)
	f.seedBeers(t, "AL", 7)

	if beers := f.scheduler.GetPublishedBeers(context.Background(), "AL"); len(beers) != 0 {
		t.Fatalf("expected nothing published yet, got %d", len(beers))
	}

	if _, err := f.scheduler.PublishDueItems(context.Background(), "AL", monday.Add(48*time.Hour)); err != nil {
		t.Fatalf("PublishDueItems: %v", err)
	}
	if beers := f.scheduler.GetPublishedBeers(context.Background(), "AL"); len(beers) != 2 {
		t.Errorf("after publish got %d beers, want 2", len(beers))
	}
}

// staleBeers returns the list it read before running afterList, like a reader that loses a race
// with a publish.
type staleBeers struct {
	deps.BeerRepository
	afterList func()
}

func (s *staleBeers) ListByState(ctx context.Context, code string) ([]entities.Beer, error) {
	beers, err := s.BeerRepository.ListByState(ctx, code)
	if s.afterList != nil {
		hook := s.afterList
		s.afterList = nil
		hook()
	}
	return beers, err
}

func TestScheduler_PublishDuringReadIsNotHiddenByCache(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCurrent)
	f.seedBeers(t, "AL", 7)
	ctx := context.Background()

	beers := &staleBeers{BeerRepository: contentrepo.NewRepository(f.db)}
	beers.afterList = func() {
		if _, err := f.scheduler.PublishDueItems(ctx, "AL", monday.Add(48*time.Hour)); err != nil {
			t.Errorf("PublishDueItems: %v", err)
		}
	}
	tracker := journeyuc.NewTracker(journeyrepo.NewRepository(f.db), metrics.GetDefaultMetrics(), zerolog.Nop())
	reader := NewScheduler(beers, tracker, f.cache, f.events, &config.JourneyConfig{Location: time.UTC},
		metrics.GetDefaultMetrics(), zerolog.Nop())

	if got := reader.GetPublishedBeers(ctx, "AL"); len(got) != 0 {
		t.Fatalf("racing read got %d beers, want the pre-publish 0", len(got))
	}
	if got := reader.GetPublishedBeers(ctx, "AL"); len(got) != 2 {
		t.Errorf("read after publish got %d beers, want 2", len(got))
	}
}

func TestScheduler_PublishAll(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCompleted, journeyentities.StatusCurrent, journeyentities.StatusUpcoming)
	f.seedBeers(t, "AL", 7, 1, 2, 3)
	f.seedBeers(t, "AZ", 7)

	n, err := f.scheduler.PublishAll(context.Background(), "AL")
	if err != nil || n != 4 {
		t.Fatalf("PublishAll = %d, %v; want 4", n, err)
	}
	if days := f.publishedDays(t, "AL"); len(days) != 7 {
		t.Errorf("published days = %v, want all seven", days)
	}

	if n, _ := f.scheduler.PublishAll(context.Background(), "AZ"); n != 0 {
		t.Errorf("upcoming state published %d", n)
	}
}

func TestScheduler_PublishDueForCurrent(t *testing.T) {
	t.Run("publishes current", func(t *testing.T) {
		f := newFixture(t, journeyentities.StatusCompleted, journeyentities.StatusCurrent)
		f.seedBeers(t, "AK", 7)

		code, n, err := f.scheduler.PublishDueForCurrent(context.Background(), monday.Add(24*time.Hour))
		if err != nil || code != "AK" || n != 1 {
			t.Errorf("got (%q, %d, %v), want (AK, 1, nil)", code, n, err)
		}
	})

	t.Run("no current state", func(t *testing.T) {
		f := newFixture(t, journeyentities.StatusUpcoming)

		code, n, err := f.scheduler.PublishDueForCurrent(context.Background(), monday)
		if err != nil || code != "" || n != 0 {
			t.Errorf("got (%q, %d, %v), want no-op", code, n, err)
		}
	})
}

func TestScheduler_EventFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, journeyentities.StatusCurrent)
	f.seedBeers(t, "AL", 7)
	f.events.err = errors.New("broker down")

	n, err := f.scheduler.PublishDueItems(context.Background(), "AL", monday.Add(24*time.Hour))
	if err != nil || n != 1 {
		t.Errorf("got (%d, %v), want (1, nil)", n, err)
	}
}

func TestScheduler_CompletedStateAlwaysFullyPublished(t *testing.T) {
	f := newFixture(t, testutil.Statuses(6,
		journeyentities.StatusCompleted, journeyentities.StatusCompleted,
		journeyentities.StatusCompleted, journeyentities.StatusCurrent)...)

	f.seedBeers(t, "AL", 7)
	f.seedBeers(t, "AK", 7, 7)
	f.seedBeers(t, "AZ", 7, 1, 2, 3, 4, 5, 6, 7)

	for _, code := range []string{"AL", "AK", "AZ"} {
		if got := len(f.scheduler.GetPublishedBeers(context.Background(), code)); got != 7 {
			t.Errorf("%s: %d beers visible, want 7", code, got)
		}
	}
}
