package racing

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/padraicbc/racecards/models"
)

type savedCall struct {
	date     string
	meetings []models.Meeting
}

type fakeStore struct {
	cached  *CachedMeetings
	getErr  error
	saveErr error
	saved   []savedCall
}

func (f *fakeStore) GetCachedMeetings(ctx context.Context, date string) (*CachedMeetings, error) {
	return f.cached, f.getErr
}

func (f *fakeStore) SaveMeetingsCache(ctx context.Context, date string, meetings []models.Meeting) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, savedCall{date: date, meetings: meetings})
	return nil
}

type fakeFetcher struct {
	meetings []models.Meeting
	err      error
	calls    int
}

func (f *fakeFetcher) FetchMeetings(ctx context.Context, date string) ([]models.Meeting, error) {
	f.calls++
	return f.meetings, f.err
}

const testDate = "2026-02-07"

var testMeetings = []models.Meeting{{
	MeetingID:   "m1",
	TrackName:   "Flemington",
	State:       "VIC",
	MeetingDate: testDate,
	RaceType:    "Metro",
	Races:       []models.Race{},
}}

func newTestService(store Store, client Fetcher) *Service {
	return NewService(store, client, zap.NewNop())
}

func TestMeetingsWithCacheFreshHit(t *testing.T) {
	fetchedAt := time.Now().UTC().Add(-5 * time.Minute)
	store := &fakeStore{cached: &CachedMeetings{FetchedAt: fetchedAt, Data: testMeetings, Stale: false}}
	fetcher := &fakeFetcher{}

	res, err := newTestService(store, fetcher).MeetingsWithCache(context.Background(), testDate)
	if err != nil {
		t.Fatalf("MeetingsWithCache() error = %v", err)
	}
	if !res.Cached {
		t.Error("Cached = false, want true")
	}
	if res.Stale {
		t.Error("Stale = true, want false")
	}
	if !res.FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", res.FetchedAt, fetchedAt)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times, want 0", fetcher.calls)
	}
	if len(store.saved) != 0 {
		t.Errorf("store written %d times, want 0", len(store.saved))
	}
}

func TestMeetingsWithCacheRefreshOnMiss(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{meetings: testMeetings}

	svc := newTestService(store, fetcher)
	now := time.Date(2026, 2, 7, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	res, err := svc.MeetingsWithCache(context.Background(), testDate)
	if err != nil {
		t.Fatalf("MeetingsWithCache() error = %v", err)
	}
	if res.Cached {
		t.Error("Cached = true, want false")
	}
	if !res.FetchedAt.Equal(now) {
		t.Errorf("FetchedAt = %v, want %v", res.FetchedAt, now)
	}
	if len(store.saved) != 1 {
		t.Fatalf("store written %d times, want 1", len(store.saved))
	}
	if store.saved[0].date != testDate {
		t.Errorf("saved date = %q, want %q", store.saved[0].date, testDate)
	}
	if len(store.saved[0].meetings) != 1 || store.saved[0].meetings[0].MeetingID != "m1" {
		t.Errorf("saved meetings = %+v, want %+v", store.saved[0].meetings, testMeetings)
	}
}

func TestMeetingsWithCacheRefreshOnStale(t *testing.T) {
	fetchedAt := time.Now().UTC().Add(-2 * time.Hour)
	store := &fakeStore{cached: &CachedMeetings{FetchedAt: fetchedAt, Data: testMeetings, Stale: true}}
	fresh := []models.Meeting{{MeetingID: "m2", TrackName: "Randwick", State: "NSW", MeetingDate: testDate, Races: []models.Race{}}}
	fetcher := &fakeFetcher{meetings: fresh}

	res, err := newTestService(store, fetcher).MeetingsWithCache(context.Background(), testDate)
	if err != nil {
		t.Fatalf("MeetingsWithCache() error = %v", err)
	}
	if res.Cached {
		t.Error("Cached = true, want false")
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
	if len(store.saved) != 1 {
		t.Fatalf("store written %d times, want 1", len(store.saved))
	}
	if res.Data[0].MeetingID != "m2" {
		t.Errorf("Data[0].MeetingID = %q, want %q", res.Data[0].MeetingID, "m2")
	}
}

func TestMeetingsWithCacheStaleFallback(t *testing.T) {
	fetchedAt := time.Now().UTC().Add(-2 * time.Hour)
	store := &fakeStore{cached: &CachedMeetings{FetchedAt: fetchedAt, Data: testMeetings, Stale: true}}
	fetcher := &fakeFetcher{err: errors.New("API down")}

	res, err := newTestService(store, fetcher).MeetingsWithCache(context.Background(), testDate)
	if err != nil {
		t.Fatalf("MeetingsWithCache() error = %v", err)
	}
	if !res.Cached {
		t.Error("Cached = false, want true")
	}
	if !res.Stale {
		t.Error("Stale = false, want true")
	}
	if !res.FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want original %v", res.FetchedAt, fetchedAt)
	}
	if res.Data[0].MeetingID != "m1" {
		t.Errorf("Data[0].MeetingID = %q, want stale snapshot data", res.Data[0].MeetingID)
	}
	if len(store.saved) != 0 {
		t.Errorf("store written %d times, want 0", len(store.saved))
	}
}

func TestMeetingsWithCacheNoCacheHardFailure(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{err: errors.New("API down")}

	_, err := newTestService(store, fetcher).MeetingsWithCache(context.Background(), testDate)
	if err == nil {
		t.Fatal("MeetingsWithCache() error = nil, want error")
	}
	if err.Error() != "API down" {
		t.Errorf("error = %q, want %q", err.Error(), "API down")
	}
}

func TestMeetingsWithCacheEmptyUpstreamList(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{meetings: []models.Meeting{}}

	res, err := newTestService(store, fetcher).MeetingsWithCache(context.Background(), testDate)
	if err != nil {
		t.Fatalf("MeetingsWithCache() error = %v", err)
	}
	if res.Cached {
		t.Error("Cached = true, want false")
	}
	if len(res.Data) != 0 {
		t.Errorf("Data has %d meetings, want 0", len(res.Data))
	}
	if len(store.saved) != 1 {
		t.Errorf("store written %d times, want 1", len(store.saved))
	}
}

func TestMeetingsWithCacheStoreReadFailure(t *testing.T) {
	store := &fakeStore{getErr: errors.New("connection refused")}
	fetcher := &fakeFetcher{meetings: testMeetings}

	_, err := newTestService(store, fetcher).MeetingsWithCache(context.Background(), testDate)
	if err == nil {
		t.Fatal("MeetingsWithCache() error = nil, want error")
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times, want 0", fetcher.calls)
	}
}

func TestMeetingsWithCacheSaveFailure(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("connection refused")}
	fetcher := &fakeFetcher{meetings: testMeetings}

	_, err := newTestService(store, fetcher).MeetingsWithCache(context.Background(), testDate)
	if err == nil {
		t.Fatal("MeetingsWithCache() error = nil, want error")
	}
}
