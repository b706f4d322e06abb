// Package racing holds the snapshot store and the cache-aside layer that
// decides, per request, whether race cards come from the cache, a fresh
// upstream fetch, or a stale fallback.
package racing

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/padraicbc/racecards/models"
)

var cacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "racecards_cache_requests_total",
	Help: "Race-card cache lookups by outcome.",
}, []string{"outcome"})

func init() {
	prometheus.MustRegister(cacheRequests)
}

// Fetcher fetches the meetings list for a date from the upstream provider.
type Fetcher interface {
	FetchMeetings(ctx context.Context, date string) ([]models.Meeting, error)
}

// Store reads and upserts per-date meeting snapshots.
type Store interface {
	GetCachedMeetings(ctx context.Context, date string) (*CachedMeetings, error)
	SaveMeetingsCache(ctx context.Context, date string, meetings []models.Meeting) error
}

// Result is the outcome of a cached meetings lookup. Stale is only ever true
// together with Cached: it marks a degraded response served from an expired
// snapshot because upstream was unavailable.
type Result struct {
	Data      []models.Meeting
	Cached    bool
	FetchedAt time.Time
	Stale     bool
}

// Service implements the cache-aside policy over a Store and a Fetcher.
type Service struct {
	store  Store
	client Fetcher
	log    *zap.Logger
	now    func() time.Time
}

// NewService wires the orchestrator.
func NewService(store Store, client Fetcher, log *zap.Logger) *Service {
	return &Service{store: store, client: client, log: log, now: time.Now}
}

// MeetingsWithCache returns the meetings for date, deciding between cache,
// refresh, and stale fallback:
//
//  1. Fresh snapshot: returned as-is, no network I/O.
//  2. Missing or stale snapshot: one upstream fetch; on success the result
//     is persisted under the same date and returned.
//  3. Upstream failure with a stale snapshot on hand: the stale data is
//     returned flagged, keeping its original fetch instant.
//  4. Upstream failure with no snapshot: the error propagates unchanged.
//
// An empty upstream list is a valid success. Storage failures propagate.
func (s *Service) MeetingsWithCache(ctx context.Context, date string) (*Result, error) {
	cached, err := s.store.GetCachedMeetings(ctx, date)
	if err != nil {
		cacheRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	if cached != nil && !cached.Stale {
		cacheRequests.WithLabelValues("hit").Inc()
		return &Result{Data: cached.Data, Cached: true, FetchedAt: cached.FetchedAt}, nil
	}

	data, err := s.client.FetchMeetings(ctx, date)
	if err != nil {
		if cached != nil {
			s.log.Warn("upstream fetch failed, serving stale snapshot",
				zap.String("date", date),
				zap.Time("fetchedAt", cached.FetchedAt),
				zap.Error(err))
			cacheRequests.WithLabelValues("stale_fallback").Inc()
			return &Result{Data: cached.Data, Cached: true, FetchedAt: cached.FetchedAt, Stale: true}, nil
		}
		cacheRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	fetchedAt := s.now().UTC()
	if err := s.store.SaveMeetingsCache(ctx, date, data); err != nil {
		cacheRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	cacheRequests.WithLabelValues("refresh").Inc()
	s.log.Debug("snapshot refreshed", zap.String("date", date), zap.Int("meetings", len(data)))
	return &Result{Data: data, Cached: false, FetchedAt: fetchedAt}, nil
}
