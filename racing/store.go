package racing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/racecards/models"
)

// TTL is how long a snapshot stays fresh after its fetch instant.
const TTL = time.Hour

// IsStale reports whether a snapshot fetched at fetchedAt is stale at now.
// The boundary is inclusive: a snapshot aged exactly TTL is stale.
func IsStale(fetchedAt, now time.Time) bool {
	return now.Sub(fetchedAt) >= TTL
}

// CachedMeetings is a stored snapshot plus its staleness at read time.
// Stale is recomputed on every read, never persisted.
type CachedMeetings struct {
	FetchedAt time.Time
	Data      []models.Meeting
	Stale     bool
}

// SnapshotStore persists one meetings snapshot per calendar date.
type SnapshotStore struct {
	db  *bun.DB
	now func() time.Time
}

// NewSnapshotStore creates a SnapshotStore over the given database.
func NewSnapshotStore(db *bun.DB) *SnapshotStore {
	return &SnapshotStore{db: db, now: time.Now}
}

// GetCachedMeetings returns the snapshot for date, or nil when none exists.
// Only genuine storage failures produce an error.
func (s *SnapshotStore) GetCachedMeetings(ctx context.Context, date string) (*CachedMeetings, error) {
	snap := &models.Snapshot{}
	err := s.db.NewSelect().Model(snap).Where("date = ?", date).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot for %s: %w", date, err)
	}

	return &CachedMeetings{
		FetchedAt: snap.FetchedAt,
		Data:      snap.Data,
		Stale:     IsStale(snap.FetchedAt, s.now()),
	}, nil
}

// SaveMeetingsCache upserts the snapshot for date, stamping fetched_at with
// the current instant. A single INSERT ... ON CONFLICT keeps concurrent
// refreshes last-write-wins at the row level.
func (s *SnapshotStore) SaveMeetingsCache(ctx context.Context, date string, meetings []models.Meeting) error {
	snap := &models.Snapshot{
		Date:      date,
		FetchedAt: s.now().UTC(),
		Data:      meetings,
	}

	_, err := s.db.NewInsert().Model(snap).
		On("CONFLICT (date) DO UPDATE SET fetched_at = EXCLUDED.fetched_at, data = EXCLUDED.data").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("saving snapshot for %s: %w", date, err)
	}
	return nil
}
