package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Snapshot is the cached set of meetings for one calendar date.
// One row per date; refreshes overwrite the row, nothing deletes it.
type Snapshot struct {
	bun.BaseModel `bun:"table:racing_snapshots,alias:rs"`

	Date      string    `bun:"date,pk" json:"date"`
	FetchedAt time.Time `bun:"fetched_at,notnull" json:"fetchedAt"`
	Data      []Meeting `bun:"data,type:jsonb" json:"data"`
}
