package models

import "time"

// StateOther groups meetings whose track has no state code.
const StateOther = "Other"

// Meeting is one race-day event at one venue, as served by /api/race-cards.
// Field names follow the Puntingform camelCase wire shape.
type Meeting struct {
	MeetingID   string `json:"meetingId"`
	TrackName   string `json:"trackName"`
	State       string `json:"state"`
	MeetingDate string `json:"meetingDate"`
	RaceType    string `json:"raceType"`
	Races       []Race `json:"races"`
}

// Race is a single race within a meeting. RaceNumber is 1-based and
// defines running order.
type Race struct {
	RaceID         string    `json:"raceId"`
	RaceNumber     int       `json:"raceNumber"`
	RaceName       string    `json:"raceName"`
	RaceTime       time.Time `json:"raceTime"`
	Distance       int       `json:"distance"`
	RaceType       string    `json:"raceType"`
	TrackCondition *string   `json:"trackCondition,omitempty"`
	Runners        []Runner  `json:"runners"`
}

// Runner is a competing entrant in a race, with optional market data.
type Runner struct {
	RunnerID   string    `json:"runnerId"`
	RunnerName string    `json:"runnerName"`
	Barrier    int       `json:"barrier"`
	Jockey     string    `json:"jockey"`
	Trainer    string    `json:"trainer"`
	Weight     float64   `json:"weight"`
	FixedOdds  *float64  `json:"fixedOdds,omitempty"`
	Flucs      []float64 `json:"flucs,omitempty"`
	Form       *string   `json:"form,omitempty"`
	SilkURL    *string   `json:"silkUrl,omitempty"`
}
