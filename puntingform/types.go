package puntingform

import "encoding/json"

// apiResponse is the envelope every Puntingform endpoint wraps its payload
// in. StatusCode carries the application-level result: it can signal a
// failure even inside an HTTP 200 response.
type apiResponse struct {
	StatusCode  int             `json:"statusCode"`
	Status      int             `json:"status"`
	Error       *string         `json:"error"`
	PayLoad     json.RawMessage `json:"payLoad"`
	ProcessTime float64         `json:"processTime"`
	TimeStamp   string          `json:"timeStamp"`
}

type track struct {
	Name     string  `json:"name"`
	TrackID  string  `json:"trackId"`
	Location string  `json:"location"`
	State    string  `json:"state"`
	Country  string  `json:"country"`
	Abbrev   string  `json:"abbrev"`
	Surface  *string `json:"surface"`
}

// meetingListItem is one entry of /v2/form/meetingslist. The list endpoint
// returns meeting summaries only; race detail is not part of this call.
type meetingListItem struct {
	MeetingID      string  `json:"meetingId"`
	Track          track   `json:"track"`
	MeetingDate    string  `json:"meetingDate"`
	TabMeeting     bool    `json:"tabMeeting"`
	RailPosition   string  `json:"railPosition"`
	Stage          string  `json:"stage"`
	IsBarrierTrial bool    `json:"isBarrierTrial"`
	IsJumps        bool    `json:"isJumps"`
	FormUpdated    *string `json:"formUpdated"`
	ResultsUpdated *string `json:"resultsUpdated"`
}
