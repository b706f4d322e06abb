// Package puntingform talks to the Puntingform racing-data API and maps its
// wire shape onto the internal models. It does no caching and no retries;
// refresh policy lives with the caller.
package puntingform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/padraicbc/racecards/config"
	"github.com/padraicbc/racecards/models"
)

const defaultBaseURL = "https://api.puntingform.com.au"

var upstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "puntingform_requests_total",
	Help: "Puntingform API requests by outcome.",
}, []string{"outcome"})

func init() {
	prometheus.MustRegister(upstreamRequests)
}

// APIError is a failed Puntingform call: either a non-2xx HTTP response
// (StatusCode is the HTTP status) or an application-level failure signalled
// inside the response envelope (StatusCode is the envelope's statusCode).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// Client is a Puntingform API client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a Client from config. The API key is required; failing
// here keeps a misconfigured deploy from ever reaching the network.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.PuntingformAPIKey == "" {
		return nil, errors.New("puntingform: PUNTINGFORM_API_KEY must be set")
	}

	base := cfg.PuntingformBaseURL
	if base == "" {
		base = defaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimSuffix(base, "/"),
		apiKey:  cfg.PuntingformAPIKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// FetchMeetings fetches the meetings list for the given ISO date. An empty
// date means the current UTC date. Race detail is not part of this call, so
// every meeting comes back with an empty race list.
func (c *Client) FetchMeetings(ctx context.Context, date string) ([]models.Meeting, error) {
	if date == "" {
		date = time.Now().UTC().Format(time.DateOnly)
	}

	var items []meetingListItem
	if err := c.get(ctx, "/v2/form/meetingslist", url.Values{"meetingDate": {date}}, &items); err != nil {
		return nil, err
	}

	meetings := make([]models.Meeting, len(items))
	for i, item := range items {
		state := item.Track.State
		if state == "" {
			state = models.StateOther
		}
		meetings[i] = models.Meeting{
			MeetingID:   item.MeetingID,
			TrackName:   item.Track.Name,
			State:       state,
			MeetingDate: item.MeetingDate,
			RaceType:    item.Track.Location,
			Races:       []models.Race{},
		}
	}
	return meetings, nil
}

// get issues one GET and decodes the payload out of the response envelope.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		upstreamRequests.WithLabelValues("transport_error").Inc()
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		upstreamRequests.WithLabelValues("http_error").Inc()
		return &APIError{
			StatusCode: res.StatusCode,
			Message:    fmt.Sprintf("puntingform API error: %d %s", res.StatusCode, http.StatusText(res.StatusCode)),
		}
	}

	var envelope apiResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		upstreamRequests.WithLabelValues("decode_error").Inc()
		return fmt.Errorf("decoding puntingform response: %w", err)
	}

	if envelope.StatusCode != http.StatusOK {
		upstreamRequests.WithLabelValues("api_error").Inc()
		msg := fmt.Sprintf("puntingform API error: status %d", envelope.StatusCode)
		if envelope.Error != nil && *envelope.Error != "" {
			msg = *envelope.Error
		}
		return &APIError{StatusCode: envelope.StatusCode, Message: msg}
	}

	upstreamRequests.WithLabelValues("ok").Inc()
	return json.Unmarshal(envelope.PayLoad, out)
}
