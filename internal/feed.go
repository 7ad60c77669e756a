package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
)

const (
	// feedTimeout bounds a single feed request so a hung server cannot
	// wedge the update loop indefinitely.
	feedTimeout = 4 * time.Second

	// AltitudeUnknown is the sentinel for aircraft without a transmitted altitude.
	AltitudeUnknown = -1
	// AltitudeGround is reported for aircraft on the ground.
	AltitudeGround = 0

	squawkDigits = 4
)

// Errors used by the feed layer.
var (
	ErrNonOkResponse     = errors.New("non-OK response")
	ErrEmptyResponseBody = errors.New("empty response body")
)

var feedClient = &http.Client{Timeout: feedTimeout}

// Report is one normalized aircraft record taken from a feed document.
// Unknown speed and track are NaN so they propagate as "no value" rather
// than as a bogus zero.
type Report struct {
	Flight      string
	Squawk      string
	Position    Coordinates
	GroundSpeed float64 // knots, NaN when not transmitted
	Track       float64 // degrees, NaN when not transmitted
	AltitudeFt  int     // feet, AltitudeUnknown when not transmitted, 0 = on ground
}

// feedResult mirrors the aircraft.json wrapper written by dump1090-style decoders.
type feedResult struct {
	Now      float64        `json:"now"`      // time this document was generated
	Aircraft []feedAircraft `json:"aircraft"` // list of aircraft records
}

// feedAircraft is the tolerant wire shape of a single aircraft entry.
// Optional fields are pointers so that "absent" is distinguishable from zero,
// and the two fields with inconsistent wire types are decoded as any:
// alt_baro is a number or the literal string "ground", squawk is a string or
// a bare integer depending on the decoder that produced the file.
type feedAircraft struct {
	Flight      string   `json:"flight"`
	Squawk      any      `json:"squawk"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	GroundSpeed *float64 `json:"gs"`
	Track       *float64 `json:"track"`
	AltBaro     any      `json:"alt_baro"`
}

// FetchFeed issues the HTTP GET against the aircraft feed and returns the raw
// response body.
func FetchFeed(url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), feedTimeout)
	defer cancel()

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if reqErr != nil {
		return nil, fmt.Errorf("fetchFeed: invalid request: %s : %w", url, reqErr)
	}

	resp, respErr := feedClient.Do(req)
	if respErr != nil {
		return nil, fmt.Errorf("fetchFeed: failed to send GET request: %s: %w", url, respErr)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetchFeed: %w %s", ErrNonOkResponse, resp.Status)
	}

	body, bodyErr := io.ReadAll(resp.Body)
	if bodyErr != nil {
		return nil, fmt.Errorf("fetchFeed: failed to read response body: %w", bodyErr)
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("fetchFeed: %w", ErrEmptyResponseBody)
	}

	return body, nil
}

// ParseFeed decodes an aircraft.json document into normalized reports.
// A malformed document is an error for the whole cycle; a malformed
// individual record (most commonly a missing position) is skipped silently.
func ParseFeed(body []byte) ([]Report, error) {
	var result feedResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parseFeed: failed to unmarshal feed document: %w", err)
	}

	reports := make([]Report, 0, len(result.Aircraft))
	for i := range result.Aircraft {
		if report, ok := result.Aircraft[i].toReport(); ok {
			reports = append(reports, report)
		}
	}

	return reports, nil
}

// toReport converts one wire record into a Report. Records without a position
// cannot be placed on the scope and are dropped.
func (a feedAircraft) toReport() (Report, bool) {
	if a.Lat == nil || a.Lon == nil {
		return Report{}, false
	}

	speed := math.NaN()
	if a.GroundSpeed != nil {
		speed = *a.GroundSpeed
	}

	track := math.NaN()
	if a.Track != nil {
		track = *a.Track
	}

	return Report{
		Flight:      strings.TrimSpace(a.Flight),
		Squawk:      normalizeSquawk(a.Squawk),
		Position:    NewCoordinates(*a.Lat, *a.Lon),
		GroundSpeed: speed,
		Track:       track,
		AltitudeFt:  normalizeAltitude(a.AltBaro),
	}, true
}

// normalizeSquawk renders the squawk as a 4-digit string. Some decoders emit
// it as a bare integer, which loses leading zeros.
func normalizeSquawk(raw any) string {
	switch value := raw.(type) {
	case string:
		return strings.TrimSpace(value)
	case float64:
		code := fmt.Sprintf("%d", int(value))
		for len(code) < squawkDigits {
			code = "0" + code
		}

		return code
	default:
		return ""
	}
}

// normalizeAltitude maps alt_baro onto feet, with "ground" meaning 0 and
// anything unparseable meaning unknown.
func normalizeAltitude(raw any) int {
	switch value := raw.(type) {
	case float64:
		return int(value)
	case string:
		if strings.EqualFold(strings.TrimSpace(value), "ground") {
			return AltitudeGround
		}

		return AltitudeUnknown
	default:
		return AltitudeUnknown
	}
}
