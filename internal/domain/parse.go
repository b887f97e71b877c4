package domain

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseResult is the outcome of decoding one feed page.
type ParseResult struct {
	Events  []EarthquakeEvent
	Skipped int // features dropped as malformed or missing a timestamp
}

// featureCollection keeps each feature raw so one bad element cannot fail
// the whole document.
type featureCollection struct {
	Features []jsoniter.RawMessage `json:"features"`
}

type feature struct {
	Properties *properties `json:"properties"`
}

type properties struct {
	Mag   *float64 `json:"mag"`
	Place *string  `json:"place"`
	Time  *int64   `json:"time"`
	URL   *string  `json:"url"`
}

// ParseFeed decodes a GeoJSON feed body into events in feed order. It never
// fails: unreadable input yields an empty result and malformed features are
// counted in Skipped.
func ParseFeed(data []byte) ParseResult {
	var doc featureCollection
	if len(data) == 0 || json.Unmarshal(data, &doc) != nil {
		return ParseResult{Events: []EarthquakeEvent{}}
	}

	res := ParseResult{Events: make([]EarthquakeEvent, 0, len(doc.Features))}
	for _, raw := range doc.Features {
		event, ok := parseFeature(raw)
		if !ok {
			res.Skipped++
			continue
		}
		res.Events = append(res.Events, event)
	}
	return res
}

func parseFeature(raw jsoniter.RawMessage) (EarthquakeEvent, bool) {
	var f feature
	if err := json.Unmarshal(raw, &f); err != nil {
		return EarthquakeEvent{}, false
	}
	p := f.Properties
	if p == nil || p.Time == nil || *p.Time < 0 {
		return EarthquakeEvent{}, false
	}

	event := EarthquakeEvent{Timestamp: *p.Time}
	if p.Mag != nil {
		event.Magnitude = *p.Mag
	}
	if p.Place != nil {
		event.Place = *p.Place
	}
	if p.URL != nil {
		event.DetailURL = *p.URL
	}
	return event, true
}
