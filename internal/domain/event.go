package domain

import "time"

// EarthquakeEvent is a single seismic event read from the feed.
type EarthquakeEvent struct {
	Magnitude float64 `json:"magnitude"`
	Place     string  `json:"place"`
	Timestamp int64   `json:"timestamp"` // epoch milliseconds, UTC
	DetailURL string  `json:"detail_url"`
}

// Time returns the event timestamp as a UTC time.
func (e EarthquakeEvent) Time() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}

// OrderBy is the feed sort order accepted by the query builder.
type OrderBy string

const (
	OrderByTime      OrderBy = "time"
	OrderByMagnitude OrderBy = "magnitude"
)

// Valid reports whether o is one of the supported sort orders.
func (o OrderBy) Valid() bool {
	switch o {
	case OrderByTime, OrderByMagnitude:
		return true
	default:
		return false
	}
}

// QueryConfig holds the user-facing feed filters. Both fields are required;
// defaults belong to whatever supplies the values.
type QueryConfig struct {
	MinMagnitude string  `json:"min_magnitude"`
	OrderBy      OrderBy `json:"order_by"`
}
