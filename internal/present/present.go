// Package present formats earthquake events for list display.
package present

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/quake-feed-service/internal/domain"
)

// Messages shown in place of an empty list.
const (
	NoEarthquakesFound   = "No earthquakes found"
	NoInternetConnection = "No internet connection"
)

const (
	placeSeparator = " of "
	nearOffset     = "Near the"
)

// magnitudeColors is indexed by floored magnitude; 10 and above share the last entry.
var magnitudeColors = [...]string{
	"#4A7BA7", // 0–1
	"#4A7BA7",
	"#04B4B3",
	"#10CAC9",
	"#F5A623",
	"#FF7D50",
	"#FC6644",
	"#E75F40",
	"#E13A20",
	"#D93218",
	"#C03823", // 10+
}

// ListItem is one display row.
type ListItem struct {
	Magnitude string `json:"magnitude"`
	Color     string `json:"color"`
	Offset    string `json:"offset"`
	Primary   string `json:"primary"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	URL       string `json:"url"`
}

// Items formats events in order, rendering times in loc.
func Items(events []domain.EarthquakeEvent, loc *time.Location) []ListItem {
	items := make([]ListItem, len(events))
	for i, e := range events {
		offset, primary := SplitPlace(e.Place)
		t := e.Time().In(loc)
		items[i] = ListItem{
			Magnitude: FormatMagnitude(e.Magnitude),
			Color:     MagnitudeColor(e.Magnitude),
			Offset:    offset,
			Primary:   primary,
			Date:      FormatDate(t),
			Time:      FormatTime(t),
			URL:       e.DetailURL,
		}
	}
	return items
}

// SplitPlace splits "10km SW of Example" into "10km SW of" and "Example".
// Places without a relative offset get "Near the" as the offset.
func SplitPlace(place string) (offset, primary string) {
	i := strings.Index(place, placeSeparator)
	if i < 0 {
		return nearOffset, place
	}
	end := i + len(placeSeparator) - 1
	return place[:end], place[end+1:]
}

// MagnitudeColor returns the hex color for a magnitude bucket.
func MagnitudeColor(mag float64) string {
	bucket := int(math.Floor(mag))
	switch {
	case bucket < 0:
		bucket = 0
	case bucket >= len(magnitudeColors):
		bucket = len(magnitudeColors) - 1
	}
	return magnitudeColors[bucket]
}

// FormatMagnitude renders a magnitude with at most one decimal place. Ties
// round half to even, so 4.25 renders as "4.2".
func FormatMagnitude(mag float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(mag, 'f', 1, 64), ".0")
}

// FormatDate renders a date as "Jul 14, 2017".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatTime renders a time of day as "2:40 AM".
func FormatTime(t time.Time) string {
	return t.Format("3:04 PM")
}
