package present

import (
	"testing"
	"time"

	"github.com/couchcryptid/quake-feed-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPlace(t *testing.T) {
	tests := []struct {
		place, offset, primary string
	}{
		{"10km SW of Example", "10km SW of", "Example"},
		{"74 km NW of Rumoi, Japan", "74 km NW of", "Rumoi, Japan"},
		{"Pacific-Antarctic Ridge", "Near the", "Pacific-Antarctic Ridge"},
		{"", "Near the", ""},
		{"3km E of Town of Salem", "3km E of", "Town of Salem"},
		{"Gulf ofAlaska", "Near the", "Gulf ofAlaska"},
	}

	for _, tt := range tests {
		t.Run(tt.place, func(t *testing.T) {
			offset, primary := SplitPlace(tt.place)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.primary, primary)
		})
	}
}

func TestMagnitudeColor(t *testing.T) {
	tests := []struct {
		mag  float64
		want string
	}{
		{-0.5, "#4A7BA7"},
		{0.2, "#4A7BA7"},
		{1.9, "#4A7BA7"},
		{2.0, "#04B4B3"},
		{3.3, "#10CAC9"},
		{4.99, "#F5A623"},
		{5.9, "#FF7D50"},
		{6.1, "#FC6644"},
		{7.0, "#E75F40"},
		{8.2, "#E13A20"},
		{9.5, "#D93218"},
		{10.0, "#C03823"},
		{12.4, "#C03823"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MagnitudeColor(tt.mag), "magnitude %v", tt.mag)
	}
}

func TestFormatMagnitude(t *testing.T) {
	assert.Equal(t, "5.9", FormatMagnitude(5.9))
	assert.Equal(t, "6", FormatMagnitude(6.0))
	assert.Equal(t, "4.6", FormatMagnitude(4.56))
	assert.Equal(t, "-0.8", FormatMagnitude(-0.8))
	assert.Equal(t, "4.2", FormatMagnitude(4.25))
	assert.Equal(t, "4.8", FormatMagnitude(4.75))
	assert.Equal(t, "10", FormatMagnitude(9.96))
}

func TestItems(t *testing.T) {
	events := []domain.EarthquakeEvent{
		{Magnitude: 5.9, Place: "10km SW of Example", Timestamp: 1500000000000, DetailURL: "http://x"},
		{Magnitude: 7.25, Place: "Fiji region", Timestamp: 1500050000000, DetailURL: "http://y"},
	}

	items := Items(events, time.UTC)

	require.Len(t, items, 2)
	assert.Equal(t, ListItem{
		Magnitude: "5.9",
		Color:     "#FF7D50",
		Offset:    "10km SW of",
		Primary:   "Example",
		Date:      "Jul 14, 2017",
		Time:      "2:40 AM",
		URL:       "http://x",
	}, items[0])
	assert.Equal(t, "Near the", items[1].Offset)
	assert.Equal(t, "Fiji region", items[1].Primary)
	assert.Equal(t, "4:33 PM", items[1].Time)
}

func TestItems_Location(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	items := Items([]domain.EarthquakeEvent{{Timestamp: 1500000000000}}, tokyo)

	require.Len(t, items, 1)
	assert.Equal(t, "Jul 14, 2017", items[0].Date)
	assert.Equal(t, "11:40 AM", items[0].Time)
}
