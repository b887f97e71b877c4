package domain

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// PageLimit is the fixed number of events requested per query.
const PageLimit = 20

// Validate checks that the config can be turned into a feed query.
func (c QueryConfig) Validate() error {
	if !isNumeric(c.MinMagnitude) {
		return fmt.Errorf("%w: min magnitude %q is not a number", ErrInvalidConfig, c.MinMagnitude)
	}
	if !c.OrderBy.Valid() {
		return fmt.Errorf("%w: order by %q must be %q or %q", ErrInvalidConfig, c.OrderBy, OrderByTime, OrderByMagnitude)
	}
	return nil
}

// BuildQueryURL appends the feed query parameters to baseURL. Parameters
// already present on baseURL are kept unless they collide with the four the
// query sets.
func BuildQueryURL(baseURL string, cfg QueryConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: base url %q", ErrInvalidConfig, baseURL)
	}

	params := u.Query()
	params.Set("format", "geojson")
	params.Set("limit", strconv.Itoa(PageLimit))
	params.Set("minmag", cfg.MinMagnitude)
	params.Set("orderby", string(cfg.OrderBy))
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// isNumeric accepts plain decimal text such as "4.5", "-1" or "6". NaN and
// infinities parse as floats but are not magnitudes.
func isNumeric(s string) bool {
	if strings.TrimSpace(s) != s || s == "" {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
