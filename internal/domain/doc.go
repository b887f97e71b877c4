// Package domain models the USGS earthquake event feed.
//
// # Data Source
//
// Events come from the USGS FDSN Event Web Service, queried at
// https://earthquake.usgs.gov/fdsnws/event/1/query. The service is asked for a
// single GeoJSON page of at most 20 events filtered by minimum magnitude and
// ordered either by time or by magnitude (both descending).
//
// # Feed Conventions
//
// Document shape:
//
//	{"type":"FeatureCollection","features":[{"properties":{...},"geometry":{...}}, ...]}
//
// Only four properties are read from each feature:
//
//	mag    number, may be null or negative for very small events → 0 when absent
//	place  relative location text, e.g. "10km SW of Example" → "" when absent
//	time   epoch milliseconds, UTC → the record is dropped when absent or negative
//	url    event detail page → "" when absent
//
// Place text is kept raw. Splitting it into an offset ("10km SW of") and a
// primary location ("Example") is a presentation concern handled by the
// present package.
//
// # Degradation
//
// Parsing never fails. An empty body, a non-object document or a document
// without "features" all yield zero events. Each feature is decoded on its own,
// so one malformed element is counted in [ParseResult.Skipped] and the rest of
// the page still parses. See [ParseFeed].
package domain
