// Package preferences reads the user's feed filters from key-value sources.
package preferences

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/couchcryptid/quake-feed-service/internal/domain"
)

// Preference keys.
const (
	KeyMinMagnitude = "min_magnitude"
	KeyOrderBy      = "order_by"
)

// Defaults mirror the settings screen defaults.
var Defaults = MapSource{
	KeyMinMagnitude: "6",
	KeyOrderBy:      string(domain.OrderByMagnitude),
}

// Source is a read-only string key-value store.
type Source interface {
	Lookup(key string) (string, bool)
}

// MapSource serves preferences from memory.
type MapSource map[string]string

func (m MapSource) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok && v != ""
}

// EnvSource maps preference keys to environment variables.
type EnvSource map[string]string

// DefaultEnv reads QUAKE_MIN_MAGNITUDE and QUAKE_ORDER_BY.
var DefaultEnv = EnvSource{
	KeyMinMagnitude: "QUAKE_MIN_MAGNITUDE",
	KeyOrderBy:      "QUAKE_ORDER_BY",
}

func (e EnvSource) Lookup(key string) (string, bool) {
	name, ok := e[key]
	if !ok {
		return "", false
	}
	v := os.Getenv(name)
	return v, v != ""
}

// LoadFile reads a flat TOML preference file. A missing file yields an empty
// source.
func LoadFile(path string) (MapSource, error) {
	var values map[string]any
	if _, err := toml.DecodeFile(path, &values); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return MapSource{}, nil
		}
		return nil, fmt.Errorf("read preferences %s: %w", path, err)
	}

	src := make(MapSource, len(values))
	for k, v := range values {
		switch v := v.(type) {
		case string:
			src[k] = v
		case int64, float64:
			src[k] = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("read preferences %s: %q must be a string or number", path, k)
		}
	}
	return src, nil
}

// Chain consults each source in order and returns the first value found.
type Chain []Source

func (c Chain) Lookup(key string) (string, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// QueryConfig reads the feed filters from src. Both keys must be present;
// callers wanting defaults append Defaults to the chain.
func QueryConfig(src Source) (domain.QueryConfig, error) {
	minMag, ok := src.Lookup(KeyMinMagnitude)
	if !ok {
		return domain.QueryConfig{}, fmt.Errorf("%w: %s is not set", domain.ErrInvalidConfig, KeyMinMagnitude)
	}
	orderBy, ok := src.Lookup(KeyOrderBy)
	if !ok {
		return domain.QueryConfig{}, fmt.Errorf("%w: %s is not set", domain.ErrInvalidConfig, KeyOrderBy)
	}

	cfg := domain.QueryConfig{MinMagnitude: minMag, OrderBy: domain.OrderBy(orderBy)}
	if err := cfg.Validate(); err != nil {
		return domain.QueryConfig{}, err
	}
	return cfg, nil
}
