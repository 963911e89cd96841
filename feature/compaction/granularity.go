package compaction

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"parquet-compactor/core/columnar"
)

// Granularity is the width of the time bucket a compaction run rolls sources up into.
type Granularity string

const (
	// Hour merges minute-stamped sources into one object per hour.
	Hour Granularity = "hour"
	// Day merges hour-stamped sources into one object per day.
	Day Granularity = "day"
	// Month merges day-stamped sources into one object per month.
	Month Granularity = "month"
	// Year merges month-stamped sources into one object per year.
	Year Granularity = "year"
)

// ErrInvalidGranularity is returned for anything other than hour, day, month or year.
var ErrInvalidGranularity = errors.New("granularity should be one of hour, day, month, year")

// Granularities lists the supported values in increasing width.
var Granularities = []Granularity{Hour, Day, Month, Year}

// ParseGranularity validates s and returns the matching Granularity.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case Hour, Day, Month, Year:
		return g, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidGranularity, s)
}

// SourceLayout is the time layout embedded in the names of the objects this granularity consumes.
// Each granularity reads objects stamped exactly one level finer than itself.
func (g Granularity) SourceLayout() string {
	switch g {
	case Hour:
		return "2006-01-02_15-04"
	case Day:
		return "2006-01-02_15"
	case Month:
		return "2006-01-02"
	case Year:
		return "2006-01"
	}
	return ""
}

// KeyLayout is the time layout of partition keys (and compacted object names) at this granularity.
func (g Granularity) KeyLayout() string {
	switch g {
	case Hour:
		return "2006-01-02_15"
	case Day:
		return "2006-01-02"
	case Month:
		return "2006-01"
	case Year:
		return "2006"
	}
	return ""
}

// PartitionKey truncates t to the granularity and formats it as a partition key.
func (g Granularity) PartitionKey(t time.Time) string {
	return t.UTC().Format(g.KeyLayout())
}

// DestinationKey returns the object key a merge group with partitionKey is published to:
//
//	hour:  {user}/{db}/{table}/{YYYY}/{MM}/{DD}/{table}_{YYYY-MM-DD_HH}.parquet
//	day:   {user}/{db}/{table}/{YYYY}/{MM}/{table}_{YYYY-MM-DD}.parquet
//	month: {user}/{db}/{table}/{YYYY}/{table}_{YYYY-MM}.parquet
//	year:  {user}/{db}/{table}/{table}_{YYYY}.parquet
func (g Granularity) DestinationKey(ns Namespace, partitionKey string) (string, error) {
	layout := g.KeyLayout()
	if layout == "" {
		return "", fmt.Errorf("%w: got %q", ErrInvalidGranularity, string(g))
	}
	t, err := time.Parse(layout, partitionKey)
	if err != nil {
		return "", fmt.Errorf("invalid %s partition key %q", g, partitionKey)
	}

	parts := []string{ns.Username, ns.Database, ns.Table}
	switch g {
	case Hour:
		parts = append(parts, t.Format("2006"), t.Format("01"), t.Format("02"))
	case Day:
		parts = append(parts, t.Format("2006"), t.Format("01"))
	case Month:
		parts = append(parts, t.Format("2006"))
	}
	parts = append(parts, ObjectName(ns.Table, partitionKey, columnar.Extension))

	return path.Join(parts...), nil
}

// ObjectName builds "{table}_{stamp}{ext}".
func ObjectName(table, stamp, ext string) string {
	return table + "_" + stamp + ext
}

// ParseSourceName extracts the timestamp embedded in an object key named
// "{table}_{stamp}{ext}", where stamp must match g's source layout completely.
// Only the base name of key is considered, so objects in nested directories qualify.
func ParseSourceName(key, table, ext string, g Granularity) (time.Time, bool) {
	name := path.Base(key)
	prefix := table + "_"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
		return time.Time{}, false
	}

	stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext)
	if stamp == "" || g.SourceLayout() == "" {
		return time.Time{}, false
	}

	ts, err := time.Parse(g.SourceLayout(), stamp)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
