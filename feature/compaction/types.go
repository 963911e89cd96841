package compaction

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the format of run start and end dates.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidNamespace is returned when username, database or table is missing or malformed.
	ErrInvalidNamespace = errors.New("username, database and table are required and must not contain '/'")
	// ErrInvalidWindow is returned for unparsable or empty date ranges.
	ErrInvalidWindow = errors.New("invalid date range")
)

// Namespace identifies one table in the bucket.
type Namespace struct {
	Username string `json:"username"`
	Database string `json:"database"`
	Table    string `json:"table"`
}

// Prefix is the listing prefix holding every object of the table.
func (n Namespace) Prefix() string {
	return n.Username + "/" + n.Database + "/" + n.Table + "/"
}

// String implements fmt.Stringer.
func (n Namespace) String() string {
	return n.Username + "/" + n.Database + "/" + n.Table
}

// Validate checks that every component is present and is a single path segment.
func (n Namespace) Validate() error {
	for _, part := range []string{n.Username, n.Database, n.Table} {
		if strings.TrimSpace(part) == "" || strings.Contains(part, "/") || part == "." || part == ".." {
			return ErrInvalidNamespace
		}
	}
	return nil
}

// Window is an inclusive range of calendar days, in UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseWindow parses two YYYY-MM-DD dates. start must not be after end.
func ParseWindow(start, end string) (Window, error) {
	s, err := time.Parse(DateLayout, strings.TrimSpace(start))
	if err != nil {
		return Window{}, fmt.Errorf("%w: start date %q: expected YYYY-MM-DD", ErrInvalidWindow, start)
	}
	e, err := time.Parse(DateLayout, strings.TrimSpace(end))
	if err != nil {
		return Window{}, fmt.Errorf("%w: end date %q: expected YYYY-MM-DD", ErrInvalidWindow, end)
	}
	if s.After(e) {
		return Window{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidWindow, start, end)
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether the calendar day of t lies within the window.
func (w Window) Contains(t time.Time) bool {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(w.Start) && !day.After(w.End)
}

// Request carries the parameters of one compaction run.
type Request struct {
	Username    string `json:"username"`
	Database    string `json:"database"`
	Table       string `json:"table"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Granularity string `json:"granularity"`
	DryRun      bool   `json:"dry_run"`
}

// Plan is a validated Request.
type Plan struct {
	Namespace   Namespace
	Window      Window
	Granularity Granularity
}

// Validate checks the request without touching the store.
func (r Request) Validate() (Plan, error) {
	g, err := ParseGranularity(r.Granularity)
	if err != nil {
		return Plan{}, err
	}

	ns := Namespace{Username: r.Username, Database: r.Database, Table: r.Table}
	if err := ns.Validate(); err != nil {
		return Plan{}, err
	}

	w, err := ParseWindow(r.StartDate, r.EndDate)
	if err != nil {
		return Plan{}, err
	}

	return Plan{Namespace: ns, Window: w, Granularity: g}, nil
}

// IsConfigError reports whether err was caused by a malformed request.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidGranularity) || errors.Is(err, ErrInvalidNamespace) || errors.Is(err, ErrInvalidWindow)
}

// SourceObject is one object selected for compaction.
type SourceObject struct {
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
	// PartitionKey is set by the grouper.
	PartitionKey string `json:"partition_key,omitempty"`
}

// MergeGroup is the set of sources destined for one compacted object.
// Members are ordered by timestamp, then key; that order is the row append order.
type MergeGroup struct {
	Key     string         `json:"key"`
	Members []SourceObject `json:"members"`
}

// Keys returns the object keys of the group's members.
func (g MergeGroup) Keys() []string {
	keys := make([]string, len(g.Members))
	for i, m := range g.Members {
		keys[i] = m.Key
	}
	return keys
}
