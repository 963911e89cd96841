package compaction

import (
	"time"
)

// Status is the final state of one merge group.
type Status string

const (
	// StatusPlanned: dry run, nothing was read or written.
	StatusPlanned Status = "planned"
	// StatusCompacted: published and every source deleted.
	StatusCompacted Status = "compacted"
	// StatusUnreaped: published but some sources are still present.
	// Their rows now exist twice; deleting them (or re-running) is safe.
	StatusUnreaped Status = "published_not_reaped"
	// StatusFailed: not published, sources untouched.
	StatusFailed Status = "failed"
)

// GroupOutcome reports what happened to one merge group.
type GroupOutcome struct {
	PartitionKey   string   `json:"partition_key"`
	Destination    string   `json:"destination"`
	Sources        []string `json:"sources"`
	Status         Status   `json:"status"`
	Rows           int64    `json:"rows"`
	Bytes          int64    `json:"bytes"`
	MergedExisting bool     `json:"merged_existing"`
	ErrorKind      Kind     `json:"error_kind,omitempty"`
	Error          string   `json:"error,omitempty"`
	DeleteFailures []string `json:"delete_failures,omitempty"`

	Err error `json:"-"`
}

func (o *GroupOutcome) fail(err error) GroupOutcome {
	o.Status = StatusFailed
	o.Err = err
	o.Error = err.Error()
	o.ErrorKind = KindOf(err)
	return *o
}

// Summary is the result of one run.
type Summary struct {
	RunID       string         `json:"run_id"`
	Namespace   Namespace      `json:"namespace"`
	Granularity Granularity    `json:"granularity"`
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	DryRun      bool           `json:"dry_run"`
	Candidates  int            `json:"candidates"`
	Groups      []GroupOutcome `json:"groups"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
}

// Count returns the number of groups in status.
func (s *Summary) Count(status Status) int {
	n := 0
	for _, g := range s.Groups {
		if g.Status == status {
			n++
		}
	}
	return n
}

// Succeeded reports whether every group was published and fully reaped.
// A run with no groups succeeds; so does a dry run.
func (s *Summary) Succeeded() bool {
	for _, g := range s.Groups {
		if g.Status != StatusCompacted && g.Status != StatusPlanned {
			return false
		}
	}
	return true
}

// Duration is the wall time of the run.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
