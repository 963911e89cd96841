package journal

import (
	"strings"
	"time"

	"parquet-compactor/feature/compaction"
)

// Run is one executed compaction run.
type Run struct {
	ID          string        `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Username    string        `gorm:"column:username;type:varchar(255);index:idx_runs_table" json:"username"`
	Database    string        `gorm:"column:database_name;type:varchar(255);index:idx_runs_table" json:"database"`
	Table       string        `gorm:"column:table_name;type:varchar(255);index:idx_runs_table" json:"table"`
	Granularity string        `gorm:"column:granularity;type:varchar(8)" json:"granularity"`
	StartDate   string        `gorm:"column:start_date;type:varchar(10)" json:"start_date"`
	EndDate     string        `gorm:"column:end_date;type:varchar(10)" json:"end_date"`
	Candidates  int           `gorm:"column:candidates;default:0" json:"candidates"`
	Compacted   int           `gorm:"column:compacted;default:0" json:"compacted"`
	Unreaped    int           `gorm:"column:unreaped;default:0" json:"published_not_reaped"`
	Failed      int           `gorm:"column:failed;default:0" json:"failed"`
	Succeeded   bool          `gorm:"column:succeeded" json:"succeeded"`
	StartedAt   time.Time     `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt  time.Time     `gorm:"column:finished_at" json:"finished_at"`
	Groups      []GroupRecord `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"groups,omitempty"`
}

func (Run) TableName() string {
	return "compaction_runs"
}

// GroupRecord is the outcome of one merge group within a run.
type GroupRecord struct {
	ID             uint   `gorm:"primaryKey;column:id" json:"-"`
	RunID          string `gorm:"column:run_id;type:varchar(36);index" json:"-"`
	PartitionKey   string `gorm:"column:partition_key;type:varchar(16)" json:"partition_key"`
	Destination    string `gorm:"column:destination;type:varchar(1024)" json:"destination"`
	Status         string `gorm:"column:status;type:varchar(32)" json:"status"`
	Rows           int64  `gorm:"column:rows_written;default:0" json:"rows"`
	Bytes          int64  `gorm:"column:bytes_written;default:0" json:"bytes"`
	MergedExisting bool   `gorm:"column:merged_existing" json:"merged_existing"`
	Sources        string `gorm:"column:sources;type:text" json:"sources"`                 // newline separated
	ErrorKind      string `gorm:"column:error_kind;type:varchar(32)" json:"error_kind"`   // empty on success
	Error          string `gorm:"column:error;type:text" json:"error"`                     // empty on success
	DeleteFailures string `gorm:"column:delete_failures;type:text" json:"delete_failures"` // newline separated
}

func (GroupRecord) TableName() string {
	return "compaction_groups"
}

// fromSummary flattens a run summary into its journal rows.
func fromSummary(s *compaction.Summary) *Run {
	run := &Run{
		ID:          s.RunID,
		Username:    s.Namespace.Username,
		Database:    s.Namespace.Database,
		Table:       s.Namespace.Table,
		Granularity: string(s.Granularity),
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		Candidates:  s.Candidates,
		Compacted:   s.Count(compaction.StatusCompacted),
		Unreaped:    s.Count(compaction.StatusUnreaped),
		Failed:      s.Count(compaction.StatusFailed),
		Succeeded:   s.Succeeded(),
		StartedAt:   s.StartedAt,
		FinishedAt:  s.FinishedAt,
	}

	for _, g := range s.Groups {
		run.Groups = append(run.Groups, GroupRecord{
			RunID:          s.RunID,
			PartitionKey:   g.PartitionKey,
			Destination:    g.Destination,
			Status:         string(g.Status),
			Rows:           g.Rows,
			Bytes:          g.Bytes,
			MergedExisting: g.MergedExisting,
			Sources:        strings.Join(g.Sources, "\n"),
			ErrorKind:      string(g.ErrorKind),
			Error:          g.Error,
			DeleteFailures: strings.Join(g.DeleteFailures, "\n"),
		})
	}
	return run
}
