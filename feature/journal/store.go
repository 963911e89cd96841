package journal

import (
	"context"
	"errors"
	"fmt"

	"parquet-compactor/feature/compaction"

	"gorm.io/gorm"
)

// ErrRunNotFound is returned by GetRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// DefaultLimit caps ListRuns when no limit is given.
const DefaultLimit = 50

// Store persists run summaries with gorm.
type Store struct {
	db *gorm.DB
}

// NewStore creates a journal store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the journal tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&Run{}, &GroupRecord{}); err != nil {
		return fmt.Errorf("failed to migrate journal tables: %w", err)
	}
	return nil
}

// Record stores a run and its group outcomes.
func (s *Store) Record(ctx context.Context, summary *compaction.Summary) error {
	run := fromSummary(summary)
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", summary.RunID, err)
	}
	return nil
}

// Filter narrows ListRuns.
type Filter struct {
	Username string
	Database string
	Table    string
	Limit    int
}

// ListRuns returns the most recent runs first, without their groups.
func (s *Store) ListRuns(ctx context.Context, f Filter) ([]Run, error) {
	q := s.db.WithContext(ctx).Model(&Run{})
	if f.Username != "" {
		q = q.Where("username = ?", f.Username)
	}
	if f.Database != "" {
		q = q.Where("database_name = ?", f.Database)
	}
	if f.Table != "" {
		q = q.Where("table_name = ?", f.Table)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var runs []Run
	if err := q.Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run with its groups.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).Preload("Groups").Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return &run, nil
}
