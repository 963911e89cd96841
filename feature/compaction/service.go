package compaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parquet-compactor/core/columnar"
	"parquet-compactor/core/storage"
	"parquet-compactor/core/workspace"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrBucketNotFound is returned when the configured bucket does not exist.
var ErrBucketNotFound = errors.New("bucket does not exist")

// Recorder persists run summaries.
type Recorder interface {
	Record(ctx context.Context, summary *Summary) error
}

// Service runs compactions: select, group, then compact, publish and reap each group.
type Service struct {
	client    storage.Client
	bucket    string
	cfg       Config
	logger    *zap.Logger
	selector  *Selector
	compactor *Compactor
	publisher *Publisher
	reaper    *Reaper
	recorder  Recorder
}

// NewService creates a compaction service over bucket.
func NewService(client storage.Client, bucket string, codec *columnar.Codec, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		client:    client,
		bucket:    bucket,
		cfg:       cfg,
		logger:    logger,
		selector:  NewSelector(client, bucket, cfg.Extension, logger),
		compactor: NewCompactor(client, bucket, codec, logger),
		publisher: NewPublisher(client, bucket, codec, logger),
		reaper:    NewReaper(client, bucket, logger),
	}
}

// SetRecorder attaches a journal. A nil recorder disables recording.
func (s *Service) SetRecorder(r Recorder) {
	s.recorder = r
}

// Run executes req. Malformed requests fail before the store is touched.
// Group failures never fail the run; inspect the summary for per-group outcomes.
func (s *Service) Run(ctx context.Context, req Request) (*Summary, error) {
	plan, err := req.Validate()
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:       uuid.NewString(),
		Namespace:   plan.Namespace,
		Granularity: plan.Granularity,
		StartDate:   plan.Window.Start.Format(DateLayout),
		EndDate:     plan.Window.End.Format(DateLayout),
		DryRun:      req.DryRun,
		Groups:      []GroupOutcome{},
		StartedAt:   time.Now().UTC(),
	}
	logg := s.logger.With(
		zap.String("run_id", summary.RunID),
		zap.String("table", plan.Namespace.String()),
		zap.String("granularity", string(plan.Granularity)),
	)

	groups, candidates, err := s.selectGroups(ctx, plan)
	if err != nil {
		return nil, err
	}
	summary.Candidates = candidates

	logg.Info("Selected merge groups",
		zap.Int("candidates", candidates),
		zap.Int("groups", len(groups)),
		zap.Bool("dry_run", req.DryRun),
	)

	switch {
	case req.DryRun:
		summary.Groups = s.planned(plan, groups)
	case len(groups) == 0:
		logg.Info("No files to merge")
	default:
		outcomes, err := s.processGroups(ctx, summary.RunID, plan, groups, logg)
		if err != nil {
			return nil, err
		}
		summary.Groups = outcomes
	}

	summary.FinishedAt = time.Now().UTC()
	s.record(ctx, summary, logg)

	logg.Info("Run finished",
		zap.Int("compacted", summary.Count(StatusCompacted)),
		zap.Int("published_not_reaped", summary.Count(StatusUnreaped)),
		zap.Int("failed", summary.Count(StatusFailed)),
		zap.Duration("duration", summary.Duration()),
	)

	return summary, nil
}

// selectGroups runs the Selector and Grouper to completion.
func (s *Service) selectGroups(ctx context.Context, plan Plan) ([]MergeGroup, int, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return nil, 0, fmt.Errorf("%w: %s", ErrBucketNotFound, s.bucket)
	}

	candidates, err := s.selector.Select(ctx, plan)
	if err != nil {
		return nil, 0, err
	}
	return Group(candidates, plan.Granularity), len(candidates), nil
}

func (s *Service) planned(plan Plan, groups []MergeGroup) []GroupOutcome {
	outcomes := make([]GroupOutcome, len(groups))
	for i, group := range groups {
		dest, _ := plan.Granularity.DestinationKey(plan.Namespace, group.Key)
		outcomes[i] = GroupOutcome{
			PartitionKey: group.Key,
			Destination:  dest,
			Sources:      group.Keys(),
			Status:       StatusPlanned,
		}
	}
	return outcomes
}

// processGroups handles groups in parallel. Each goroutine owns one outcome slot.
func (s *Service) processGroups(ctx context.Context, runID string, plan Plan, groups []MergeGroup, logg *zap.Logger) ([]GroupOutcome, error) {
	ws, err := workspace.New(s.cfg.WorkDir, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := ws.Close(); err != nil {
			logg.Warn("Failed to clean up workspace", zap.String("dir", ws.Root()), zap.Error(err))
		}
	}()

	limit := s.cfg.Concurrency
	if limit <= 0 {
		limit = 1
	}

	outcomes := make([]GroupOutcome, len(groups))
	var eg errgroup.Group
	eg.SetLimit(limit)
	for i, group := range groups {
		eg.Go(func() error {
			outcomes[i] = s.processGroup(ctx, ws, plan, group, logg)
			return nil
		})
	}
	_ = eg.Wait()

	return outcomes, nil
}

// processGroup runs compact -> publish -> reap strictly in order.
// Sources are deleted only after the publication succeeded.
func (s *Service) processGroup(ctx context.Context, ws *workspace.Workspace, plan Plan, group MergeGroup, logg *zap.Logger) GroupOutcome {
	outcome := GroupOutcome{
		PartitionKey: group.Key,
		Sources:      group.Keys(),
	}
	outcome.Destination, _ = plan.Granularity.DestinationKey(plan.Namespace, group.Key)

	l := logg.With(
		zap.String("partition_key", group.Key),
		zap.String("destination", outcome.Destination),
		zap.Int("sources", len(group.Members)),
	)
	defer func() {
		if err := ws.Remove(group.Key); err != nil {
			l.Warn("Failed to clean up group scratch files", zap.Error(err))
		}
	}()

	merged, err := s.compactor.Compact(ctx, ws, group)
	if err != nil {
		l.Error("Merge failed, sources kept", zap.Error(err))
		return outcome.fail(err)
	}
	defer merged.Release()

	pub, err := s.publisher.Publish(ctx, ws, plan, group, merged)
	if err != nil {
		l.Error("Publication failed, sources kept", zap.Error(err))
		return outcome.fail(err)
	}
	outcome.Rows = pub.Rows
	outcome.Bytes = pub.Size
	outcome.MergedExisting = pub.MergedExisting

	reaped, err := s.reaper.Reap(ctx, pub, group)
	if err != nil {
		l.Error("Reaper refused to run", zap.Error(err))
		outcome.Status = StatusUnreaped
		outcome.DeleteFailures = group.Keys()
		return outcome
	}

	if len(reaped.Failures) > 0 {
		l.Warn("Published but some sources were not deleted",
			zap.Strings("not_deleted", reaped.FailedKeys()),
		)
		outcome.Status = StatusUnreaped
		outcome.DeleteFailures = reaped.FailedKeys()
		outcome.Error = errors.Join(reaped.Failures...).Error()
		outcome.ErrorKind = KindDeleteFailed
		return outcome
	}

	l.Info("Group compacted", zap.Int64("rows", pub.Rows))
	outcome.Status = StatusCompacted
	return outcome
}

func (s *Service) record(ctx context.Context, summary *Summary, logg *zap.Logger) {
	if s.recorder == nil || summary.DryRun {
		return
	}
	if err := s.recorder.Record(ctx, summary); err != nil {
		logg.Warn("Failed to record run in journal", zap.Error(err))
	}
}
