package archive

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// RetentionConfig controls how long archived incidents are kept.
type RetentionConfig struct {
	// RetentionDays is the number of days to retain records.
	// 0 means keep records forever.
	RetentionDays int

	// MaxRecords is the maximum number of records to keep.
	// 0 means unlimited.
	MaxRecords int64

	// PruneSchedule is a cron expression for scheduled pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables the scheduler.
	PruneSchedule string
}

// DefaultRetentionConfig returns the default retention configuration.
func DefaultRetentionConfig() *RetentionConfig {
	return &RetentionConfig{
		RetentionDays: 90,
		MaxRecords:    0,
		PruneSchedule: "0 3 * * *",
	}
}

// Pruner enforces retention limits on archived incidents. Prune can be
// called directly for one-shot pruning; Start runs it on the configured
// cron schedule until the context is cancelled or Stop is called.
type Pruner struct {
	storage Storage
	config  *RetentionConfig
	logger  *slog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewPruner creates a retention pruner over the given storage backend.
func NewPruner(storage Storage, config *RetentionConfig, logger *slog.Logger) *Pruner {
	if config == nil {
		config = DefaultRetentionConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Pruner{
		storage: storage,
		config:  config,
		logger:  logger.With("component", "archive.retention"),
	}
}

// Prune deletes records older than the retention period or exceeding the
// max record count. Both limits can apply in the same run. Returns the
// total number of records deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age: %w", err)
		}
		totalDeleted += deleted
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count: %w", err)
		}
		totalDeleted += deleted
	}

	if totalDeleted > 0 {
		p.logger.Info("archive pruning completed",
			"total_deleted", totalDeleted,
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	} else {
		p.logger.Debug("no archive records pruned")
	}

	return totalDeleted, nil
}

func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)

	deleted, err := p.storage.Delete(ctx, &Query{EndTime: &cutoff})
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		p.logger.Info("pruned archive records by age",
			"deleted_count", deleted,
			"cutoff_time", cutoff,
		)
	}
	return deleted, nil
}

func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &Query{})
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	if count <= p.config.MaxRecords {
		return 0, nil
	}

	toDelete := count - p.config.MaxRecords

	// Query returns newest first, so skipping the records we keep yields
	// exactly the excess. Deleting by ID keeps records that share a
	// timestamp with the cutoff from being swept away too.
	excess, err := p.storage.Query(ctx, &Query{
		Limit:  int(toDelete),
		Offset: int(p.config.MaxRecords),
	})
	if err != nil {
		return 0, fmt.Errorf("query excess records: %w", err)
	}
	if len(excess) == 0 {
		return 0, nil
	}

	ids := make([]string, len(excess))
	for i, record := range excess {
		ids[i] = record.ID
	}

	deleted, err := p.storage.Delete(ctx, &Query{IDs: ids})
	if err != nil {
		return 0, err
	}

	p.logger.Info("pruned archive records by count",
		"deleted_count", deleted,
		"max_records", p.config.MaxRecords,
	)
	return deleted, nil
}

// Start begins scheduled pruning based on the configured cron expression.
// An empty schedule disables scheduling. The schedule stops when ctx is
// cancelled or Stop is called.
func (p *Pruner) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	schedule := p.config.PruneSchedule
	if schedule == "" {
		p.logger.Info("prune schedule not configured, skipping scheduler")
		return nil
	}
	if p.running {
		return fmt.Errorf("pruner already started")
	}

	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}

	p.cron = cron.New()
	if _, err := p.cron.AddFunc(schedule, func() {
		if _, err := p.Prune(ctx); err != nil {
			p.logger.Error("scheduled pruning failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule pruning: %w", err)
	}

	p.cron.Start()
	p.running = true

	p.logger.Info("archive retention scheduler started",
		"schedule", schedule,
		"retention_days", p.config.RetentionDays,
		"max_records", p.config.MaxRecords,
	)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

// Stop stops scheduled pruning and waits for a running job to finish.
func (p *Pruner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cron != nil && p.running {
		<-p.cron.Stop().Done()
		p.running = false
		p.logger.Info("archive retention scheduler stopped")
	}
}

// Running reports whether scheduled pruning is active.
func (p *Pruner) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// NextPruning returns the next scheduled pruning time, or nil when no
// schedule is active.
func (p *Pruner) NextPruning() *time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cron == nil {
		return nil
	}
	entries := p.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
