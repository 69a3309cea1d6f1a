// Package scheduler is a durable deferred-work queue backed by the tasks
// table. It offers two primitives: enqueue for immediate execution and
// schedule for execution at an absolute timestamp. Rows survive restarts and
// are delivered at least once to the named handler, so handlers must
// tolerate re-application.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
)

// HandlerFunc executes one task's payload. A returned error triggers the
// retry policy; nil marks the task done.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) error

const (
	defaultPollInterval = 5 * time.Second
	defaultBatchSize    = 20
	defaultMaxAttempts  = 5
	// retryBackoff is multiplied by the attempt count for the next run
	retryBackoff = 30 * time.Second
	// lockLease is how long a claimed task may stay running before the
	// dispatcher assumes its process died and releases the row
	lockLease = 5 * time.Minute
)

// Client enqueues tasks and dispatches due ones to registered handlers.
type Client struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger

	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewClient creates a scheduler client bound to the given database.
func NewClient(db *database.DBinstanceStruct, log *zap.Logger) *Client {
	return &Client{
		DB:           db,
		Log:          log,
		PollInterval: defaultPollInterval,
		BatchSize:    defaultBatchSize,
		MaxAttempts:  defaultMaxAttempts,
		handlers:     make(map[string]HandlerFunc),
	}
}

// Register binds a handler name to its function. Registration must happen
// before Run; tasks for unknown handlers are retried until one appears.
func (c *Client) Register(name string, h HandlerFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[name] = h
}

func (c *Client) handler(name string) (HandlerFunc, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handlers[name]
	return h, ok
}

// Enqueue stores a task for immediate asynchronous execution.
func (c *Client) Enqueue(handler string, payload interface{}) error {
	return c.Schedule(handler, payload, time.Now().UTC())
}

// Schedule stores a task to run at the given absolute time.
func (c *Client) Schedule(handler string, payload interface{}, at time.Time) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "marshal payload for handler %s", handler)
	}
	task := model.Task{
		Handler:     handler,
		Payload:     raw,
		Status:      model.TaskStatusPending,
		RunAt:       at.UTC(),
		MaxAttempts: c.MaxAttempts,
	}
	if err := c.DB.Create(&task).Error; err != nil {
		return errors.Wrapf(err, "enqueue task for handler %s", handler)
	}
	c.Log.Info("task enqueued",
		zap.String("handler", handler),
		zap.Uint("task_id", task.ID),
		zap.Time("run_at", task.RunAt))
	return nil
}

// Run polls for due tasks until the context is cancelled. It is safe to run
// several dispatchers against the same table; claimed rows are skipped by
// competing transactions.
func (c *Client) Run(ctx context.Context) {
	c.Log.Info("task dispatcher started", zap.Duration("poll_interval", c.PollInterval))
	ticker := time.NewTicker(c.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Log.Info("task dispatcher stopped")
			return
		case <-ticker.C:
			c.releaseExpired()
			c.RunDue(ctx)
		}
	}
}

// RunDue claims and executes every task whose run time has passed.
// It returns the number of tasks executed.
func (c *Client) RunDue(ctx context.Context) int {
	total := 0
	for {
		tasks, err := c.claimBatch()
		if err != nil {
			c.Log.Error("failed to claim due tasks", zap.Error(err))
			return total
		}
		if len(tasks) == 0 {
			return total
		}
		for i := range tasks {
			c.execute(ctx, &tasks[i])
			total++
		}
	}
}

// claimBatch atomically moves a batch of due pending tasks to running.
func (c *Client) claimBatch() ([]model.Task, error) {
	var claimed []model.Task
	err := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ? AND run_at <= ?", model.TaskStatusPending, time.Now().UTC()).
			Order("run_at ASC").
			Limit(c.BatchSize).
			Find(&claimed).Error; err != nil {
			return err
		}
		if len(claimed) == 0 {
			return nil
		}
		ids := make([]uint, 0, len(claimed))
		for _, t := range claimed {
			ids = append(ids, t.ID)
		}
		now := time.Now().UTC()
		return tx.Model(&model.Task{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":    model.TaskStatusRunning,
				"locked_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (c *Client) execute(ctx context.Context, task *model.Task) {
	log := c.Log.With(zap.Uint("task_id", task.ID), zap.String("handler", task.Handler))

	h, ok := c.handler(task.Handler)
	if !ok {
		c.retry(task, fmt.Errorf("no handler registered for %q", task.Handler))
		log.Warn("no handler registered, task will be retried")
		return
	}

	if err := h(ctx, task.Payload); err != nil {
		log.Error("task handler failed", zap.Error(err), zap.Int("attempts", task.Attempts+1))
		c.retry(task, err)
		return
	}

	if err := c.DB.Model(task).Updates(map[string]interface{}{
		"status":    model.TaskStatusDone,
		"locked_at": nil,
	}).Error; err != nil {
		log.Error("failed to mark task done", zap.Error(err))
	}
	log.Info("task completed")
}

// retry reschedules a failed task with linear backoff, or parks it as failed
// once attempts are exhausted.
func (c *Client) retry(task *model.Task, cause error) {
	attempts := task.Attempts + 1
	msg := cause.Error()
	updates := map[string]interface{}{
		"attempts":   attempts,
		"last_error": msg,
		"locked_at":  nil,
	}
	if attempts >= task.MaxAttempts {
		updates["status"] = model.TaskStatusFailed
	} else {
		updates["status"] = model.TaskStatusPending
		updates["run_at"] = time.Now().UTC().Add(time.Duration(attempts) * retryBackoff)
	}
	if err := c.DB.Model(task).Updates(updates).Error; err != nil {
		c.Log.Error("failed to reschedule task",
			zap.Uint("task_id", task.ID), zap.Error(err))
	}
}

// releaseExpired returns tasks stuck in running back to pending once their
// lock lease expires, so a crashed dispatcher cannot strand work.
func (c *Client) releaseExpired() {
	cutoff := time.Now().UTC().Add(-lockLease)
	res := c.DB.Model(&model.Task{}).
		Where("status = ? AND locked_at < ?", model.TaskStatusRunning, cutoff).
		Updates(map[string]interface{}{
			"status":    model.TaskStatusPending,
			"locked_at": nil,
		})
	if res.Error != nil {
		c.Log.Error("failed to release expired tasks", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		c.Log.Warn("released expired running tasks", zap.Int64("count", res.RowsAffected))
	}
}
