package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mcportal/agenda-sync/app/calendar"
	"github.com/mcportal/agenda-sync/app/cfg"
	"github.com/mcportal/agenda-sync/app/database"
	"github.com/mcportal/agenda-sync/app/event"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	client       *calendar.Client
	classifier   *event.Classifier
	matcher      *event.UnitMatcher
	assembler    *event.Assembler
	reconciler   *event.Reconciler
	snapshot     *event.Snapshot
	eventRepo    database.EventRepository
	interval     time.Duration
	workerCount  int
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	taskQueue    chan TaskInterface
	syncInFlight atomic.Bool
}

func NewScheduler(client *calendar.Client, classifier *event.Classifier,
	matcher *event.UnitMatcher, assembler *event.Assembler, reconciler *event.Reconciler,
	snapshot *event.Snapshot, eventRepo database.EventRepository) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		client:      client,
		classifier:  classifier,
		matcher:     matcher,
		assembler:   assembler,
		reconciler:  reconciler,
		snapshot:    snapshot,
		eventRepo:   eventRepo,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 100),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueSyncTask()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueSyncTask()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// TriggerSync enqueues an immediate sync cycle. The in-flight guard in
// the task makes a trigger during a running cycle a no-op.
func (s *Scheduler) TriggerSync() error {
	return s.EnqueueTask(s.newSyncTask())
}

func (s *Scheduler) enqueueSyncTask() {
	if err := s.EnqueueTask(s.newSyncTask()); err != nil {
		slog.Warn("Failed to enqueue SyncCalendarTask", "error", err)
	}
}

func (s *Scheduler) newSyncTask() *SyncCalendarTask {
	return NewSyncCalendarTask(s.client, s.classifier, s.matcher, s.assembler,
		s.reconciler, s.snapshot, s.eventRepo, &s.syncInFlight)
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			// Retry goroutines join the WaitGroup so Stop cannot close
			// the queue while a re-enqueue is still pending.
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()

				select {
				case <-time.After(retryDelay):
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				}

				if retryErr := s.EnqueueTask(task); retryErr != nil {
					slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
