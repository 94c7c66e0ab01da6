package tasks

import (
	"context"
	"errors"
	"testing"
	"time"
)

type failingTask struct {
	Task
}

func (t *failingTask) Execute(ctx context.Context) error {
	return errors.New("boom")
}

func TestScheduler_StopWaitsForPendingRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		interval:  time.Hour,
		ctx:       ctx,
		cancel:    cancel,
		taskQueue: make(chan TaskInterface, 1),
	}

	task := &failingTask{Task: NewTask(TaskTypeSyncCalendar)}
	s.executeTask(0, task)

	// The failed task has a retry goroutine pending. Stop must wait for
	// it before closing the queue; a send on the closed channel would
	// panic here.
	s.Stop()

	if _, ok := <-s.taskQueue; ok {
		t.Errorf("Expected no task to be re-enqueued after Stop")
	}
	if task.GetRetryCount() != 1 {
		t.Errorf("Expected 1 retry attempt to be recorded, got %d", task.GetRetryCount())
	}
}
