package tasks

import (
	"testing"
	"time"
)

func TestTaskRetryAccounting(t *testing.T) {
	task := NewTask(TaskTypeExtractContent, "bookmarks")

	if task.ID == "" {
		t.Error("Expected a generated task ID")
	}
	if task.GetType() != TaskTypeExtractContent {
		t.Errorf("Unexpected task type: %s", task.GetType())
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i+1)
		}
		task.IncrementRetryCount()
	}
	if task.CanRetry() {
		t.Error("Expected retries to be exhausted")
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected %d retries, got %d", DefaultMaxRetries, task.GetRetryCount())
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypePruneSessions, "sessions")

	if task.GetDuration() != 0 {
		t.Error("Expected zero duration before the task starts")
	}

	task.Start()
	time.Sleep(time.Millisecond)
	if task.GetDuration() <= 0 {
		t.Error("Expected a positive duration after the task starts")
	}
}

func TestTaskIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		task := NewTask(TaskTypeExtractContent, "bookmarks")
		if seen[task.ID] {
			t.Fatalf("Duplicate task ID: %s", task.ID)
		}
		seen[task.ID] = true
	}
}
