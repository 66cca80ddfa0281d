package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskTypeConvertFeed TaskType = "convert_feed"
	TaskTypeScrapeFeed  TaskType = "scrape_feed"
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetFeedURL() string
	Start()
	GetDuration() time.Duration
}

type Task struct {
	ID        string
	Type      TaskType
	FeedURL   string
	StartedAt *time.Time
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) GetFeedURL() string {
	return t.FeedURL
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, feedURL string) Task {
	return Task{
		ID:      uuid.NewString(),
		Type:    taskType,
		FeedURL: feedURL,
	}
}

// Run starts task and executes it. Tasks never retry.
func Run(ctx context.Context, task TaskInterface) error {
	task.Start()
	return task.Execute(ctx)
}
