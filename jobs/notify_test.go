package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundlift/fundlift/internal/notifications"
)

func TestNotifyJobDeliversNotification(t *testing.T) {
	svc := notifications.NewService(notifications.NewMemoryStore())
	job := NewNotifyJob(notifications.NewClient(svc, nil), nil)

	task, err := NewNotifyDeliverTask(NotifyDeliverPayload{
		UserID:  "42",
		Title:   "Welcome to Fundlift",
		Message: "Hi Grace, your account is ready.",
		Type:    string(notifications.TypeSuccess),
	})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	list, err := svc.ForUser(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Welcome to Fundlift", list[0].Title)
	assert.Equal(t, notifications.TypeSuccess, list[0].Type)
	assert.False(t, list[0].Read)
}

// The queued welcome must carry the same message the in-process path
// writes, and land in the store the worker serves.
func TestWelcomeTaskDeliversThroughWorkerStore(t *testing.T) {
	svc := notifications.NewService(notifications.NewMemoryStore())
	job := NewNotifyJob(notifications.NewClient(svc, nil), nil)

	task, err := newWelcomeTask(42, "Grace")
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	want := notifications.WelcomeInput("42", "Grace")
	list, err := svc.ForUser(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, want.Title, list[0].Title)
	assert.Equal(t, want.Message, list[0].Message)
	assert.Equal(t, want.Type, list[0].Type)
}

func TestNotifyJobSkipsMalformedPayload(t *testing.T) {
	svc := notifications.NewService(notifications.NewMemoryStore())
	job := NewNotifyJob(notifications.NewClient(svc, nil), nil)

	task := asynq.NewTask(TaskNotifyDeliver, []byte("not json"))
	err := job.Handle(context.Background(), task)
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	list, err := svc.ForUser(context.Background(), "42")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotifyJobRetriesOnMissingAddressee(t *testing.T) {
	svc := notifications.NewService(notifications.NewMemoryStore())
	job := NewNotifyJob(notifications.NewClient(svc, nil), nil)

	task, err := NewNotifyDeliverTask(NotifyDeliverPayload{Title: "no user id"})
	require.NoError(t, err)

	err = job.Handle(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}
