package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/hibiken/asynq"

	"github.com/fundlift/fundlift/internal/notifications"
)

// TaskNotifyDeliver is the task type for delivering a user notification.
const TaskNotifyDeliver = "notify:deliver"

// NotifyDeliverPayload describes the notification to deliver.
type NotifyDeliverPayload struct {
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	ActionURL string `json:"actionUrl,omitempty"`
}

// NewNotifyDeliverTask constructs an Asynq task.
func NewNotifyDeliverTask(payload NotifyDeliverPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotifyDeliver, data), nil
}

// NotifyJob stores delivered notifications through the notifications client.
type NotifyJob struct {
	client *notifications.Client
	logger *slog.Logger
}

// NewNotifyJob constructs a NotifyJob.
func NewNotifyJob(client *notifications.Client, logger *slog.Logger) *NotifyJob {
	return &NotifyJob{client: client, logger: logger}
}

// Handle processes TaskNotifyDeliver tasks.
func (j *NotifyJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload NotifyDeliverPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	_, err := j.client.Create(ctx, notifications.CreateInput{
		UserID:    payload.UserID,
		Title:     payload.Title,
		Message:   payload.Message,
		Type:      notifications.Type(payload.Type),
		ActionURL: payload.ActionURL,
	})
	if err != nil {
		if j.logger != nil {
			j.logger.Warn("deliver notification", slog.String("user_id", payload.UserID), slog.Any("error", err))
		}
		return err
	}
	return nil
}

// WelcomeNotifier enqueues the post-signup welcome notification for the
// worker to deliver. Use it only when the worker also serves the
// notifications bus: the worker stores what it delivers, so reads must go
// to the worker too or the notification is never visible.
type WelcomeNotifier struct {
	client *Client
}

// NewWelcomeNotifier constructs a WelcomeNotifier.
func NewWelcomeNotifier(client *Client) *WelcomeNotifier {
	return &WelcomeNotifier{client: client}
}

func newWelcomeTask(userID int64, name string) (*asynq.Task, error) {
	input := notifications.WelcomeInput(strconv.FormatInt(userID, 10), name)
	return NewNotifyDeliverTask(NotifyDeliverPayload{
		UserID:    input.UserID,
		Title:     input.Title,
		Message:   input.Message,
		Type:      string(input.Type),
		ActionURL: input.ActionURL,
	})
}

// Welcome enqueues a welcome notification for a fresh account.
func (n *WelcomeNotifier) Welcome(ctx context.Context, userID int64, name string) error {
	task, err := newWelcomeTask(userID, name)
	if err != nil {
		return err
	}
	_, err = n.client.Enqueue(ctx, task, asynq.Queue(QueueDefault), asynq.MaxRetry(3))
	return err
}
