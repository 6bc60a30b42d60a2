package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Client issues calls to a remote service over the channel. The channel is
// established once at startup and shared read-only by all callers.
type Client struct {
	rdb     *redis.Client
	service string
	timeout time.Duration
}

// NewClient constructs a client for the named service.
func NewClient(rdb *redis.Client, service string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{rdb: rdb, service: service, timeout: timeout}
}

// Call sends one request and awaits its correlated reply. The payload is
// JSON-encoded; the remote's result is decoded into result when non-nil.
// Exceeding the timeout fails this call only.
func (c *Client) Call(ctx context.Context, op string, payload any, result any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("bus: encode %s payload: %w", op, err)
	}
	env := envelope{ID: uuid.NewString(), Op: op, Payload: raw}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("bus: encode %s envelope: %w", op, err)
	}

	if err := c.rdb.LPush(ctx, requestKey(c.service), data).Err(); err != nil {
		return fmt.Errorf("%w: send %s: %v", ErrChannel, op, err)
	}

	popped, err := c.rdb.BRPop(ctx, c.timeout, replyKey(c.service, env.ID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: %s", ErrTimeout, op)
		}
		return fmt.Errorf("%w: await %s: %v", ErrChannel, op, err)
	}
	// BRPop returns [key, value].
	var rep reply
	if err := json.Unmarshal([]byte(popped[1]), &rep); err != nil {
		return fmt.Errorf("bus: decode %s reply: %w", op, err)
	}
	if rep.Err != "" {
		return &RemoteError{Op: op, Message: rep.Err}
	}
	if result != nil {
		if err := json.Unmarshal(rep.Result, result); err != nil {
			return fmt.Errorf("bus: decode %s result: %w", op, err)
		}
	}
	return nil
}
