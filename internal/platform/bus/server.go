package bus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// HandlerFunc processes one request payload and returns the result value.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Server pops requests for one service and dispatches them to registered
// handlers. Handlers for a service are registered once before Run.
type Server struct {
	rdb      *redis.Client
	service  string
	logger   *slog.Logger
	handlers map[string]HandlerFunc
	replyTTL time.Duration
}

// NewServer constructs a server for the named service.
func NewServer(rdb *redis.Client, service string, logger *slog.Logger) *Server {
	return &Server{
		rdb:      rdb,
		service:  service,
		logger:   logger,
		handlers: make(map[string]HandlerFunc),
		replyTTL: time.Minute,
	}
}

// Handle registers the handler for an operation name.
func (s *Server) Handle(op string, fn HandlerFunc) {
	s.handlers[op] = fn
}

// Run consumes requests until context cancellation. Each request is served
// on its own goroutine so a slow hash does not head-of-line block the
// channel.
func (s *Server) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		popped, err := s.rdb.BRPop(ctx, time.Second, requestKey(s.service)).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if s.logger != nil {
				s.logger.Warn("bus receive", slog.Any("error", err))
			}
			time.Sleep(time.Second)
			continue
		}
		var env envelope
		if err := json.Unmarshal([]byte(popped[1]), &env); err != nil {
			if s.logger != nil {
				s.logger.Warn("bus decode request", slog.Any("error", err))
			}
			continue
		}
		go s.dispatch(ctx, env)
	}
}

func (s *Server) dispatch(ctx context.Context, env envelope) {
	rep := reply{ID: env.ID}
	if fn, ok := s.handlers[env.Op]; ok {
		result, err := fn(ctx, env.Payload)
		if err != nil {
			rep.Err = err.Error()
		} else if data, err := json.Marshal(result); err != nil {
			rep.Err = "encode result: " + err.Error()
		} else {
			rep.Result = data
		}
	} else {
		rep.Err = "unknown operation: " + env.Op
	}

	data, err := json.Marshal(rep)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("bus encode reply", slog.String("op", env.Op), slog.Any("error", err))
		}
		return
	}
	key := replyKey(s.service, env.ID)
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.Expire(ctx, key, s.replyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		if s.logger != nil {
			s.logger.Error("bus send reply", slog.String("op", env.Op), slog.Any("error", err))
		}
	}
}
