package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newChannel(t *testing.T) (*redis.Client, *Client, *Server) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	client := NewClient(rdb, "testsvc", 2*time.Second)
	server := NewServer(rdb, "testsvc", nil)
	return rdb, client, server
}

func runServer(t *testing.T, server *Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = server.Run(ctx) }()
}

func TestCallRoundTrip(t *testing.T) {
	_, client, server := newChannel(t)
	server.Handle("echo", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var in string
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, err
		}
		return strings.ToUpper(in), nil
	})
	runServer(t, server)

	var out string
	if err := client.Call(context.Background(), "echo", "hello", &out); err != nil {
		t.Fatalf("call: %v", err)
	}
	if out != "HELLO" {
		t.Fatalf("unexpected result: %q", out)
	}
}

func TestCallSurfacesRemoteError(t *testing.T) {
	_, client, server := newChannel(t)
	server.Handle("boom", func(ctx context.Context, payload json.RawMessage) (any, error) {
		return nil, fmt.Errorf("kaput")
	})
	runServer(t, server)

	err := client.Call(context.Background(), "boom", nil, nil)
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.Message != "kaput" || remote.Op != "boom" {
		t.Fatalf("unexpected remote error: %+v", remote)
	}
}

func TestCallUnknownOperation(t *testing.T) {
	_, client, server := newChannel(t)
	runServer(t, server)

	err := client.Call(context.Background(), "nope", nil, nil)
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if !strings.Contains(remote.Message, "unknown operation") {
		t.Fatalf("unexpected message: %q", remote.Message)
	}
}

func TestCallTimesOutWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	client := NewClient(rdb, "testsvc", 100*time.Millisecond)

	err := client.Call(context.Background(), "echo", "hello", nil)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestConcurrentCallsCorrelate(t *testing.T) {
	_, client, server := newChannel(t)
	server.Handle("double", func(ctx context.Context, payload json.RawMessage) (any, error) {
		var n int
		if err := json.Unmarshal(payload, &n); err != nil {
			return nil, err
		}
		return n * 2, nil
	})
	runServer(t, server)

	errCh := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func(n int) {
			var out int
			if err := client.Call(context.Background(), "double", n, &out); err != nil {
				errCh <- err
				return
			}
			if out != n*2 {
				errCh <- fmt.Errorf("call %d: got %d", n, out)
				return
			}
			errCh <- nil
		}(i)
	}
	for i := 0; i < 10; i++ {
		if err := <-errCh; err != nil {
			t.Fatalf("concurrent call: %v", err)
		}
	}
}
