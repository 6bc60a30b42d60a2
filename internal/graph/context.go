// Package graph carries the request context shape used by graph-query
// executors. Resolvers run with a RequestContext installed alongside the
// plain request context, so authorization can see the same principal no
// matter which entry point produced the call.
package graph

import (
	"context"

	"github.com/fundlift/fundlift/internal/shared"
)

// RequestContext describes a single graph operation in flight.
type RequestContext struct {
	Operation string
	Args      map[string]any
	Principal *shared.Principal
}

type requestContextKey struct{}

// WithRequestContext stores the graph request context in ctx.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// FromContext extracts the graph request context, nil when the call did not
// come through a graph executor.
func FromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc
}

// Arg returns the named operation argument as a string, empty when absent.
func (rc *RequestContext) Arg(name string) string {
	if rc == nil {
		return ""
	}
	v, _ := rc.Args[name].(string)
	return v
}

// IsOwner reports whether the authenticated principal owns the resource
// whose creator id is passed in the named argument.
func (rc *RequestContext) IsOwner(argName string) bool {
	if rc == nil || rc.Principal == nil {
		return false
	}
	creator := rc.Arg(argName)
	return creator != "" && rc.Principal.UserID == creator
}
